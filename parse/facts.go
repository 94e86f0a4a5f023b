package parse

import (
	"regexp"
	"strings"

	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

var (
	modelRe    = regexp.MustCompile(`(?m)^System Model ID\.+ *(\S+)`)
	serialRe   = regexp.MustCompile(`(?m)^Serial Number\.+ *(\S+)`)
	hostNameRe = regexp.MustCompile(`(?m)^System Name[:. ]+\.* *(\S+)`)
	upTimeRe   = regexp.MustCompile(`System [Uu]p [Tt]ime[:. ]+\.* *(.+)`)

	// uptimeComponentRe matches one number/unit pair of the uptime string,
	// covering both the "16h:52m:42s" and "16 hrs, 52 mins" spellings.
	uptimeComponentRe = regexp.MustCompile(`(\d+)\s*(days?|hrs?|h|mins?|m|secs?|s)`)
)

var uptimeUnitSeconds = map[string]float64{
	"day": 86400, "days": 86400,
	"hr": 3600, "hrs": 3600, "h": 3600,
	"min": 60, "mins": 60, "m": 60,
	"sec": 1, "secs": 1, "s": 1,
}

// Facts scrapes the device identity from "show version" and "show system"
// output. The model, serial number and OS version come from the version
// banner; hostname and uptime come from the system summary. The firmware
// version is the active image in the unit table below the version banner:
//
//	unit active     backup     current-active next-active
//	---- ---------- ---------- -------------- -----------
//	1    6.3.0.5    6.2.0.5    6.3.0.5        6.3.0.5
func Facts(versionOutput, systemOutput string) (schema.Facts, error) {
	uptimeRaw, err := required(upTimeRe, systemOutput, "System Up Time")
	if err != nil {
		return schema.Facts{}, err
	}
	uptime, err := UptimeSeconds(uptimeRaw)
	if err != nil {
		return schema.Facts{}, err
	}
	osVersion, err := activeImage(versionOutput)
	if err != nil {
		return schema.Facts{}, err
	}
	hostname := optional(hostNameRe, systemOutput)
	return schema.Facts{
		Uptime:       uptime,
		Vendor:       "Dell",
		Model:        optional(modelRe, versionOutput),
		Hostname:     hostname,
		FQDN:         hostname,
		OSVersion:    osVersion,
		SerialNumber: optional(serialRe, versionOutput),
	}, nil
}

// UptimeSeconds converts an uptime string such as "142 days, 16h:52m:42s" or
// "110 days, 15 hrs, 26 mins, 50 secs" to seconds.
func UptimeSeconds(raw string) (float64, error) {
	matches := uptimeComponentRe.FindAllStringSubmatch(raw, -1)
	if matches == nil {
		return 0, errors.Errorf("malformed uptime %q", raw)
	}
	var total float64
	for _, m := range matches {
		v, err := cast.ToFloat64E(m[1])
		if err != nil {
			return 0, errors.Wrapf(err, "malformed uptime %q", raw)
		}
		total += v * uptimeUnitSeconds[strings.ToLower(m[2])]
	}
	return total, nil
}

// activeImage pulls the running firmware version out of the unit status table
// at the bottom of the version banner.
func activeImage(versionOutput string) (string, error) {
	body, err := tableBody(versionOutput)
	if err != nil {
		return "", &RequiredFieldError{Field: "active image version"}
	}
	rows := dataRows(body)
	if len(rows) == 0 {
		return "", &RequiredFieldError{Field: "active image version"}
	}
	fields := strings.Fields(rows[0])
	if len(fields) < 2 {
		return "", &RequiredFieldError{Field: "active image version"}
	}
	return fields[1], nil
}

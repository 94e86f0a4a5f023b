package parse

import (
	"regexp"
	"strings"

	"github.com/danimo/napalm-dell/helpers"
	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ARPTable parses "show arp" output. Rows are whitespace-delimited as
// ip, mac, interface, type, then either the literal n/a or three age
// components in the <H>h <M>m <S>s form:
//
//	Address         Hardware Address    Interface  Type     Age
//	--------------- ------------------- ---------- -------- ----------
//	192.168.1.1     0025.64A5.E2E2      Vl1        Dynamic  0h 12m 33s
//	192.168.1.254   F48E.3841.9628      Vl1        Static   n/a
func ARPTable(raw string) ([]schema.ARPEntry, error) {
	body, err := tableBody(raw)
	if err != nil {
		return nil, errors.Wrap(err, "arp table")
	}
	var entries []schema.ARPEntry
	for _, row := range dataRows(body) {
		fields := strings.Fields(row)
		if len(fields) != 5 && len(fields) != 7 {
			return nil, errors.Errorf("malformed arp row %q: want 5 or 7 fields, have %d", row, len(fields))
		}
		age, err := arpAge(fields[4:])
		if err != nil {
			return nil, errors.Wrapf(err, "arp row %q", row)
		}
		mac, err := helpers.MAC(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "arp row %q", row)
		}
		entries = append(entries, schema.ARPEntry{
			Interface: fields[2],
			MAC:       mac,
			IP:        fields[0],
			Age:       age,
		})
	}
	return entries, nil
}

var compactAgeRe = regexp.MustCompile(`^(\d+h)(\d+m)(\d+s)$`)

// arpAge computes total seconds from the hour/minute/second components, each
// carrying a trailing unit character. The components are either separate
// fields ("2h 30m 15s") or one compact token ("2h30m15s"). The literal n/a
// maps to the -1.0 sentinel.
func arpAge(fields []string) (float64, error) {
	if fields[0] == "n/a" {
		return -1.0, nil
	}
	if len(fields) == 1 {
		m := compactAgeRe.FindStringSubmatch(fields[0])
		if m == nil {
			return 0, errors.Errorf("malformed age %q", fields[0])
		}
		fields = m[1:]
	}
	if len(fields) != 3 {
		return 0, errors.Errorf("malformed age %q", strings.Join(fields, " "))
	}
	total := 0
	for i, mult := range []int{3600, 60, 1} {
		f := fields[i]
		if len(f) < 2 {
			return 0, errors.Errorf("malformed age component %q", f)
		}
		v, err := cast.ToIntE(f[:len(f)-1])
		if err != nil {
			return 0, errors.Wrapf(err, "malformed age component %q", f)
		}
		total += v * mult
	}
	return float64(total), nil
}

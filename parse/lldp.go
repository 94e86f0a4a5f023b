package parse

import (
	"regexp"
	"strings"

	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
)

// "show lldp remote-device all" is a fixed-column table; the system name may
// contain spaces, so rows are sliced by character offset instead of being
// whitespace-split.
const (
	lldpIfaceStart = 0
	lldpIfaceEnd   = 10
	lldpPortStart  = 38
	lldpPortEnd    = 55
	lldpNameStart  = 57
)

var (
	chassisIDRe     = regexp.MustCompile(`Chassis ID: (.+)`)
	systemNameRe    = regexp.MustCompile(`System Name: (.+)`)
	remotePortRe    = regexp.MustCompile(`Port ID: (.+)`)
	portDescrRe     = regexp.MustCompile(`Port Description: (.+)`)
	systemDescrRe   = regexp.MustCompile(`System Description: (.+)`)
	capsSupportedRe = regexp.MustCompile(`System Capabilities Supported: (.+)`)
	capsEnabledRe   = regexp.MustCompile(`System Capabilities Enabled: (.+)`)
)

// capabilityCodes maps advertised capability names to their single-letter
// codes.
var capabilityCodes = map[string]string{
	"bridge":            "B",
	"router":            "R",
	"WLAN access point": "W",
	"station only":      "S",
}

// LLDPNeighbors parses the remote-device summary table, grouping neighbors by
// local interface. The hostname is empty when the neighbor does not advertise
// a system name.
func LLDPNeighbors(raw string) (map[string][]schema.LLDPNeighbor, error) {
	body, err := tableBody(raw)
	if err != nil {
		return nil, errors.Wrap(err, "lldp remote-device table")
	}
	neighbors := make(map[string][]schema.LLDPNeighbor)
	for _, line := range dataRows(body) {
		iface := strings.TrimSpace(column(line, lldpIfaceStart, lldpIfaceEnd))
		if iface == "" {
			return nil, errors.Errorf("malformed lldp row %q: empty local interface", line)
		}
		neighbors[iface] = append(neighbors[iface], schema.LLDPNeighbor{
			Hostname: strings.TrimSpace(column(line, lldpNameStart, -1)),
			Port:     strings.TrimSpace(column(line, lldpPortStart, lldpPortEnd)),
		})
	}
	return neighbors, nil
}

// LLDPNeighborDetail parses a "show lldp remote-device detail <iface>" block.
// The chassis ID is structurally required; every other field defaults to
// empty when the neighbor does not advertise it.
func LLDPNeighborDetail(raw string) (schema.LLDPNeighborDetail, error) {
	chassisID, err := required(chassisIDRe, raw, "Chassis ID")
	if err != nil {
		return schema.LLDPNeighborDetail{}, err
	}
	return schema.LLDPNeighborDetail{
		RemoteChassisID:         chassisID,
		RemoteSystemName:        optional(systemNameRe, raw),
		RemotePort:              optional(remotePortRe, raw),
		RemotePortDescription:   optional(portDescrRe, raw),
		RemoteSystemDescription: optional(systemDescrRe, raw),
		RemoteSystemCapab:       capabilities(optional(capsSupportedRe, raw)),
		RemoteSystemEnableCapab: capabilities(optional(capsEnabledRe, raw)),
	}, nil
}

// capabilities maps a comma-separated capability list to single-letter codes,
// dropping names outside the fixed enumeration.
func capabilities(list string) []string {
	if list == "" {
		return nil
	}
	var codes []string
	for _, name := range strings.Split(list, ", ") {
		if code, ok := capabilityCodes[strings.TrimSpace(name)]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}

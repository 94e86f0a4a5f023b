package helpers

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// interfaceSplit separates the alphabetic interface type from the trailing
// unit numbering, e.g. "Gi1/0/48" -> "Gi", "1/0/48".
var interfaceSplit = regexp.MustCompile(`^([A-Za-z-]+) ?(\d.*)$`)

// canonicalTypes expands the abbreviated interface types the device prints to
// their long-form spelling. Long forms map to themselves so the expansion is
// idempotent.
var canonicalTypes = map[string]string{
	"Fa":                   "FastEthernet",
	"FastEthernet":         "FastEthernet",
	"Gi":                   "GigabitEthernet",
	"GigabitEthernet":      "GigabitEthernet",
	"Te":                   "TenGigabitEthernet",
	"TenGigabitEthernet":   "TenGigabitEthernet",
	"Tw":                   "TwentyFiveGigE",
	"TwentyFiveGigE":       "TwentyFiveGigE",
	"Fo":                   "FortyGigabitEthernet",
	"FortyGigabitEthernet": "FortyGigabitEthernet",
	"Hu":                   "HundredGigE",
	"HundredGigE":          "HundredGigE",
	"Po":                   "Port-Channel",
	"Port-Channel":         "Port-Channel",
	"Lo":                   "Loopback",
	"Loopback":             "Loopback",
	"Vl":                   "Vlan",
	"Vlan":                 "Vlan",
	"Tu":                   "Tunnel",
	"Tunnel":               "Tunnel",
	"Ma":                   "Management",
	"Management":           "Management",
}

// CanonicalInterfaceName expands an abbreviated interface name to its
// long-form spelling. Names with an unrecognized type pass through unchanged.
func CanonicalInterfaceName(name string) string {
	m := interfaceSplit.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return name
	}
	long, ok := canonicalTypes[m[1]]
	if !ok {
		return name
	}
	return long + m[2]
}

// MAC normalizes any common MAC spelling (colon pairs, dash pairs,
// dot-grouped fours, bare hex) into lowercase colon-separated octets.
func MAC(address string) (string, error) {
	cleaned := strings.ToLower(strings.TrimSpace(address))
	cleaned = strings.NewReplacer(":", "", "-", "", ".", "").Replace(cleaned)
	if len(cleaned) != 12 {
		return "", errors.Errorf("invalid mac address %q", address)
	}
	for _, r := range cleaned {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return "", errors.Errorf("invalid mac address %q", address)
		}
	}
	octets := make([]string, 0, 6)
	for i := 0; i < 12; i += 2 {
		octets = append(octets, cleaned[i:i+2])
	}
	return strings.Join(octets, ":"), nil
}

// Speed coerces the device's port speed field to Mbps. The literal "Unknown"
// means the link has no negotiated speed and maps to 0.
func Speed(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "unknown") {
		return 0, nil
	}
	speed, err := cast.ToIntE(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid port speed %q", raw)
	}
	if speed < 0 {
		return 0, errors.Errorf("invalid port speed %q", raw)
	}
	return speed, nil
}

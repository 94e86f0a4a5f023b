package parse

import (
	"strings"

	"github.com/danimo/napalm-dell/helpers"
	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// MACTable parses "show mac address-table" output:
//
//	Aging time is 300 Sec
//
//	Vlan     Mac Address           Type        Port
//	-------- --------------------- ----------- ---------------------
//	1        0025.90C2.88ED        Dynamic     Gi1/0/48
//	1        F48E.3841.9628        Management  Vl1
//
//	Total MAC Addresses in use: 2
//
// The entry is static when its type is management or static, and active only
// when the type is dynamic. The device does not report move counters, so
// Moves and LastMove carry the -1/-1.0 sentinels.
func MACTable(raw string) ([]schema.MACTableEntry, error) {
	body, err := tableBody(raw)
	if err != nil {
		return nil, errors.Wrap(err, "mac address table")
	}
	var entries []schema.MACTableEntry
	for _, row := range dataRows(body) {
		fields := strings.Fields(row)
		if len(fields) != 4 {
			return nil, errors.Errorf("malformed mac table row %q: want 4 fields, have %d", row, len(fields))
		}
		vlan, err := cast.ToIntE(fields[0])
		if err != nil || vlan < 0 {
			return nil, errors.Errorf("malformed vlan %q in mac table row %q", fields[0], row)
		}
		mac, err := helpers.MAC(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "mac table row %q", row)
		}
		macType := strings.ToLower(fields[2])
		entries = append(entries, schema.MACTableEntry{
			MAC:       mac,
			Interface: fields[3],
			VLAN:      vlan,
			Static:    macType == "management" || macType == "static",
			Active:    macType == "dynamic",
			Moves:     -1,
			LastMove:  -1.0,
		})
	}
	return entries, nil
}

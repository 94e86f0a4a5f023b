package parse_test

import (
	"fmt"
	"testing"

	"github.com/danimo/napalm-dell/parse"
	"github.com/stretchr/testify/assert"
)

// lldpRow renders one summary row with the device's fixed column layout:
// local interface at offset 0, port id at 38, system name at 57.
func lldpRow(iface, remID, chassisID, portID, name string) string {
	return fmt.Sprintf("%-10s%-8s%-20s%-17s  %s", iface, remID, chassisID, portID, name)
}

func lldpSummary() string {
	header := lldpRow("Interface", "RemID", "Chassis ID", "Port ID", "System Name") + "\n" +
		"--------- ------- ------------------- ----------------- -----------------\n"
	return header +
		lldpRow("Gi1/0/1", "1", "00:1E:C9:AA:BB:01", "Gi0/1", "core-sw01") + "\n" +
		lldpRow("Gi1/0/1", "2", "00:1E:C9:AA:BB:02", "Gi0/2", "core sw 02") + "\n" +
		lldpRow("Gi1/0/3", "3", "00:1E:C9:AA:BB:03", "Gi0/3", "") + "\n"
}

func TestLLDPNeighbors(t *testing.T) {
	neighbors, err := parse.LLDPNeighbors(lldpSummary())
	assert.NoError(t, err)
	assert.Len(t, neighbors, 2)

	assert.Len(t, neighbors["Gi1/0/1"], 2)
	assert.Equal(t, "Gi0/1", neighbors["Gi1/0/1"][0].Port)
	assert.Equal(t, "core-sw01", neighbors["Gi1/0/1"][0].Hostname)
	// free-text system names keep their embedded spaces
	assert.Equal(t, "core sw 02", neighbors["Gi1/0/1"][1].Hostname)

	// a neighbor without an advertised system name
	assert.Len(t, neighbors["Gi1/0/3"], 1)
	assert.Equal(t, "", neighbors["Gi1/0/3"][0].Hostname)
}

const lldpDetailOutput = `LLDP Remote Device Detail

Local Interface: Gi1/0/1

Remote Identifier: 1
Chassis ID Subtype: MAC Address
Chassis ID: 00:1E:C9:AA:BB:01
Port ID Subtype: Interface Name
Port ID: Gi0/1
System Name: core-sw01
System Description: Dell Networking N4032, 6.3.0.5, Linux 3.6.5
Port Description: uplink
System Capabilities Supported: bridge, router, WLAN access point
System Capabilities Enabled: bridge, router
`

func TestLLDPNeighborDetail(t *testing.T) {
	detail, err := parse.LLDPNeighborDetail(lldpDetailOutput)
	assert.NoError(t, err)
	assert.Equal(t, "00:1E:C9:AA:BB:01", detail.RemoteChassisID)
	assert.Equal(t, "core-sw01", detail.RemoteSystemName)
	assert.Equal(t, "Gi0/1", detail.RemotePort)
	assert.Equal(t, "uplink", detail.RemotePortDescription)
	assert.Equal(t, "Dell Networking N4032, 6.3.0.5, Linux 3.6.5", detail.RemoteSystemDescription)
	assert.Equal(t, []string{"B", "R", "W"}, detail.RemoteSystemCapab)
	assert.Equal(t, []string{"B", "R"}, detail.RemoteSystemEnableCapab)
}

func TestLLDPNeighborDetail_OptionalFieldsAbsent(t *testing.T) {
	detail, err := parse.LLDPNeighborDetail("Chassis ID: 00:1E:C9:AA:BB:05\n")
	assert.NoError(t, err)
	assert.Equal(t, "00:1E:C9:AA:BB:05", detail.RemoteChassisID)
	assert.Equal(t, "", detail.RemoteSystemName)
	assert.Equal(t, "", detail.RemotePortDescription)
	assert.Empty(t, detail.RemoteSystemCapab)
}

func TestLLDPNeighborDetail_MissingChassisID(t *testing.T) {
	_, err := parse.LLDPNeighborDetail("System Name: floating\n")
	assert.Error(t, err)
	var required *parse.RequiredFieldError
	assert.ErrorAs(t, err, &required)
	assert.Equal(t, "Chassis ID", required.Field)
}

package dnos6

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/danimo/napalm-dell/dispatch"
	"github.com/danimo/napalm-dell/schema"
	"github.com/stretchr/testify/assert"
)

// scriptedSession answers commands from a canned transcript, standing in for
// a live device.
type scriptedSession struct {
	responses map[string]string
	sent      []string
}

func (s *scriptedSession) Open(options schema.ConnectOptions) error { return nil }
func (s *scriptedSession) Close() error                             { return nil }
func (s *scriptedSession) IsAlive() schema.Alive                    { return schema.Alive{IsAlive: true} }
func (s *scriptedSession) WriteRaw(p []byte) error                  { return nil }
func (s *scriptedSession) Options() schema.ConnectOptions           { return schema.ConnectOptions{} }

func (s *scriptedSession) SendCommand(command string) (string, error) {
	s.sent = append(s.sent, command)
	if out, ok := s.responses[command]; ok {
		return out, nil
	}
	return "% Invalid input detected at '^' marker.", nil
}

func scriptedDriver(responses map[string]string) (*Driver, *scriptedSession) {
	session := &scriptedSession{responses: responses}
	d := New("127.0.0.1", "admin", "password", time.Duration(5)*time.Second, nil)
	d.session = session
	d.dispatcher = dispatch.New(session)
	return d, session
}

func TestIsAlive_BeforeOpen(t *testing.T) {
	d := New("127.0.0.1", "admin", "password", 0, nil)
	assert.Equal(t, schema.Alive{IsAlive: false}, d.IsAlive())

	telnet := DefaultOptions()
	telnet.Transport = schema.Telnet
	d = New("127.0.0.1", "admin", "password", 0, &telnet)
	assert.Equal(t, schema.Alive{IsAlive: false}, d.IsAlive())
}

func TestNew_TelnetForcesInlineTransfer(t *testing.T) {
	opts := DefaultOptions()
	opts.Transport = schema.Telnet
	d := New("127.0.0.1", "admin", "password", 0, &opts)
	assert.True(t, d.opts.InlineTransfer)
}

func TestGetConfig_RunningOnly(t *testing.T) {
	d, session := scriptedDriver(map[string]string{
		"show running-config": "!Current Configuration:\nhostname lab-sw01\n",
		"show startup-config": "!Startup Configuration:\n",
	})
	bundle, err := d.GetConfig("running")
	assert.NoError(t, err)
	assert.NotEmpty(t, bundle.Running)
	assert.Empty(t, bundle.Startup)
	assert.Empty(t, bundle.Candidate)
	assert.Equal(t, []string{"show running-config"}, session.sent)
}

func TestGetConfig_All(t *testing.T) {
	d, _ := scriptedDriver(map[string]string{
		"show running-config": "running",
		"show startup-config": "startup",
	})
	bundle, err := d.GetConfig("all")
	assert.NoError(t, err)
	assert.Equal(t, "running", bundle.Running)
	assert.Equal(t, "startup", bundle.Startup)
	assert.Empty(t, bundle.Candidate)
}

func TestGetConfig_InvalidSelector(t *testing.T) {
	d, _ := scriptedDriver(nil)
	_, err := d.GetConfig("merged")
	assert.Error(t, err)
}

const macTable = `Vlan     Mac Address           Type        Port
-------- --------------------- ----------- ---------------------
1        0025.90C2.88ED        Dynamic     Gi1/0/48

Total MAC Addresses in use: 1
`

func TestGetMACAddressTable_CanonicalInterfaces(t *testing.T) {
	opts := DefaultOptions()
	opts.CanonicalInterfaces = true
	d, _ := scriptedDriver(map[string]string{"show mac address-table": macTable})
	d.opts = opts

	entries, err := d.GetMACAddressTable()
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "GigabitEthernet1/0/48", entries[0].Interface)
}

func TestGetMACAddressTable_PassthroughNames(t *testing.T) {
	d, _ := scriptedDriver(map[string]string{"show mac address-table": macTable})
	entries, err := d.GetMACAddressTable()
	assert.NoError(t, err)
	assert.Equal(t, "Gi1/0/48", entries[0].Interface)
}

func TestGetEnvironment_FallsBackAcrossVariants(t *testing.T) {
	d, session := scriptedDriver(map[string]string{
		"show process cpu": " alloc 1000\n  free 500\nTotal CPU Utilization  1.00%  2.00%  3.00%\n",
	})
	env, err := d.GetEnvironment()
	assert.NoError(t, err)
	assert.Equal(t, 2.0, env.CPU[0].Usage)
	assert.Equal(t, 1500, env.Memory.AvailableRAM)
	// the first spelling was rejected, the second accepted
	assert.Equal(t, []string{"show proc cpu", "show process cpu"}, session.sent)
}

func lldpSummaryRow(iface, port, name string) string {
	pad := func(s string, n int) string {
		for len(s) < n {
			s += " "
		}
		return s
	}
	return pad(iface, 10) + pad("1       00:1E:C9:AA:BB:01", 28) + pad(port, 17) + "  " + name
}

func TestGetLLDPNeighborDetail_FanOut(t *testing.T) {
	summary := "Interface  RemID  Chassis ID  Port ID  System Name\n" +
		"--------- ------- ------------------- ----------------- ---------\n" +
		lldpSummaryRow("Gi1/0/1", "Gi0/1", "core-sw01") + "\n" +
		lldpSummaryRow("Gi1/0/2", "Gi0/2", "core-sw02") + "\n"
	d, session := scriptedDriver(map[string]string{
		"show lldp remote-device all":            summary,
		"show lldp remote-device detail Gi1/0/1": "Chassis ID: 00:1E:C9:AA:BB:01\nSystem Name: core-sw01\n",
		"show lldp remote-device detail Gi1/0/2": "Chassis ID: 00:1E:C9:AA:BB:02\n",
	})
	details, err := d.GetLLDPNeighborDetail("")
	assert.NoError(t, err)
	assert.Len(t, details, 2)
	assert.Equal(t, "00:1E:C9:AA:BB:01", details[0].RemoteChassisID)
	assert.Equal(t, "core-sw01", details[0].RemoteSystemName)
	// the system name is legitimately optional
	assert.Equal(t, "", details[1].RemoteSystemName)
	assert.NotEmpty(t, details[1].RemoteChassisID)
	assert.Equal(t, "show lldp remote-device all", session.sent[0])
}

func TestGetLLDPNeighborDetail_SingleInterface(t *testing.T) {
	d, session := scriptedDriver(map[string]string{
		"show lldp remote-device detail Gi1/0/1": "Chassis ID: 00:1E:C9:AA:BB:01\n",
	})
	details, err := d.GetLLDPNeighborDetail("Gi1/0/1")
	assert.NoError(t, err)
	assert.Len(t, details, 1)
	assert.Equal(t, []string{"show lldp remote-device detail Gi1/0/1"}, session.sent)
}

func TestGetNTPPeers(t *testing.T) {
	d, _ := scriptedDriver(map[string]string{
		"show sntp server": "Host Address: 192.168.0.1\n\nHost Address: 17.72.148.53\n",
	})
	peers, err := d.GetNTPPeers()
	assert.NoError(t, err)
	assert.Len(t, peers, 2)
	assert.Contains(t, peers, "192.168.0.1")
}

func TestDiscoverFileSystem_OverrideWins(t *testing.T) {
	opts := DefaultOptions()
	opts.DestFileSystem = "flash:"
	d, session := scriptedDriver(nil)
	d.opts = opts
	fs, err := d.DiscoverFileSystem()
	assert.NoError(t, err)
	assert.Equal(t, "flash:", fs)
	assert.Empty(t, session.sent)
}

func TestDiscoverFileSystem_FromDir(t *testing.T) {
	d, _ := scriptedDriver(map[string]string{
		"dir": "Directory of flash:\n\nflash: 123456 bytes free\n",
	})
	fs, err := d.DiscoverFileSystem()
	assert.NoError(t, err)
	assert.Equal(t, "flash:", fs)
}

func TestCreateTempFile(t *testing.T) {
	path, err := CreateTempFile("hostname lab-sw01\n")
	assert.NoError(t, err)
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "hostname lab-sw01\n", string(data))
	assert.True(t, strings.Contains(path, "dnos6-config-"))
}

package schema

// Interface is one physical or logical interface discovered in device output.
// Speed is in Mbps, 0 when the device reports it as Unknown.
type Interface struct {
	Name        string  `json:"name"`
	IsUp        bool    `json:"is_up"`
	IsEnabled   bool    `json:"is_enabled"`
	Description string  `json:"description"`
	LastFlapped float64 `json:"last_flapped"`
	Speed       int     `json:"speed"`
	MACAddress  string  `json:"mac_address"`
}

// MACTableEntry is one row of the switching table. Moves and LastMove are
// not reported by the device and carry the -1/-1.0 sentinels.
type MACTableEntry struct {
	MAC       string  `json:"mac"`
	Interface string  `json:"interface"`
	VLAN      int     `json:"vlan"`
	Static    bool    `json:"static"`
	Active    bool    `json:"active"`
	Moves     int     `json:"moves"`
	LastMove  float64 `json:"last_move"`
}

// ARPEntry is one row of the ARP table. Age is in seconds, -1.0 when the
// device reports it as n/a.
type ARPEntry struct {
	Interface string  `json:"interface"`
	MAC       string  `json:"mac"`
	IP        string  `json:"ip"`
	Age       float64 `json:"age"`
}

// LLDPNeighbor is a remote system seen on a local interface. Hostname may be
// empty when the neighbor does not advertise a system name.
type LLDPNeighbor struct {
	Hostname string `json:"hostname"`
	Port     string `json:"port"`
}

// LLDPNeighborDetail is the per-interface detail record. Capability codes are
// drawn from B (bridge), R (router), W (WLAN access point), S (station only).
type LLDPNeighborDetail struct {
	RemoteChassisID         string   `json:"remote_chassis_id"`
	RemoteSystemName        string   `json:"remote_system_name"`
	RemotePort              string   `json:"remote_port"`
	RemotePortDescription   string   `json:"remote_port_description"`
	RemoteSystemDescription string   `json:"remote_system_description"`
	RemoteSystemCapab       []string `json:"remote_system_capab"`
	RemoteSystemEnableCapab []string `json:"remote_system_enable_capab"`
}

type CPUUsage struct {
	Usage float64 `json:"%usage"`
}

// Memory reports device memory in native units. AvailableRAM is the total
// (used plus free), not free alone; callers rely on that reading.
type Memory struct {
	UsedRAM      int `json:"used_ram"`
	AvailableRAM int `json:"available_ram"`
}

type Temperature struct {
	IsAlert     bool    `json:"is_alert"`
	IsCritical  bool    `json:"is_critical"`
	Temperature float64 `json:"temperature"`
}

type PowerSupply struct {
	Status   bool    `json:"status"`
	Output   float64 `json:"output"`
	Capacity float64 `json:"capacity"`
}

type Fan struct {
	Status bool `json:"status"`
}

// Environment holds the device telemetry. Subsystems the OS does not expose
// are keyed "invalid" with sentinel values rather than omitted.
type Environment struct {
	CPU         map[int]CPUUsage       `json:"cpu"`
	Memory      Memory                 `json:"memory"`
	Temperature map[string]Temperature `json:"temperature"`
	Power       map[string]PowerSupply `json:"power"`
	Fans        map[string]Fan         `json:"fans"`
}

// NTPPeer has no attributes yet; the map key carries the host address.
type NTPPeer struct{}

// ConfigBundle holds raw configuration text. Candidate is always empty, the
// device has no candidate configuration concept.
type ConfigBundle struct {
	Startup   string `json:"startup"`
	Running   string `json:"running"`
	Candidate string `json:"candidate"`
}

// Facts is the device identity summary.
type Facts struct {
	Uptime        float64  `json:"uptime"`
	Vendor        string   `json:"vendor"`
	Model         string   `json:"model"`
	Hostname      string   `json:"hostname"`
	FQDN          string   `json:"fqdn"`
	OSVersion     string   `json:"os_version"`
	SerialNumber  string   `json:"serial_number"`
	InterfaceList []string `json:"interface_list"`
}

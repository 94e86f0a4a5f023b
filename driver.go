// Package dnos6 is a network automation driver for Dell EMC Networking
// (DNOS6 / PowerConnect) switches. It drives the device's interactive CLI
// over SSH or Telnet and scrapes command output into typed facts.
package dnos6

import (
	"fmt"
	"sort"
	"time"

	"github.com/danimo/napalm-dell/dispatch"
	"github.com/danimo/napalm-dell/helpers"
	"github.com/danimo/napalm-dell/logger"
	"github.com/danimo/napalm-dell/parse"
	"github.com/danimo/napalm-dell/schema"
	"github.com/danimo/napalm-dell/transport"
	"github.com/pkg/errors"
)

// Options configures a Driver beyond the mandatory host and credentials.
// DefaultOptions supplies the documented defaults; a zero Options value
// disables auto-rollback and auto-file-prompt, matching its field values.
type Options struct {
	Transport           schema.ConnectionMethod
	Port                int // 0 selects the transport's default port
	Secret              string
	CandidateCfg        string
	MergeCfg            string
	RollbackCfg         string
	InlineTransfer      bool
	DestFileSystem      string // overrides filesystem autodetection when set
	AutoRollbackOnError bool
	AutoFilePrompt      bool
	CanonicalInterfaces bool
	Tuning              schema.TuningOptions
}

// DefaultOptions returns the option defaults: SSH transport, the standard
// staging file names, auto-rollback and auto-file-prompt enabled.
func DefaultOptions() Options {
	return Options{
		Transport:           schema.SSH,
		CandidateCfg:        "candidate_config.txt",
		MergeCfg:            "merge_config.txt",
		RollbackCfg:         "rollback_config.txt",
		AutoRollbackOnError: true,
		AutoFilePrompt:      true,
		Tuning: schema.TuningOptions{
			Keepalive: time.Duration(30) * time.Second,
		},
	}
}

// Driver holds one logical session to one device. All retrieval calls are
// sequential and blocking; a caller wanting concurrency across devices runs
// one Driver per device. The Driver keeps no fact state between calls.
type Driver struct {
	hostname string
	username string
	password string
	timeout  time.Duration
	opts     Options

	session    schema.Session
	dispatcher *dispatch.Dispatcher
	log        schema.Logger
}

// New creates an unconnected driver. A nil opts selects DefaultOptions.
func New(hostname, username, password string, timeout time.Duration, opts *Options) *Driver {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}
	if options.Transport == schema.Telnet {
		// Telnet only supports inline transfer
		options.InlineTransfer = true
	}
	if timeout == 0 {
		timeout = time.Duration(60) * time.Second
	}
	return &Driver{
		hostname: hostname,
		username: username,
		password: password,
		timeout:  timeout,
		opts:     options,
		log:      logger.Log,
	}
}

// Open establishes the session and enters privileged command mode.
func (d *Driver) Open() error {
	session := transport.New(d.opts.Transport)
	err := session.Open(schema.ConnectOptions{
		Host:     d.hostname,
		Port:     d.opts.Port,
		Username: d.username,
		Password: d.password,
		Secret:   d.opts.Secret,
		Timeout:  d.timeout,
		Tuning:   d.opts.Tuning,
	})
	if err != nil {
		return err
	}
	d.session = session
	d.dispatcher = dispatch.New(session)
	return nil
}

// Close terminates the session. Safe to call repeatedly, and after a failed
// Open.
func (d *Driver) Close() error {
	if d.session == nil {
		return nil
	}
	err := d.session.Close()
	d.session = nil
	d.dispatcher = nil
	return err
}

// IsAlive reports the state of the connection; always {false} before Open.
func (d *Driver) IsAlive() schema.Alive {
	if d.session == nil {
		return schema.Alive{IsAlive: false}
	}
	return d.session.IsAlive()
}

func (d *Driver) send(commands ...string) (string, error) {
	if d.dispatcher == nil {
		return "", errors.New("session not open")
	}
	return d.dispatcher.Send(commands...)
}

// canonical applies the long-form interface naming when the driver was
// configured for it, and passes names through unchanged otherwise.
func (d *Driver) canonical(name string) string {
	if !d.opts.CanonicalInterfaces {
		return name
	}
	return helpers.CanonicalInterfaceName(name)
}

// GetConfig retrieves the requested configuration blobs. The selector is one
// of startup, running or all; unselected blobs stay empty. Candidate is
// always empty, the device has no candidate configuration.
func (d *Driver) GetConfig(retrieve string) (schema.ConfigBundle, error) {
	var bundle schema.ConfigBundle
	switch retrieve {
	case "startup", "running", "all":
	default:
		return bundle, errors.Errorf("invalid config selector %q", retrieve)
	}
	if retrieve == "startup" || retrieve == "all" {
		output, err := d.send("show startup-config")
		if err != nil {
			return bundle, err
		}
		bundle.Startup = output
	}
	if retrieve == "running" || retrieve == "all" {
		output, err := d.send("show running-config")
		if err != nil {
			return bundle, err
		}
		bundle.Running = output
	}
	return bundle, nil
}

// GetEnvironment retrieves CPU and memory usage. Temperature, power and fan
// telemetry are not exposed by this OS and come back as "invalid"-keyed
// placeholders.
func (d *Driver) GetEnvironment() (schema.Environment, error) {
	output, err := d.send("show proc cpu", "show process cpu")
	if err != nil {
		return schema.Environment{}, err
	}
	return parse.Environment(output)
}

// GetMACAddressTable retrieves the switching table.
func (d *Driver) GetMACAddressTable() ([]schema.MACTableEntry, error) {
	output, err := d.send("show mac address-table")
	if err != nil {
		return nil, err
	}
	entries, err := parse.MACTable(output)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Interface = d.canonical(entries[i].Interface)
	}
	return entries, nil
}

// GetARPTable retrieves the ARP table.
func (d *Driver) GetARPTable() ([]schema.ARPEntry, error) {
	output, err := d.send("show arp")
	if err != nil {
		return nil, err
	}
	entries, err := parse.ARPTable(output)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Interface = d.canonical(entries[i].Interface)
	}
	return entries, nil
}

// GetInterfaces retrieves every interface the device reports, with admin
// state and description cross-referenced from the running configuration.
func (d *Driver) GetInterfaces() ([]schema.Interface, error) {
	config, err := d.send("show running-config")
	if err != nil {
		return nil, err
	}
	output, err := d.send("show interfaces")
	if err != nil {
		return nil, err
	}
	ifaces, err := parse.Interfaces(output, config)
	if err != nil {
		return nil, err
	}
	for i := range ifaces {
		ifaces[i].Name = d.canonical(ifaces[i].Name)
	}
	return ifaces, nil
}

// GetLLDPNeighbors retrieves the neighbor summary grouped by local
// interface.
func (d *Driver) GetLLDPNeighbors() (map[string][]schema.LLDPNeighbor, error) {
	output, err := d.send("show lldp remote-device all")
	if err != nil {
		return nil, err
	}
	return parse.LLDPNeighbors(output)
}

// GetLLDPNeighborDetail retrieves per-interface neighbor detail. With an
// empty interface it fans out across every interface found by the summary
// call; with a specific interface it returns that single record.
func (d *Driver) GetLLDPNeighborDetail(iface string) ([]schema.LLDPNeighborDetail, error) {
	if iface != "" {
		detail, err := d.lldpDetail(iface)
		if err != nil {
			return nil, err
		}
		return []schema.LLDPNeighborDetail{detail}, nil
	}
	neighbors, err := d.GetLLDPNeighbors()
	if err != nil {
		return nil, err
	}
	ifaces := make([]string, 0, len(neighbors))
	for name := range neighbors {
		ifaces = append(ifaces, name)
	}
	sort.Strings(ifaces)
	details := make([]schema.LLDPNeighborDetail, 0, len(ifaces))
	for _, name := range ifaces {
		detail, err := d.lldpDetail(name)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (d *Driver) lldpDetail(iface string) (schema.LLDPNeighborDetail, error) {
	output, err := d.send(fmt.Sprintf("show lldp remote-device detail %s", iface))
	if err != nil {
		return schema.LLDPNeighborDetail{}, err
	}
	return parse.LLDPNeighborDetail(output)
}

// GetNTPPeers retrieves the configured SNTP servers, keyed by host address.
func (d *Driver) GetNTPPeers() (map[string]schema.NTPPeer, error) {
	output, err := d.send("show sntp server")
	if err != nil {
		return nil, err
	}
	return parse.NTPServers(output), nil
}

// GetFacts retrieves the device identity summary.
func (d *Driver) GetFacts() (schema.Facts, error) {
	version, err := d.send("show version")
	if err != nil {
		return schema.Facts{}, err
	}
	system, err := d.send("show system")
	if err != nil {
		return schema.Facts{}, err
	}
	facts, err := parse.Facts(version, system)
	if err != nil {
		return schema.Facts{}, err
	}
	ifaces, err := d.GetInterfaces()
	if err != nil {
		return schema.Facts{}, err
	}
	for _, iface := range ifaces {
		facts.InterfaceList = append(facts.InterfaceList, iface.Name)
	}
	return facts, nil
}

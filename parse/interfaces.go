package parse

import (
	"regexp"
	"strings"

	"github.com/danimo/napalm-dell/helpers"
	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
)

var (
	ifaceNameRe   = regexp.MustCompile(`Interface Name : \.+\s(.*)`)
	ifaceSpeedRe  = regexp.MustCompile(`Port Speed : \.+\s(.*)`)
	ifaceMACRe    = regexp.MustCompile(`L3 MAC Address\.+\s(.*)`)
	ifaceStatusRe = regexp.MustCompile(`Link Status : \.+\s(.*)`)

	// configBlockRe captures each "interface <name> ... exit" block of the
	// running configuration.
	configBlockRe = regexp.MustCompile(`!\ninterface (.*)\n((?s:.*?))\nexit`)
	descriptionRe = regexp.MustCompile(`description: "(.+?)"`)
	shutdownRe    = regexp.MustCompile(`(no )?shutdown`)
)

// Interfaces parses "show interfaces" output, one blank-line-separated block
// per interface, and cross-references the running configuration for the
// description and admin state. An interface without a config block defaults
// to enabled with an empty description.
func Interfaces(showOutput, configOutput string) ([]schema.Interface, error) {
	blocks := configBlocks(configOutput)
	var ifaces []schema.Interface
	for _, section := range strings.Split(showOutput, "\n\n") {
		if strings.TrimSpace(section) == "" {
			continue
		}
		name, err := required(ifaceNameRe, section, "Interface Name")
		if err != nil {
			return nil, err
		}
		speedRaw, err := required(ifaceSpeedRe, section, "Port Speed")
		if err != nil {
			return nil, errors.Wrapf(err, "interface %s", name)
		}
		macRaw, err := required(ifaceMACRe, section, "L3 MAC Address")
		if err != nil {
			return nil, errors.Wrapf(err, "interface %s", name)
		}
		status, err := required(ifaceStatusRe, section, "Link Status")
		if err != nil {
			return nil, errors.Wrapf(err, "interface %s", name)
		}
		speed, err := helpers.Speed(speedRaw)
		if err != nil {
			return nil, errors.Wrapf(err, "interface %s", name)
		}
		mac, err := helpers.MAC(macRaw)
		if err != nil {
			return nil, errors.Wrapf(err, "interface %s", name)
		}
		description, enabled := configForInterface(name, blocks)
		ifaces = append(ifaces, schema.Interface{
			Name:        name,
			IsUp:        status == "Up",
			IsEnabled:   enabled,
			Description: description,
			LastFlapped: -1,
			Speed:       speed,
			MACAddress:  mac,
		})
	}
	return ifaces, nil
}

func configBlocks(configOutput string) map[string]string {
	blocks := make(map[string]string)
	for _, m := range configBlockRe.FindAllStringSubmatch(configOutput, -1) {
		blocks[strings.TrimSpace(m[1])] = m[2]
	}
	return blocks
}

// configForInterface derives description and admin state from the interface's
// configuration block. A bare "shutdown" disables the interface; "no
// shutdown" or no mention at all leaves it enabled.
func configForInterface(name string, blocks map[string]string) (description string, enabled bool) {
	block, ok := blocks[name]
	if !ok {
		return "", true
	}
	description = optional(descriptionRe, block)
	enabled = true
	if m := shutdownRe.FindStringSubmatch(block); m != nil && m[1] == "" {
		enabled = false
	}
	return description, enabled
}

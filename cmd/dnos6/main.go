// Command dnos6 connects to every switch in a YAML inventory and dumps the
// requested facts as JSON, one device at a time.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	dnos6 "github.com/danimo/napalm-dell"
	"github.com/danimo/napalm-dell/schema"
	"gopkg.in/yaml.v3"
)

type inventory struct {
	Devices []deviceEntry `yaml:"devices"`
}

type deviceEntry struct {
	Name      string `yaml:"name"`
	Host      string `yaml:"host"`
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Secret    string `yaml:"secret"`
	Timeout   int    `yaml:"timeout"` // seconds, 0 selects the default
	Canonical bool   `yaml:"canonical_interfaces"`
}

func main() {
	path := "devices.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Unable to open the inventory file: %s", err)
	}
	var inv inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		log.Fatalf("Cannot load devices from %s: %s", path, err)
	}

	for _, entry := range inv.Devices {
		opts := dnos6.DefaultOptions()
		if entry.Transport == "telnet" {
			opts.Transport = schema.Telnet
		}
		opts.Port = entry.Port
		opts.Secret = entry.Secret
		opts.CanonicalInterfaces = entry.Canonical

		timeout := time.Duration(entry.Timeout) * time.Second
		driver := dnos6.New(entry.Host, entry.Username, entry.Password, timeout, &opts)
		if err := driver.Open(); err != nil {
			fmt.Printf("Cannot connect to %s: %s\n", entry.Name, err)
			continue
		}

		facts, err := driver.GetFacts()
		dump(entry.Name, "facts", facts, err)

		interfaces, err := driver.GetInterfaces()
		dump(entry.Name, "interfaces", interfaces, err)

		neighbors, err := driver.GetLLDPNeighbors()
		dump(entry.Name, "lldp neighbors", neighbors, err)

		environment, err := driver.GetEnvironment()
		dump(entry.Name, "environment", environment, err)

		if err := driver.Close(); err != nil {
			fmt.Printf("Error closing session to %s: %s\n", entry.Name, err)
		}
	}
}

func dump(device, what string, v interface{}, err error) {
	if err != nil {
		fmt.Printf("%s: unable to get %s: %s\n", device, what, err)
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Printf("%s %s:\n%s\n", device, what, b)
}

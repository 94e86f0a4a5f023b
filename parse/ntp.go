package parse

import (
	"regexp"

	"github.com/danimo/napalm-dell/schema"
)

var hostAddressRe = regexp.MustCompile(`Host Address:\s(\S+)`)

// NTPServers collects the configured SNTP server addresses from "show sntp
// server" output. The inner record carries no attributes yet.
func NTPServers(raw string) map[string]schema.NTPPeer {
	peers := make(map[string]schema.NTPPeer)
	for _, m := range hostAddressRe.FindAllStringSubmatch(raw, -1) {
		peers[m[1]] = schema.NTPPeer{}
	}
	return peers
}

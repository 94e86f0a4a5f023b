package parse_test

import (
	"testing"

	"github.com/danimo/napalm-dell/parse"
	"github.com/stretchr/testify/assert"
)

const sntpServerOutput = `Host Address: 192.168.0.1
Address Type: ipv4
Priority: 1
Version: 4
Port: 123

Host Address: 17.72.148.53
Address Type: ipv4
Priority: 2
Version: 4
Port: 123
`

func TestNTPServers(t *testing.T) {
	peers := parse.NTPServers(sntpServerOutput)
	assert.Len(t, peers, 2)
	assert.Contains(t, peers, "192.168.0.1")
	assert.Contains(t, peers, "17.72.148.53")
}

func TestNTPServers_Empty(t *testing.T) {
	peers := parse.NTPServers("")
	assert.Empty(t, peers)
	assert.NotNil(t, peers)
}

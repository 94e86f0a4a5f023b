// Package transport owns the interactive CLI connection to a device. The two
// variants, SSH and Telnet, implement schema.Session behind the New factory.
package transport

import (
	"fmt"

	"github.com/danimo/napalm-dell/logger"
	"github.com/danimo/napalm-dell/schema"
)

const (
	SSH    = schema.SSH
	Telnet = schema.Telnet
)

const (
	defaultSSHPort    = 22
	defaultTelnetPort = 23
)

var log schema.Logger

func init() {
	log = logger.Log
}

// New creates an unopened session of the given kind.
func New(method schema.ConnectionMethod) schema.Session {
	switch method {
	case schema.Telnet:
		log.Debug("Creating a new Telnet session.")
		t := &telnetSession{}
		t.initialize()
		return t
	default:
		log.Debug("Creating a new SSH session.")
		s := &sshSession{}
		s.initialize()
		return s
	}
}

// ConnectionClosedError reports a socket error or premature end-of-stream on
// an established session, distinct from a connection that never came up.
type ConnectionClosedError struct {
	Op  string
	Err error
}

func (e *ConnectionClosedError) Error() string {
	return fmt.Sprintf("connection closed during %s: %v", e.Op, e.Err)
}

func (e *ConnectionClosedError) Unwrap() error {
	return e.Err
}

func closedErr(op string, err error) error {
	return &ConnectionClosedError{Op: op, Err: err}
}

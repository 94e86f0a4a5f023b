// Package dispatch sends commands against an open session, falling back
// across syntax variants when the device rejects a spelling.
package dispatch

import (
	"strings"

	"github.com/danimo/napalm-dell/logger"
	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
)

// invalidMarker is the device's rejection banner for unrecognized syntax.
const invalidMarker = "% Invalid"

// ErrUnsupportedCommand reports that the device rejected every candidate
// spelling of a command. The raw rejection text is still returned alongside
// it so callers that want the old degraded behavior can keep it.
var ErrUnsupportedCommand = errors.New("device rejected all command variants")

var log schema.Logger

func init() {
	log = logger.Log
}

type Dispatcher struct {
	session schema.Session
}

func New(session schema.Session) *Dispatcher {
	return &Dispatcher{session: session}
}

// Send tries each candidate command in order and returns the first response
// that is not an invalid-command rejection. Command syntax varies across OS
// releases, which is why callers may pass several spellings. Transport errors
// propagate unchanged so connection loss stays distinguishable.
func (d *Dispatcher) Send(commands ...string) (string, error) {
	if len(commands) == 0 {
		return "", errors.New("no command given")
	}
	var output string
	for _, command := range commands {
		out, err := d.session.SendCommand(command)
		if err != nil {
			return "", err
		}
		output = out
		if !strings.Contains(out, invalidMarker) {
			return out, nil
		}
		log.Debugf("Device rejected %q, trying next variant.", command)
	}
	return output, errors.Wrapf(ErrUnsupportedCommand, "tried %d variants", len(commands))
}

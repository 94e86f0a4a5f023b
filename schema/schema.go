package schema

import (
	"time"
)

type EventType int
type ConnectionMethod int

const (
	Stdin  EventType = iota
	Stderr EventType = iota
	Stdout EventType = iota
)

const (
	SSH ConnectionMethod = iota
	Telnet
)

// MessageEvent is a single line of terminal traffic observed on a session.
type MessageEvent struct {
	Source  string
	Message string
	Dir     EventType
	Time    time.Time
}

// TuningOptions are the transport tuning knobs. Every field is optional and
// the zero value selects the documented default.
type TuningOptions struct {
	Verbose           bool
	Keepalive         time.Duration // 0 disables the keepalive probe
	GlobalDelayFactor int           // multiplies per-command timeouts, 0 or 1 means unscaled
	UseKeys           bool
	KeyFile           string
	SSHStrict         bool // verify host keys against the known-hosts files below
	SystemHostKeys    bool
	AltHostKeys       bool
	AltKeyFile        string
	// SSHConfigFile is reserved and currently ignored; per-host settings
	// are not read from an OpenSSH client config file.
	SSHConfigFile string
	// AllowAgent offers the keys of the ssh-agent at SSH_AUTH_SOCK as an
	// additional auth method.
	AllowAgent bool
}

type ConnectOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	Secret   string // password for privileged mode
	Timeout  time.Duration
	Tuning   TuningOptions
}

// Alive is the flag record returned by liveness probes.
type Alive struct {
	IsAlive bool `json:"is_alive"`
}

// Session is an interactive CLI connection to a single device. Only one
// command may be in flight at a time; Session is not safe for concurrent use.
type Session interface {
	//Open establishes the connection and enters privileged command mode.
	Open(options ConnectOptions) error
	//Close terminates the session. Safe to call repeatedly, and after a
	//partially failed Open.
	Close() error
	//IsAlive probes the connection without disturbing any pending output.
	//Always {false} before Open has ever been called.
	IsAlive() Alive
	//WriteRaw writes bytes to the channel without waiting for a response.
	WriteRaw(p []byte) error
	//SendCommand writes a command and blocks until the prompt returns,
	//returning the captured output between the echo and the prompt.
	SendCommand(command string) (string, error)
	//Options returns the connection options used for this session.
	Options() ConnectOptions
}

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})
}

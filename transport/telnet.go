package transport

import (
	"fmt"
	"net"
	"regexp"
	"time"

	gote "github.com/morganhein/go-telnet"

	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
)

// Telnet protocol control bytes for the no-op liveness probe.
const (
	telnetIAC = 255 // Interpret As Command
	telnetNOP = 241
)

var loginRe = regexp.MustCompile(`.*?[Ll]ogin:? *?$|.*?[Uu]ser(name)?:? *?$`)

type telnetSession struct {
	terminal
	conn net.Conn
}

func (t *telnetSession) Open(options schema.ConnectOptions) (err error) {
	if options.Port == 0 {
		options.Port = defaultTelnetPort
	}
	t.applyOptions(options)

	host := fmt.Sprintf("%v:%v", options.Host, options.Port)
	t.conn, err = gote.Dial("tcp", host)
	if err != nil {
		return errors.Wrapf(err, "failed to dial %s", host)
	}

	log.Debug("TCP connected, trying to login.")
	t.stdout = t.conn
	t.stdin = t.conn

	t.attach()

	if err := t.login(options.Username, options.Password); err != nil {
		log.Warning("Unable to login to telnet using username/password combination.")
		t.Close()
		return err
	}

	log.Info("Telnet session created.")
	t.opened = true

	t.disablePaging()
	if err := t.enterPrivileged(options.Secret); err != nil {
		t.Close()
		return err
	}
	t.ready = true
	return nil
}

func (t *telnetSession) login(username, password string) error {
	loginTimeout := time.Duration(20) * time.Second
	if _, err := t.writeExpectTimeout("", loginRe, loginTimeout); err != nil {
		return errors.Wrap(err, "no login prompt")
	}
	if _, err := t.writeExpectTimeout(username, t.passwordRe, loginTimeout); err != nil {
		return errors.Wrap(err, "no password prompt")
	}
	if _, err := t.writeExpectTimeout(password, t.prompt, loginTimeout); err != nil {
		return errors.Wrap(err, "no prompt after login")
	}
	return nil
}

func (t *telnetSession) Close() error {
	if t.conn != nil {
		// a best-effort goodbye before tearing the socket down
		t.conn.Write([]byte("exit\r"))
		t.conn.Close()
		t.conn = nil
		t.stdin = nil
	}
	t.detach()
	t.ready = false
	return nil
}

// IsAlive sends the IAC+NOP control sequence; the device ignores it, but a
// failed write means the socket is gone.
func (t *telnetSession) IsAlive() schema.Alive {
	if !t.opened || t.conn == nil {
		return schema.Alive{IsAlive: false}
	}
	if err := t.WriteRaw([]byte{telnetIAC, telnetNOP}); err != nil {
		return schema.Alive{IsAlive: false}
	}
	return schema.Alive{IsAlive: true}
}

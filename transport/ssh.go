package transport

import (
	"fmt"
	"time"

	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

type sshSession struct {
	terminal
	config    *ssh.ClientConfig
	client    *ssh.Client
	session   *ssh.Session
	keepalive chan bool
}

func (s *sshSession) Open(options schema.ConnectOptions) error {
	if options.Port == 0 {
		options.Port = defaultSSHPort
	}
	s.applyOptions(options)
	config, err := createSSHConfig(options)
	if err != nil {
		return err
	}
	s.config = config
	// the switch-side SSH stacks are old, widen the cipher list
	s.config.Ciphers = []string{
		"aes128-cbc",
		"aes256-cbc",
		"aes128-ctr",
		"aes192-ctr",
		"aes256-ctr",
		"aes128-gcm@openssh.com",
	}

	host := fmt.Sprint(options.Host, ":", options.Port)
	log.Debug("Dialing ", host)
	conn, err := ssh.Dial("tcp", host, s.config)
	if err != nil {
		return errors.Wrapf(err, "failed to dial %s", host)
	}
	s.client = conn
	s.session, err = s.client.NewSession()
	if err != nil {
		s.client.Close()
		return errors.Wrap(err, "failed to create session")
	}
	s.stdin, _ = s.session.StdinPipe()
	s.stdout, _ = s.session.StdoutPipe()
	s.stderr, _ = s.session.StderrPipe()

	s.attach()

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,     // disable echoing
		ssh.TTY_OP_ISPEED: 14400, // input speed = 14.4kbaud
		ssh.TTY_OP_OSPEED: 14400, // output speed = 14.4kbaud
	}

	// Request PTY
	if err := s.session.RequestPty("xterm", 0, 80, modes); err != nil {
		s.Close()
		return errors.Wrap(err, "request for pseudo terminal failed")
	}

	// Start remote shell
	if err := s.session.Shell(); err != nil {
		s.Close()
		return errors.Wrap(err, "failed to start shell")
	}
	log.Info("SSH session created.")
	s.opened = true

	s.disablePaging()
	if err := s.enterPrivileged(options.Secret); err != nil {
		s.Close()
		return err
	}
	if interval := options.Tuning.Keepalive; interval > 0 {
		stop := make(chan bool, 1)
		s.keepalive = stop
		client := s.client
		go keepaliveLoop(interval, stop, func() error {
			_, _, err := client.SendRequest("keepalive@openssh.com", true, nil)
			return err
		})
	}
	s.ready = true
	return nil
}

// keepaliveLoop nudges the server so idle sessions are not reaped by
// aggressive firewalls. The loop holds no session state; Close may tear the
// session down while it runs and only the stop channel is shared.
func keepaliveLoop(interval time.Duration, stop chan bool, request func() error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := request(); err != nil {
				log.Warningf("Keepalive failed: %s", err)
				return
			}
		}
	}
}

func (s *sshSession) Close() error {
	if s.keepalive != nil {
		select {
		case s.keepalive <- true:
		default:
		}
		s.keepalive = nil
	}
	if s.stdin != nil {
		s.stdin.Close()
		s.stdin = nil
	}
	if s.session != nil {
		s.session.Close()
		s.session = nil
	}
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
	s.detach()
	s.ready = false
	return nil
}

// IsAlive writes a null byte to the channel and asks the lower transport
// whether the connection still answers; any I/O error means not alive.
func (s *sshSession) IsAlive() schema.Alive {
	if !s.opened || s.client == nil {
		return schema.Alive{IsAlive: false}
	}
	if err := s.WriteRaw([]byte{0}); err != nil {
		return schema.Alive{IsAlive: false}
	}
	_, _, err := s.client.SendRequest("keepalive@openssh.com", true, nil)
	return schema.Alive{IsAlive: err == nil}
}

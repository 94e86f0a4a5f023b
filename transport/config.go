package transport

import (
	"io/ioutil"
	"net"
	"os"
	"path/filepath"

	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

func publicKeyFile(file string) (ssh.AuthMethod, error) {
	buffer, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read private key %s", file)
	}
	key, err := ssh.ParsePrivateKey(buffer)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse private key %s", file)
	}
	return ssh.PublicKeys(key), nil
}

// createSSHConfig builds the client configuration from the connection
// options. Host keys are ignored unless strict checking is requested, in
// which case the selected known-hosts files are consulted.
func createSSHConfig(options schema.ConnectOptions) (*ssh.ClientConfig, error) {
	config := &ssh.ClientConfig{
		User:    options.Username,
		Timeout: options.Timeout,
	}
	if options.Password != "" {
		config.Auth = append(config.Auth, ssh.Password(options.Password))
	}
	if options.Tuning.UseKeys && options.Tuning.KeyFile != "" {
		auth, err := publicKeyFile(options.Tuning.KeyFile)
		if err != nil {
			return nil, err
		}
		config.Auth = append(config.Auth, auth)
	}
	if options.Tuning.AllowAgent {
		if auth := agentAuth(); auth != nil {
			config.Auth = append(config.Auth, auth)
		}
	}
	callback, err := hostKeyCallback(options.Tuning)
	if err != nil {
		return nil, err
	}
	config.HostKeyCallback = callback
	return config, nil
}

// agentAuth offers the keys held by the running ssh-agent, located through
// SSH_AUTH_SOCK. A missing or unreachable agent is not an error, the other
// auth methods simply stand alone.
func agentAuth() ssh.AuthMethod {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		log.Warningf("Unable to reach the ssh agent: %s", err)
		return nil
	}
	return ssh.PublicKeysCallback(agent.NewClient(conn).Signers)
}

func hostKeyCallback(tuning schema.TuningOptions) (ssh.HostKeyCallback, error) {
	if !tuning.SSHStrict {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	var files []string
	if tuning.SystemHostKeys {
		home, err := os.UserHomeDir()
		if err == nil {
			files = append(files, filepath.Join(home, ".ssh", "known_hosts"))
		}
	}
	if tuning.AltHostKeys && tuning.AltKeyFile != "" {
		files = append(files, tuning.AltKeyFile)
	}
	if len(files) == 0 {
		return nil, errors.New("strict host key checking requested without any known-hosts file")
	}
	callback, err := knownhosts.New(files...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load known-hosts files")
	}
	return callback, nil
}

package transport

import (
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/danimo/napalm-dell/pubsub"
	"github.com/danimo/napalm-dell/schema"
	"github.com/pkg/errors"
)

// terminal is the expect machinery shared by both session variants: prompt
// matching, continuation handling, and the capture loop between a written
// command and the returning prompt.
type terminal struct {
	connOptions  schema.ConnectOptions
	opened       bool //set once a connection has been established
	ready        bool //set to false when running a command
	stdout       io.Reader
	stdin        io.WriteCloser
	stderr       io.Reader
	shutdown     chan bool //shutdown channel for the publisher
	continuation []*regexp.Regexp
	prompt       *regexp.Regexp
	passwordRe   *regexp.Regexp
	events       chan schema.MessageEvent
	publisher    *pubsub.Publisher
	timeout      time.Duration   // The default timeout for this session
	attachWg     *sync.WaitGroup // The waitgroup for the publisher attachment
}

func (t *terminal) initialize() {
	t.prompt = regexp.MustCompile(`> *$|# *$|\$ *$`)
	t.passwordRe = regexp.MustCompile(`[pP]assword:? *?$`)
	for _, next := range []string{`^.*?--More-- *$`} {
		if re, err := regexp.Compile(next); err == nil {
			t.continuation = append(t.continuation, re)
		}
	}
	t.ready = false
	t.timeout = time.Duration(60) * time.Second
}

// applyOptions records the connection options and derives the per-command
// timeout from them.
func (t *terminal) applyOptions(options schema.ConnectOptions) {
	t.connOptions = options
	if options.Timeout > 0 {
		t.timeout = options.Timeout
	}
	if factor := options.Tuning.GlobalDelayFactor; factor > 1 {
		t.timeout *= time.Duration(factor)
	}
}

// attach wires the publisher to the session's stream ends. The caller hands
// over ownership of the readers until detach.
func (t *terminal) attach() {
	t.events = make(chan schema.MessageEvent, 20)
	t.publisher = pubsub.New(t.connOptions.Host, t.events)
	t.shutdown = make(chan bool, 1)
	t.attachWg = &sync.WaitGroup{}
	t.attachWg.Add(1)
	go t.publisher.Attach(t.stdout, t.stderr, t.shutdown, t.attachWg)
}

// detach stops the publisher. Safe to call when attach never ran.
func (t *terminal) detach() {
	if t.shutdown == nil {
		return
	}
	select {
	case t.shutdown <- true:
	default:
	}
	t.attachWg.Wait()
	t.shutdown = nil
}

func (t *terminal) write(command string, newline bool) (int, error) {
	if newline {
		command += "\r"
	}
	return t.stdin.Write([]byte(command))
}

// WriteRaw writes bytes to the channel without touching the capture state.
func (t *terminal) WriteRaw(p []byte) error {
	if !t.opened || t.stdin == nil {
		return errors.New("session not open")
	}
	if _, err := t.stdin.Write(p); err != nil {
		return closedErr("raw write", err)
	}
	return nil
}

// SendCommand writes a command and captures everything up to the next prompt.
// The echoed command and the prompt line itself are stripped from the result.
func (t *terminal) SendCommand(command string) (string, error) {
	if !t.ready {
		return "", errors.New("session not ready for another command")
	}
	t.ready = false
	defer func() { t.ready = true }()
	if t.connOptions.Tuning.Verbose {
		log.Infof("Sending command: %s", command)
	}
	lines, err := t.writeExpectTimeout(command, t.prompt, t.timeout)
	if err != nil {
		return "", closedErr("send command", err)
	}
	return joinCapture(command, lines), nil
}

func (t *terminal) writeCapture(command string) (result []string, err error) {
	return t.writeExpectTimeout(command, t.prompt, t.timeout)
}

func (t *terminal) writeExpectTimeout(command string, expectation *regexp.Regexp,
	timeout time.Duration) (result []string, err error) {
	events := make(chan schema.MessageEvent, 20)
	id := t.publisher.Subscribe(events)

	defer func() {
		log.Debug("Defer unsubscribe being called.")
		t.publisher.Unsubscribe(id)
	}()

	if len(command) > 0 || expectation == t.prompt {
		// write the command; a bare prompt probe still needs the enter key
		log.Debug("Writing command: ", command)
		if _, err = t.write(command, true); err != nil {
			// Unable to write command
			return []string{}, err
		}
	}

	return t.expect(events, expectation, timeout)
}

func (t *terminal) expect(events chan schema.MessageEvent, expectation *regexp.Regexp,
	timeout time.Duration) (result []string, err error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case event := <-events:
			if event.Dir == schema.Stdout {
				result = append(result, event.Message)
				if found := t.match(event.Message, expectation); found {
					log.Debug("Expectation matched.")
					return result, nil
				}
			}
			if event.Dir == schema.Stderr {
				result = append(result, event.Message)
			}
			timer.Reset(timeout)
			t.handleContinuation(event.Message)
		case <-timer.C:
			return result, errors.New("command timeout reached without detecting expectation")
		}
	}
}

func (t *terminal) match(line string, reg *regexp.Regexp) bool {
	return reg.Find([]byte(line)) != nil
}

func (t *terminal) handleContinuation(line string) {
	for _, con := range t.continuation {
		if matched := con.Find([]byte(line)); matched != nil {
			log.Debug("Found continuation request.", string(matched))
			t.write(" ", true)
		}
	}
}

// enterPrivileged makes sure the session is in privileged command mode,
// sending "enable" with the secret if the prompt does not already end in #.
func (t *terminal) enterPrivileged(secret string) error {
	lines, err := t.writeCapture("")
	if err != nil {
		return errors.Wrap(err, "unable to probe the prompt")
	}
	if privileged(lines) {
		return nil
	}
	if _, err := t.writeExpectTimeout("enable", t.passwordRe, t.timeout); err != nil {
		return errors.Wrap(err, "unable to enter privileged mode")
	}
	lines, err = t.writeCapture(secret)
	if err != nil {
		return errors.Wrap(err, "unable to enter privileged mode, entering the password failed")
	}
	if !privileged(lines) {
		return errors.New("unable to enter privileged mode")
	}
	return nil
}

// privileged reports whether any captured line looks like an enabled prompt.
// We may receive more than a single line if alerts or other information
// arrive while probing, so every line is checked.
func privileged(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		if strings.HasSuffix(trimmed, "#") {
			return true
		}
	}
	return false
}

// disablePaging brute-sets the terminal length so tables arrive unpaged.
func (t *terminal) disablePaging() {
	if _, err := t.writeCapture("terminal length 0"); err != nil {
		log.Warningf("Unable to disable paging: %s", err)
	}
}

// joinCapture strips the echoed command and the trailing prompt line from the
// captured output and joins the rest.
func joinCapture(command string, lines []string) string {
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == strings.TrimSpace(command) {
		lines = lines[1:]
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (t *terminal) Options() schema.ConnectOptions {
	return t.connOptions
}

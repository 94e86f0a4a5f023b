package pubsub

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/danimo/napalm-dell/logger"
	"github.com/danimo/napalm-dell/schema"
)

var log schema.Logger

func init() {
	log = logger.Log
}

// Publisher fans terminal output from a session out to all subscribers.
// The session owns one Publisher for its whole lifetime; a subscriber is
// typically the expect loop of a single in-flight command.
type Publisher struct {
	source string
	input  chan schema.MessageEvent
	subs   map[int]chan schema.MessageEvent
	next   int
	mut    sync.RWMutex
}

// New creates a publisher for the named session. Attach must be called to
// begin publishing.
func New(source string, input chan schema.MessageEvent) *Publisher {
	return &Publisher{
		source: source,
		input:  input,
		subs:   make(map[int]chan schema.MessageEvent, 2),
	}
}

// Subscribe adds another listener to this publisher, messages to be passed
// via the channel. The returned id may be used to unsubscribe.
func (p *Publisher) Subscribe(s chan schema.MessageEvent) (id int) {
	p.mut.Lock()
	defer p.mut.Unlock()
	id = p.next
	p.next++
	p.subs[id] = s
	log.Debug("Subscribing with id ", id)
	return id
}

func (p *Publisher) Unsubscribe(id int) {
	log.Debug("Unsubscribing id ", id)
	p.mut.Lock()
	defer p.mut.Unlock()
	delete(p.subs, id)
}

// Attach creates the listeners for stdout and stderr and begins distributing
// lines to all subscribers. It blocks until the shutdown channel fires, so it
// is normally run on its own goroutine. The caller adds one to wg before
// spawning Attach; it is marked done on return.
func (p *Publisher) Attach(stdout, stderr io.Reader, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()
	if stdout != nil {
		go p.attachReader(stdout, schema.Stdout)
	}
	if stderr != nil {
		go p.attachReader(stderr, schema.Stderr)
	}
	for {
		select {
		case <-shutdown:
			log.Debug("Session un-attached.")
			return
		case line := <-p.input:
			p.mut.RLock()
			for _, s := range p.subs {
				if len(s) < cap(s) {
					s <- line
				}
			}
			p.mut.RUnlock()
		}
	}
}

func (p *Publisher) attachReader(r io.Reader, t schema.EventType) {
	scanner := bufio.NewScanner(r)
	onNewline := func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		for i := 0; i < len(data); i++ {
			if data[i] == '\n' || data[i] == '\r' {
				return i + 1, data[:i], nil
			}
		}
		// flush whatever is buffered so prompts without a trailing
		// newline still reach the expect loop
		return len(data), data, nil
	}
	scanner.Split(onNewline)
	for scanner.Scan() {
		e := schema.MessageEvent{
			Source:  p.source,
			Message: scanner.Text(),
			Dir:     t,
			Time:    time.Now(),
		}
		p.input <- e
		log.Debug("Pubsub sent: ", e.Message)
	}
	log.Debug("Reader loop closing.")
}

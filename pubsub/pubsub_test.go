package pubsub_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danimo/napalm-dell/pubsub"
	"github.com/danimo/napalm-dell/schema"
	"github.com/stretchr/testify/assert"
)

func TestAttach_FanoutAndShutdown(t *testing.T) {
	input := make(chan schema.MessageEvent, 20)
	p := pubsub.New("switch1", input)
	shutdown := make(chan bool, 1)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go p.Attach(nil, nil, shutdown, wg)

	sub := make(chan schema.MessageEvent, 20)
	id := p.Subscribe(sub)
	input <- schema.MessageEvent{Source: "switch1", Message: "up", Dir: schema.Stdout}
	select {
	case e := <-sub:
		assert.Equal(t, "up", e.Message)
	case <-time.After(time.Second):
		t.Fatal("no event delivered to the subscriber")
	}
	p.Unsubscribe(id)

	shutdown <- true
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher still attached after shutdown")
	}
}

// The reader splitter must hand over a trailing prompt even though no newline
// follows it.
func TestAttach_ReaderFlushesPromptWithoutNewline(t *testing.T) {
	input := make(chan schema.MessageEvent, 20)
	p := pubsub.New("switch1", input)
	sub := make(chan schema.MessageEvent, 20)
	id := p.Subscribe(sub)
	defer p.Unsubscribe(id)
	shutdown := make(chan bool, 1)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go p.Attach(strings.NewReader("output line\nswitch# "), nil, shutdown, wg)

	var got []string
	for len(got) < 2 {
		select {
		case e := <-sub:
			got = append(got, e.Message)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for lines, have %v", got)
		}
	}
	assert.Equal(t, []string{"output line", "switch# "}, got)

	shutdown <- true
	wg.Wait()
}

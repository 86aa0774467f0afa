package session

import (
	"context"
	"sync/atomic"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/playlist"
)

// Controller runs the playback state machine. Every play intent allocates a
// fresh generation id; async completions tagged with a superseded generation
// are discarded so a slow old request can never overwrite a fast new one.
//
// All fields except generation are owned by the session dispatcher; methods
// other than Play's internals must run there.
type Controller struct {
	eng        engine.Engine
	dispatcher *Dispatcher

	// generation is read from worker goroutines for the stale guard and
	// bumped on the dispatcher, hence atomic.
	generation atomic.Uint64

	opens chan openRequest
	done  chan struct{}

	state      engine.PlaybackState
	everPlayed bool
	errMessage string
	current    *playlist.Channel
	headers    map[string]string

	onChange func()
}

// openRequest is one play intent queued for the single opener worker.
// Funneling opens through one worker keeps engine loads in issue order.
type openRequest struct {
	gen     uint64
	channel *playlist.Channel
	how     resolution
}

// NewController creates a controller in the Idle state. The optional headers
// are passed through to both the manifest sniff and the engine.
func NewController(eng engine.Engine, dispatcher *Dispatcher, headers map[string]string) *Controller {
	c := &Controller{
		eng:        eng,
		dispatcher: dispatcher,
		opens:      make(chan openRequest, 1),
		done:       make(chan struct{}),
		state:      engine.Idle,
		headers:    headers,
	}

	go c.openWorker()
	return c
}

// SetOnChange installs a hook invoked on the dispatcher after every state
// change, for overlay recomputation and re-rendering.
func (c *Controller) SetOnChange(hook func()) {
	c.onChange = hook
}

// State returns the current playback state. Dispatcher only.
func (c *Controller) State() engine.PlaybackState {
	return c.state
}

// EverPlayed reports whether playback has succeeded this session. Dispatcher only.
func (c *Controller) EverPlayed() bool {
	return c.everPlayed
}

// ErrorMessage returns the surfaced playback error, if any. Dispatcher only.
func (c *Controller) ErrorMessage() string {
	return c.errMessage
}

// Current returns the channel of the most recent play intent. Dispatcher only.
func (c *Controller) Current() *playlist.Channel {
	return c.current
}

// Play starts a new play intent for the channel. Any in-flight resolution
// from a previous intent is superseded immediately; its eventual completion
// is discarded. Dispatcher only.
func (c *Controller) Play(channel *playlist.Channel) {
	gen := c.generation.Add(1)

	c.state = engine.Opening
	c.errMessage = ""
	c.current = channel
	c.notify()

	go c.resolve(gen, channel)
}

// TogglePause flips between Playing and Paused. Any other state ignores the
// request; the engine drives the actual transition through its events.
// Dispatcher only.
func (c *Controller) TogglePause() {
	switch c.state {
	case engine.Playing:
		if err := c.eng.Pause(); err != nil {
			log.Warnf("pause: %s", err)
		}
	case engine.Paused:
		if err := c.eng.Play(); err != nil {
			log.Warnf("resume: %s", err)
		}
	}
}

// Stop unloads the current source and returns to Idle. Dispatcher only.
func (c *Controller) Stop() {
	c.generation.Add(1) // supersede any in-flight intent

	if err := c.eng.Stop(); err != nil {
		log.Warnf("stop: %s", err)
	}

	c.state = engine.Idle
	c.errMessage = ""
	c.current = nil
	c.notify()
}

// resolve sniffs the URL off the dispatcher and queues the open. Runs once
// per play intent on its own goroutine.
func (c *Controller) resolve(gen uint64, channel *playlist.Channel) {
	how := resolveTarget(context.Background(), channel.URL, c.headers)

	if gen != c.generation.Load() {
		log.Debugf("discarding superseded resolution for %s", channel.Name)
		return
	}

	select {
	case c.opens <- openRequest{gen: gen, channel: channel, how: how}:
	case <-c.done:
	}
}

// openWorker drains queued opens one at a time, re-checking staleness right
// before touching the engine so a superseded intent never loads its source
// over a newer one.
func (c *Controller) openWorker() {
	for {
		var req openRequest
		select {
		case <-c.done:
			return
		case req = <-c.opens:
		}

		if req.gen != c.generation.Load() {
			continue
		}

		log.Infof("opening %s (%s)", req.channel.Name, req.how)
		_, err := c.eng.OpenDirect(req.channel.URL, req.channel.Name, c.headers)

		gen := req.gen
		c.dispatcher.Post(func() {
			if gen != c.generation.Load() {
				return
			}
			if err != nil {
				c.fail("open-failed", err.Error())
			}
			// On success the state stays Opening; the engine's own
			// lifecycle events drive it forward from here.
		})
	}
}

// HandleEngineEvent folds a normalized engine event into the state machine.
// Transitions not present in the table are ignored. Dispatcher only.
func (c *Controller) HandleEngineEvent(event engine.Event) {
	switch e := event.(type) {
	case engine.Opened:
		if c.state == engine.Opening {
			c.state = engine.Buffering
			c.notify()
		}

	case engine.StateChanged:
		c.applyStateChange(e.State)

	case engine.EngineFailed:
		c.fail(e.Code, e.Message)
	}
}

func (c *Controller) applyStateChange(reported engine.PlaybackState) {
	switch reported {
	case engine.Buffering:
		if c.state == engine.Opening || c.state == engine.Playing || c.state == engine.Paused {
			c.state = engine.Buffering
			c.notify()
		}

	case engine.Playing:
		if c.state.Loading() || c.state == engine.Paused {
			c.state = engine.Playing
			c.errMessage = ""
			c.everPlayed = true
			c.notify()
		}

	case engine.Paused:
		if c.state == engine.Playing {
			c.state = engine.Paused
			c.notify()
		}
	}
}

// fail transitions to Failed, releases the source and surfaces the error.
// Always recoverable: the next Play starts over with a fresh intent.
func (c *Controller) fail(code, message string) {
	log.Errorf("playback failed (%s): %s", code, message)

	if err := c.eng.Stop(); err != nil {
		log.Debugf("release source after failure: %s", err)
	}

	c.state = engine.Failed
	c.errMessage = message
	c.notify()
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

// close stops the opener worker and releases in-flight resolutions.
func (c *Controller) close() {
	close(c.done)
}

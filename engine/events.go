package engine

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/zapp-cli/zapp/log"
)

// eventListener provides real-time mpv event monitoring via observe_property
// and translates raw property changes into normalized lifecycle events.
type eventListener struct {
	socketPath string
	conn       net.Conn
	emit       func(Event)
	stopCh     chan struct{}

	mu        sync.Mutex
	listening bool

	// Observed property flags, combined into a derived playback state.
	handle    Handle
	loaded    bool
	paused    bool
	coreIdle  bool
	cacheWait bool
	lastState PlaybackState
}

// newEventListener creates a listener for the given socket that reports
// events for the given handle.
func newEventListener(socketPath string, handle Handle, emit func(Event)) *eventListener {
	return &eventListener{
		socketPath: socketPath,
		emit:       emit,
		stopCh:     make(chan struct{}),
		handle:     handle,
		lastState:  Opening,
	}
}

// start subscribes to the relevant mpv properties and begins the read loop.
func (el *eventListener) start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	// observe_property <id> <property> makes mpv push notifications
	// whenever the property changes.
	properties := []struct {
		id   int
		name string
	}{
		{1, "pause"},            // Playing <-> Paused
		{2, "core-idle"},        // Decode pipeline stalled
		{3, "paused-for-cache"}, // Buffering a live stream
		{4, "eof-reached"},      // Stream dropped
	}

	for _, prop := range properties {
		_, err := doSendCommand(el.socketPath, []interface{}{"observe_property", prop.id, prop.name})
		if err != nil {
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	// Persistent connection dedicated to the event read loop.
	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}
	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// stop terminates the event listener.
func (el *eventListener) stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// sourceReplaced resets the derived state for a newly loaded source. The
// paused flag is cleared too: load unpauses after the replacing loadfile,
// and carrying the old pause over would report the fresh source as Paused.
func (el *eventListener) sourceReplaced(handle Handle) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.handle = handle
	el.loaded = false
	el.paused = false
	el.cacheWait = false
	el.lastState = Opening
}

// readLoop continuously reads events from the persistent mpv connection.
// mpv sends newline-delimited JSON events when observed properties change.
func (el *eventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	buf := make([]byte, 4096)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		// Bounded read so the stop signal is observed.
		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := el.conn.Read(buf)
		if err != nil {
			if strings.Contains(err.Error(), "timeout") || strings.Contains(err.Error(), "deadline") {
				continue
			}
			log.Warnf("event listener read error: %v", err)
			return
		}

		// mpv sends multiple JSON objects separated by newlines.
		data := append(remainder, buf[:n]...)
		remainder = nil

		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			// Last incomplete line goes to remainder for next read.
			if i == len(lines)-1 && !strings.HasSuffix(string(data), "\n") {
				remainder = []byte(line)
				continue
			}

			el.processEvent(line)
		}
	}
}

// processEvent parses and dispatches a single mpv event JSON line.
func (el *eventListener) processEvent(line string) {
	var event map[string]interface{}
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return // Skip unparseable lines
	}

	eventType, ok := event["event"].(string)
	if !ok {
		return
	}

	switch eventType {
	case "property-change":
		name, _ := event["name"].(string)
		el.propertyChanged(name, event["data"])
	case "file-loaded":
		el.fileLoaded()
	case "end-file":
		el.endFile(event)
	}
}

// propertyChanged folds an observed property into the derived state.
func (el *eventListener) propertyChanged(name string, data interface{}) {
	value, _ := data.(bool)

	el.mu.Lock()
	switch name {
	case "pause":
		el.paused = value
	case "core-idle":
		el.coreIdle = value
	case "paused-for-cache":
		el.cacheWait = value
	case "eof-reached":
		if value {
			el.mu.Unlock()
			el.emit(EngineFailed{Code: "eof", Message: "stream ended"})
			return
		}
	default:
		el.mu.Unlock()
		return
	}
	el.mu.Unlock()

	el.deriveState()
}

// fileLoaded reports that the source opened and the decode pipeline is up.
func (el *eventListener) fileLoaded() {
	el.mu.Lock()
	el.loaded = true
	handle := el.handle
	el.mu.Unlock()

	el.emit(Opened{Handle: handle})
	el.deriveState()
}

// endFile surfaces load failures. User-initiated unloads (stop, quit, a
// replacing loadfile) are not failures and stay silent.
func (el *eventListener) endFile(event map[string]interface{}) {
	reason, _ := event["reason"].(string)

	switch reason {
	case "error":
		message, _ := event["file_error"].(string)
		if message == "" {
			message = "failed to open stream"
		}
		el.emit(EngineFailed{Code: "open-failed", Message: message})
	case "eof":
		el.emit(EngineFailed{Code: "eof", Message: "stream ended"})
	}
}

// deriveState combines the observed flags into one playback state and emits
// a transition when it differs from the last reported one.
func (el *eventListener) deriveState() {
	el.mu.Lock()

	var state PlaybackState
	switch {
	case !el.loaded:
		state = Opening
	case el.cacheWait || (el.coreIdle && !el.paused):
		state = Buffering
	case el.paused:
		state = Paused
	default:
		state = Playing
	}

	if state == el.lastState {
		el.mu.Unlock()
		return
	}
	el.lastState = state
	el.mu.Unlock()

	el.emit(StateChanged{State: state})
}

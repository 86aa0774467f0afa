// Package engine defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation
// targeting 'mpv' via its JSON-IPC interface.
package engine

// Handle identifies one loaded media source inside a playback engine.
// A fresh handle is allocated per play intent; a stale handle's events are
// discarded by the controller's generation guard.
type Handle struct {
	URL   string
	Title string
}

// Event is a normalized lifecycle notification emitted by an engine.
// Events only describe what happened; they never mutate player state
// themselves.
type Event interface {
	event()
}

// Opened is emitted once the engine has loaded a source and started the
// decode pipeline.
type Opened struct {
	Handle Handle
}

// StateChanged is emitted whenever the engine's observed playback state
// differs from the previously reported one.
type StateChanged struct {
	State PlaybackState
}

// EngineFailed is emitted when the engine reports an unrecoverable problem
// with the current source, or when the engine process dies underneath us.
type EngineFailed struct {
	Code    string
	Message string
}

func (Opened) event()       {}
func (StateChanged) event() {}
func (EngineFailed) event() {}

// Presentation describes how the engine's video output window is shown.
// The surface layer translates its surface model into one of these.
type Presentation struct {
	Fullscreen bool
	OnTop      bool
	Border     bool

	// Geometry is an mpv-style WxH+X+Y specification. Empty keeps the
	// engine's current placement.
	Geometry string
}

// Engine encapsulates the required capabilities for a live-stream playback backend.
type Engine interface {
	// OpenDirect loads the URL as a direct media resource and returns the
	// handle for this play intent. If an engine instance is already running,
	// the new source replaces the current one in place.
	OpenDirect(url string, title string, headers map[string]string) (Handle, error)

	// Play resumes playback of the current source.
	Play() error

	// Pause suspends playback of the current source.
	Pause() error

	// Stop unloads the current source but keeps the engine alive and idle.
	Stop() error

	// Present applies window presentation settings to the engine's video output.
	Present(Presentation) error

	// Events returns the stream of normalized lifecycle events. The channel
	// is owned by the engine and closed on Close.
	Events() <-chan Event

	// Running validates the liveness of the underlying playback process.
	Running() bool

	// Close terminates the playback engine and releases all associated
	// system resources.
	Close() error
}

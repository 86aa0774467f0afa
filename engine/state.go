package engine

// PlaybackState is the lifecycle state of the single live stream the engine
// may hold. Transitions happen only through the playback controller; the
// engine merely reports what it observes.
type PlaybackState int

const (
	Idle PlaybackState = iota
	Opening
	Buffering
	Playing
	Paused
	Failed
)

func (s PlaybackState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Opening:
		return "Opening"
	case Buffering:
		return "Buffering"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Active reports whether the state represents a stream the user is watching,
// as opposed to one that is idle, still coming up or has failed.
func (s PlaybackState) Active() bool {
	return s == Playing || s == Paused
}

// Loading reports whether the stream is being opened or rebuffered.
func (s PlaybackState) Loading() bool {
	return s == Opening || s == Buffering
}

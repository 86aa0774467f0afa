// Package overlay derives the non-video layer shown atop or instead of the
// video surface. It holds no state of its own: the overlay is recomputed
// from the current playback situation after every transition.
package overlay

import (
	"github.com/zapp-cli/zapp/engine"
)

// Kind enumerates what the overlay layer shows.
type Kind int

const (
	None Kind = iota
	WelcomePrompt
	Loading
	Error
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case WelcomePrompt:
		return "WelcomePrompt"
	case Loading:
		return "Loading"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Overlay is the derived overlay value. Message is set only for Error.
type Overlay struct {
	Kind    Kind
	Message string
}

// Compute derives the visible overlay. Priority, highest first: an explicit
// error message, then a loading spinner while the stream comes up, then the
// welcome prompt when a catalog is loaded but nothing is being watched.
func Compute(hasCatalog bool, state engine.PlaybackState, everPlayed bool, errMessage string) Overlay {
	switch {
	case errMessage != "":
		return Overlay{Kind: Error, Message: errMessage}
	case state.Loading():
		return Overlay{Kind: Loading}
	case hasCatalog && (!everPlayed || !state.Active()):
		return Overlay{Kind: WelcomePrompt}
	default:
		return Overlay{}
	}
}

// Package surface implements the exclusive handoff of the playback engine
// between the three presentation surfaces. Exactly one surface owns the
// engine attachment at any time, and ownership transfer always attaches the
// new surface before releasing the old one so playback is never visibly
// interrupted.
package surface

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/key"
)

// Surface is one of the three mutually exclusive presentation contexts.
type Surface int

const (
	Main Surface = iota
	Fullscreen
	Floating
)

func (s Surface) String() string {
	switch s {
	case Main:
		return "Main"
	case Fullscreen:
		return "Fullscreen"
	case Floating:
		return "Floating"
	default:
		return "Unknown"
	}
}

// Host abstracts the window plumbing around one surface's hosting element.
// Implementations carry no playback logic; they only move windows around.
type Host interface {
	// Prepare constructs the surface's hosting window and resolves its
	// target display. Runs before any visual change.
	Prepare() error

	// Activate makes the surface's window visible and the taskbar owner.
	Activate() error

	// Deactivate hides the surface's window without tearing it down.
	Deactivate() error

	// Teardown destroys the surface's window. Tolerates repeat calls.
	Teardown() error
}

// NoopHost is a Host with no window of its own, for surfaces whose hosting
// element is managed elsewhere (the terminal, or mpv's own window).
type NoopHost struct{}

func (NoopHost) Prepare() error    { return nil }
func (NoopHost) Activate() error   { return nil }
func (NoopHost) Deactivate() error { return nil }
func (NoopHost) Teardown() error   { return nil }

const floatingMargin = 24

// presentationFor maps a surface onto the engine's window presentation.
func presentationFor(s Surface) engine.Presentation {
	switch s {
	case Fullscreen:
		return engine.Presentation{Fullscreen: true}
	case Floating:
		return engine.Presentation{
			OnTop:    true,
			Geometry: floatingGeometry(),
		}
	default:
		return engine.Presentation{Border: true}
	}
}

// floatingGeometry renders the configured compact size and work-area corner
// anchor into an mpv-style geometry specification.
func floatingGeometry() string {
	width := lo.Max([]int{viper.GetInt(key.FloatingWidth), 1})
	height := lo.Max([]int{viper.GetInt(key.FloatingHeight), 1})

	var x, y string
	switch viper.GetString(key.FloatingCorner) {
	case "top-left":
		x, y = fmt.Sprintf("+%d", floatingMargin), fmt.Sprintf("+%d", floatingMargin)
	case "top-right":
		x, y = fmt.Sprintf("-%d", floatingMargin), fmt.Sprintf("+%d", floatingMargin)
	case "bottom-left":
		x, y = fmt.Sprintf("+%d", floatingMargin), fmt.Sprintf("-%d", floatingMargin)
	default: // bottom-right
		x, y = fmt.Sprintf("-%d", floatingMargin), fmt.Sprintf("-%d", floatingMargin)
	}

	return fmt.Sprintf("%dx%d%s%s", width, height, x, y)
}

// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/overlay"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/surface"
	"github.com/zapp-cli/zapp/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case errorState:
		return b.viewError()
	case historyState:
		return b.viewHistory()
	case searchState:
		return b.viewSearch()
	case channelsState:
		return b.viewChannels()
	case watchState:
		return b.viewWatch()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " Fetching playlist",
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewChannels() string {
	return listExtraPaddingStyle.Render(b.channelsC.View())
}

func (b *statefulBubble) viewSearch() string {
	snap := b.session.Snapshot()

	catalogLine := fmt.Sprintf(
		icon.Get(icon.Channel)+" %s %s",
		style.Fg(color.Purple)(snap.CatalogLabel),
		style.Faint(util.Quantify(snap.CatalogSize, "channel", "channels")),
	)

	lines := []string{
		style.Title("Search Channels"),
		"",
		style.Truncate(b.width)(catalogLine),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, style.Faint("Did you mean "+suggestion+"? (tab to accept)"))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, "", b.slotsRow())

	return b.renderLines(true, lines)
}

// slotsRow renders the six quick slots, dimming the unconfigured ones.
func (b *statefulBubble) slotsRow() string {
	rendered := make([]string, 0, len(b.slots))
	for i, slot := range b.slots {
		cell := fmt.Sprintf("%d %s", i+1, slot.Glyph)
		if !slot.Configured() {
			cell = style.Faint(cell)
		}
		rendered = append(rendered, cell)
	}

	return strings.Join(rendered, "  ")
}

func (b *statefulBubble) viewWatch() string {
	snap := b.session.Snapshot()

	switch snap.Overlay.Kind {
	case overlay.Error:
		errorBody := style.Fg(color.Red)(snap.Overlay.Message)
		return b.renderLines(
			true,
			append([]string{
				style.ErrorTitle("Playback Error"),
				"",
				icon.Get(icon.Fail) + " The stream could not be played:",
				"",
			},
				wrap.String(errorBody, b.width),
			),
		)

	case overlay.Loading:
		return b.renderLines(
			true,
			[]string{
				style.Title("Now Playing"),
				"",
				style.Truncate(b.width)(b.channelLine(snap.Current)),
				"",
				b.spinnerC.View() + " Opening stream",
			},
		)

	case overlay.WelcomePrompt:
		return b.renderLines(
			true,
			[]string{
				style.Title("Now Playing"),
				"",
				icon.Get(icon.Channel) + " Pick a channel to start watching",
				"",
				style.Faint("Press esc to go back to the channel list"),
			},
		)

	default:
		stateIcon := icon.Get(icon.Playing)
		if snap.State == engine.Paused {
			stateIcon = icon.Get(icon.Paused)
		}

		lines := []string{
			style.Title("Now Playing"),
			"",
			style.Truncate(b.width)(b.channelLine(snap.Current)),
			"",
			stateIcon + " " + snap.State.String() + b.surfaceTag(snap.Surface),
		}

		return b.renderLines(true, lines)
	}
}

func (b *statefulBubble) channelLine(channel *playlist.Channel) string {
	var name string
	if channel != nil {
		name = channel.String()
	}

	return fmt.Sprintf(icon.Get(icon.Progress)+" %s", style.Fg(color.Purple)(name))
}

func (b *statefulBubble) surfaceTag(s surface.Surface) string {
	switch s {
	case surface.Fullscreen:
		return "  " + icon.Get(icon.Fullscreen) + " " + style.Faint("fullscreen")
	case surface.Floating:
		return "  " + icon.Get(icon.Floating) + " " + style.Faint("floating")
	default:
		return ""
	}
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

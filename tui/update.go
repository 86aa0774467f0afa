// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zapp-cli/zapp/overlay"
)

// sessionChangedMsg signals that the player session mutated state and the
// interface should re-read its snapshot.
type sessionChangedMsg struct{}

// waitForSessionChange blocks on the session's change channel and converts
// the notification into a bubbletea message. Re-issued after every receipt.
func (b *statefulBubble) waitForSessionChange() tea.Cmd {
	return func() tea.Msg {
		<-b.sessionChanged
		return sessionChangedMsg{}
	}
}

// Update is the single mutation point of the interface: every message,
// keypress and session notification funnels through here.
func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case sessionChangedMsg:
		return b, tea.Batch(b.handleSessionChange(), b.waitForSessionChange())

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case loadingState:
		return b.handleLoadingState(msg)
	case errorState:
		return b.handleErrorState(msg)
	case historyState:
		return b.handleHistoryState(msg)
	case searchState:
		return b.handleSearchState(msg)
	case channelsState:
		return b.handleChannelsState(msg)
	case watchState:
		return b.handleWatchState(msg)
	default:
		return b, nil
	}
}

// handleSessionChange reconciles the interface with the session snapshot
// after a catalog load, playback transition or surface change.
func (b *statefulBubble) handleSessionChange() tea.Cmd {
	snap := b.session.Snapshot()

	if b.state == loadingState {
		if snap.Overlay.Kind == overlay.Error {
			b.raiseError(errors.New(snap.Overlay.Message))
			return nil
		}

		if snap.CatalogLoaded {
			cmd := b.showChannels("")
			b.newState(searchState)
			return cmd
		}
	}

	// A catalog replacement while browsing refreshes the visible list.
	if b.state == channelsState && snap.CatalogLoaded {
		return b.showChannels(b.inputC.Value())
	}

	return nil
}

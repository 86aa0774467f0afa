// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/session"
	"github.com/zapp-cli/zapp/util"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Continue opens the recently watched list instead of the search view.
	Continue bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	playlistURL := viper.GetString(key.PlaylistURL)
	if playlistURL == "" {
		return fmt.Errorf("no playlist configured, set %s first", key.PlaylistURL)
	}

	playerSession := session.New(engine.NewMPV(), nil)
	defer util.Ignore(playerSession.Close)

	bubble := newBubble(playerSession, options)
	playerSession.SetOnChange(bubble.notifySessionChanged)

	if options.Continue {
		if err := bubble.loadHistory(); err != nil {
			return err
		}
		bubble.setState(historyState)
	} else {
		bubble.setState(loadingState)
	}

	playerSession.LoadPlaylist(playlistURL, viper.GetString(key.PlaylistName))

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}

// Package mini implements a lightweight, minimalist interface for channel search and playback.
package mini

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/session"
	"github.com/zapp-cli/zapp/util"
)

var (
	truncateAt = 100
)

type Options struct {
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	playerSession *session.Session
	changed       chan struct{}

	query           string
	cachedChannels  map[string][]*playlist.Channel
	selectedChannel *playlist.Channel
}

func newMini(playerSession *session.Session) *mini {
	return &mini{
		statesHistory:  util.Stack[state]{},
		playerSession:  playerSession,
		changed:        make(chan struct{}, 1),
		cachedChannels: make(map[string][]*playlist.Channel),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	m.statesHistory.Push(m.state)
	m.setState(s)
}

// notifyChanged is installed as the session change hook. The send never
// blocks so the dispatcher goroutine is never held up by the prompt loop.
func (m *mini) notifyChanged() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

// awaitCatalog blocks until the playlist load settles, one way or the other.
func (m *mini) awaitCatalog() error {
	deadline := time.After(30 * time.Second)

	for {
		snap := m.playerSession.Snapshot()
		if snap.CatalogLoaded {
			return nil
		}
		if snap.Overlay.Message != "" {
			return errors.New(snap.Overlay.Message)
		}

		select {
		case <-m.changed:
		case <-deadline:
			return fmt.Errorf("timed out waiting for the playlist")
		}
	}
}

func Run(options *Options) error {
	playlistURL := viper.GetString(key.PlaylistURL)
	if playlistURL == "" {
		return fmt.Errorf("no playlist configured, set %s first", key.PlaylistURL)
	}

	playerSession := session.New(engine.NewMPV(), nil)
	defer util.Ignore(playerSession.Close)

	m := newMini(playerSession)
	playerSession.SetOnChange(m.notifyChanged)

	m.state = searchState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	erase := progress("Fetching playlist..")
	playerSession.LoadPlaylist(playlistURL, viper.GetString(key.PlaylistName))
	if err := m.awaitCatalog(); err != nil {
		erase()
		return err
	}
	erase()

	for {
		if err := m.handleState(); err != nil {
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case searchState:
		return m.handleSearchState()
	case channelSelectState:
		return m.handleChannelSelectState()
	case watchState:
		return m.handleWatchState()
	case quitState:
		os.Exit(0)
	}

	return nil
}

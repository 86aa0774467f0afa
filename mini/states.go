// Package mini implements a lightweight, minimalist interface for channel search and playback.
package mini

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/query"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/surface"
)

type state int

const (
	searchState state = iota + 1
	channelSelectState
	watchState
	historySelectState
	quitState
)

func (m *mini) handleSearchState() error {
	var searchLoop func() error
	title("Search Channels")

	searchLoop = func() error {
		in, err := getInput("Channel or group:", func(s string) bool {
			return true
		})
		if err != nil {
			return err
		}

		channels := m.playerSession.Filter(in)
		max := lo.Min([]int{len(channels), viper.GetInt(key.MiniSearchLimit)})
		m.cachedChannels[in] = channels[:max]

		if len(m.cachedChannels[in]) == 0 {
			if closest, ok := m.playerSession.Closest(in).Get(); ok {
				fail(fmt.Sprintf("No channels found, did you mean %s?", closest.Name))
			} else {
				fail("No channels found")
			}
			return searchLoop()
		}

		if err := query.Remember(in, 1); err != nil {
			log.Warnf("remember query: %s", err)
		}

		m.query = in
		m.newState(channelSelectState)
		return nil
	}

	return searchLoop()
}

func (m *mini) handleChannelSelectState() error {
	title("Query Results >>")

	channels := m.cachedChannels[m.query]
	options := lo.Map(channels, func(c *playlist.Channel, _ int) string {
		return style.Truncate(truncateAt)(c.String())
	})

	const (
		ctrlSearch = "↩ Search again"
		ctrlQuit   = "✕ Quit"
	)

	picked, err := menu(options, ctrlSearch, ctrlQuit)
	if err != nil {
		return m.quitOn(err)
	}

	switch picked {
	case len(options):
		m.newState(searchState)
	case len(options) + 1:
		m.newState(quitState)
	default:
		m.selectedChannel = channels[picked]
		m.playerSession.Play(m.selectedChannel)
		m.newState(watchState)
	}

	return nil
}

func (m *mini) handleWatchState() error {
	snap := m.playerSession.Snapshot()

	name := "nothing"
	if snap.Current != nil {
		name = snap.Current.String()
	}
	title(fmt.Sprintf("Currently watching %s (%s)", name, snap.State))

	var (
		playPause  = icon.Get(icon.Playing) + " Resume"
		fullscreen = icon.Get(icon.Fullscreen) + " Fullscreen"
		floating   = icon.Get(icon.Floating) + " Floating window"
		stop       = "■ Stop"
		back       = "↩ Channels"
		search     = icon.Get(icon.Search) + " Search"
		quit       = "✕ Quit"
	)

	if snap.State == engine.Playing {
		playPause = icon.Get(icon.Paused) + " Pause"
	}
	if snap.Surface == surface.Fullscreen {
		fullscreen = icon.Get(icon.Fullscreen) + " Leave fullscreen"
	}
	if snap.Surface == surface.Floating {
		floating = icon.Get(icon.Floating) + " Close floating window"
	}

	options := []string{playPause, fullscreen, floating, stop, back, search, quit}

	picked, err := menu(options)
	if err != nil {
		return m.quitOn(err)
	}

	switch options[picked] {
	case playPause:
		m.playerSession.TogglePause()
	case fullscreen:
		if snap.Surface == surface.Fullscreen {
			m.playerSession.ExitFullscreen()
		} else {
			m.playerSession.EnterFullscreen()
		}
	case floating:
		if snap.Surface == surface.Floating {
			m.playerSession.ExitFloating()
		} else {
			m.playerSession.EnterFloating()
		}
	case stop:
		m.playerSession.StopPlayback()
		m.previousState()
	case back:
		m.newState(channelSelectState)
	case search:
		m.newState(searchState)
	case quit:
		m.newState(quitState)
	}

	return nil
}

func (m *mini) handleHistorySelectState() error {
	recent, err := history.Recent(viper.GetInt(key.MiniSearchLimit))
	if err != nil {
		return err
	}

	title("History Results >>")

	options := lo.Map(recent, func(saved *history.SavedChannel, _ int) string {
		return style.Truncate(truncateAt)(saved.String())
	})

	const (
		ctrlSearch = "↩ Search instead"
		ctrlQuit   = "✕ Quit"
	)

	picked, err := menu(options, ctrlSearch, ctrlQuit)
	if err != nil {
		return m.quitOn(err)
	}

	switch picked {
	case len(options):
		m.newState(searchState)
	case len(options) + 1:
		m.newState(quitState)
	default:
		m.selectedChannel = recent[picked].Channel()
		m.playerSession.Play(m.selectedChannel)
		m.newState(watchState)
	}

	return nil
}

// quitOn converts an interrupt into a clean quit transition.
func (m *mini) quitOn(err error) error {
	if err == errQuit {
		m.newState(quitState)
		return nil
	}
	return err
}

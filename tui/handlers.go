// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/open"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/query"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/surface"
	"github.com/zapp-cli/zapp/util"
)

// showChannels installs the filtered catalog view into the channel list.
func (b *statefulBubble) showChannels(searchQuery string) tea.Cmd {
	channels := b.session.Filter(searchQuery)
	current := b.session.Snapshot().Current

	items := lo.Map(channels, func(c *playlist.Channel, _ int) list.Item {
		return &listItem{internal: c, playing: current != nil && current.URL == c.URL}
	})

	cmd := b.channelsC.SetItems(items)

	if len(items) == 0 {
		if closest, ok := b.session.Closest(searchQuery).Get(); ok {
			return tea.Batch(cmd, b.channelsC.NewStatusMessage(
				fmt.Sprintf("nothing found, did you mean %s?", style.Fg(style.AccentColor)(closest.Name)),
			))
		}
	}

	return cmd
}

// loadHistory installs the recently watched channels into the history list.
func (b *statefulBubble) loadHistory() error {
	recent, err := history.Recent(0)
	if err != nil {
		return err
	}

	items := lo.Map(recent, func(saved *history.SavedChannel, _ int) list.Item {
		return &listItem{internal: saved}
	})

	b.historyC.SetItems(items)
	return nil
}

// play starts playback of the channel and moves to the watch view.
func (b *statefulBubble) play(channel *playlist.Channel) {
	b.session.Play(channel)
	b.newState(watchState)
}

// playSlot activates one of the six quick slots. Unconfigured slots are
// inert decoration.
func (b *statefulBubble) playSlot(index int) {
	if index < 0 || index >= len(b.slots) {
		return
	}

	slot := b.slots[index]
	url, ok := slot.URL.Get()
	if !ok {
		return
	}

	b.play(&playlist.Channel{
		Name: fmt.Sprintf("%s Slot %d", slot.Glyph, index+1),
		URL:  url,
	})
}

func (b *statefulBubble) handleLoadingState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if bubblesKey.Matches(msg, b.keymap.back, b.keymap.quit) {
			return b, tea.Quit
		}
	}

	return b, nil
}

func (b *statefulBubble) handleErrorState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
		}
	}

	return b, nil
}

func (b *statefulBubble) handleHistoryState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				if saved, ok := item.internal.(*history.SavedChannel); ok {
					b.play(saved.Channel())
				}
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.remove):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				if saved, ok := item.internal.(*history.SavedChannel); ok {
					if err := history.Remove(saved); err != nil {
						log.Warnf("remove history entry: %s", err)
					}
					if err := b.loadHistory(); err != nil {
						log.Warnf("reload history: %s", err)
					}
				}
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openURL):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				if saved, ok := item.internal.(*history.SavedChannel); ok {
					util.Ignore(func() error { return open.Start(saved.URL) })
				}
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			b.newState(searchState)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) handleSearchState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			searchQuery := b.inputC.Value()
			if err := query.Remember(searchQuery, 1); err != nil {
				log.Warnf("remember query: %s", err)
			}

			cmd := b.showChannels(searchQuery)
			b.newState(channelsState)
			return b, cmd

		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.slot):
			// Digits search as text while the input has content; quick
			// slots only trigger from an empty prompt.
			if b.inputC.Value() == "" && len(msg.Runes) == 1 {
				b.playSlot(int(msg.Runes[0] - '1'))
				return b, nil
			}
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if value := b.inputC.Value(); value != "" {
		b.searchSuggestion = query.Suggest(value)
	} else {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) handleChannelsState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.channelsC.SelectedItem().(*listItem); ok {
				if channel, ok := item.internal.(*playlist.Channel); ok {
					if viper.GetBool(key.TUIPlayOnEnter) {
						b.play(channel)
					} else {
						b.newState(watchState)
					}
				}
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openURL):
			if item, ok := b.channelsC.SelectedItem().(*listItem); ok {
				if channel, ok := item.internal.(*playlist.Channel); ok {
					util.Ignore(func() error { return open.Start(channel.URL) })
				}
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.channelsC, cmd = b.channelsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) handleWatchState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		snap := b.session.Snapshot()

		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			b.session.TogglePause()
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.fullscreen):
			if snap.Surface == surface.Fullscreen {
				b.session.ExitFullscreen()
			} else {
				b.session.EnterFullscreen()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.floating):
			if snap.Surface == surface.Floating {
				b.session.ExitFloating()
			} else {
				b.session.EnterFloating()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.stop):
			b.session.StopPlayback()
			b.previousState()
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openURL):
			if snap.Current != nil {
				util.Ignore(func() error { return open.Start(snap.Current.URL) })
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			// Escape first collapses a secondary surface, then leaves the
			// watch view with playback running in the background.
			switch snap.Surface {
			case surface.Fullscreen:
				b.session.ExitFullscreen()
			case surface.Floating:
				b.session.ExitFloating()
			default:
				b.previousState()
			}
			return b, nil
		}
	}

	return b, nil
}

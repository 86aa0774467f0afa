// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/style"
)

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal interface{}
	playing  bool
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *playlist.Channel:
		title = e.Name
	case *history.SavedChannel:
		title = e.Name
	case string:
		title = e
	}

	if title != "" && t.playing {
		title = fmt.Sprintf("%s %s", title, style.Fg(style.SuccessColor)(icon.Get(icon.Playing)))
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *playlist.Channel:
		if viper.GetBool(key.TUIShowURLs) {
			description = e.Description()
		} else {
			description = e.Group
		}
	case *history.SavedChannel:
		description = e.Description()
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *playlist.Channel:
		if e.Group != "" {
			return e.Name + " " + e.Group
		}
		return e.Name
	case *history.SavedChannel:
		return e.Name
	case string:
		return e
	default:
		return ""
	}
}

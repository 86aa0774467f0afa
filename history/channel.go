package history

import (
	"fmt"
	"time"

	"github.com/zapp-cli/zapp/playlist"
)

// SavedChannel represents a single watched channel preserved in the user's history.
type SavedChannel struct {
	Name       string    `json:"name"`
	Group      string    `json:"group"`
	URL        string    `json:"url"`
	WatchedAt  time.Time `json:"watched_at"`
	WatchCount int       `json:"watch_count"`
}

func (s *SavedChannel) String() string {
	return s.Name
}

// Description returns a secondary display line for list rendering.
func (s *SavedChannel) Description() string {
	return fmt.Sprintf("%s · watched %s", s.Group, s.WatchedAt.Format("2006-01-02 15:04"))
}

// Channel converts the history record back into a playable catalog entry.
func (s *SavedChannel) Channel() *playlist.Channel {
	return &playlist.Channel{
		Name:  s.Name,
		Group: s.Group,
		URL:   s.URL,
	}
}

func newSavedChannel(channel *playlist.Channel) *SavedChannel {
	return &SavedChannel{
		Name:      channel.Name,
		Group:     channel.Group,
		URL:       channel.URL,
		WatchedAt: time.Now(),
	}
}

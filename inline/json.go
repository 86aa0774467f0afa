// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"encoding/json"

	"github.com/zapp-cli/zapp/playlist"
)

type Channel struct {
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
	Logo  string `json:"logo,omitempty"`
	URL   string `json:"url"`
}

type Output struct {
	Query    string     `json:"query"`
	Playlist string     `json:"playlist"`
	Result   []*Channel `json:"result"`
}

func asJson(channels []*playlist.Channel, query, label string) ([]byte, error) {
	var result = make([]*Channel, len(channels))
	for i, c := range channels {
		result[i] = &Channel{
			Name:  c.Name,
			Group: c.Group,
			Logo:  c.Logo.OrElse(""),
			URL:   c.URL,
		}
	}

	return json.Marshal(&Output{
		Query:    query,
		Playlist: label,
		Result:   result,
	})
}

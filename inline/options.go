// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/mo"
	"github.com/zapp-cli/zapp/playlist"
)

// ChannelPicker narrows a filtered result set down to a single channel.
type ChannelPicker func([]*playlist.Channel) *playlist.Channel

type Options struct {
	Out           io.Writer
	PlaylistURL   string
	PlaylistName  string
	Query         string
	Json          bool
	UrlOnly       bool
	ChannelPicker mo.Option[ChannelPicker]
}

// ParseChannelPicker parses the CLI description of a picker.
// Supported kinds: "first", "last", "exact", "index".
func ParseChannelPicker(kind, value string) (ChannelPicker, error) {
	switch kind {
	case "first":
		return func(channels []*playlist.Channel) *playlist.Channel {
			if len(channels) == 0 {
				return nil
			}
			return channels[0]
		}, nil
	case "last":
		return func(channels []*playlist.Channel) *playlist.Channel {
			if len(channels) == 0 {
				return nil
			}
			return channels[len(channels)-1]
		}, nil
	case "exact":
		return func(channels []*playlist.Channel) *playlist.Channel {
			for _, c := range channels {
				if c.Name == value {
					return c
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(channels []*playlist.Channel) *playlist.Channel {
			if uint64(len(channels)) <= idx {
				return nil
			}
			return channels[idx]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zapp-cli/zapp/catalog"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/network"
	"github.com/zapp-cli/zapp/playlist"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.PlaylistURL == "" {
		return fmt.Errorf("no playlist given")
	}

	channels, label, err := loadCatalog(options)
	if err != nil {
		return err
	}

	selected := channels
	if picker, ok := options.ChannelPicker.Get(); ok {
		selected = nil
		if choice := picker(channels); choice != nil {
			selected = []*playlist.Channel{choice}
		}
	}

	if options.Json {
		return writeJson(options.Out, selected, options.Query, label)
	}

	for _, channel := range selected {
		if options.UrlOnly {
			fmt.Fprintln(options.Out, channel.URL)
		} else {
			fmt.Fprintf(options.Out, "%s\t%s\t%s\n", channel.Name, channel.Group, channel.URL)
		}
	}

	return nil
}

// loadCatalog fetches, parses and filters the playlist. The text cache is
// consulted first so repeated scripted invocations do not refetch.
func loadCatalog(options *Options) ([]*playlist.Channel, string, error) {
	text, ok := catalog.CachedText(options.PlaylistURL).Get()
	if !ok {
		fetched, err := network.FetchText(context.Background(), options.PlaylistURL, nil)
		if err != nil {
			return nil, "", fmt.Errorf("playlist fetch: %w", err)
		}
		text = fetched

		if err := catalog.CacheText(options.PlaylistURL, text); err != nil {
			log.Warnf("cache playlist text: %s", err)
		}
	}

	channels := playlist.Parse(text)

	label := options.PlaylistName
	if label == "" {
		label = catalog.LabelFor(options.PlaylistURL)
	}

	cat := catalog.New()
	cat.Replace(channels, label)

	return cat.Filter(options.Query), label, nil
}

func writeJson(out io.Writer, channels []*playlist.Channel, query, label string) error {
	data, err := asJson(channels, query, label)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

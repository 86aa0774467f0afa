// Package catalog holds the most recently loaded channel list and exposes filtered, sorted views of it.
package catalog

import (
	"net/url"
	"path"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/zapp-cli/zapp/playlist"
	"golang.org/x/exp/slices"
)

// Catalog is the searchable channel registry. Loads are full replacements:
// consumers never observe a partially updated list. All access is expected to
// happen on the session dispatcher, so no internal locking is performed.
type Catalog struct {
	channels []*playlist.Channel
	label    string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{}
}

// Replace atomically swaps in a freshly loaded channel list and display label.
func (c *Catalog) Replace(channels []*playlist.Channel, label string) {
	c.channels = channels
	c.label = label
}

// Label returns the display name of the loaded playlist source.
func (c *Catalog) Label() string {
	return c.label
}

// Len returns the number of loaded channels.
func (c *Catalog) Len() int {
	return len(c.channels)
}

// Loaded reports whether a playlist has been ingested this session.
func (c *Catalog) Loaded() bool {
	return c.channels != nil
}

// Filter returns the channels whose name or group contains the trimmed query,
// case-insensitively. An empty query yields the entire catalog. The result is
// always a fresh slice sorted by name, case-insensitive ascending; the stored
// catalog is never mutated.
func (c *Catalog) Filter(query string) []*playlist.Channel {
	query = strings.ToLower(strings.TrimSpace(query))

	matched := lo.Filter(c.channels, func(ch *playlist.Channel, _ int) bool {
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(ch.Name), query) ||
			strings.Contains(strings.ToLower(ch.Group), query)
	})

	slices.SortStableFunc(matched, func(a, b *playlist.Channel) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return matched
}

// Closest returns the channel whose name is nearest to the query by edit
// distance, for "did you mean" hints when a filter comes back empty.
func (c *Catalog) Closest(query string) mo.Option[*playlist.Channel] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(c.channels) == 0 {
		return mo.None[*playlist.Channel]()
	}

	best := lo.MinBy(c.channels, func(a, b *playlist.Channel) bool {
		return levenshtein.Distance(query, strings.ToLower(a.Name)) <
			levenshtein.Distance(query, strings.ToLower(b.Name))
	})

	return mo.Some(best)
}

// LabelFor derives a display label from a playlist source URL when no
// explicit name was supplied: the file stem of the URL path, or the host when
// the path is empty.
func LabelFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	base := path.Base(u.Path)
	if base != "" && base != "/" && base != "." {
		return strings.TrimSuffix(base, path.Ext(base))
	}

	if u.Host != "" {
		return u.Host
	}

	return rawURL
}

package catalog

import (
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/where"
)

// textCacher stores raw playlist text keyed by source URL, so a restart does
// not need to refetch an unchanged playlist before the user can browse.
var textCacher = gache.New[map[string]string](
	&gache.Options{
		Path:       filepath.Join(where.Playlists(), "texts.json"),
		Lifetime:   time.Hour * 24,
		FileSystem: &filesystem.GacheFs{},
	},
)

// CacheText persists the raw playlist text for the given source URL.
// Caching is skipped entirely when disabled in the config.
func CacheText(sourceURL, text string) error {
	if !viper.GetBool(key.PlaylistCache) {
		return nil
	}

	cached, expired, err := textCacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]string)
	}

	cached[sourceURL] = text
	return textCacher.Set(cached)
}

// CachedText returns the previously cached playlist text for the source URL,
// if caching is enabled and a fresh entry exists.
func CachedText(sourceURL string) mo.Option[string] {
	if !viper.GetBool(key.PlaylistCache) {
		return mo.None[string]()
	}

	cached, expired, err := textCacher.Get()
	if err != nil || expired || cached == nil {
		return mo.None[string]()
	}

	if text, ok := cached[sourceURL]; ok && text != "" {
		return mo.Some(text)
	}

	return mo.None[string]()
}

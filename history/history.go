// Package history tracks and persists the channels the user has watched.
package history

import (
	"github.com/metafates/gache"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/playlist"
	"github.com/zapp-cli/zapp/where"
	"golang.org/x/exp/slices"
)

// cacher provides an abstracted, disk-backed registry of watched channels.
var cacher = gache.New[map[string]*SavedChannel](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of watched channel records from the persistent store.
func Get() (map[string]*SavedChannel, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedChannel), nil
	}
	return cached, nil
}

// Save records that the channel was watched just now, creating or refreshing
// its history entry.
func Save(channel *playlist.Channel) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedChannel(channel)

	if existing, exists := saved[record.URL]; exists {
		record.WatchCount = existing.WatchCount
	}
	record.WatchCount++

	saved[record.URL] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a channel record from the history registry.
func Remove(channel *SavedChannel) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, channel.URL)

	return cacher.Set(saved)
}

// Recent returns up to limit records ordered from most to least recently watched.
func Recent(limit int) ([]*SavedChannel, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := make([]*SavedChannel, 0, len(saved))
	for _, record := range saved {
		records = append(records, record)
	}

	slices.SortFunc(records, func(a, b *SavedChannel) int {
		return int(b.WatchedAt.Unix() - a.WatchedAt.Unix())
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// Package slots manages the six quick playlist slots shown on the start screen.
package slots

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/where"
)

// Count is the fixed number of quick slots.
const Count = 6

// Slot is a single quick slot. Unconfigured slots carry no URL and act as
// decoration only.
type Slot struct {
	Glyph string
	URL   mo.Option[string]
}

// Configured reports whether activating the slot can start playback.
func (s Slot) Configured() bool {
	return s.URL.IsPresent()
}

// slotRecord is the on-disk shape of one slot. The file is a plain JSON array
// of these objects, editable by hand, so the field names are part of the
// format and must not change.
type slotRecord struct {
	Emoji string  `json:"Emoji"`
	Url   *string `json:"Url"`
}

// defaults returns the built-in slot set used whenever no valid configuration
// is available.
func defaults() []Slot {
	return []Slot{
		{Glyph: "📺"},
		{Glyph: "🎬"},
		{Glyph: "⚽"},
		{Glyph: "📰"},
		{Glyph: "🎵"},
		{Glyph: "🌍"},
	}
}

// Load returns the configured slots. A missing, unreadable or malformed
// configuration file is never an error: the built-in defaults are returned
// silently instead.
func Load() []Slot {
	contents, err := filesystem.API().ReadFile(where.Slots())
	if err != nil {
		return defaults()
	}

	var records []slotRecord
	if err = json.Unmarshal(contents, &records); err != nil {
		log.Warnf("ignoring malformed slot configuration: %s", err)
		return defaults()
	}

	loaded := defaults()
	for i, record := range records {
		if i >= Count {
			break
		}

		if record.Emoji != "" {
			loaded[i].Glyph = record.Emoji
		}

		if record.Url != nil && *record.Url != "" {
			loaded[i].URL = mo.Some(*record.Url)
		}
	}

	return loaded
}

// Save writes the slot set back to the configuration file in its canonical
// JSON array form.
func Save(slots []Slot) error {
	records := lo.Map(slots, func(s Slot, _ int) slotRecord {
		record := slotRecord{Emoji: s.Glyph}
		if url, ok := s.URL.Get(); ok {
			record.Url = &url
		}
		return record
	})

	contents, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	return filesystem.API().WriteFile(where.Slots(), contents, 0644)
}

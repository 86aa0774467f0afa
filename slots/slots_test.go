package slots

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/where"
)

func TestLoad(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()

		Convey("When no slot configuration exists", func() {
			loaded := Load()

			Convey("It should fall back to the built-in defaults", func() {
				So(loaded, ShouldHaveLength, Count)
				for _, slot := range loaded {
					So(slot.Glyph, ShouldNotBeEmpty)
					So(slot.Configured(), ShouldBeFalse)
				}
			})
		})

		Convey("When the configuration file is malformed", func() {
			err := filesystem.API().WriteFile(where.Slots(), []byte("not json"), 0644)
			So(err, ShouldBeNil)

			loaded := Load()

			Convey("It should silently fall back to the defaults", func() {
				So(loaded, ShouldHaveLength, Count)
				for _, slot := range loaded {
					So(slot.Configured(), ShouldBeFalse)
				}
			})
		})

		Convey("When a partial configuration exists", func() {
			contents := []byte(`[
				{"Emoji": "🦊", "Url": "http://example.com/a.m3u8"},
				{"Emoji": "", "Url": null}
			]`)
			err := filesystem.API().WriteFile(where.Slots(), contents, 0644)
			So(err, ShouldBeNil)

			loaded := Load()

			Convey("Configured entries should override the defaults", func() {
				So(loaded, ShouldHaveLength, Count)
				So(loaded[0].Glyph, ShouldEqual, "🦊")
				So(loaded[0].Configured(), ShouldBeTrue)
				So(loaded[0].URL.MustGet(), ShouldEqual, "http://example.com/a.m3u8")
			})

			Convey("Entries with empty fields should keep the defaults", func() {
				So(loaded[1].Glyph, ShouldNotBeEmpty)
				So(loaded[1].Configured(), ShouldBeFalse)
			})

			Convey("Slots beyond the configured ones should stay default", func() {
				So(loaded[5].Configured(), ShouldBeFalse)
			})
		})

		Convey("When more than six entries are configured", func() {
			contents := []byte(`[
				{"Emoji": "1"}, {"Emoji": "2"}, {"Emoji": "3"}, {"Emoji": "4"},
				{"Emoji": "5"}, {"Emoji": "6"}, {"Emoji": "7"}
			]`)
			err := filesystem.API().WriteFile(where.Slots(), contents, 0644)
			So(err, ShouldBeNil)

			loaded := Load()

			Convey("The extras should be ignored", func() {
				So(loaded, ShouldHaveLength, Count)
				So(loaded[5].Glyph, ShouldEqual, "6")
			})
		})
	})
}

func TestSaveRoundTrip(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()

		Convey("When slots are saved and loaded again", func() {
			slots := Load()
			slots[2].Glyph = "🌙"
			slots[0].Glyph = "🎯"

			So(Save(slots), ShouldBeNil)

			Convey("The loaded slots should reflect the saved ones", func() {
				loaded := Load()
				So(loaded[0].Glyph, ShouldEqual, "🎯")
				So(loaded[2].Glyph, ShouldEqual, "🌙")
			})
		})
	})
}

package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/key"
)

func TestSuggestions(t *testing.T) {
	Convey("Given a clean in-memory query store", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.SearchShowQuerySuggestions, true)
		suggestionCache = make(map[string][]*queryRecord)

		Convey("When queries are remembered with different weights", func() {
			So(Remember("euronews", 1), ShouldBeNil)
			So(Remember("eurosport", 5), ShouldBeNil)
			So(Remember("cnn", 1), ShouldBeNil)

			Convey("SuggestMany should rank matches by popularity", func() {
				So(SuggestMany("euro"), ShouldResemble, []string{"eurosport", "euronews"})
			})

			Convey("Suggest should return the top match", func() {
				suggestion := Suggest("euro")
				So(suggestion.IsPresent(), ShouldBeTrue)
				So(suggestion.MustGet(), ShouldEqual, "eurosport")
			})

			Convey("A non-matching input should yield nothing", func() {
				So(SuggestMany("zzz"), ShouldBeEmpty)
				So(Suggest("zzz").IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("When suggestions are disabled in the config", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(Remember("euronews", 1), ShouldBeNil)

			Convey("No suggestions should be produced", func() {
				So(SuggestMany("euro"), ShouldBeEmpty)
			})
		})

		Convey("Blank queries should be ignored", func() {
			So(Remember("   ", 1), ShouldBeNil)
		})

		Convey("Input should be sanitized", func() {
			So(sanitize("  EuroNews  "), ShouldEqual, "euronews")
		})
	})
}

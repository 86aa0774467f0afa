package playlist

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should parse well-formed directive/URL pairs in order", func() {
			text := strings.Join([]string{
				"#EXTM3U",
				`#EXTINF:-1 tvg-logo="http://logo/one.png" group-title="News",One`,
				"http://stream/one",
				`#EXTINF:-1 group-title="Sports",Two`,
				"http://stream/two",
			}, "\n")

			channels := Parse(text)
			So(channels, ShouldHaveLength, 2)
			So(channels[0].Name, ShouldEqual, "One")
			So(channels[0].Group, ShouldEqual, "News")
			So(channels[0].Logo.MustGet(), ShouldEqual, "http://logo/one.png")
			So(channels[0].URL, ShouldEqual, "http://stream/one")
			So(channels[1].Name, ShouldEqual, "Two")
			So(channels[1].Logo.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should ignore extraneous and malformed lines", func() {
			text := strings.Join([]string{
				"",
				"# a stray comment",
				"http://orphan/url",
				`#EXTINF:-1,Kept`,
				"#EXTVLCOPT:network-caching=1000",
				"http://stream/kept",
				"   ",
				"#EXTM3U",
			}, "\n")

			channels := Parse(text)
			So(channels, ShouldHaveLength, 1)
			So(channels[0].Name, ShouldEqual, "Kept")
			So(channels[0].URL, ShouldEqual, "http://stream/kept")
		})

		Convey("Should match the directive tag case-insensitively", func() {
			channels := Parse("#extinf:-1,Lower\nhttp://stream/lower")
			So(channels, ShouldHaveLength, 1)
			So(channels[0].Name, ShouldEqual, "Lower")
		})

		Convey("Should accept CRLF line endings", func() {
			channels := Parse("#EXTINF:-1,CRLF\r\nhttp://stream/crlf\r\n")
			So(channels, ShouldHaveLength, 1)
			So(channels[0].URL, ShouldEqual, "http://stream/crlf")
		})

		Convey("Should tolerate attributes in any order", func() {
			channels := Parse(`#EXTINF:-1 group-title="Docs" tvg-logo="http://l.png",A` + "\nhttp://u")
			So(channels[0].Group, ShouldEqual, "Docs")
			So(channels[0].Logo.MustGet(), ShouldEqual, "http://l.png")

			channels = Parse(`#EXTINF:-1 tvg-logo="http://l.png" group-title="Docs",A` + "\nhttp://u")
			So(channels[0].Group, ShouldEqual, "Docs")
			So(channels[0].Logo.MustGet(), ShouldEqual, "http://l.png")
		})

		Convey("Should default the group to empty when absent", func() {
			channels := Parse("#EXTINF:-1,NoGroup\nhttp://u")
			So(channels[0].Group, ShouldBeEmpty)
		})

		Convey("Should drop an orphaned trailing directive", func() {
			channels := Parse("#EXTINF:-1,First\nhttp://u\n#EXTINF:-1,Orphan")
			So(channels, ShouldHaveLength, 1)
			So(channels[0].Name, ShouldEqual, "First")
		})

		Convey("Should return no channels for empty or garbage input", func() {
			So(Parse(""), ShouldBeEmpty)
			So(Parse("just\nsome\ntext"), ShouldBeEmpty)
		})
	})
}

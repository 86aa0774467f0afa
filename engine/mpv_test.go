package engine

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Given media targets", t, func() {
		Convey("Plain stream URLs should pass through", func() {
			for _, target := range []string{
				"http://example.com/live.m3u8",
				"https://example.com/live.m3u8",
				"rtmp://example.com/live",
				"rtsp://example.com/cam1",
			} {
				got, err := sanitizeMediaTarget(target)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, target)
			}
		})

		Convey("Surrounding whitespace should be trimmed", func() {
			got, err := sanitizeMediaTarget("  http://example.com/a.m3u8  ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "http://example.com/a.m3u8")
		})

		Convey("Flag-shaped input should be rejected", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Control characters should be rejected", func() {
			_, err := sanitizeMediaTarget("http://example.com/a\nb")
			So(err, ShouldNotBeNil)
		})

		Convey("Unsupported schemes should be rejected", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/file.ts")
			So(err, ShouldNotBeNil)
		})

		Convey("Empty input should be rejected", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})

		Convey("Bare paths should be cleaned as local files", func() {
			got, err := sanitizeMediaTarget("recordings//match.ts")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "recordings/match.ts")
		})
	})
}

func TestBuildHeaderString(t *testing.T) {
	Convey("Given custom HTTP headers", t, func() {
		Convey("No headers should produce an empty string", func() {
			So(buildHeaderString(nil), ShouldBeEmpty)
		})

		Convey("A single header should be rendered as key: value", func() {
			So(buildHeaderString(map[string]string{"Referer": "http://example.com"}),
				ShouldEqual, "Referer: http://example.com")
		})

		Convey("Commas in values should be escaped", func() {
			got := buildHeaderString(map[string]string{"Cookie": "a=1,b=2"})
			So(got, ShouldEqual, "Cookie: a=1%2Cb=2")
		})

		Convey("Multiple headers should be comma-separated", func() {
			got := buildHeaderString(map[string]string{
				"Referer": "http://example.com",
				"Origin":  "http://example.com",
			})
			So(strings.Count(got, ","), ShouldEqual, 1)
			So(got, ShouldContainSubstring, "Referer: http://example.com")
			So(got, ShouldContainSubstring, "Origin: http://example.com")
		})
	})
}

func TestPlaybackState(t *testing.T) {
	Convey("Playback states", t, func() {
		Convey("Should print their names", func() {
			So(Playing.String(), ShouldEqual, "Playing")
			So(Failed.String(), ShouldEqual, "Failed")
			So(PlaybackState(42).String(), ShouldEqual, "Unknown")
		})

		Convey("Active should cover Playing and Paused only", func() {
			So(Playing.Active(), ShouldBeTrue)
			So(Paused.Active(), ShouldBeTrue)
			So(Opening.Active(), ShouldBeFalse)
			So(Failed.Active(), ShouldBeFalse)
		})

		Convey("Loading should cover Opening and Buffering only", func() {
			So(Opening.Loading(), ShouldBeTrue)
			So(Buffering.Loading(), ShouldBeTrue)
			So(Playing.Loading(), ShouldBeFalse)
		})
	})
}

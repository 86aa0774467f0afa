package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/playlist"
)

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, nil, "news", "iptv")
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Query, ShouldEqual, "news")
			So(output.Playlist, ShouldEqual, "iptv")
			So(output.Result, ShouldHaveLength, 0)
		})

		Convey("Should carry channel fields through", func() {
			var buf bytes.Buffer
			channels := []*playlist.Channel{
				{Name: "Euronews", Group: "News", URL: "http://example.com/euronews.m3u8"},
			}

			err := writeJson(&buf, channels, "euro", "iptv")
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 1)
			So(output.Result[0].Name, ShouldEqual, "Euronews")
			So(output.Result[0].URL, ShouldEqual, "http://example.com/euronews.m3u8")
		})
	})
}

func TestParseChannelPicker(t *testing.T) {
	Convey("ParseChannelPicker", t, func() {
		channels := []*playlist.Channel{
			{Name: "A", URL: "http://a"},
			{Name: "B", URL: "http://b"},
			{Name: "C", URL: "http://c"},
		}

		Convey("first picks the first channel", func() {
			picker, err := ParseChannelPicker("first", "")
			So(err, ShouldBeNil)
			So(picker(channels).Name, ShouldEqual, "A")
		})

		Convey("last picks the last channel", func() {
			picker, err := ParseChannelPicker("last", "")
			So(err, ShouldBeNil)
			So(picker(channels).Name, ShouldEqual, "C")
		})

		Convey("exact matches by name", func() {
			picker, err := ParseChannelPicker("exact", "B")
			So(err, ShouldBeNil)
			So(picker(channels).Name, ShouldEqual, "B")
			So(picker(channels[:1]), ShouldBeNil)
		})

		Convey("index is bounds checked", func() {
			picker, err := ParseChannelPicker("index", "2")
			So(err, ShouldBeNil)
			So(picker(channels).Name, ShouldEqual, "C")
			So(picker(channels[:1]), ShouldBeNil)
		})

		Convey("unknown kinds are rejected", func() {
			_, err := ParseChannelPicker("closest", "")
			So(err, ShouldNotBeNil)
		})
	})
}

package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/playlist"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a channel", t, func() {
		channel := &playlist.Channel{
			Name:  "Euronews",
			Group: "News",
			URL:   "http://example.com/euronews.m3u8",
		}

		Convey("When saving the channel", func() {
			err := Save(channel)

			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the channel should be saved", func() {
					saved, err := Get()
					So(err, ShouldBeNil)
					So(len(saved), ShouldBeGreaterThan, 0)
					So(saved[channel.URL].Name, ShouldEqual, channel.Name)
					So(saved[channel.URL].WatchCount, ShouldBeGreaterThanOrEqualTo, 1)
				})

				Convey("And saving again should bump the watch count", func() {
					before, err := Get()
					So(err, ShouldBeNil)
					count := before[channel.URL].WatchCount

					So(Save(channel), ShouldBeNil)

					after, err := Get()
					So(err, ShouldBeNil)
					So(after[channel.URL].WatchCount, ShouldEqual, count+1)
				})

				Convey("And it should appear among the recent channels", func() {
					recent, err := Recent(10)
					So(err, ShouldBeNil)
					So(len(recent), ShouldBeGreaterThan, 0)
					So(recent[0].URL, ShouldEqual, channel.URL)
				})

				Convey("And removing it should delete the record", func() {
					saved, err := Get()
					So(err, ShouldBeNil)

					So(Remove(saved[channel.URL]), ShouldBeNil)

					saved, err = Get()
					So(err, ShouldBeNil)
					So(saved[channel.URL], ShouldBeNil)
				})
			})
		})
	})
}

package catalog

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/playlist"
)

func channelNames(channels []*playlist.Channel) []string {
	return lo.Map(channels, func(ch *playlist.Channel, _ int) string {
		return ch.Name
	})
}

func TestCatalogFilter(t *testing.T) {
	Convey("Given a catalog with an unsorted channel list", t, func() {
		c := New()
		c.Replace([]*playlist.Channel{
			{Name: "BBC", Group: "News"},
			{Name: "abc", Group: "General"},
			{Name: "Zeta", Group: "Movies"},
		}, "test")

		Convey("When filtering with an empty query", func() {
			result := c.Filter("")

			Convey("It should return the full catalog sorted by name, case-insensitive", func() {
				So(channelNames(result), ShouldResemble, []string{"abc", "BBC", "Zeta"})
			})
		})

		Convey("When filtering with a blank query", func() {
			result := c.Filter("   ")

			Convey("It should behave like the empty query", func() {
				So(channelNames(result), ShouldResemble, []string{"abc", "BBC", "Zeta"})
			})
		})

		Convey("When filtering with a substring query", func() {
			result := c.Filter("b")

			Convey("It should match names case-insensitively and stay sorted", func() {
				So(channelNames(result), ShouldResemble, []string{"abc", "BBC"})
			})
		})

		Convey("When the query matches a group instead of a name", func() {
			result := c.Filter("movie")

			Convey("It should include channels matched by group", func() {
				So(channelNames(result), ShouldResemble, []string{"Zeta"})
			})
		})

		Convey("When applying the same filter twice", func() {
			first := c.Filter("b")
			second := c.Filter("b")

			Convey("The results should be identical", func() {
				So(channelNames(first), ShouldResemble, channelNames(second))
			})
		})

		Convey("When nothing matches", func() {
			result := c.Filter("qwerty")

			Convey("It should return an empty result", func() {
				So(result, ShouldBeEmpty)
			})
		})

		Convey("Filtering should never mutate the stored catalog order", func() {
			_ = c.Filter("")

			So(c.channels[0].Name, ShouldEqual, "BBC")
			So(c.channels[2].Name, ShouldEqual, "Zeta")
		})
	})
}

func TestCatalogReplace(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		c := New()

		Convey("It should report as not loaded", func() {
			So(c.Loaded(), ShouldBeFalse)
			So(c.Len(), ShouldEqual, 0)
		})

		Convey("When a playlist is loaded", func() {
			c.Replace([]*playlist.Channel{{Name: "One"}}, "my list")

			Convey("It should expose the new list and label", func() {
				So(c.Loaded(), ShouldBeTrue)
				So(c.Len(), ShouldEqual, 1)
				So(c.Label(), ShouldEqual, "my list")
			})

			Convey("A later load should fully replace the previous one", func() {
				c.Replace([]*playlist.Channel{{Name: "Two"}, {Name: "Three"}}, "other")

				So(c.Len(), ShouldEqual, 2)
				So(c.Label(), ShouldEqual, "other")
				So(channelNames(c.Filter("")), ShouldNotContain, "One")
			})
		})
	})
}

func TestCatalogClosest(t *testing.T) {
	Convey("Given a catalog with a few channels", t, func() {
		c := New()
		c.Replace([]*playlist.Channel{
			{Name: "CNN International"},
			{Name: "Euronews"},
			{Name: "Al Jazeera"},
		}, "test")

		Convey("A near miss should suggest the nearest channel name", func() {
			closest := c.Closest("euronews hd")

			So(closest.IsPresent(), ShouldBeTrue)
			So(closest.MustGet().Name, ShouldEqual, "Euronews")
		})

		Convey("An empty query should yield no suggestion", func() {
			So(c.Closest("  ").IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given an empty catalog", t, func() {
		c := New()

		Convey("There should be nothing to suggest", func() {
			So(c.Closest("anything").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestLabelFor(t *testing.T) {
	Convey("Given playlist source URLs", t, func() {
		Convey("A URL with a file path should yield the file stem", func() {
			So(LabelFor("https://example.com/lists/favorites.m3u"), ShouldEqual, "favorites")
		})

		Convey("A URL without a path should yield the host", func() {
			So(LabelFor("https://iptv.example.org"), ShouldEqual, "iptv.example.org")
		})

		Convey("An unparsable value should be returned as is", func() {
			So(LabelFor("::::"), ShouldEqual, "::::")
		})
	})
}

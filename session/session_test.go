package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/overlay"
	"github.com/zapp-cli/zapp/playlist"
)

const samplePlaylist = `#EXTM3U
#EXTINF:-1 group-title="News",Euronews
http://example.com/euronews.m3u8
#EXTINF:-1 group-title="News",CNN
http://example.com/cnn.m3u8
`

func TestLoadPlaylist(t *testing.T) {
	Convey("Given a session and a playlist server", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/broken.m3u" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if r.URL.Path == "/slow.m3u" {
				time.Sleep(300 * time.Millisecond)
			}
			_, _ = w.Write([]byte(samplePlaylist))
		}))
		defer server.Close()

		s := New(newFakeEngine(), nil)
		defer func() { _ = s.Close() }()

		Convey("Loading a playlist should install the parsed catalog", func() {
			s.LoadPlaylist(server.URL+"/channels.m3u", "My Channels")

			So(eventually(func() bool {
				return s.Snapshot().CatalogSize == 2
			}), ShouldBeTrue)

			snap := s.Snapshot()
			So(snap.CatalogLabel, ShouldEqual, "My Channels")

			Convey("And show the welcome prompt while nothing plays", func() {
				So(snap.Overlay.Kind, ShouldEqual, overlay.WelcomePrompt)
			})

			Convey("A label falls back to the URL file stem when unnamed", func() {
				s.LoadPlaylist(server.URL+"/channels.m3u", "")

				So(eventually(func() bool {
					return s.Snapshot().CatalogLabel == "channels"
				}), ShouldBeTrue)
			})

			Convey("A later failing load should keep the catalog and surface the error", func() {
				s.LoadPlaylist(server.URL+"/broken.m3u", "")

				So(eventually(func() bool {
					return s.Snapshot().Overlay.Kind == overlay.Error
				}), ShouldBeTrue)

				So(s.Snapshot().CatalogSize, ShouldEqual, 2)
			})
		})

		Convey("Of two racing loads, only the most recent should win", func() {
			s.LoadPlaylist(server.URL+"/slow.m3u", "stale")
			s.LoadPlaylist(server.URL+"/fresh.m3u", "fresh")

			So(eventually(func() bool {
				return s.Snapshot().CatalogLabel == "fresh"
			}), ShouldBeTrue)

			// The slow load's late completion must not replace the catalog.
			time.Sleep(500 * time.Millisecond)
			So(s.Snapshot().CatalogLabel, ShouldEqual, "fresh")
		})
	})
}

func TestSessionPlaybackOverlay(t *testing.T) {
	Convey("Given a session playing a channel", t, func() {
		server := manifestServer(nil)
		defer server.Close()

		eng := newFakeEngine()
		s := New(eng, nil)
		defer func() { _ = s.Close() }()

		channel := &playlist.Channel{Name: "Euronews", URL: server.URL + "/live.m3u8"}

		s.Play(channel)

		So(eventually(func() bool {
			return len(eng.openedURLs()) == 1
		}), ShouldBeTrue)

		Convey("The overlay should show loading while the stream comes up", func() {
			So(s.Snapshot().Overlay.Kind, ShouldEqual, overlay.Loading)
		})

		Convey("When the engine reports playback", func() {
			eng.events <- engine.Opened{}
			eng.events <- engine.StateChanged{State: engine.Playing}

			So(eventually(func() bool {
				return s.Snapshot().State == engine.Playing
			}), ShouldBeTrue)

			Convey("No overlay should be visible", func() {
				So(s.Snapshot().Overlay.Kind, ShouldEqual, overlay.None)
			})

			Convey("And when the engine then fails", func() {
				eng.events <- engine.EngineFailed{Code: "eof", Message: "stream ended"}

				So(eventually(func() bool {
					return s.Snapshot().State == engine.Failed
				}), ShouldBeTrue)

				Convey("The source should be released and the error surfaced", func() {
					So(eng.stopCount(), ShouldBeGreaterThanOrEqualTo, 1)

					snap := s.Snapshot()
					So(snap.Overlay.Kind, ShouldEqual, overlay.Error)
					So(snap.Overlay.Message, ShouldEqual, "stream ended")
				})

				Convey("A new play intent should clear the error into loading", func() {
					s.Play(channel)

					So(eventually(func() bool {
						return s.Snapshot().Overlay.Kind == overlay.Loading
					}), ShouldBeTrue)
				})
			})
		})
	})
}

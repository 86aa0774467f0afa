package session

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/playlist"
)

func newTestController() (*Controller, *fakeEngine, *Dispatcher) {
	d := NewDispatcher()
	eng := newFakeEngine()
	c := NewController(eng, d, nil)
	return c, eng, d
}

func controllerState(d *Dispatcher, c *Controller) (state engine.PlaybackState) {
	d.Do(func() { state = c.State() })
	return
}

func TestStaleGenerationGuard(t *testing.T) {
	Convey("Given two channels where the first resolves slowly", t, func() {
		server := manifestServer(map[string]time.Duration{"/one.m3u8": 400 * time.Millisecond})
		defer server.Close()

		one := &playlist.Channel{Name: "One", URL: server.URL + "/one.m3u8"}
		two := &playlist.Channel{Name: "Two", URL: server.URL + "/two.m3u8"}

		c, eng, d := newTestController()
		defer d.Stop()
		defer c.close()

		Convey("When the second play supersedes the first mid-resolution", func() {
			d.Do(func() { c.Play(one) })
			d.Do(func() { c.Play(two) })

			So(eventually(func() bool {
				return len(eng.openedURLs()) > 0
			}), ShouldBeTrue)

			// Give the superseded resolution time to come back.
			time.Sleep(600 * time.Millisecond)

			Convey("Only the second channel should ever reach the engine", func() {
				So(eng.openedURLs(), ShouldResemble, []string{two.URL})
			})

			Convey("The controller should reflect the second intent only", func() {
				var current *playlist.Channel
				d.Do(func() { current = c.Current() })

				So(current, ShouldEqual, two)
				So(controllerState(d, c), ShouldEqual, engine.Opening)
			})
		})
	})
}

func TestPlaybackTransitions(t *testing.T) {
	Convey("Given a controller with a play intent under way", t, func() {
		server := manifestServer(nil)
		defer server.Close()

		channel := &playlist.Channel{Name: "News", URL: server.URL + "/live.m3u8"}

		c, eng, d := newTestController()
		defer d.Stop()
		defer c.close()

		d.Do(func() { c.Play(channel) })
		So(eventually(func() bool { return len(eng.openedURLs()) == 1 }), ShouldBeTrue)

		apply := func(event engine.Event) {
			d.Do(func() { c.HandleEngineEvent(event) })
		}

		Convey("Opened should move Opening to Buffering", func() {
			apply(engine.Opened{})
			So(controllerState(d, c), ShouldEqual, engine.Buffering)
		})

		Convey("A playing report should reach Playing and mark the session", func() {
			apply(engine.Opened{})
			apply(engine.StateChanged{State: engine.Playing})

			So(controllerState(d, c), ShouldEqual, engine.Playing)

			var everPlayed bool
			d.Do(func() { everPlayed = c.EverPlayed() })
			So(everPlayed, ShouldBeTrue)

			Convey("Pause and resume should toggle between Playing and Paused", func() {
				apply(engine.StateChanged{State: engine.Paused})
				So(controllerState(d, c), ShouldEqual, engine.Paused)

				apply(engine.StateChanged{State: engine.Playing})
				So(controllerState(d, c), ShouldEqual, engine.Playing)
			})

			Convey("A paused report outside Playing should be ignored", func() {
				apply(engine.StateChanged{State: engine.Buffering})
				apply(engine.StateChanged{State: engine.Paused})

				So(controllerState(d, c), ShouldEqual, engine.Buffering)
			})

			Convey("An engine failure should release the source and surface the error", func() {
				stopsBefore := eng.stopCount()
				apply(engine.EngineFailed{Code: "eof", Message: "stream ended"})

				So(controllerState(d, c), ShouldEqual, engine.Failed)
				So(eng.stopCount(), ShouldEqual, stopsBefore+1)

				var message string
				d.Do(func() { message = c.ErrorMessage() })
				So(message, ShouldEqual, "stream ended")

				Convey("And a new play intent should clear the error", func() {
					d.Do(func() { c.Play(channel) })

					So(controllerState(d, c), ShouldEqual, engine.Opening)
					d.Do(func() { message = c.ErrorMessage() })
					So(message, ShouldBeEmpty)
				})
			})
		})

		Convey("A failed open should surface as Failed", func() {
			eng.mu.Lock()
			eng.failOpen = true
			eng.mu.Unlock()

			d.Do(func() { c.Play(channel) })

			So(eventually(func() bool {
				return controllerState(d, c) == engine.Failed
			}), ShouldBeTrue)

			var message string
			d.Do(func() { message = c.ErrorMessage() })
			So(message, ShouldContainSubstring, "could not open stream")
		})

		Convey("Stop should return to Idle and supersede the intent", func() {
			d.Do(func() { c.Stop() })

			So(controllerState(d, c), ShouldEqual, engine.Idle)

			var current *playlist.Channel
			d.Do(func() { current = c.Current() })
			So(current, ShouldBeNil)
		})
	})
}

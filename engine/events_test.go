package engine

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func collectingListener() (*eventListener, *[]Event) {
	var events []Event
	el := newEventListener("", Handle{URL: "http://example.com/live.m3u8", Title: "Test"}, func(e Event) {
		events = append(events, e)
	})
	return el, &events
}

func TestEventNormalization(t *testing.T) {
	Convey("Given a fresh event listener", t, func() {
		el, events := collectingListener()

		Convey("A file-loaded event should emit Opened followed by a state", func() {
			el.processEvent(`{"event":"file-loaded"}`)

			So(*events, ShouldHaveLength, 2)
			So((*events)[0], ShouldHaveSameTypeAs, Opened{})
			So((*events)[1], ShouldResemble, Event(StateChanged{State: Playing}))
		})

		Convey("Buffering should be derived from paused-for-cache", func() {
			el.processEvent(`{"event":"file-loaded"}`)
			el.processEvent(`{"event":"property-change","name":"paused-for-cache","data":true}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Buffering}))

			Convey("And clear again once the cache recovers", func() {
				el.processEvent(`{"event":"property-change","name":"paused-for-cache","data":false}`)

				So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Playing}))
			})
		})

		Convey("Pause and resume should round-trip through Paused", func() {
			el.processEvent(`{"event":"file-loaded"}`)
			el.processEvent(`{"event":"property-change","name":"pause","data":true}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Paused}))

			el.processEvent(`{"event":"property-change","name":"pause","data":false}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Playing}))
		})

		Convey("A stalled decode pipeline while unpaused should read as Buffering", func() {
			el.processEvent(`{"event":"file-loaded"}`)
			el.processEvent(`{"event":"property-change","name":"core-idle","data":true}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Buffering}))
		})

		Convey("Repeated identical states should not be re-emitted", func() {
			el.processEvent(`{"event":"file-loaded"}`)
			before := len(*events)

			el.processEvent(`{"event":"property-change","name":"pause","data":false}`)

			So(*events, ShouldHaveLength, before)
		})

		Convey("An end-file error should surface a failure with the message", func() {
			el.processEvent(`{"event":"end-file","reason":"error","file_error":"no stream found"}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(EngineFailed{Code: "open-failed", Message: "no stream found"}))
		})

		Convey("A live stream hitting end of file should surface a failure", func() {
			el.processEvent(`{"event":"end-file","reason":"eof"}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(EngineFailed{Code: "eof", Message: "stream ended"}))
		})

		Convey("User-initiated unloads should stay silent", func() {
			el.processEvent(`{"event":"end-file","reason":"stop"}`)
			el.processEvent(`{"event":"end-file","reason":"quit"}`)

			So(*events, ShouldBeEmpty)
		})

		Convey("Unparseable lines should be skipped", func() {
			el.processEvent(`{{{`)

			So(*events, ShouldBeEmpty)
		})

		Convey("Replacing the source should reset derivation to Opening", func() {
			el.processEvent(`{"event":"file-loaded"}`)
			el.sourceReplaced(Handle{URL: "http://example.com/other.m3u8"})

			el.processEvent(`{"event":"file-loaded"}`)

			last := (*events)[len(*events)-2]
			So(last, ShouldHaveSameTypeAs, Opened{})
			So(last.(Opened).Handle.URL, ShouldEqual, "http://example.com/other.m3u8")
		})

		Convey("A source replaced while paused should open playing", func() {
			el.processEvent(`{"event":"file-loaded"}`)
			el.processEvent(`{"event":"property-change","name":"pause","data":true}`)
			So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Paused}))

			el.sourceReplaced(Handle{URL: "http://example.com/next.m3u8"})
			el.processEvent(`{"event":"file-loaded"}`)

			So((*events)[len(*events)-1], ShouldResemble, Event(StateChanged{State: Playing}))

			Convey("And the unpause pushed after the load should change nothing", func() {
				before := len(*events)
				el.processEvent(`{"event":"property-change","name":"pause","data":false}`)

				So(*events, ShouldHaveLength, before)
			})
		})
	})
}

package session

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDispatcher(t *testing.T) {
	Convey("Given a running dispatcher", t, func() {
		d := NewDispatcher()

		Convey("Tasks should run in submission order", func() {
			var order []int
			var wg sync.WaitGroup
			wg.Add(3)

			for i := 1; i <= 3; i++ {
				i := i
				d.Post(func() {
					order = append(order, i)
					wg.Done()
				})
			}

			wg.Wait()
			So(order, ShouldResemble, []int{1, 2, 3})
			d.Stop()
		})

		Convey("Do should block until the task has run", func() {
			ran := false
			d.Do(func() { ran = true })

			So(ran, ShouldBeTrue)
			d.Stop()
		})

		Convey("Concurrent submissions should be serialized", func() {
			counter := 0
			var wg sync.WaitGroup

			for i := 0; i < 100; i++ {
				wg.Add(1)
				go d.Post(func() {
					counter++ // safe: only the dispatcher goroutine runs this
					wg.Done()
				})
			}

			wg.Wait()
			d.Do(func() {})
			So(counter, ShouldEqual, 100)
			d.Stop()
		})

		Convey("After Stop, submissions should be dropped without blocking", func() {
			d.Stop()

			d.Post(func() { t.Fatal("task ran after stop") })
			d.Do(func() { t.Fatal("task ran after stop") })

			So(true, ShouldBeTrue)
		})

		Convey("Stop should be idempotent", func() {
			d.Stop()
			d.Stop()

			So(true, ShouldBeTrue)
		})
	})
}

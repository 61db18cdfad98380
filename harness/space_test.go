package harness

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSpace(t *testing.T) {
	Convey("Given a result space", t, func() {
		s := NewSpace(time.Minute)

		Reset(func() {
			s.Close()
		})

		Convey("When a value is stored before anyone awaits it", func() {
			s.Store("job", 42, nil, time.Minute)

			Convey("Await should deliver it immediately", func() {
				v := <-s.Await("job")
				So(v.Value, ShouldEqual, 42)
				So(v.Error, ShouldBeNil)
			})
		})

		Convey("When several callers await before the value arrives", func() {
			a := s.Await("job")
			b := s.Await("job")
			s.Store("job", "done", nil, time.Minute)

			Convey("Every waiter should receive it", func() {
				So((<-a).Value, ShouldEqual, "done")
				So((<-b).Value, ShouldEqual, "done")
			})
		})

		Convey("When a second result is stored for the same id", func() {
			s.Store("job", "first", nil, time.Minute)
			s.Store("job", nil, errors.New("late"), time.Minute)

			Convey("The first result should win", func() {
				v := <-s.Await("job")
				So(v.Value, ShouldEqual, "first")
				So(v.Error, ShouldBeNil)
				So(s.Len(), ShouldEqual, 1)
			})
		})

		Convey("When values expire", func() {
			s.Store("short", 1, nil, time.Millisecond)
			s.Store("forever", 2, nil, 0)

			s.mu.Lock()
			s.cleanupExpiredValues(time.Now().Add(time.Second))
			s.mu.Unlock()

			Convey("Only the expired one should be removed", func() {
				So(s.Len(), ShouldEqual, 1)
				So((<-s.Await("forever")).Value, ShouldEqual, 2)
			})
		})
	})
}

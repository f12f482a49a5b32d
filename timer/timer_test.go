package timer

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReset(t *testing.T) {
	Convey("Given a timer with a started action", t, func() {
		tm := New()
		tm.Start("flee-cooldown", 10)

		Convey("Reset returns true and clears TimeOfLast", func() {
			So(tm.Reset("flee-cooldown"), ShouldBeTrue)
			_, ok := tm.TimeOfLast("flee-cooldown")
			So(ok, ShouldBeFalse)
		})

		Convey("Resetting an unset action returns false", func() {
			So(tm.Reset("never-started"), ShouldBeFalse)
		})
	})
}

func TestTimeoutElapsed(t *testing.T) {
	Convey("Given a timer started at t=0", t, func() {
		tm := New()
		tm.Start("pursuit", 0)

		Convey("it reports not-elapsed while under timeout", func() {
			didReset, elapsed := tm.TimeoutElapsed("pursuit", 5, 10)
			So(elapsed, ShouldBeFalse)
			So(didReset, ShouldBeFalse)
		})

		Convey("it reports elapsed and resets once timeout is exceeded", func() {
			didReset, elapsed := tm.TimeoutElapsed("pursuit", 20, 10)
			So(elapsed, ShouldBeTrue)
			So(didReset, ShouldBeTrue)
		})

		Convey("with no record at all, it immediately reports elapsed", func() {
			didReset, elapsed := tm.TimeoutElapsed("never-started", 20, 10)
			So(elapsed, ShouldBeTrue)
			So(didReset, ShouldBeFalse)
		})
	})
}

func TestProgressRestartsOnActionSwitch(t *testing.T) {
	Convey("Given a timer progressing action A then switching to B", t, func() {
		tm := New()
		tm.Progress("A", 0)
		tm.Progress("A", 5) // same action: should not restart
		last, _ := tm.TimeOfLast("A")
		So(last, ShouldEqual, 0)

		tm.Progress("B", 7)
		lastB, _ := tm.TimeOfLast("B")
		So(lastB, ShouldEqual, 7)
	})
}

func TestActionStateReset(t *testing.T) {
	Convey("Given an initialized ActionState with a timer and a condition set", t, func() {
		s := &ActionState{Initialized: true}
		s.Timers[0] = 3
		s.Conditions[0] = true

		Convey("Reset clears everything", func() {
			s.Reset()
			So(s.Initialized, ShouldBeFalse)
			So(s.Timers[0], ShouldEqual, 0)
			So(s.Conditions[0], ShouldBeFalse)
		})
	})
}

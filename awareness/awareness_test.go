package awareness

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestChangeBy(t *testing.T) {
	Convey("Level stays within [0,1] under any sequence of ChangeBy", t, func() {
		a := New()
		a.ChangeBy(5.0)
		So(a.Level(), ShouldEqual, 1.0)
		a.ChangeBy(-5.0)
		So(a.Level(), ShouldEqual, 0.0)
	})

	Convey("Decay is linear", t, func() {
		a := New()
		a.ChangeBy(0.5)
		for i := 0; i < 10; i++ {
			a.ChangeBy(-0.01 * 1.0)
		}
		So(a.Level(), ShouldAlmostEqual, 0.4, 1e-9)
	})
}

func TestLatch(t *testing.T) {
	Convey("Given an Awareness at zero", t, func() {
		a := New()
		So(a.CurrentState(), ShouldEqual, Unaware)

		Convey("SetMaximallyAware latches reached", func() {
			a.SetMaximallyAware()
			So(a.CurrentState(), ShouldEqual, Alert)
			So(a.Reached(), ShouldBeTrue)

			Convey("repeated decay back to Unaware clears reached", func() {
				for i := 0; i < 30; i++ {
					a.ChangeBy(-0.5)
				}
				So(a.CurrentState(), ShouldEqual, Unaware)
				So(a.Reached(), ShouldBeFalse)
			})
		})
	})
}

package buoyancy

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCheck(t *testing.T) {
	Convey("A healthy, full tank floats", t, func() {
		c := &Component{Current: 100, Max: 100}
		So(c.Check(1.0), ShouldEqual, Floating)
	})

	Convey("A near-empty tank sinks", t, func() {
		c := &Component{Current: 10, Max: 100}
		So(c.Check(1.0), ShouldEqual, Sinking)
	})

	Convey("An empty tank is submerged", t, func() {
		c := &Component{Current: 0, Max: 100}
		So(c.Check(1.0), ShouldEqual, Submerged)
	})

	Convey("Health-linked low health clamps current to 0.2*max", t, func() {
		c := &Component{Current: 90, Max: 100, HealthLinked: true}
		state := c.Check(0.1)
		So(c.Current, ShouldEqual, 20)
		So(state, ShouldEqual, Floating)
	})

	Convey("Health-linked but healthy does not clamp", t, func() {
		c := &Component{Current: 90, Max: 100, HealthLinked: true}
		c.Check(0.5)
		So(c.Current, ShouldEqual, 90)
	})
}

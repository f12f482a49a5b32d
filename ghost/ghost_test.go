package ghost

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"tidewatch/ids"
	"tidewatch/vecmath"
)

func TestCapacity(t *testing.T) {
	Convey("Recording more than Capacity frames evicts the oldest", t, func() {
		r := New()
		id := ids.EntityId(1)
		for i := 0; i < Capacity+10; i++ {
			r.Record(id, vecmath.Vec3{X: float64(i)}, float64(i))
		}

		ring, ok := r.GetGhost(id)
		So(ok, ShouldBeTrue)
		So(ring, ShouldHaveLength, Capacity)
		So(ring[0].Pos.X, ShouldEqual, float64(10))
		So(ring[len(ring)-1].Pos.X, ShouldEqual, float64(Capacity+9))
	})
}

func TestGetGhostMiss(t *testing.T) {
	Convey("GetGhost on an unrecorded id returns false", t, func() {
		r := New()
		_, ok := r.GetGhost(ids.EntityId(999))
		So(ok, ShouldBeFalse)
	})
}

func TestClear(t *testing.T) {
	Convey("Clear drops the ring entirely", t, func() {
		r := New()
		id := ids.EntityId(1)
		r.Record(id, vecmath.Vec3{}, 0)
		r.Clear(id)
		_, ok := r.GetGhost(id)
		So(ok, ShouldBeFalse)
	})
}

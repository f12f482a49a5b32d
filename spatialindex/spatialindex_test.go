package spatialindex

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"tidewatch/vecmath"
)

func TestQuery(t *testing.T) {
	Convey("Given an index with payloads scattered across cells", t, func() {
		idx := New()
		idx.Insert(vecmath.Vec2{X: 5, Z: 5}, 0)
		idx.Insert(vecmath.Vec2{X: 150, Z: 5}, 1)
		idx.Insert(vecmath.Vec2{X: 5000, Z: 5000}, 2)

		Convey("Query near the origin returns the neighboring-cell superset", func() {
			got := idx.Query(vecmath.Vec2{X: 0, Z: 0})
			So(got, ShouldContain, 0)
			So(got, ShouldContain, 1)
			So(got, ShouldNotContain, 2)
		})

		Convey("Query on an empty index returns nothing", func() {
			idx2 := New()
			So(idx2.Query(vecmath.Vec2{X: 0, Z: 0}), ShouldBeEmpty)
		})

		Convey("Clear empties all cells", func() {
			idx.Clear()
			So(idx.Query(vecmath.Vec2{X: 5, Z: 5}), ShouldBeEmpty)
		})

		Convey("NaN coordinates store without matching any real query", func() {
			nanIdx := New()
			nanIdx.Insert(vecmath.Vec2{X: nan(), Z: nan()}, 9)
			got := nanIdx.Query(vecmath.Vec2{X: 0, Z: 0})
			So(got, ShouldNotContain, 9)
		})
	})
}

func nan() float64 {
	var zero float64
	return zero / zero
}

package pidctrl

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCalcErrorProportionalOnly(t *testing.T) {
	Convey("A single measurement yields a pure-proportional error", t, func() {
		c := New(1.0, 0, 0, 10.0)
		c.AddMeasurement(time.Unix(0, 0), 4.0)
		So(c.CalcError(), ShouldEqual, 6.0)
	})
}

func TestCalcErrorZeroDtDerivative(t *testing.T) {
	Convey("Two measurements at the same instant yield zero derivative", t, func() {
		c := New(0, 0, 1.0, 10.0)
		base := time.Unix(0, 0)
		c.AddMeasurement(base, 4.0)
		c.AddMeasurement(base, 6.0)
		So(c.CalcError(), ShouldEqual, 0.0)
	})
}

func TestIntegralGapRejection(t *testing.T) {
	Convey("A gap of >= 5s between samples is excluded from the integral", t, func() {
		c := New(0, 1.0, 0, 10.0)
		base := time.Unix(0, 0)
		c.AddMeasurement(base, 0.0)                     // error 10
		c.AddMeasurement(base.Add(10*time.Second), 0.0) // error 10, but the gap excludes the interval
		So(c.CalcError(), ShouldEqual, 0.0)
	})

	Convey("A sub-5s gap contributes trapezoidal area", t, func() {
		c := New(0, 1.0, 0, 10.0)
		base := time.Unix(0, 0)
		c.AddMeasurement(base, 0.0)                     // error 10
		c.AddMeasurement(base.Add(1*time.Second), 0.0)  // error 10, dt=1
		// trapezoid area = 0.5*(10+10)*1 = 10
		So(c.CalcError(), ShouldEqual, 10.0)
	})
}

func TestIntegralOutlivesRingBuffer(t *testing.T) {
	Convey("A sustained error keeps growing the integral past N samples", t, func() {
		c := New(0, 1.0, 0, 10.0)
		base := time.Unix(0, 0)
		for i := 0; i < 2*N; i++ {
			c.AddMeasurement(base.Add(time.Duration(i)*time.Second), 0.0) // error 10, dt=1
		}
		// every one of the 2N-1 one-second intervals contributes
		// 0.5*(10+10)*1 = 10, including those whose samples have rotated
		// out of the ring
		So(c.CalcError(), ShouldEqual, float64(2*N-1)*10.0)
	})
}

func TestWindupHook(t *testing.T) {
	Convey("LimitIntegralWindup clamps the integral before weighting", t, func() {
		c := New(0, 1.0, 0, 10.0)
		c.LimitIntegralWindup(func(i float64) float64 { return 1.0 })
		base := time.Unix(0, 0)
		c.AddMeasurement(base, 0.0)
		c.AddMeasurement(base.Add(1*time.Second), 0.0)
		So(c.CalcError(), ShouldEqual, 1.0)
	})
}

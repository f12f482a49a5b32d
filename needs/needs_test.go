package needs

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"tidewatch/faction"
)

func TestIsCritical(t *testing.T) {
	Convey("Syndicate is critical iff coal < 20", t, func() {
		So(Resources{Coal: 15}.IsCritical(faction.Syndicate), ShouldBeTrue)
		So(Resources{Coal: 20}.IsCritical(faction.Syndicate), ShouldBeFalse)
	})

	Convey("Covenant is critical iff scrap < 10", t, func() {
		So(Resources{Scrap: 5}.IsCritical(faction.Covenant), ShouldBeTrue)
		So(Resources{Scrap: 10}.IsCritical(faction.Covenant), ShouldBeFalse)
	})

	Convey("Other factions are never critical", t, func() {
		So(Resources{}.IsCritical(faction.Tidebound), ShouldBeFalse)
		So(Resources{}.IsCritical(faction.None), ShouldBeFalse)
	})

	Convey("Clamp floors negative needs to zero", t, func() {
		r := Resources{Coal: -5, Scrap: -1, Essence: -0.1}
		r.Clamp()
		So(r.Coal, ShouldEqual, 0)
		So(r.Scrap, ShouldEqual, 0)
		So(r.Essence, ShouldEqual, 0)
	})
}

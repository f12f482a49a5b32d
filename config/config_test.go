package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"tidewatch/agent"
	"tidewatch/faction"
	"tidewatch/needs"
	"tidewatch/perception"
	"tidewatch/spatialindex"
)

const sampleYaml = `
kind: engine
def:
  tickRate: 20
  commandAddr: ":9090"
  viewerAddr: ":9091"
  spatialCellSize: 50
  soundMemoryTtl: 90
  doctrine:
    syndicateCoalThreshold: 25
    covenantScrapThreshold: 15
    floodingAlarmRange: 60
    obedienceJobThreshold: 0.7
  secProfileDefaults:
    syndicate:
      obedience: 0.8
      fearThreshold: 1.2
  psychePresets:
    humanoid:
      fleeHealth: 0.4
      sightDist: 40
      listenDist: 20
      idleWanderFactor: 1
      aggroRangeMultiplier: 1
      shouldStopPursuing: true
`

func writeSample(t *testing.T) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	if err := os.WriteFile(path, []byte(sampleYaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromYaml(t *testing.T) {
	Convey("FromYaml unmarshals the def section into EngineConfig", t, func() {
		path := writeSample(t)
		cfg, err := FromYaml(path)
		So(err, ShouldBeNil)
		So(cfg.TickRate, ShouldEqual, 20)
		So(cfg.CommandAddr, ShouldEqual, ":9090")
		So(cfg.Doctrine.SyndicateCoalThreshold, ShouldEqual, 25)
		So(cfg.SECProfileDefaults["syndicate"].Obedience, ShouldEqual, 0.8)
		So(cfg.PsychePresets["humanoid"].SightDist, ShouldEqual, 40)
	})

	Convey("FromYaml on a missing file returns an error", t, func() {
		_, err := FromYaml(filepath.Join(t.TempDir(), "missing.yaml"))
		So(err, ShouldNotBeNil)
	})
}

func TestDefault(t *testing.T) {
	Convey("Default returns sane built-in tunables", t, func() {
		cfg := Default()
		So(cfg.Doctrine.SyndicateCoalThreshold, ShouldEqual, 20)
		So(cfg.SpatialCellSize, ShouldEqual, 100)
	})

	Convey("Default seeds every faction with the neutral SEC profile", t, func() {
		cfg := Default()
		for _, name := range []string{"none", "syndicate", "covenant", "tidebound"} {
			So(cfg.DefaultSECProfile(name), ShouldResemble, faction.NeutralProfile())
		}
	})
}

func TestDefaultSECProfileFallback(t *testing.T) {
	Convey("An unconfigured faction name falls back to the neutral profile, not the zero value", t, func() {
		cfg := &EngineConfig{}
		p := cfg.DefaultSECProfile("syndicate")
		So(p, ShouldResemble, faction.NeutralProfile())
		So(p.FearThreshold, ShouldNotEqual, 0)
		So(p.Obedience, ShouldBeGreaterThanOrEqualTo, 0.5)
	})
}

func TestApply(t *testing.T) {
	Convey("Apply pushes tunables into the overridden package vars", t, func() {
		defer func() {
			Default().Apply()
		}()

		cfg := Default()
		cfg.SpatialCellSize = 250
		cfg.SoundMemoryTTL = 45
		cfg.Doctrine.SyndicateCoalThreshold = 30
		cfg.Doctrine.CovenantScrapThreshold = 12
		cfg.Doctrine.FloodingAlarmRange = 75
		cfg.Doctrine.ObedienceJobThreshold = 0.6
		cfg.Apply()

		So(spatialindex.CellSize, ShouldEqual, 250)
		So(perception.MaxAge, ShouldEqual, 45)
		So(needs.SyndicateCoalThreshold, ShouldEqual, 30)
		So(needs.CovenantScrapThreshold, ShouldEqual, 12)
		So(agent.FloodingAlarmRange, ShouldEqual, 75)
		So(agent.ObedienceJobThreshold, ShouldEqual, 0.6)
	})
}

func TestToProfileAndToPsyche(t *testing.T) {
	Convey("SECProfileDefault and PsychePreset convert field-for-field", t, func() {
		d := SECProfileDefault{Obedience: 0.5, FearThreshold: 1.1}
		p := d.ToProfile()
		So(p.Obedience, ShouldEqual, 0.5)
		So(p.FearThreshold, ShouldEqual, 1.1)

		preset := PsychePreset{FleeHealth: 0.3, SightDist: 30, ShouldStopPursuing: true}
		ps := preset.ToPsyche()
		So(ps.FleeHealth, ShouldEqual, 0.3)
		So(ps.SightDist, ShouldEqual, 30)
		So(ps.ShouldStopPursuing, ShouldBeTrue)
	})
}

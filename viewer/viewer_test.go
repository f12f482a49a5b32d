package viewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"tidewatch/agent"
	"tidewatch/faction"
	"tidewatch/psyche"
	"tidewatch/simulation"
	"tidewatch/vecmath"
)

func TestBuildSnapshot(t *testing.T) {
	Convey("buildSnapshot reports every driver agent with its ghost trail", t, func() {
		driver := simulation.New()
		a := agent.New(1, "scout", vecmath.Vec3{X: 1, Y: 2}, faction.Component{ID: faction.Syndicate}, psyche.Humanoid(), 100)
		driver.AddAgent(a)
		driver.Step(0.1)

		s := NewServer(":0", driver, 10*time.Millisecond)
		snap := s.buildSnapshot()

		So(snap.Agents, ShouldHaveLength, 1)
		So(snap.Agents[0].ID, ShouldEqual, uint64(a.ID))
		So(snap.Agents[0].Name, ShouldEqual, "scout")
		So(snap.Agents[0].Ghost, ShouldHaveLength, 1)
	})

	Convey("buildSnapshot on an empty driver returns no agents", t, func() {
		driver := simulation.New()
		s := NewServer(":0", driver, 10*time.Millisecond)
		snap := s.buildSnapshot()
		So(snap.Agents, ShouldHaveLength, 0)
	})
}

func TestServeIndex(t *testing.T) {
	Convey("serveIndex renders the spectator page at /", t, func() {
		s := NewServer(":0", simulation.New(), 10*time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		s.serveIndex(rec, req)

		So(rec.Code, ShouldEqual, http.StatusOK)
		So(rec.Body.String(), ShouldContainSubstring, "/ws")
	})

	Convey("serveIndex 404s any other path", t, func() {
		s := NewServer(":0", simulation.New(), 10*time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()
		s.serveIndex(rec, req)

		So(rec.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestPumpEmitsOnTick(t *testing.T) {
	Convey("pump emits a snapshot roughly every tickRate until ctx cancels", t, func() {
		driver := simulation.New()
		driver.AddAgent(agent.New(1, "a", vecmath.Vec3{}, faction.Component{}, psyche.Humanoid(), 100))

		s := NewServer(":0", driver, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		out := s.pump(ctx)

		select {
		case snap := <-out:
			So(snap.Agents, ShouldHaveLength, 1)
		case <-time.After(200 * time.Millisecond):
			t.Fatal("expected at least one snapshot")
		}

		cancel()
	})
}

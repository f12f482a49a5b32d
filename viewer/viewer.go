// Package viewer serves a read-only spectator surface: a single live page
// streaming agent positions and ghost trails over a websocket. There is
// exactly one view, so no pluggable view-component abstraction; the page
// template and the snapshot pump live right here.
package viewer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"

	"tidewatch/ids"
	"tidewatch/simulation"
	"tidewatch/vecmath"
)

var upgrader = websocket.Upgrader{}

const (
	writeWait      = 1 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	closeGraceTime = 10 * time.Second
)

// AgentSnapshot is one agent's row in a Snapshot.
type AgentSnapshot struct {
	ID     uint64         `json:"id"`
	Name   string         `json:"name"`
	Pos    vecmath.Vec3   `json:"pos"`
	Action int            `json:"action"`
	Ghost  []vecmath.Vec3 `json:"ghost"`
}

// Snapshot is a single tick's worth of spectator state.
type Snapshot struct {
	Time   float64         `json:"time"`
	Agents []AgentSnapshot `json:"agents"`
}

// Server serves a single spectator page and its websocket feed, reading a
// simulation.Driver's state on a fixed cadence. One client at a time is
// actively fed from the shared snapshot pump; multi-client fan-out is not
// needed for a debug spectator.
type Server struct {
	addr     string
	driver   *simulation.Driver
	tickRate time.Duration

	snapshots <-chan Snapshot
}

// NewServer returns a Server that will poll driver every tickRate once Serve
// is called.
func NewServer(addr string, driver *simulation.Driver, tickRate time.Duration) *Server {
	return &Server{addr: addr, driver: driver, tickRate: tickRate}
}

// Serve starts the snapshot pump and the HTTP server, blocking until ctx is
// canceled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.snapshots = s.pump(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWebsocket)

	httpServer := &http.Server{Addr: s.addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGraceTime)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("viewer serve: %w", err)
		}
		return nil
	}
}

// pump polls the driver every tickRate and emits a Snapshot, stopping when
// ctx is canceled.
func (s *Server) pump(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot)
	ticks := channerics.NewTicker(ctx.Done(), s.tickRate)

	go func() {
		defer close(out)
		for range channerics.OrDone(ctx.Done(), ticks) {
			select {
			case out <- s.buildSnapshot():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (s *Server) buildSnapshot() Snapshot {
	agents := s.driver.Agents()
	snap := Snapshot{Time: s.driver.Clock(), Agents: make([]AgentSnapshot, 0, len(agents))}
	for _, a := range agents {
		var trail []vecmath.Vec3
		if frames, ok := s.driver.Ghosts().GetGhost(ids.EntityId(a.ID)); ok {
			trail = make([]vecmath.Vec3, len(frames))
			for i, f := range frames {
				trail[i] = f.Pos
			}
		}
		snap.Agents = append(snap.Agents, AgentSnapshot{
			ID:     uint64(a.ID),
			Name:   a.Name,
			Pos:    a.Position,
			Action: int(a.LastAction),
			Ghost:  trail,
		})
	}
	return snap
}

// Package simulation implements the simulation driver: the single owner of
// agents, the event bus, the blackboard, and the ghost recorder, stepping
// them cooperatively on one goroutine. Sequential iteration is load-bearing;
// see the note on Step.
package simulation

import (
	"math"
	"math/rand"
	"sync"

	"tidewatch/agent"
	"tidewatch/alignment"
	"tidewatch/blackboard"
	"tidewatch/events"
	"tidewatch/faction"
	"tidewatch/ghost"
	"tidewatch/ids"
	"tidewatch/perception"
	"tidewatch/timer"
)

// Driver owns the whole simulation's mutable state; Step is the sole
// progression primitive. External bindings (the command surface) must
// serialize their reads/writes with Step themselves; Driver's own mutex only
// protects the bookkeeping collections (agent list/index, inboxes), not
// in-flight Step execution.
type Driver struct {
	mu      sync.Mutex
	clock   float64
	agents  []*agent.Agent
	index   map[ids.Uid]int
	inboxes map[ids.Uid][]agent.Message

	bus    *events.Bus
	board  *blackboard.Board
	ghosts *ghost.Recorder

	// rng feeds idle wander goal selection. A fixed seed keeps the
	// simulation deterministic given inputs and a fixed tick schedule.
	rng *rand.Rand
}

// New returns an empty Driver.
func New() *Driver {
	return &Driver{
		index:   make(map[ids.Uid]int),
		inboxes: make(map[ids.Uid][]agent.Message),
		bus:     events.NewBus(),
		board:   blackboard.New(),
		ghosts:  ghost.New(),
		rng:     rand.New(rand.NewSource(1)),
	}
}

// AddAgent registers a in insertion order; Step iterates agents in exactly
// this order every tick.
func (d *Driver) AddAgent(a *agent.Agent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index[a.ID] = len(d.agents)
	d.agents = append(d.agents, a)
}

// Agent returns the agent with the given id, if registered.
func (d *Driver) Agent(id ids.Uid) (*agent.Agent, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return d.agents[i], true
}

// Agents returns the live agent slice in insertion order. Callers must not
// mutate it; it aliases the driver's own storage.
func (d *Driver) Agents() []*agent.Agent {
	return d.agents
}

// Clock returns the current simulation time.
func (d *Driver) Clock() float64 {
	return d.clock
}

// Bus, Board, and Ghosts expose the driver's shared collections for the
// command surface and spectator viewer. The driver keeps exclusive mutation
// rights during Step.
func (d *Driver) Bus() *events.Bus         { return d.bus }
func (d *Driver) Board() *blackboard.Board { return d.board }
func (d *Driver) Ghosts() *ghost.Recorder  { return d.ghosts }

// Deliver enqueues a message for id's next Step, e.g. the command surface's
// publish_event fanning out to agents, or a host-side Hurt notification.
func (d *Driver) Deliver(id ids.Uid, m agent.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inboxes[id] = append(d.inboxes[id], m)
}

// PublishEvent injects e onto the bus, visible to agents iterated later in
// the same tick; the bus empties again at end-of-tick.
func (d *Driver) PublishEvent(e events.Event) {
	d.bus.Publish(e)
}

// naturalDecayRate is the per-second awareness decay applied absent any
// stimulus; with no events, level falls linearly to zero.
const naturalDecayRate = 0.01

// Step advances the simulation by dt: agents are iterated sequentially in
// insertion order, each draining its inbox, aging its sound memory, decaying
// awareness, recording its ghost position, running doctrine against a bus
// query populated by this tick's publications so far, and executing the
// result, after which the bus is cleared. This sequential order is what makes
// events published by an earlier agent in the tick visible to a later one;
// a goroutine-per-agent fan-out cannot offer that guarantee without an
// extra collect/merge/re-query phase, so it is not used here.
func (d *Driver) Step(dt float64) {
	d.clock += dt

	for _, a := range d.agents {
		d.mu.Lock()
		inbox := d.inboxes[a.ID]
		delete(d.inboxes, a.ID)
		d.mu.Unlock()

		for _, m := range inbox {
			a.HandleMessage(m, d.clock)
		}

		a.Sounds.Forget(d.clock)
		a.Awareness.ChangeBy(-naturalDecayRate * dt)
		d.ghosts.Record(ids.EntityId(a.ID), a.Position, d.clock)

		if a.AssignedJob == nil {
			if job, ok := d.board.BidForJob(a.ID, preferredJob(a.Faction.ID)); ok {
				a.AssignedJob = &job
			}
		}

		queryRange := math.Max(a.Psyche.SightDist, agent.FloodingAlarmRange)
		nearby := d.bus.QueryNearby(a.Position, queryRange)

		d.acquireTarget(a)
		inRange := d.targetInRange(a)
		d.maintainTarget(a, inRange)
		if a.Target == nil {
			inRange = false
		}

		in := a.BuildDoctrineInput(nearby, inRange)
		decision := agent.Decide(in)
		a.ApplyDecision(decision)

		executeAction(a, decision, dt, d.clock, d.rng)
		d.completeArrivedJob(a)
	}

	d.bus.ClearOld()
}

// preferredJob maps a faction to the blackboard job type it bids for with a
// doubled score: Syndicate hauls resources (Transport), Covenant swarms
// threats (Combat), Tidebound maintains the structure it dives to inspect
// (Repair).
func preferredJob(f faction.ID) blackboard.JobType {
	switch f {
	case faction.Syndicate:
		return blackboard.Transport
	case faction.Covenant:
		return blackboard.Combat
	case faction.Tidebound:
		return blackboard.Repair
	default:
		return blackboard.Scavenge
	}
}

// acquireTarget locks the nearest alignment-hostile agent as a's hostile
// target. A target locked by a hurt message is kept; this only fills an
// empty lock. Psyche's aggro distance bounds acquisition when set, the
// search distance otherwise.
func (d *Driver) acquireTarget(a *agent.Agent) {
	if a.Target != nil {
		return
	}

	limit := a.Psyche.SearchDist()
	if a.Psyche.AggroDist != nil {
		limit = *a.Psyche.AggroDist
	}

	var best *agent.Agent
	bestDist := limit
	for _, other := range d.agents {
		if other.ID == a.ID {
			continue
		}
		if !alignment.Hostile(a.Alignment, other.Alignment) {
			continue
		}
		if dist := a.Position.Dist(other.Position); dist <= bestDist {
			best, bestDist = other, dist
		}
	}
	if best == nil {
		return
	}

	pos := best.Position
	a.Target = &perception.Target{
		Target:       ids.EntityId(best.ID),
		Hostile:      true,
		SelectedAt:   d.clock,
		AggroOn:      true,
		LastKnownPos: &pos,
	}
}

// jobCompleteDist is how close an agent must get to its assigned job's
// position before the job counts as done and is removed from the board.
const jobCompleteDist = 1.0

// completeArrivedJob completes a's assigned job once a has reached its
// position, releasing the agent to bid again next tick. Only the assignee
// ever completes its job here; the board itself does not police ownership.
func (d *Driver) completeArrivedJob(a *agent.Agent) {
	job := a.AssignedJob
	if job == nil {
		return
	}
	if a.Position.Dist(job.Position) > jobCompleteDist {
		return
	}
	d.board.CompleteJob(job.ID)
	a.AssignedJob = nil
}

// pursuitLostTimer records when an agent's target first left search range;
// pursuitGiveUpTimeout is how long it may stay lost before a stop-pursuing
// agent abandons the lock.
const (
	pursuitLostTimer     = timer.Action("pursuit-lost")
	pursuitGiveUpTimeout = 30.0
)

// maintainTarget drops a stale hostile lock. A target back in range re-arms
// the clock; one held at least pursuitGiveUpTimeout since selection and then
// continuously out of range for as long again is abandoned, unless the
// agent's psyche never stops pursuing.
func (d *Driver) maintainTarget(a *agent.Agent, inRange bool) {
	t := a.Target
	if t == nil {
		return
	}
	if inRange {
		a.Timers.Reset(pursuitLostTimer)
		return
	}
	if !a.Psyche.ShouldStopPursuing {
		return
	}
	if d.clock-t.SelectedAt <= pursuitGiveUpTimeout {
		return
	}
	a.Timers.Progress(pursuitLostTimer, d.clock)
	if a.Timers.TimeSinceExceeds(pursuitLostTimer, d.clock, pursuitGiveUpTimeout) {
		a.Target = nil
		a.Timers.Reset(pursuitLostTimer)
	}
}

// targetInRange reports whether a's current Target, if hostile, is within
// search distance of a's position. A target whose owning agent can no
// longer be found falls back to its last known position.
func (d *Driver) targetInRange(a *agent.Agent) bool {
	t := a.Target
	if t == nil || !t.Hostile {
		return false
	}

	searchDist := a.Psyche.SearchDist()
	if target, ok := d.Agent(ids.Uid(t.Target)); ok {
		return a.Position.Dist(target.Position) <= searchDist
	}
	if t.LastKnownPos != nil {
		return a.Position.Dist(*t.LastKnownPos) <= searchDist
	}
	return false
}

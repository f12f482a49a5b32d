package simulation

import (
	"math"
	"math/rand"
	"time"

	"tidewatch/agent"
	"tidewatch/faction"
	"tidewatch/needs"
	"tidewatch/vecmath"
)

// submergedSetpoint is the forced negative buoyancy setpoint Dive drives
// toward.
const submergedSetpoint = -1.0

// fleeDistance is how far a Flee goal is placed from the threat.
const fleeDistance = 20.0

// waypointArriveDist is how close the PID-steered position must get to the
// chaser's current waypoint before it is considered reached and the next
// one (if any) is consumed.
const waypointArriveDist = 1.0

// idleWanderRadius is the base radius of the Idle wander disc around
// patrol_origin, scaled per agent by psyche's idle_wander_factor.
const idleWanderRadius = 5.0

// epoch anchors simClock's sim-seconds onto a time.Time, the shape
// pidctrl.Controller.AddMeasurement expects. It carries no wall-clock
// meaning; only deltas between successive calls matter to CalcError.
var epoch = time.Unix(0, 0)

func simClock(clock float64) time.Time {
	return epoch.Add(time.Duration(clock * float64(time.Second)))
}

// executeAction is the execute phase of the tick, the part of doctrine's
// output that has observable world effects: Dive forcing buoyancy negative,
// Flee/Idle picking a chaser goal, doctrine-supplied goals (the wreck to
// scavenge, the harpoon site to swarm) steering everything else, PID-driven
// movement toward whatever waypoint or goal the chaser holds, and the
// resource cost or yield of the chosen action.
func executeAction(a *agent.Agent, d agent.Decision, dt float64, clock float64, rng *rand.Rand) {
	switch d.Action {
	case agent.ActionDive:
		if a.Buoyancy.Current >= 0 {
			a.Buoyancy.Current = submergedSetpoint
		}
	case agent.ActionFlee:
		if from, ok := fleeSource(a); ok {
			dir := a.Position.Sub(from).Normalize()
			goal := a.Position.Add(dir.Scale(fleeDistance))
			a.Chaser.SetGoal(&goal)
		}
	case agent.ActionIdle:
		if !a.Chaser.HasPath() {
			if _, has := a.Chaser.Goal(); !has {
				goal := idleGoal(a, rng)
				a.Chaser.SetGoal(&goal)
			}
		}
	default:
		if d.Goal != nil {
			goal := *d.Goal
			a.Chaser.SetGoal(&goal)
		}
	}

	navigate(a, dt, simClock(clock))
	applyResourceEffects(a, d)
}

// idleGoal picks the next Idle waypoint: an agent beyond its wander disc
// heads back to patrol_origin; inside it, it wanders to a random point on the
// disc, whose radius scales with psyche's idle_wander_factor. The rng is the
// driver's own seeded source, so a fixed tick schedule replays identically.
func idleGoal(a *agent.Agent, rng *rand.Rand) vecmath.Vec3 {
	wander := idleWanderRadius * a.Psyche.IdleWanderFactor
	if wander <= 0 || a.Position.Dist(a.PatrolOrigin) > wander {
		return a.PatrolOrigin
	}
	angle := rng.Float64() * 2 * math.Pi
	r := rng.Float64() * wander
	return a.PatrolOrigin.Add(vecmath.Vec3{X: r * math.Cos(angle), Z: r * math.Sin(angle)})
}

// fleeSource picks the last damager's position if known, else the loudest
// remembered sound.
func fleeSource(a *agent.Agent) (vecmath.Vec3, bool) {
	if a.Target != nil && a.Target.LastKnownPos != nil {
		return *a.Target.LastKnownPos, true
	}
	if s, ok := a.Sounds.Loudest(); ok {
		return s.Position, true
	}
	return vecmath.Vec3{}, false
}

// navigate drives the agent's position toward its chaser's current waypoint
// (preferring the queued path over an ad-hoc goal) using the agent's PID
// bank: each axis controller is fed the current position as its process
// variable and steered by its own setpoint-tracking error term, rather than
// snapping straight to the target. Reaching a path waypoint advances the
// chaser to the next one.
func navigate(a *agent.Agent, dt float64, now time.Time) {
	target, fromPath, ok := nextWaypoint(a)
	if !ok {
		return
	}

	if a.PID.X != nil {
		a.PID.X.Setpoint = target.X
		a.PID.X.AddMeasurement(now, a.Position.X)
	}
	if a.PID.Z != nil {
		a.PID.Z.Setpoint = target.Z
		a.PID.Z.AddMeasurement(now, a.Position.Z)
	}

	var vx, vz float64
	if a.PID.X != nil {
		vx = a.PID.X.CalcError()
	}
	if a.PID.Z != nil {
		vz = a.PID.Z.CalcError()
	}

	step := vecmath.Vec3{X: vx, Z: vz}.Scale(dt)
	toTarget := target.Sub(a.Position)
	if step.Length() > toTarget.Length() {
		step = toTarget
	}
	a.Position = a.Position.Add(step)

	if a.Position.Dist(target) > waypointArriveDist {
		return
	}
	if fromPath {
		a.Chaser.Advance()
	} else {
		a.Chaser.SetGoal(nil)
	}
}

// nextWaypoint returns the chaser's head path node if one is queued,
// otherwise its ad-hoc goal; the bool return reports which source it came
// from so navigate knows whether arrival should advance the path or clear
// the goal.
func nextWaypoint(a *agent.Agent) (target vecmath.Vec3, fromPath bool, ok bool) {
	if node, has := a.Chaser.GetNextNode(); has {
		return node, true, true
	}
	if goal, has := a.Chaser.Goal(); has {
		return goal, false, true
	}
	return vecmath.Vec3{}, false, false
}

// tradeYieldPerTick and actionUpkeepPerTick are the resource effects of
// action execution: Trade replenishes the faction's dominant resource, any
// other non-idle action spends a little of it running the agent's activity.
const (
	tradeYieldPerTick   = 5.0
	actionUpkeepPerTick = 0.5
)

// applyResourceEffects mutates a.Needs per d.Action and then re-establishes
// the invariant that needs never go negative after a tick.
func applyResourceEffects(a *agent.Agent, d agent.Decision) {
	switch d.Action {
	case agent.ActionTrade:
		creditResource(&a.Needs, a.Faction.ID, tradeYieldPerTick)
	case agent.ActionIdle:
		// no activity, no upkeep cost
	default:
		debitResource(&a.Needs, a.Faction.ID, actionUpkeepPerTick)
	}
	a.Needs.Clamp()
}

func creditResource(n *needs.Resources, f faction.ID, amount float64) {
	switch f {
	case faction.Syndicate:
		n.Coal += amount
	case faction.Covenant:
		n.Scrap += amount
	case faction.Tidebound:
		n.Essence += amount
	}
}

func debitResource(n *needs.Resources, f faction.ID, amount float64) {
	switch f {
	case faction.Syndicate:
		n.Coal -= amount
	case faction.Covenant:
		n.Scrap -= amount
	case faction.Tidebound:
		n.Essence -= amount
	}
}

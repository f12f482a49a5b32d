// Package agent holds the per-tick agent aggregate and its decision core.
// The doctrine rule table is an ordered slice of (guard, action) closures,
// so future factions add rows rather than code branches. Doctrine itself is
// a pure function: it never mutates its inputs. Where a rule implies a side
// effect (Harpoon forcing Alert awareness), that effect is returned in the
// Decision for the caller to apply during the execute phase, keeping Decide
// replayable: identical inputs always select identical actions.
package agent

import (
	"tidewatch/awareness"
	"tidewatch/blackboard"
	"tidewatch/buoyancy"
	"tidewatch/events"
	"tidewatch/faction"
	"tidewatch/needs"
	"tidewatch/perception"
	"tidewatch/psyche"
	"tidewatch/vecmath"
)

// Action is the faction-colored policy's selected action for this tick.
type Action int

const (
	ActionIdle Action = iota
	ActionTrade
	ActionScavenge
	ActionAttack
	ActionDive
	ActionDamageControl
	ActionFlee
	ActionRepair
	ActionTransport
)

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "Idle"
	case ActionTrade:
		return "Trade"
	case ActionScavenge:
		return "Scavenge"
	case ActionAttack:
		return "Attack"
	case ActionDive:
		return "Dive"
	case ActionDamageControl:
		return "DamageControl"
	case ActionFlee:
		return "Flee"
	case ActionRepair:
		return "Repair"
	case ActionTransport:
		return "Transport"
	default:
		return "Unknown"
	}
}

// DoctrineInput bundles everything the doctrine rule table reads. It carries
// no method that mutates engine state.
type DoctrineInput struct {
	Position     vecmath.Vec3
	Faction      faction.Component
	Needs        needs.Resources
	Awareness    awareness.Band
	Buoyancy     buoyancy.State
	NearbyEvents []events.Event
	Psyche       psyche.Psyche
	HP, MaxHP    float64

	Target        *perception.Target
	TargetInRange bool

	PatrolOrigin vecmath.Vec3

	// AssignedJob is the agent's blackboard assignment, if any, consulted
	// only as a last-resort obedience-weighted fallback before Idle.
	AssignedJob *blackboard.Job
}

// Decision is the doctrine's verdict plus any side effect the caller must
// apply (this keeps Decide a pure function of its inputs). Goal, when set, is
// where execution should steer the agent: the ally wreck to scavenge, the
// harpoon site to swarm, the target's last known position.
type Decision struct {
	Action     Action
	ForceAlert bool
	Goal       *vecmath.Vec3
}

type rule func(DoctrineInput) (Decision, bool)

// doctrineRules is evaluated in order; the first matching rule wins.
var doctrineRules = []rule{
	ruleSyndicateTrade,
	ruleSyndicateScavenge,
	ruleCovenantHarpoon,
	ruleCovenantScavenge,
	ruleTideboundDive,
	ruleFloodingAlarm,
	ruleSinking,
	ruleFlee,
	ruleAttack,
	ruleObedientJob,
}

// Decide runs the doctrine table and returns the first matching Decision,
// or ActionIdle if nothing matched.
func Decide(in DoctrineInput) Decision {
	for _, r := range doctrineRules {
		if d, ok := r(in); ok {
			return d
		}
	}
	return Decision{Action: ActionIdle}
}

func eventWithinRange(evs []events.Event, t events.Type, pos vecmath.Vec3, dist float64) (events.Event, bool) {
	for _, e := range evs {
		if e.Type != t {
			continue
		}
		if pos.Dist(e.Position) <= dist {
			return e, true
		}
	}
	return events.Event{}, false
}

func eventWithinRangeFaction(evs []events.Event, t events.Type, pos vecmath.Vec3, dist float64, f faction.ID) (events.Event, bool) {
	for _, e := range evs {
		if e.Type != t || e.SourceFaction != f {
			continue
		}
		if pos.Dist(e.Position) <= dist {
			return e, true
		}
	}
	return events.Event{}, false
}

func ruleSyndicateTrade(in DoctrineInput) (Decision, bool) {
	if in.Faction.ID != faction.Syndicate {
		return Decision{}, false
	}
	if !in.Needs.IsCritical(faction.Syndicate) {
		return Decision{}, false
	}
	return Decision{Action: ActionTrade}, true
}

func ruleSyndicateScavenge(in DoctrineInput) (Decision, bool) {
	if in.Faction.ID != faction.Syndicate {
		return Decision{}, false
	}
	if e, ok := eventWithinRangeFaction(in.NearbyEvents, events.StructuralFailure, in.Position, in.Psyche.SightDist, faction.Syndicate); ok {
		return Decision{Action: ActionScavenge, Goal: &e.Position}, true
	}
	return Decision{}, false
}

func ruleCovenantHarpoon(in DoctrineInput) (Decision, bool) {
	if in.Faction.ID != faction.Covenant {
		return Decision{}, false
	}
	if e, ok := eventWithinRange(in.NearbyEvents, events.HarpoonEvent, in.Position, in.Psyche.SightDist); ok {
		return Decision{Action: ActionAttack, ForceAlert: true, Goal: &e.Position}, true
	}
	return Decision{}, false
}

func ruleCovenantScavenge(in DoctrineInput) (Decision, bool) {
	if in.Faction.ID != faction.Covenant {
		return Decision{}, false
	}
	if e, ok := eventWithinRange(in.NearbyEvents, events.StructuralFailure, in.Position, in.Psyche.SightDist); ok {
		return Decision{Action: ActionScavenge, Goal: &e.Position}, true
	}
	return Decision{}, false
}

func ruleTideboundDive(in DoctrineInput) (Decision, bool) {
	if in.Faction.ID != faction.Tidebound {
		return Decision{}, false
	}
	if in.Awareness >= awareness.High {
		return Decision{Action: ActionDive}, true
	}
	return Decision{}, false
}

// FloodingAlarmRange is the fixed radius within which any agent reacts to a
// flooding alarm, regardless of its own sight distance. A var rather than a
// const so config can override it at bootstrap; exported so the simulation
// driver's bus query radius can stay in sync instead of carrying its own
// copy of the number.
var FloodingAlarmRange = 50.0

func ruleFloodingAlarm(in DoctrineInput) (Decision, bool) {
	if _, ok := eventWithinRange(in.NearbyEvents, events.FloodingAlarm, in.Position, FloodingAlarmRange); ok {
		return Decision{Action: ActionDamageControl}, true
	}
	return Decision{}, false
}

func ruleSinking(in DoctrineInput) (Decision, bool) {
	if in.Buoyancy == buoyancy.Sinking {
		return Decision{Action: ActionDamageControl}, true
	}
	return Decision{}, false
}

// effectiveFleeHealth scales the body preset's flee threshold by the SEC
// profile's fear weight.
func effectiveFleeHealth(p psyche.Psyche, profile faction.SECProfile) float64 {
	return p.FleeHealth * profile.FearThreshold
}

func ruleFlee(in DoctrineInput) (Decision, bool) {
	if in.MaxHP <= 0 {
		return Decision{}, false
	}
	threshold := effectiveFleeHealth(in.Psyche, in.Faction.Profile)
	if in.HP/in.MaxHP < threshold {
		return Decision{Action: ActionFlee}, true
	}
	return Decision{}, false
}

func ruleAttack(in DoctrineInput) (Decision, bool) {
	if in.Target != nil && in.Target.Hostile && in.TargetInRange {
		return Decision{Action: ActionAttack, Goal: in.Target.LastKnownPos}, true
	}
	return Decision{}, false
}

// ObedienceJobThreshold gates the obedience-weighted fallback: an assigned
// blackboard job is carried out ahead of idle wandering once the agent's
// obedience crosses this threshold. A var rather than a const so config can
// override it at bootstrap.
var ObedienceJobThreshold = 0.5

func ruleObedientJob(in DoctrineInput) (Decision, bool) {
	if in.AssignedJob == nil {
		return Decision{}, false
	}
	if in.Faction.Profile.Obedience < ObedienceJobThreshold {
		return Decision{}, false
	}
	return Decision{Action: actionFromJob(in.AssignedJob.Type), Goal: &in.AssignedJob.Position}, true
}

func actionFromJob(t blackboard.JobType) Action {
	switch t {
	case blackboard.Scavenge:
		return ActionScavenge
	case blackboard.Repair:
		return ActionRepair
	case blackboard.Combat:
		return ActionAttack
	case blackboard.Transport:
		return ActionTransport
	default:
		return ActionIdle
	}
}

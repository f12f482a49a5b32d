package agent

import (
	"tidewatch/alignment"
	"tidewatch/awareness"
	"tidewatch/blackboard"
	"tidewatch/buoyancy"
	"tidewatch/chaser"
	"tidewatch/events"
	"tidewatch/faction"
	"tidewatch/ids"
	"tidewatch/needs"
	"tidewatch/perception"
	"tidewatch/pidctrl"
	"tidewatch/psyche"
	"tidewatch/timer"
	"tidewatch/vecmath"
)

// behavior-state register slots, addressed by the positional convention
// documented on timer.ActionState.
const (
	behaviorSlotTrading       = 0
	behaviorSlotTradingIssuer = 1
)

// Agent is the full per-entity aggregate: identity, the faction/alignment/
// needs/buoyancy/psyche components, perception state, the two ActionState
// scratch registers (combat and behavior), a PID bank and waypoint chaser,
// and the last decision the doctrine produced.
type Agent struct {
	ID   ids.Uid
	Name string

	Position vecmath.Vec3
	HP       float64
	MaxHP    float64

	Alignment alignment.Data
	Faction   faction.Component
	Needs     needs.Resources
	Buoyancy  buoyancy.Component
	Psyche    psyche.Psyche
	Awareness *awareness.Awareness

	Sounds perception.Memory
	Target *perception.Target

	CombatState   timer.ActionState
	BehaviorState timer.ActionState
	Timers        *timer.Timer

	PID    pidctrl.Bank
	Chaser *chaser.Chaser

	PatrolOrigin vecmath.Vec3
	AssignedJob  *blackboard.Job

	LastAction Action
}

// New returns an Agent at pos with the given faction/psyche preset, ready to
// be stepped. HP starts full.
func New(id ids.Uid, name string, pos vecmath.Vec3, f faction.Component, p psyche.Psyche, maxHP float64) *Agent {
	return &Agent{
		ID:           id,
		Name:         name,
		Position:     pos,
		HP:           maxHP,
		MaxHP:        maxHP,
		Alignment:    alignment.Data{ID: alignment.Npc},
		Faction:      f,
		Psyche:       p,
		Awareness:    awareness.New(),
		Timers:       timer.New(),
		Chaser:       chaser.New(),
		PID:          newNavigationBank(pos),
		PatrolOrigin: pos,
	}
}

// Navigation PID gains: one X/Z pair steers the agent toward its chaser's
// current waypoint or goal every tick. Y is left unset (Bank's per-axis
// controllers are individually optional) since ground/surface agents hold
// altitude via the buoyancy component instead of a third PID axis.
const (
	navKp = 1.0
	navKi = 0.1
	navKd = 0.8
)

func newNavigationBank(pos vecmath.Vec3) pidctrl.Bank {
	return pidctrl.Bank{
		X:    pidctrl.New(navKp, navKi, navKd, pos.X),
		Z:    pidctrl.New(navKp, navKi, navKd, pos.Z),
		Mode: pidctrl.Braking,
	}
}

// MessageKind tags an inbox message's payload.
type MessageKind int

const (
	MsgSound MessageKind = iota
	MsgHurt
	MsgTalk
	MsgTradeOffer
	MsgTradeIssuer
)

// Message is a single inbox delivery: world sounds, damage notifications,
// and trade protocol messages that flip the behavior-state trading bits.
type Message struct {
	Kind       MessageKind
	Sound      perception.Sound
	DamagerPos *vecmath.Vec3
	Attacker   ids.EntityId
}

// HandleMessage applies a single inbox message's effect: sounds land in
// memory and bump awareness by their per-kind delta, a direct hurt forces
// Alert and locks a hostile target, trade messages flip behavior bits.
func (a *Agent) HandleMessage(m Message, now float64) {
	switch m.Kind {
	case MsgSound, MsgTalk:
		a.Sounds.Hear(m.Sound)
		a.Awareness.ChangeBy(m.Sound.Kind.AwarenessDelta())
	case MsgHurt:
		a.Awareness.SetMaximallyAware()
		target := a.Attacker(m)
		a.Target = &perception.Target{
			Target:       target,
			Hostile:      true,
			SelectedAt:   now,
			AggroOn:      true,
			LastKnownPos: m.DamagerPos,
		}
	case MsgTradeOffer:
		a.BehaviorState.Conditions[behaviorSlotTrading] = true
	case MsgTradeIssuer:
		a.BehaviorState.Conditions[behaviorSlotTrading] = true
		a.BehaviorState.Conditions[behaviorSlotTradingIssuer] = true
	}
}

// Attacker resolves which entity a hurt message should lock the target onto:
// the message's own attacker id if given, otherwise whatever was already
// targeted (so a hit from an unidentified source doesn't clear a standing
// target's identity).
func (a *Agent) Attacker(m Message) ids.EntityId {
	if m.Attacker != ids.NoEntity {
		return m.Attacker
	}
	if a.Target != nil {
		return a.Target.Target
	}
	return ids.NoEntity
}

// BuildDoctrineInput gathers the current tick's read-only view of the agent
// plus its environment into the shape Decide expects. nearby is the set of
// events within the caller's query radius around a.Position (the simulation
// driver queries the bus once per agent before calling this).
func (a *Agent) BuildDoctrineInput(nearby []events.Event, targetInRange bool) DoctrineInput {
	return DoctrineInput{
		Position:      a.Position,
		Faction:       a.Faction,
		Needs:         a.Needs,
		Awareness:     a.Awareness.CurrentState(),
		Buoyancy:      a.Buoyancy.Check(a.HP / safeMax(a.MaxHP)),
		NearbyEvents:  nearby,
		Psyche:        a.Psyche,
		HP:            a.HP,
		MaxHP:         a.MaxHP,
		Target:        a.Target,
		TargetInRange: targetInRange,
		PatrolOrigin:  a.PatrolOrigin,
		AssignedJob:   a.AssignedJob,
	}
}

func safeMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// ApplyDecision records the doctrine's verdict and applies any side effect
// it carried (the Harpoon rule's forced Alert).
func (a *Agent) ApplyDecision(d Decision) {
	a.LastAction = d.Action
	if d.ForceAlert {
		a.Awareness.SetMaximallyAware()
	}
}

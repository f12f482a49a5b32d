// Package events implements the world-event bus: an append-only collection
// of transient events for the current tick, spatially indexed for range
// queries. Events are single-tick by default; the driver clears the bus at
// end-of-tick.
package events

import (
	"tidewatch/faction"
	"tidewatch/ids"
	"tidewatch/spatialindex"
	"tidewatch/vecmath"
)

// Type enumerates world event kinds.
type Type int

const (
	StructuralFailure Type = iota
	DistressSignal
	ResourceEvent
	FloodingAlarm
	HarpoonEvent
	DiplomacyChange
	ResourceScarce
)

// Clamp returns t if it is a known variant, otherwise the zero value
// (StructuralFailure), so malformed external input degrades instead of
// smuggling an unknown kind onto the bus.
func (t Type) Clamp() Type {
	if t < StructuralFailure || t > ResourceScarce {
		return StructuralFailure
	}
	return t
}

// Event is a single transient world event.
type Event struct {
	Type          Type
	Position      vecmath.Vec3
	Radius        float64
	SourceID      ids.EntityId
	SourceFaction faction.ID
	Intensity     float64
	Metadata      string
}

// Bus is the tick-scoped, spatially-indexed publish/query substrate.
type Bus struct {
	events []Event
	index  *spatialindex.Index
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{index: spatialindex.New()}
}

// Publish appends e and inserts its position into the spatial index.
func (b *Bus) Publish(e Event) {
	e.Type = e.Type.Clamp()
	i := len(b.events)
	b.events = append(b.events, e)
	b.index.Insert(e.Position.To2(), i)
}

// QueryNearby coarse-filters via the spatial index, then exact-distance
// filters to range. An event at distance exactly range is included.
func (b *Bus) QueryNearby(pos vecmath.Vec3, rng float64) []Event {
	candidates := b.index.Query(pos.To2())
	var out []Event
	seen := make(map[int]struct{}, len(candidates))
	for _, i := range candidates {
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		e := b.events[i]
		if pos.Dist(e.Position) <= rng {
			out = append(out, e)
		}
	}
	return out
}

// ClearOld drops every event, both from the event list and its index.
// Queries on an empty bus return the empty list.
func (b *Bus) ClearOld() {
	b.events = b.events[:0]
	b.index.Clear()
}

// Events returns the current tick's events in publication order. Consumers
// must not rely on cross-tick ordering.
func (b *Bus) Events() []Event {
	return b.events
}

// Package ids defines the identifier types shared across the engine.
// Identifiers are never reused within a simulation run: each generator hands
// out monotonically increasing values for the lifetime of the process.
package ids

import "sync/atomic"

// Uid names an agent globally.
type Uid uint64

// SiteId names a trade site.
type SiteId uint32

// TradeId names a tradeable item.
type TradeId uint32

// EntityId names any addressable entity (agent, structure, etc) for
// perception/targeting purposes. It shares representation with Uid but is
// kept distinct so call sites document intent.
type EntityId uint64

// NoEntity is the zero value, used for synthetic/unowned sources (e.g. the
// command surface's publish_event).
const NoEntity EntityId = 0

// Generator hands out unique Uids. The zero value is ready to use and starts
// at 1, reserving 0 as "no agent".
type Generator struct {
	next uint64
}

// Next returns a fresh, never-before-issued Uid.
func (g *Generator) Next() Uid {
	return Uid(atomic.AddUint64(&g.next, 1))
}

// Package alignment categorizes how an agent relates to other agents:
// a closed enum of alignment kinds plus three pure relational predicates
// (hostile/passive/friendly) driven by a lookup table, so adding a variant
// surfaces every unhandled cell at the table rather than in scattered ifs.
package alignment

import "tidewatch/ids"

// ID is one of the six alignment categories.
type ID int

const (
	Wild ID = iota
	Enemy
	Npc
	Tame
	Owned
	Passive
)

func (id ID) String() string {
	switch id {
	case Wild:
		return "Wild"
	case Enemy:
		return "Enemy"
	case Npc:
		return "Npc"
	case Tame:
		return "Tame"
	case Owned:
		return "Owned"
	case Passive:
		return "Passive"
	default:
		return "Unknown"
	}
}

// Clamp maps an out-of-range value to the smallest variant (Wild) so
// malformed external input degrades instead of indexing out of bounds.
func (id ID) Clamp() ID {
	if id < Wild || id > Passive {
		return Wild
	}
	return id
}

// Data is an alignment plus the extra state Owned carries (its owner's Uid).
type Data struct {
	ID    ID
	Owner ids.Uid // only meaningful when ID == Owned
}

type relation struct {
	hostile, passive, friendly bool
}

// table[self][other] holds the non-Owned-Owned-special-case predicates.
// Unlisted cells default to the zero value (all false, i.e. neutral). The
// table is enumerated cell by cell, not derived from a general rule.
var table = [6][6]relation{
	Wild: {
		Wild:    {passive: true},
		Enemy:   {passive: true},
		Passive: {passive: true, friendly: true},
	},
	Enemy: {
		Wild:    {passive: true},
		Enemy:   {passive: true, friendly: true},
		Npc:     {hostile: true},
		Tame:    {hostile: true},
		Owned:   {hostile: true},
	},
	Npc: {
		Enemy:   {hostile: true},
		Npc:     {passive: true, friendly: true},
		Tame:    {passive: true, friendly: true},
		Passive: {passive: true, friendly: true},
	},
	Tame: {
		Npc:     {passive: true, friendly: true},
		Tame:    {passive: true, friendly: true},
		Passive: {passive: true, friendly: true},
	},
	Owned: {
		Enemy:   {hostile: true}, // either side Enemy -> hostile
		Passive: {passive: true, friendly: true},
		// Owned vs Owned is handled specially below (same-owner check).
	},
	Passive: {
		// every cell neutral: Passive on either side suppresses hostility
		// unconditionally, and Passive initiates nothing on its own.
	},
}

// Relations returns (hostile, passive, friendly) for the ordered pair
// (self, other).
func Relations(self, other Data) (hostile, passive, friendly bool) {
	s := self.ID.Clamp()
	o := other.ID.Clamp()

	if s == Owned && o == Owned {
		sameOwner := self.Owner == other.Owner
		return false, false, sameOwner
	}

	r := table[s][o]
	return r.hostile, r.passive, r.friendly
}

// Hostile reports whether self always attacks other.
func Hostile(self, other Data) bool {
	h, _, _ := Relations(self, other)
	return h
}

// PassiveTo reports whether self usually never attacks other.
func PassiveTo(self, other Data) bool {
	_, p, _ := Relations(self, other)
	return p
}

// FriendlyTo reports whether self never attacks other.
func FriendlyTo(self, other Data) bool {
	_, _, f := Relations(self, other)
	return f
}

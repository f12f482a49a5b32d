// Package needs tracks an agent's resource pool: coal/scrap/essence levels
// and the faction-specific criticality gate consumed by doctrine.
package needs

import "tidewatch/faction"

// Resources is the agent's resource pool.
type Resources struct {
	Coal, Scrap, Essence float64
}

// Clamp enforces the invariant that needs never go negative after a tick.
func (r *Resources) Clamp() {
	if r.Coal < 0 {
		r.Coal = 0
	}
	if r.Scrap < 0 {
		r.Scrap = 0
	}
	if r.Essence < 0 {
		r.Essence = 0
	}
}

// SyndicateCoalThreshold and CovenantScrapThreshold are the faction-specific
// criticality cutoffs. Package-level vars rather than consts so config can
// override them at bootstrap.
var (
	SyndicateCoalThreshold float64 = 20
	CovenantScrapThreshold float64 = 10
)

// IsCritical returns true iff the faction's dominant resource is below its
// threshold. Other factions never report critical.
func (r Resources) IsCritical(f faction.ID) bool {
	switch f {
	case faction.Syndicate:
		return r.Coal < SyndicateCoalThreshold
	case faction.Covenant:
		return r.Scrap < CovenantScrapThreshold
	default:
		return false
	}
}

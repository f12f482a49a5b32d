// Package faction holds an agent's faction membership and SEC profile:
// static/slow-changing attributes that modulate doctrine thresholds.
package faction

// ID enumerates the playable factions. The command-surface integer mapping
// (None=0, Syndicate=1, Covenant=2, Tidebound=3) is stable across versions.
type ID int

const (
	None ID = iota
	Syndicate
	Covenant
	Tidebound
)

func (id ID) String() string {
	switch id {
	case Syndicate:
		return "Syndicate"
	case Covenant:
		return "Covenant"
	case Tidebound:
		return "Tidebound"
	default:
		return "None"
	}
}

// Clamp maps an out-of-range faction id to None.
func (id ID) Clamp() ID {
	if id < None || id > Tidebound {
		return None
	}
	return id
}

// SECProfile carries five tunable weights consumed by doctrine.
type SECProfile struct {
	TruthAwareness       float64
	SufferingCoefficient float64
	WallDistrustIndex    float64
	Obedience            float64
	FearThreshold        float64
}

// NeutralProfile is the SEC profile agents carry when no per-faction default
// is configured: obedient enough to work blackboard jobs, with a unit fear
// multiplier so the body preset's flee threshold passes through unscaled.
// The zero SECProfile is not neutral: FearThreshold 0 disables fleeing
// outright and Obedience 0 ignores every assigned job.
func NeutralProfile() SECProfile {
	return SECProfile{Obedience: 0.8, FearThreshold: 1.0}
}

// Component is the agent's faction membership, rank, and SEC profile.
type Component struct {
	ID      ID
	Rank    int // 0..100
	Profile SECProfile
}

// PartialSECProfile is a partial update: nil fields leave prior values,
// matching set_agent_sec_profile's contract.
type PartialSECProfile struct {
	TruthAwareness       *float64
	SufferingCoefficient *float64
	WallDistrustIndex    *float64
	Obedience            *float64
	FearThreshold        *float64
}

// ApplyPartial merges p into the component's profile, leaving any nil field
// unchanged.
func (c *Component) ApplyPartial(p PartialSECProfile) {
	if p.TruthAwareness != nil {
		c.Profile.TruthAwareness = *p.TruthAwareness
	}
	if p.SufferingCoefficient != nil {
		c.Profile.SufferingCoefficient = *p.SufferingCoefficient
	}
	if p.WallDistrustIndex != nil {
		c.Profile.WallDistrustIndex = *p.WallDistrustIndex
	}
	if p.Obedience != nil {
		c.Profile.Obedience = *p.Obedience
	}
	if p.FearThreshold != nil {
		c.Profile.FearThreshold = *p.FearThreshold
	}
}

// Package psyche holds per-body-type perceptual/behavioral thresholds:
// sight/hearing distances, flee health, and the named body presets.
package psyche

import "math"

// Psyche is an agent's perceptual/behavioral profile.
type Psyche struct {
	FleeHealth             float64 // in [0,1]
	SightDist              float64
	ListenDist             float64
	AggroDist              *float64 // nil means unset
	IdleWanderFactor       float64
	AggroRangeMultiplier   float64
	ShouldStopPursuing     bool
}

// SearchDist is max(sight, listen) * aggroRangeMultiplier.
func (p Psyche) SearchDist() float64 {
	return math.Max(p.SightDist, p.ListenDist) * p.AggroRangeMultiplier
}

// Humanoid is the default body preset for newly added agents.
func Humanoid() Psyche {
	return Psyche{
		FleeHealth:           0.4,
		SightDist:            40,
		ListenDist:           20,
		IdleWanderFactor:     1.0,
		AggroRangeMultiplier: 1.0,
		ShouldStopPursuing:   true,
	}
}

// BirdLarge never stops pursuing and has no flee threshold.
func BirdLarge() Psyche {
	inf := math.Inf(1)
	return Psyche{
		FleeHealth:           0.0,
		SightDist:            250,
		ListenDist:           inf,
		IdleWanderFactor:     1.0,
		AggroRangeMultiplier: 1.0,
		ShouldStopPursuing:   false,
	}
}

// Wolf is a mid-aggression preset that stops pursuing once disengaged.
func Wolf() Psyche {
	inf := math.Inf(1)
	return Psyche{
		FleeHealth:           0.2,
		SightDist:            40,
		ListenDist:           inf,
		IdleWanderFactor:     1.0,
		AggroRangeMultiplier: 1.0,
		ShouldStopPursuing:   true,
	}
}

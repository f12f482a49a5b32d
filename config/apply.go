package config

import (
	"tidewatch/agent"
	"tidewatch/faction"
	"tidewatch/needs"
	"tidewatch/perception"
	"tidewatch/spatialindex"
)

// Apply pushes the config's tunables into the package-level vars that
// replaced what would otherwise be hard consts (spatialindex.CellSize,
// needs' per-faction thresholds, perception.MaxAge, agent's doctrine
// thresholds). Call once at startup, before constructing any
// simulation.Driver or spatialindex.Index.
func (c *EngineConfig) Apply() {
	if c.SpatialCellSize > 0 {
		spatialindex.CellSize = c.SpatialCellSize
	}
	if c.SoundMemoryTTL > 0 {
		perception.MaxAge = c.SoundMemoryTTL
	}
	if c.Doctrine.SyndicateCoalThreshold > 0 {
		needs.SyndicateCoalThreshold = c.Doctrine.SyndicateCoalThreshold
	}
	if c.Doctrine.CovenantScrapThreshold > 0 {
		needs.CovenantScrapThreshold = c.Doctrine.CovenantScrapThreshold
	}
	if c.Doctrine.FloodingAlarmRange > 0 {
		agent.FloodingAlarmRange = c.Doctrine.FloodingAlarmRange
	}
	if c.Doctrine.ObedienceJobThreshold > 0 {
		agent.ObedienceJobThreshold = c.Doctrine.ObedienceJobThreshold
	}
}

// DefaultSECProfile returns the configured default SEC profile for a faction
// name, falling back to faction.NeutralProfile for factions with no
// configured entry. The zero profile is never handed out here: it would
// disable the flee and assigned-job doctrine rules for every agent created
// through the command surface.
func (c *EngineConfig) DefaultSECProfile(factionName string) faction.SECProfile {
	if d, ok := c.SECProfileDefaults[factionName]; ok {
		return d.ToProfile()
	}
	return faction.NeutralProfile()
}

// Package config loads EngineConfig from YAML: per-faction SEC profile
// defaults, psyche presets, doctrine thresholds, spatial cell size, and
// sound-memory retention. Files are read through viper and the inner
// document re-marshalled via yaml.v3 into the typed config.
package config

import (
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tidewatch/faction"
	"tidewatch/psyche"
)

// OuterConfig is a {kind, def} envelope letting a single YAML file carry a
// discriminator alongside an arbitrary inner document.
type OuterConfig struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// SECProfileDefault is a named default SEC profile, keyed by faction name in
// YAML (e.g. "syndicate", "covenant", "tidebound"). Tags on this and the
// other inner config structs are all-lowercase: viper lowercases every key
// it reads, so that is what the yaml re-unmarshal of the def section sees.
type SECProfileDefault struct {
	TruthAwareness       float64 `yaml:"truthawareness"`
	SufferingCoefficient float64 `yaml:"sufferingcoefficient"`
	WallDistrustIndex    float64 `yaml:"walldistrustindex"`
	Obedience            float64 `yaml:"obedience"`
	FearThreshold        float64 `yaml:"fearthreshold"`
}

// neutralSECDefault mirrors faction.NeutralProfile in YAML-config shape.
func neutralSECDefault() SECProfileDefault {
	p := faction.NeutralProfile()
	return SECProfileDefault{
		TruthAwareness:       p.TruthAwareness,
		SufferingCoefficient: p.SufferingCoefficient,
		WallDistrustIndex:    p.WallDistrustIndex,
		Obedience:            p.Obedience,
		FearThreshold:        p.FearThreshold,
	}
}

// ToProfile converts the YAML-sourced default into a faction.SECProfile.
func (d SECProfileDefault) ToProfile() faction.SECProfile {
	return faction.SECProfile{
		TruthAwareness:       d.TruthAwareness,
		SufferingCoefficient: d.SufferingCoefficient,
		WallDistrustIndex:    d.WallDistrustIndex,
		Obedience:            d.Obedience,
		FearThreshold:        d.FearThreshold,
	}
}

// PsychePreset is a named perceptual/behavioral profile override, keyed by
// name in YAML (e.g. "humanoid", "birdLarge", "wolf").
type PsychePreset struct {
	FleeHealth           float64 `yaml:"fleehealth"`
	SightDist            float64 `yaml:"sightdist"`
	ListenDist           float64 `yaml:"listendist"`
	IdleWanderFactor     float64 `yaml:"idlewanderfactor"`
	AggroRangeMultiplier float64 `yaml:"aggrorangemultiplier"`
	ShouldStopPursuing   bool    `yaml:"shouldstoppursuing"`
}

// ToPsyche converts the YAML-sourced preset into a psyche.Psyche.
func (p PsychePreset) ToPsyche() psyche.Psyche {
	return psyche.Psyche{
		FleeHealth:           p.FleeHealth,
		SightDist:            p.SightDist,
		ListenDist:           p.ListenDist,
		IdleWanderFactor:     p.IdleWanderFactor,
		AggroRangeMultiplier: p.AggroRangeMultiplier,
		ShouldStopPursuing:   p.ShouldStopPursuing,
	}
}

// DoctrineThresholds mirrors the tunable numbers doctrine reads from package
// vars rather than consts, so deployments can retune action selection
// without a rebuild.
type DoctrineThresholds struct {
	SyndicateCoalThreshold float64 `yaml:"syndicatecoalthreshold"`
	CovenantScrapThreshold float64 `yaml:"covenantscrapthreshold"`
	FloodingAlarmRange     float64 `yaml:"floodingalarmrange"`
	ObedienceJobThreshold  float64 `yaml:"obediencejobthreshold"`
}

// EngineConfig is the whole of the engine's externally tunable state.
type EngineConfig struct {
	TickRate    float64 `mapstructure:"tickRate"`
	CommandAddr string  `mapstructure:"commandAddr"`
	ViewerAddr  string  `mapstructure:"viewerAddr"`

	SECProfileDefaults map[string]SECProfileDefault `mapstructure:"secProfileDefaults"`
	PsychePresets      map[string]PsychePreset      `mapstructure:"psychePresets"`
	Doctrine           DoctrineThresholds           `mapstructure:"doctrine"`
	SpatialCellSize    float64                      `mapstructure:"spatialCellSize"`
	SoundMemoryTTL     float64                      `mapstructure:"soundMemoryTtl"`
}

// Default returns the engine's built-in tunables, used whenever a YAML file
// omits a section rather than leaving the zero value in place. Every faction
// gets the neutral SEC profile, so flee and assigned-job doctrine stay live
// on a config-less bootstrap.
func Default() *EngineConfig {
	neutral := neutralSECDefault()
	return &EngineConfig{
		TickRate:    10,
		CommandAddr: ":8080",
		ViewerAddr:  ":8081",
		SECProfileDefaults: map[string]SECProfileDefault{
			"syndicate": neutral,
			"covenant":  neutral,
			"tidebound": neutral,
			"none":      neutral,
		},
		Doctrine: DoctrineThresholds{
			SyndicateCoalThreshold: 20,
			CovenantScrapThreshold: 10,
			FloodingAlarmRange:     50,
			ObedienceJobThreshold:  0.5,
		},
		SpatialCellSize: 100,
		SoundMemoryTTL:  180,
	}
}

// FromYaml reads path via viper (for the {kind, def} envelope and its env/flag
// overlay conveniences), then re-marshals the "def" section through yaml.v3
// into EngineConfig: viper's own struct decoding doesn't handle
// arbitrarily-shaped nested YAML as cleanly as a yaml.Unmarshal pass does.
func FromYaml(path string) (*EngineConfig, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")

	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}

	outer := &OuterConfig{}
	if err := vp.Unmarshal(outer); err != nil {
		return nil, err
	}

	spec, err := yaml.Marshal(outer.Def)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(spec, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

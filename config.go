package main

// config.go - Target profiles and environment options
//
// A target profile describes the machine the compiler emits for: its
// memory areas (generic RAM and placed banks), the default float
// precision and the symbolic per-thread index. Profiles load from TOML
// files; a built-in default models a generic 64K machine. Switches that
// make sense per invocation come from the environment.

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/xyproto/env/v2"
)

// ProfileArea is one memory region in a target profile
type ProfileArea struct {
	ID    string `toml:"id"`
	Kind  string `toml:"kind"` // "ram" or "bank"
	Start int    `toml:"start"`
	Size  int    `toml:"size"`
}

// TargetProfile is the machine description loaded from TOML
type TargetProfile struct {
	Name           string        `toml:"name"`
	FloatPrecision string        `toml:"float_precision"`
	ThreadIndex    string        `toml:"thread_index"`
	Areas          []ProfileArea `toml:"areas"`
}

// LoadProfile reads a target profile from a TOML file
func LoadProfile(path string) (*TargetProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading target profile: %w", err)
	}
	var profile TargetProfile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing target profile %s: %w", path, err)
	}
	return &profile, nil
}

// DefaultProfile models a generic 64K 8-bit machine: program RAM low,
// one dedicated bank for bulk payloads high.
func DefaultProfile() *TargetProfile {
	return &TargetProfile{
		Name:           "generic64k",
		FloatPrecision: "single",
		Areas: []ProfileArea{
			{ID: "ram", Kind: "ram", Start: 0x0200, Size: 0x5E00},
			{ID: "bank1", Kind: "bank", Start: 0x8000, Size: 0x4000},
		},
	}
}

// DefaultFloatPrecision resolves the profile's precision tag
func (p *TargetProfile) DefaultFloatPrecision() Precision {
	if p.FloatPrecision == "fast" {
		return PrecisionFast
	}
	return PrecisionSingle
}

// Apply populates a context's memory-area list and thread index from
// the profile.
func (p *TargetProfile) Apply(ctx *CompilationContext) error {
	for _, area := range p.Areas {
		kind := AreaRAM
		switch area.Kind {
		case "ram":
			kind = AreaRAM
		case "bank":
			kind = AreaBank
		default:
			return fmt.Errorf("target profile %s: unknown area kind %q", p.Name, area.Kind)
		}
		ctx.AddMemoryArea(area.ID, kind, area.Start, area.Size)
	}
	if p.ThreadIndex != "" {
		ctx.ThreadIndexName = p.ThreadIndex
	}
	return nil
}

// Options are the per-invocation switches, overridable from the
// environment (NBASIC_VERBOSE, NBASIC_OPTION_EXPLICIT, NBASIC_PROFILE).
type Options struct {
	Verbose        bool
	OptionExplicit bool
	ProfilePath    string
}

// OptionsFromEnv reads the environment overrides
func OptionsFromEnv() Options {
	return Options{
		Verbose:        env.Bool("NBASIC_VERBOSE"),
		OptionExplicit: env.Bool("NBASIC_OPTION_EXPLICIT"),
		ProfilePath:    env.Str("NBASIC_PROFILE", ""),
	}
}

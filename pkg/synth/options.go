// Package synth: authoritative registry of the engine's tunable
// options.
//
// This table mirrors the fields of Params and the clamping performed by
// their setters. Keep it up-to-date when parameters change so callers
// (CLI flags, env overrides, help text) read a single source of truth.

package synth

// OptionKind is a small enum for option value types used in metadata.
type OptionKind string

const (
	OptionInt   OptionKind = "int"
	OptionFloat OptionKind = "float"
	OptionBool  OptionKind = "bool"
	OptionUint  OptionKind = "uint"
)

// OptionSpec describes one tunable option: its identity, the short CLI
// flag that sets it (empty when the option is env-only), the
// environment variable override, its numeric range, and help text.
type OptionSpec struct {
	Name        string
	Flag        string // short flag name, without the dash
	Env         string // environment variable override
	Kind        OptionKind
	Min, Max    float64 // valid for int/float kinds
	Default     string  // textual default (for help only)
	Description string
}

// Options is the authoritative list of engine options.
var Options = []OptionSpec{
	{
		Name: "autism", Flag: "a", Env: "RESYNTH_AUTISM",
		Kind: OptionFloat, Min: 0, Max: 1, Default: "0.125",
		Description: "sensitivity to outliers in the per-channel difference curve",
	},
	{
		Name: "neighbors", Flag: "N", Env: "RESYNTH_NEIGHBORS",
		Kind: OptionInt, Min: 0, Max: MaxNeighbors, Default: "29",
		Description: "context pixels collected per output pixel",
	},
	{
		Name: "tries", Flag: "M", Env: "RESYNTH_TRIES",
		Kind: OptionInt, Min: 0, Max: MaxTries, Default: "192",
		Description: "random corpus probes per output pixel",
	},
	{
		Name: "magic", Flag: "m", Env: "RESYNTH_MAGIC",
		Kind: OptionInt, Min: 0, Max: MaxMagic, Default: "192",
		Description: "polishing decay per 256; 0 disables the polishing pass",
	},
	{
		Name: "scale", Flag: "s", Env: "RESYNTH_SCALE",
		Kind: OptionInt, Min: -16384, Max: 256, Default: "0",
		Description: "output size: >0 multiplies corpus dims, <0 absolute square edge, 0 means 256x256",
	},
	{
		Name: "seed", Flag: "S", Env: "RESYNTH_SEED",
		Kind: OptionUint, Default: "0",
		Description: "random seed; 0 derives one from the clock",
	},
	{
		Name: "htile", Flag: "tileh", Env: "RESYNTH_HTILE",
		Kind: OptionBool, Default: "false",
		Description: "make the output wrap horizontally",
	},
	{
		Name: "vtile", Flag: "tilev", Env: "RESYNTH_VTILE",
		Kind: OptionBool, Default: "false",
		Description: "make the output wrap vertically",
	},
}

// LookupOption returns the spec for name, or false when unknown.
func LookupOption(name string) (OptionSpec, bool) {
	for _, o := range Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// Clamp forces v into the option's numeric range.
func (o OptionSpec) Clamp(v float64) float64 {
	if o.Kind != OptionInt && o.Kind != OptionFloat {
		return v
	}
	return clampFloat(v, o.Min, o.Max)
}

package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/Fepozopo/resynth/pkg/synth"
	"github.com/joho/godotenv"
)

// LoadEnv loads an optional .env file from the working directory so
// RESYNTH_* overrides can live next to a texture project. A missing
// file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// envTruthy interprets common boolean spellings of an environment
// variable; unset or unrecognized values are false.
func envTruthy(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}

// The env*Option helpers resolve an option's environment override via
// the registry, falling back to def when the variable is unset or
// malformed. Numeric values are clamped to the option's range. For a
// bool option a set but unrecognized value reads as false.

func envBoolOption(name string, def bool) bool {
	o, ok := synth.LookupOption(name)
	if !ok || o.Env == "" || os.Getenv(o.Env) == "" {
		return def
	}
	return envTruthy(o.Env)
}

func envFloatOption(name string, def float64) float64 {
	o, ok := synth.LookupOption(name)
	if !ok || o.Env == "" {
		return def
	}
	v, err := strconv.ParseFloat(os.Getenv(o.Env), 64)
	if err != nil {
		return def
	}
	return o.Clamp(v)
}

func envIntOption(name string, def int) int {
	o, ok := synth.LookupOption(name)
	if !ok || o.Env == "" {
		return def
	}
	v, err := strconv.Atoi(os.Getenv(o.Env))
	if err != nil {
		return def
	}
	return int(o.Clamp(float64(v)))
}

func envUintOption(name string, def uint64) uint64 {
	o, ok := synth.LookupOption(name)
	if !ok || o.Env == "" {
		return def
	}
	v, err := strconv.ParseUint(os.Getenv(o.Env), 10, 64)
	if err != nil {
		return def
	}
	return v
}

// Package main provides CMA-ES search over prey steering parameters.
package main

import (
	"github.com/pthm-cable/meadow/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters. Only the
// prey side is searched; wolf parameters stay locked so every candidate
// faces the same hunting pressure.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Hare (movement_speed locked at 180)
			{Name: "hare_flee_weight", Path: "hare.flee.weight", Min: 0.5, Max: 6.0, Default: 2.5},
			{Name: "hare_walls_weight", Path: "hare.walls.weight", Min: 1.0, Max: 6.0, Default: 3.0},
			{Name: "hare_wander_force", Path: "hare.wander.max_force", Min: 0.05, Max: 0.6, Default: 0.2},
			{Name: "hare_flee_time", Path: "hare.max_flee_time", Min: 1.0, Max: 8.0, Default: 3.0},
			// Deer (movement_speed locked at 160)
			{Name: "deer_flee_weight", Path: "deer.flee.weight", Min: 0.5, Max: 6.0, Default: 2.0},
			{Name: "deer_evade_weight", Path: "deer.evade.weight", Min: 0.5, Max: 6.0, Default: 1.5},
			{Name: "deer_walls_weight", Path: "deer.walls.weight", Min: 1.0, Max: 6.0, Default: 3.0},
			{Name: "deer_wander_force", Path: "deer.wander.max_force", Min: 0.05, Max: 0.6, Default: 0.2},
			{Name: "deer_sep_radius", Path: "deer.separation.radius", Min: 15, Max: 60, Default: 30},
			{Name: "deer_sep_force", Path: "deer.separation.max_force", Min: 0.05, Max: 0.8, Default: 0.25},
			{Name: "deer_align_radius", Path: "deer.alignment.radius", Min: 25, Max: 120, Default: 50},
			{Name: "deer_align_force", Path: "deer.alignment.max_force", Min: 0.05, Max: 0.8, Default: 0.2},
			{Name: "deer_coh_radius", Path: "deer.cohesion.radius", Min: 25, Max: 120, Default: 50},
			{Name: "deer_coh_force", Path: "deer.cohesion.max_force", Min: 0.05, Max: 0.8, Default: 0.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Apply each parameter to the config
	// Order must match Specs order
	i := 0

	// Hare
	cfg.Hare.Flee.Weight = float32(clamped[i])
	i++
	cfg.Hare.Walls.Weight = float32(clamped[i])
	i++
	cfg.Hare.Wander.MaxForce = float32(clamped[i])
	i++
	cfg.Hare.MaxFleeTime = float32(clamped[i])
	i++

	// Deer
	cfg.Deer.Flee.Weight = float32(clamped[i])
	i++
	cfg.Deer.Evade.Weight = float32(clamped[i])
	i++
	cfg.Deer.Walls.Weight = float32(clamped[i])
	i++
	cfg.Deer.Wander.MaxForce = float32(clamped[i])
	i++
	cfg.Deer.Separation.Radius = float32(clamped[i])
	i++
	cfg.Deer.Separation.MaxForce = float32(clamped[i])
	i++
	cfg.Deer.Alignment.Radius = float32(clamped[i])
	i++
	cfg.Deer.Alignment.MaxForce = float32(clamped[i])
	i++
	cfg.Deer.Cohesion.Radius = float32(clamped[i])
	i++
	cfg.Deer.Cohesion.MaxForce = float32(clamped[i])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		// Hare
		float64(cfg.Hare.Flee.Weight),
		float64(cfg.Hare.Walls.Weight),
		float64(cfg.Hare.Wander.MaxForce),
		float64(cfg.Hare.MaxFleeTime),
		// Deer
		float64(cfg.Deer.Flee.Weight),
		float64(cfg.Deer.Evade.Weight),
		float64(cfg.Deer.Walls.Weight),
		float64(cfg.Deer.Wander.MaxForce),
		float64(cfg.Deer.Separation.Radius),
		float64(cfg.Deer.Separation.MaxForce),
		float64(cfg.Deer.Alignment.Radius),
		float64(cfg.Deer.Alignment.MaxForce),
		float64(cfg.Deer.Cohesion.Radius),
		float64(cfg.Deer.Cohesion.MaxForce),
	}
}

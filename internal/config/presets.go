package config

import "sort"

// Presets holds named configurations per domain. The chordal presets are
// the classical SLE(kappa) phases: simple curves for kappa <= 4,
// self-touching for 4 < kappa < 8 and space filling from 8 on.
var Presets = map[string]map[string]*Config{
	"chordal": {
		"sle2": {
			Domain: "chordal", Source: "brownian", Points: 2000, Tf: 1.0,
			Drive: DrivingConfig{Kappa: 2},
		},
		"sle8/3": {
			Domain: "chordal", Source: "brownian", Points: 2000, Tf: 1.0,
			Drive: DrivingConfig{Kappa: 8.0 / 3.0},
		},
		"sle4": {
			Domain: "chordal", Source: "brownian", Points: 2000, Tf: 1.0,
			Drive: DrivingConfig{Kappa: 4},
		},
		"sle6": {
			Domain: "chordal", Source: "brownian", Points: 2000, Tf: 1.0,
			Drive: DrivingConfig{Kappa: 6},
		},
		"sle8": {
			Domain: "chordal", Source: "brownian", Points: 2000, Tf: 1.0,
			Drive: DrivingConfig{Kappa: 8},
		},
		"ray": {
			Domain: "chordal", Source: "power", Points: 500, Tf: 1.0,
			Drive: DrivingConfig{Coeff: 2, Exponent: 0.5},
		},
		"fbm": {
			Domain: "chordal", Source: "fractional", Points: 2048, Tf: 1.0,
			Drive: DrivingConfig{Hurst: 0.7, B: 4},
		},
	},
	"radial": {
		"sle2": {
			Domain: "radial", Source: "brownian", Points: 1000, Tf: 2.0,
			Drive: DrivingConfig{Kappa: 2},
		},
		"sle6": {
			Domain: "radial", Source: "brownian", Points: 1000, Tf: 2.0,
			Drive: DrivingConfig{Kappa: 6},
		},
		"slit": {
			Domain: "radial", Source: "power", Points: 200, Tf: 2.0,
			Drive: DrivingConfig{Coeff: 0, Exponent: 1},
		},
	},
	"dipolar": {
		"sle4": {
			Domain: "dipolar", Source: "brownian", Points: 1500, Tf: 3.0, Width: 1.0,
			Drive: DrivingConfig{Kappa: 4},
		},
		"narrow": {
			Domain: "dipolar", Source: "brownian", Points: 1500, Tf: 3.0, Width: 0.5,
			Drive: DrivingConfig{Kappa: 4},
		},
	},
}

func GetPreset(domain, preset string) *Config {
	domainPresets, ok := Presets[domain]
	if !ok {
		return nil
	}
	cfg, ok := domainPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(domain string) []string {
	domainPresets, ok := Presets[domain]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(domainPresets))
	for name := range domainPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

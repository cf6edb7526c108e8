package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/loewner/internal/chordal"
	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/dipolar"
	"github.com/san-kum/loewner/internal/driving"
	"github.com/san-kum/loewner/internal/loewner"
	"github.com/san-kum/loewner/internal/metrics"
	"github.com/san-kum/loewner/internal/radial"
)

type Registry struct {
	domains map[string]func(*config.Config) (loewner.Domain, error)
	sources map[string]func(*config.Config) loewner.Source
}

func NewRegistry() *Registry {
	r := &Registry{
		domains: make(map[string]func(*config.Config) (loewner.Domain, error)),
		sources: make(map[string]func(*config.Config) loewner.Source),
	}

	r.domains["chordal"] = func(cfg *config.Config) (loewner.Domain, error) { return chordal.New(), nil }
	r.domains["radial"] = func(cfg *config.Config) (loewner.Domain, error) {
		return radial.Domain{Tracer: radial.Tracer{Strict: cfg.Strict}}, nil
	}
	r.domains["dipolar"] = func(cfg *config.Config) (loewner.Domain, error) { return dipolar.New(cfg.Width) }

	r.sources["brownian"] = func(cfg *config.Config) loewner.Source {
		return driving.BrownianSource{N: cfg.Points, Tf: cfg.Tf, Kappa: cfg.Drive.Kappa}
	}
	r.sources["fractional"] = func(cfg *config.Config) loewner.Source {
		return driving.FractionalSource{N: cfg.Points, Hurst: cfg.Drive.Hurst, B: cfg.Drive.B, Tf: cfg.Tf}
	}
	r.sources["power"] = func(cfg *config.Config) loewner.Source {
		return driving.PowerSource{N: cfg.Points, Tf: cfg.Tf, Coeff: cfg.Drive.Coeff, Exponent: cfg.Drive.Exponent}
	}

	return r
}

func (r *Registry) GetDomain(cfg *config.Config) (loewner.Domain, error) {
	fn, ok := r.domains[cfg.Domain]
	if !ok {
		return nil, fmt.Errorf("unknown domain: %s", cfg.Domain)
	}
	return fn(cfg)
}

func (r *Registry) GetSource(cfg *config.Config) (loewner.Source, error) {
	fn, ok := r.sources[cfg.Source]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}
	return fn(cfg), nil
}

// GetInverter returns the inverse map of a domain, or ErrNotInvertible.
func (r *Registry) GetInverter(cfg *config.Config) (loewner.Inverter, error) {
	d, err := r.GetDomain(cfg)
	if err != nil {
		return nil, err
	}
	inv, ok := d.(loewner.Inverter)
	if !ok {
		return nil, fmt.Errorf("%s: %w", cfg.Domain, loewner.ErrNotInvertible)
	}
	return inv, nil
}

func (r *Registry) ListDomains() []string {
	return sortedKeys(r.domains)
}

func (r *Registry) ListSources() []string {
	return sortedKeys(r.sources)
}

func (r *Registry) DefaultMetrics(domain string) []loewner.Metric {
	return metrics.Default(domain)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sgostarter/i/l"

	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/loewner"
	"github.com/san-kum/loewner/internal/metrics"
)

// RoundTripMetric names the metric recorded for invertible domains.
const RoundTripMetric = "round_trip_error"

type Result struct {
	Domain  string
	Source  string
	Seed    int64
	Times   loewner.Times
	Drive   loewner.Drive
	Trace   loewner.Trace
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg     *config.Config
	logger  l.Wrapper
	domain  loewner.Domain
	source  loewner.Source
	metrics []loewner.Metric
}

func New(cfg *config.Config, logger l.Wrapper) *Experiment {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Experiment{
		cfg:    cfg,
		logger: logger.WithFields(l.StringField(l.ClsKey, "experiment")),
	}
}

func (e *Experiment) Setup(r *Registry) error {
	domain, err := r.GetDomain(e.cfg)
	if err != nil {
		return err
	}
	source, err := r.GetSource(e.cfg)
	if err != nil {
		return err
	}
	e.domain = domain
	e.source = source
	e.metrics = r.DefaultMetrics(domain.Name())
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.domain == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := e.logger.WithFields(
		l.StringField("domain", e.domain.Name()),
		l.StringField("source", e.source.Name()),
		l.IntField("points", e.cfg.Points),
	)

	rng := rand.New(rand.NewSource(e.cfg.Seed))
	t, u, err := e.source.Generate(rng)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("driving function")
		return nil, fmt.Errorf("generate %s driving: %w", e.source.Name(), err)
	}

	start := time.Now()
	z, err := e.domain.Trace(t, u)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("trace")
		return nil, fmt.Errorf("%s trace: %w", e.domain.Name(), err)
	}
	elapsed := time.Since(start)

	result := &Result{
		Domain:  e.domain.Name(),
		Source:  e.source.Name(),
		Seed:    e.cfg.Seed,
		Times:   t,
		Drive:   u,
		Trace:   z,
		Metrics: metrics.Observe(e.metrics, t, z),
		Elapsed: elapsed,
	}
	if inv, ok := e.domain.(loewner.Inverter); ok && len(z) > 0 {
		result.Metrics[RoundTripMetric] = metrics.RoundTripError(inv, t, u, z)
	}

	logger.WithFields(l.StringField("elapsed", elapsed.String())).Debug("trace computed")
	return result, nil
}

// Run is a convenience for New, Setup and Run with a fresh registry.
func Run(ctx context.Context, cfg *config.Config, logger l.Wrapper) (*Result, error) {
	e := New(cfg, logger)
	if err := e.Setup(NewRegistry()); err != nil {
		return nil, err
	}
	return e.Run(ctx)
}

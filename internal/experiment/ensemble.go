package experiment

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sgostarter/i/l"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/loewner"
)

// Ensemble runs independent traces of one configuration with consecutive
// seeds. Each run owns its random source and buffers, so runs share nothing.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	workers   int
	logger    l.Wrapper
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, logger l.Wrapper) *Ensemble {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Ensemble{
		cfg:       cfg,
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   runtime.GOMAXPROCS(0),
		logger:    logger.WithFields(l.StringField(l.ClsKey, "ensemble")),
	}
}

// SetWorkers bounds the number of traces computed at once.
func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns < 0 {
		return nil, fmt.Errorf("%w: negative run count %d", loewner.ErrInvalidParameter, e.numRuns)
	}

	registry := NewRegistry()
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfgCopy := e.cfg.Clone()
			cfgCopy.Seed = e.seedStart + int64(idx)

			exp := New(cfgCopy, e.logger)
			if err := exp.Setup(registry); err != nil {
				return err
			}
			res, err := exp.Run(ctx)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.WithFields(l.ErrorField(err)).Error("ensemble failed")
		return nil, err
	}
	e.logger.WithFields(l.IntField("runs", e.numRuns), l.IntField("workers", e.workers)).Info("ensemble done")
	return results, nil
}

// Summary holds the mean and standard deviation of one metric over runs.
type Summary struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Summarize aggregates every metric present in the first result.
func Summarize(results []*Result) []Summary {
	if len(results) == 0 {
		return nil
	}

	names := sortedKeys(results[0].Metrics)
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		values := make([]float64, len(results))
		for i, r := range results {
			values[i] = r.Metrics[name]
		}
		mean, std := stat.MeanStdDev(values, nil)
		out = append(out, Summary{Name: name, Mean: mean, StdDev: std})
	}
	return out
}

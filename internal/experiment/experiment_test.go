package experiment

import (
	"context"
	"math/cmplx"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/loewner"
)

func smallConfig(domain string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Domain = domain
	cfg.Points = 200
	cfg.Seed = 7
	return cfg
}

var _ = Describe("Registry", func() {
	var r *Registry

	BeforeEach(func() {
		r = NewRegistry()
	})

	It("lists every geometry and source", func() {
		Expect(r.ListDomains()).To(Equal([]string{"chordal", "dipolar", "radial"}))
		Expect(r.ListSources()).To(Equal([]string{"brownian", "fractional", "power"}))
	})

	It("rejects unknown names", func() {
		cfg := smallConfig("hyperbolic")
		_, err := r.GetDomain(cfg)
		Expect(err).To(MatchError(ContainSubstring("unknown domain")))

		cfg = smallConfig("chordal")
		cfg.Source = "levy"
		_, err = r.GetSource(cfg)
		Expect(err).To(MatchError(ContainSubstring("unknown source")))
	})

	It("only inverts chordal traces", func() {
		_, err := r.GetInverter(smallConfig("chordal"))
		Expect(err).NotTo(HaveOccurred())

		for _, name := range []string{"radial", "dipolar"} {
			_, err := r.GetInverter(smallConfig(name))
			Expect(err).To(MatchError(loewner.ErrNotInvertible))
		}
	})

	It("validates the dipolar width", func() {
		cfg := smallConfig("dipolar")
		cfg.Width = 0
		_, err := r.GetDomain(cfg)
		Expect(err).To(MatchError(loewner.ErrInvalidWidth))
	})
})

var _ = Describe("Experiment", func() {
	ctx := context.Background()

	DescribeTable("starts every trace at the base point",
		func(domain string, base complex128) {
			res, err := Run(ctx, smallConfig(domain), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trace).To(HaveLen(200))
			Expect(res.Trace[0]).To(Equal(base))
			Expect(res.Trace.IsValid()).To(BeTrue())
		},
		Entry("chordal", "chordal", complex128(0)),
		Entry("radial", "radial", complex128(1)),
		Entry("dipolar", "dipolar", complex128(0)),
	)

	It("records the round trip error for chordal runs", func() {
		res, err := Run(ctx, smallConfig("chordal"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKey(RoundTripMetric))
		Expect(res.Metrics[RoundTripMetric]).To(BeNumerically("<", 1e-9))
		Expect(res.Metrics).To(HaveKey("max_height"))
	})

	It("keeps radial traces in the closed disk", func() {
		cfg := smallConfig("radial")
		cfg.Drive.Kappa = 6
		cfg.Strict = true
		res, err := Run(ctx, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).NotTo(HaveKey(RoundTripMetric))
		Expect(res.Metrics["max_modulus"]).To(BeNumerically("<=", 1+1e-9))
		for _, w := range res.Trace {
			Expect(cmplx.Abs(w)).To(BeNumerically("<=", 1+1e-9))
		}
	})

	It("is reproducible for a given seed", func() {
		a, err := Run(ctx, smallConfig("dipolar"), nil)
		Expect(err).NotTo(HaveOccurred())
		b, err := Run(ctx, smallConfig("dipolar"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Trace).To(Equal(b.Trace))
	})

	It("surfaces a negative spectrum", func() {
		cfg := smallConfig("chordal")
		cfg.Source = "fractional"
		cfg.Drive.Hurst = 1.5
		_, err := Run(ctx, cfg, nil)
		Expect(err).To(MatchError(loewner.ErrNegativeSpectrum))
	})

	It("refuses to run before setup", func() {
		_, err := New(smallConfig("chordal"), nil).Run(ctx)
		Expect(err).To(HaveOccurred())
	})

	It("honours a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Run(cctx, smallConfig("chordal"), nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs consecutive seeds independently", func() {
		cfg := smallConfig("chordal")
		cfg.Points = 100

		e := NewEnsemble(cfg, 6, 100, nil)
		e.SetWorkers(3)
		results, err := e.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(6))

		for i, res := range results {
			Expect(res.Seed).To(Equal(int64(100 + i)))
			single := cfg.Clone()
			single.Seed = res.Seed
			want, err := Run(context.Background(), single, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Trace).To(Equal(want.Trace))
		}
		Expect(cfg.Seed).To(Equal(int64(7)))

		summary := Summarize(results)
		Expect(summary).NotTo(BeEmpty())
		for _, s := range summary {
			Expect(s.StdDev).To(BeNumerically(">=", 0))
		}
	})

	It("fails as a whole when one run fails", func() {
		cfg := smallConfig("dipolar")
		cfg.Width = -1
		_, err := NewEnsemble(cfg, 3, 0, nil).Run(context.Background())
		Expect(err).To(MatchError(loewner.ErrInvalidWidth))
	})

	It("rejects a negative run count", func() {
		results, err := NewEnsemble(smallConfig("chordal"), -1, 1, nil).Run(context.Background())
		Expect(err).To(MatchError(loewner.ErrInvalidParameter))
		Expect(results).To(BeNil())
	})

	It("returns no results for zero runs", func() {
		results, err := NewEnsemble(smallConfig("chordal"), 0, 1, nil).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})

	It("summarizes nothing for no results", func() {
		Expect(Summarize(nil)).To(BeNil())
	})
})

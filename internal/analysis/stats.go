package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/loewner/internal/loewner"
)

// Increments returns u[i+1] - u[i].
func Increments(u []float64) []float64 {
	if len(u) < 2 {
		return []float64{}
	}
	inc := make([]float64, len(u)-1)
	for i := range inc {
		inc[i] = u[i+1] - u[i]
	}
	return inc
}

// EstimateKappa estimates the diffusion constant of a driving function as
// its quadratic variation divided by the elapsed time. For SLE(kappa)
// driving this converges to kappa as the grid is refined.
func EstimateKappa(t loewner.Times, u loewner.Drive) (float64, error) {
	if err := loewner.Validate(t, u); err != nil {
		return 0, err
	}
	if len(t) < 2 || t[len(t)-1] <= t[0] {
		return 0, fmt.Errorf("%w: need a positive time span", loewner.ErrInvalidParameter)
	}

	qv := 0.0
	for _, d := range Increments(u) {
		qv += d * d
	}
	return qv / (t[len(t)-1] - t[0]), nil
}

// EstimateHurst estimates the Hurst exponent of a uniformly sampled series
// from the slope of log <(u[i+k]-u[i])^2> against log k, k = 1..maxLag.
func EstimateHurst(u []float64, maxLag int) (float64, error) {
	if maxLag < 2 || len(u) < 2*maxLag {
		return 0, fmt.Errorf("%w: need maxLag >= 2 and at least %d points", loewner.ErrInvalidParameter, 2*maxLag)
	}

	logLag := make([]float64, 0, maxLag)
	logVar := make([]float64, 0, maxLag)
	for k := 1; k <= maxLag; k++ {
		sum := 0.0
		for i := 0; i+k < len(u); i++ {
			d := u[i+k] - u[i]
			sum += d * d
		}
		v := sum / float64(len(u)-k)
		if v <= 0 {
			return 0, fmt.Errorf("%w: constant series", loewner.ErrInvalidParameter)
		}
		logLag = append(logLag, math.Log(float64(k)))
		logVar = append(logVar, math.Log(v))
	}

	_, slope := stat.LinearRegression(logLag, logVar, nil, false)
	return slope / 2, nil
}

package metrics

import (
	"math"

	"github.com/san-kum/loewner/internal/loewner"
)

// RoundTripError inverts z with inv and returns the largest absolute
// deviation of the recovered time and driving values from t and u. The
// driving function is compared relative to u[0], which a trace cannot
// record.
func RoundTripError(inv loewner.Inverter, t loewner.Times, u loewner.Drive, z loewner.Trace) float64 {
	gotT, gotU := inv.Drive(z, false)

	worst := 0.0
	for i := range z {
		worst = math.Max(worst, math.Abs(gotT[i]-(t[i]-t[0])))
		worst = math.Max(worst, math.Abs(gotU[i]-(u[i]-u[0])))
	}
	return worst
}

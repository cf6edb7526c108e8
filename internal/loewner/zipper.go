package loewner

// ZipFunc is an elementary slit map. It replaces every element of z with
// its image under the map for one time step of length dt during which the
// driving function moves by du.
type ZipFunc func(z []complex128, dt, du float64) error

// Zip runs the zipper recurrence. It allocates a trace of len(t) points set
// to base and, walking the time index from last to first, applies zip to
// the suffix z[i:] of points already accumulated. The result is the
// composition of the elementary maps in reverse chronological order.
//
// Inputs are validated before any computation; t and u are never modified.
func Zip(t Times, u Drive, base complex128, zip ZipFunc) (Trace, error) {
	if err := Validate(t, u); err != nil {
		return nil, err
	}

	n := len(t)
	z := make(Trace, n)
	for i := range z {
		z[i] = base
	}

	for i := n - 1; i > 0; i-- {
		dt := t[i] - t[i-1]
		du := u[i] - u[i-1]
		if err := zip(z[i:], dt, du); err != nil {
			return nil, &StepError{Step: i, Time: t[i], Wrapped: err}
		}
	}

	return z, nil
}

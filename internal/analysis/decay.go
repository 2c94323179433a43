package analysis

import (
	"errors"
	"math"
)

var ErrShortTrace = errors.New("trace too short")

// DecayRate fits v[t] = v0 * rate^t by least squares on log v. Non-positive
// samples are skipped.
func DecayRate(values []float64) (float64, error) {
	var n, sumT, sumY, sumTT, sumTY float64
	for t, v := range values {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ft, y := float64(t), math.Log(v)
		n++
		sumT += ft
		sumY += y
		sumTT += ft * ft
		sumTY += ft * y
	}
	if n < 2 {
		return 0, ErrShortTrace
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0, ErrShortTrace
	}
	slope := (n*sumTY - sumT*sumY) / denom
	return math.Exp(slope), nil
}

// SettleTick returns the first index where the trace is at or below
// fraction of its first value, or -1 if it never gets there.
func SettleTick(values []float64, fraction float64) int {
	if len(values) == 0 {
		return -1
	}
	limit := values[0] * fraction
	for i, v := range values {
		if v <= limit {
			return i
		}
	}
	return -1
}

package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum removes the mean, applies a Hann window and returns the
// magnitudes of the first half of the spectrum. Any length works.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return []float64{}
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	spectrum := fft.FFTReal(x)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// Dominant returns the strongest bin above DC. Frequency in cycles per tick
// is bin/len(trace).
func Dominant(ps []float64) (bin int, power float64) {
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			bin, power = i, ps[i]
		}
	}
	return bin, power
}

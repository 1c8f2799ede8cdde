// Package interp provides the one-dimensional piecewise linear interpolation
// used to evaluate damage curves, with the endpoint clamping and repeated
// grid point handling of numpy.interp.
package interp

import (
	"math"
	"sort"
)

// Linear evaluates the piecewise linear function through (xp, fp) at x.
//
// xp must be non-decreasing and as long as fp. Outside [xp[0], xp[n-1]] the
// nearest endpoint value is returned. When xp repeats a point the right-most
// one wins, so a vertical jump evaluates to its upper branch. An empty grid
// yields NaN.
func Linear(x float64, xp, fp []float64) float64 {
	n := len(xp)
	if n == 0 || len(fp) < n || math.IsNaN(x) {
		return math.NaN()
	}
	if x >= xp[n-1] {
		return fp[n-1]
	}
	if x < xp[0] {
		return fp[0]
	}

	// xp[j] <= x < xp[j+1]
	j := sort.Search(n, func(i int) bool { return xp[i] > x }) - 1
	if xp[j] == x {
		return fp[j]
	}

	slope := (fp[j+1] - fp[j]) / (xp[j+1] - xp[j])
	y := slope*(x-xp[j]) + fp[j]
	if math.IsNaN(y) {
		y = slope*(x-xp[j+1]) + fp[j+1]
		if math.IsNaN(y) && fp[j] == fp[j+1] {
			y = fp[j]
		}
	}
	return y
}

// LinearSlice evaluates Linear for every element of xs.
func LinearSlice(xs, xp, fp []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Linear(x, xp, fp)
	}
	return out
}

// Arange returns the half-open sequence start, start+step, ... < stop.
// It returns nil when step is zero or the sequence would be empty.
func Arange(start, stop, step float64) []float64 {
	if step == 0 || math.IsNaN(step) {
		return nil
	}
	n := math.Ceil((stop - start) / step)
	if !(n > 0) || math.IsInf(n, 0) {
		return nil
	}
	out := make([]float64, int(n))
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Fill returns a slice of n copies of v.
func Fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

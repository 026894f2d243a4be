/*
Copyright © 2020 the helioremap authors.
This file is part of helioremap.

helioremap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

helioremap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with helioremap.  If not, see <http://www.gnu.org/licenses/>.
*/

package helioremap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Interp linearly interpolates the function sampled at the increasing
// points xp with values fp to x. Outside [xp[0], xp[len(xp)-1]] the
// nearest end value is returned.
func Interp(x float64, xp, fp []float64) float64 {
	n := len(xp)
	switch {
	case n == 0:
		return math.NaN()
	case math.IsNaN(x):
		return math.NaN()
	case n == 1 || x <= xp[0]:
		return fp[0]
	case x >= xp[n-1]:
		return fp[n-1]
	}
	i := floats.Within(xp, x)
	if i < 0 {
		return math.NaN()
	}
	f := (x - xp[i]) / (xp[i+1] - xp[i])
	return fp[i] + f*(fp[i+1]-fp[i])
}

// PeriodicInterp linearly interpolates the function sampled at points xp
// with values fp, which need not be sorted, to each point in x, treating
// the coordinate as periodic with the given period. The gap between the
// last and first samples is interpolated across the period boundary.
// If xp is empty or holds a non-finite value, every result is NaN.
func PeriodicInterp(x, xp, fp []float64, period float64) []float64 {
	out := make([]float64, len(x))
	if len(xp) == 0 || checkAxis("longitude", xp) != nil {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	n := len(xp)
	xs := make([]float64, n)
	for i, v := range xp {
		xs[i] = wrap(v, period)
	}
	inds := make([]int, n)
	floats.Argsort(xs, inds)

	// Pad one sample on each side from the other end of the period.
	xpp := make([]float64, n+2)
	fpp := make([]float64, n+2)
	copy(xpp[1:], xs)
	for i, j := range inds {
		fpp[i+1] = fp[j]
	}
	xpp[0], fpp[0] = xs[n-1]-period, fp[inds[n-1]]
	xpp[n+1], fpp[n+1] = xs[0]+period, fp[inds[0]]

	for i, v := range x {
		out[i] = Interp(wrap(v, period), xpp, fpp)
	}
	return out
}

func wrap(x, period float64) float64 {
	x = math.Mod(x, period)
	if x < 0 {
		x += period
	}
	if x >= period {
		x = 0
	}
	return x
}

// ResampleLongitude resamples values sampled at the (possibly unsorted
// and unevenly spaced) Carrington longitudes lon [rad] onto the target
// longitudes, using linear interpolation with a period of 2π.
// If only one source sample is given, its value is returned at every
// target longitude along with an Advisory.
func ResampleLongitude(target, lon, values []float64) ([]float64, []Advisory, error) {
	if len(lon) != len(values) {
		return nil, nil, fmt.Errorf("helioremap: resampling %d values at %d longitudes: %w", len(values), len(lon), ErrGridMismatch)
	}
	if len(lon) == 0 {
		return nil, nil, fmt.Errorf("helioremap: resampling an empty profile: %w", ErrGridMismatch)
	}
	if err := checkAxis("source longitude", lon); err != nil {
		return nil, nil, err
	}
	if err := checkAxis("target longitude", target); err != nil {
		return nil, nil, err
	}
	if len(lon) == 1 {
		out := make([]float64, len(target))
		for i := range out {
			out[i] = values[0]
		}
		return out, []Advisory{degenerate("longitude axis has a single sample; resampled profile is constant")}, nil
	}
	return PeriodicInterp(target, lon, values, twoPi), nil, nil
}

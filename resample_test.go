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
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestInterp(t *testing.T) {
	xp := []float64{-1, 0, 2}
	fp := []float64{10, 20, 40}
	tests := []struct {
		x, want float64
	}{
		{x: -5, want: 10},
		{x: -1, want: 10},
		{x: -0.5, want: 15},
		{x: 0, want: 20},
		{x: 1.5, want: 35},
		{x: 2, want: 40},
		{x: 3, want: 40},
	}
	for _, test := range tests {
		if have := Interp(test.x, xp, fp); have != test.want {
			t.Errorf("Interp(%g) = %g, want %g", test.x, have, test.want)
		}
	}
	if have := Interp(3, []float64{1}, []float64{7}); have != 7 {
		t.Errorf("single sample: %g", have)
	}
	if !math.IsNaN(Interp(math.NaN(), xp, fp)) {
		t.Error("NaN input should give NaN")
	}
}

func TestPeriodicInterpWrap(t *testing.T) {
	// Unsorted samples, with a gap across 0.
	xp := []float64{3, 1, 5}
	fp := []float64{30, 10, 50}
	x := []float64{0, twoPi, 1, 2, 5.5, -0.5, twoPi + 2}
	have := PeriodicInterp(x, xp, fp, twoPi)

	// Between 5 and 1+2π, the value goes from 50 to 10.
	gap := twoPi + 1 - 5
	at := func(l float64) float64 { return 50 + (10-50)*(l-5)/gap }
	want := []float64{at(twoPi), at(twoPi), 10, 20, at(5.5), at(twoPi - 0.5), 20}
	if !floats.EqualApprox(have, want, 1e-12) {
		t.Errorf("have %v, want %v", have, want)
	}
	if have[0] != have[1] {
		t.Errorf("P(0) = %g != P(2π) = %g", have[0], have[1])
	}
}

func TestResampleLongitudePeriodic(t *testing.T) {
	g := DefaultLongitudeGrid()
	src := make([]float64, len(g.Lon))
	lon := make([]float64, len(g.Lon))
	for i, l := range g.Lon {
		lon[i] = zeroToTwoPi(l + 0.3*math.Sin(l)) // uneven, wraps
		src[i] = 400 + 100*math.Cos(l)
	}
	target := []float64{0, math.Pi / 2, math.Pi, twoPi}
	have, adv, err := ResampleLongitude(target, lon, src)
	if err != nil {
		t.Fatal(err)
	}
	if len(adv) != 0 {
		t.Errorf("unexpected advisories %v", adv)
	}
	if different(have[0], have[3], 1e-14) {
		t.Errorf("P(0) = %g != P(2π) = %g", have[0], have[3])
	}
}

func TestResampleLongitudeConstant(t *testing.T) {
	lon := []float64{5.9, 0.2, 3.3, 1.1, 4}
	src := []float64{420, 420, 420, 420, 420}
	target := DefaultLongitudeGrid().Lon
	have, _, err := ResampleLongitude(target, lon, src)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range have {
		if v != 420 {
			t.Errorf("%d: %g != 420", i, v)
		}
	}
}

func TestResampleLongitudeDegenerate(t *testing.T) {
	have, adv, err := ResampleLongitude([]float64{0, 1, 2}, []float64{4}, []float64{3.5})
	if err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(have, []float64{3.5, 3.5, 3.5}) {
		t.Errorf("have %v", have)
	}
	if len(adv) != 1 || !errors.Is(adv[0], ErrDegenerateGrid) {
		t.Errorf("advisories %v should wrap %v", adv, ErrDegenerateGrid)
	}
}

func TestResampleLongitudeMismatch(t *testing.T) {
	if _, _, err := ResampleLongitude([]float64{0}, []float64{1, 2}, []float64{1}); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("have %v, want %v", err, ErrGridMismatch)
	}
	if _, _, err := ResampleLongitude([]float64{0}, nil, nil); !errors.Is(err, ErrGridMismatch) {
		t.Errorf("have %v, want %v", err, ErrGridMismatch)
	}
}

func TestResampleLongitudeNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		target := []float64{0.5, 1, 2}
		lon := []float64{0, bad, 1, 3}
		values := []float64{1, 2, 3, 4}
		if _, _, err := ResampleLongitude(target, lon, values); !errors.Is(err, ErrGridMismatch) {
			t.Errorf("source %g: have %v, want %v", bad, err, ErrGridMismatch)
		}
		target[1] = bad
		lon[1] = 0.5
		if _, _, err := ResampleLongitude(target, lon, values); !errors.Is(err, ErrGridMismatch) {
			t.Errorf("target %g: have %v, want %v", bad, err, ErrGridMismatch)
		}
	}
}

func TestPeriodicInterpNonFiniteSamples(t *testing.T) {
	have := PeriodicInterp([]float64{0.5, 1}, []float64{0, math.NaN(), 3}, []float64{1, 2, 3}, twoPi)
	for i, h := range have {
		if !math.IsNaN(h) {
			t.Errorf("%d: have %g, want NaN", i, h)
		}
	}
}

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

func TestNewLongitudeGrid(t *testing.T) {
	g, err := NewLongitudeGrid(0, twoPi, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{math.Pi / 4, 3 * math.Pi / 4, 5 * math.Pi / 4, 7 * math.Pi / 4}
	if !floats.EqualApprox(g.Lon, want, 1e-14) {
		t.Errorf("lon = %v, want %v", g.Lon, want)
	}
	if g.N != 4 || g.DLon != math.Pi/2 {
		t.Errorf("N = %d, DLon = %g", g.N, g.DLon)
	}

	g, err = NewLongitudeGrid(Degrees(90), Degrees(180), 1)
	if err != nil {
		t.Fatal(err)
	}
	if different(g.Lon[0], Degrees(135).Radians(), 1e-14) {
		t.Errorf("single cell at %g", g.Lon[0])
	}
}

func TestDefaultLongitudeGrid(t *testing.T) {
	g := DefaultLongitudeGrid()
	if g.N != DefaultNLong || len(g.Lon) != DefaultNLong {
		t.Fatalf("grid has %d (%d) cells", g.N, len(g.Lon))
	}
	if different(g.DLon, twoPi/DefaultNLong, 1e-14) {
		t.Errorf("DLon = %g", g.DLon)
	}
	if different(g.Lon[0], g.DLon/2, 1e-14) || different(g.Lon[DefaultNLong-1], twoPi-g.DLon/2, 1e-14) {
		t.Errorf("grid ends at %g and %g", g.Lon[0], g.Lon[DefaultNLong-1])
	}
	for i := 1; i < len(g.Lon); i++ {
		if !(g.Lon[i] > g.Lon[i-1]) || g.Lon[i] >= twoPi {
			t.Fatalf("lon[%d] = %g not increasing in [0, 2π)", i, g.Lon[i])
		}
	}
}

func TestNewLongitudeGridInvalid(t *testing.T) {
	tests := []struct {
		start, stop Angle
		n           int
	}{
		{start: 1, stop: 1, n: 10},
		{start: 2, stop: 1, n: 10},
		{start: -1, stop: 1, n: 10},
		{start: 0, stop: 7, n: 10},
		{start: 0, stop: 1, n: 0},
		{start: Angle(math.NaN()), stop: 1, n: 3},
	}
	for _, test := range tests {
		if _, err := NewLongitudeGrid(test.start, test.stop, test.n); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("%+v: have %v, want %v", test, err, ErrInvalidBounds)
		}
	}
}

func TestLongitudeGridSubset(t *testing.T) {
	g, err := NewLongitudeGrid(0, twoPi, 8)
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.Subset(Degrees(40), Degrees(140))
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{g.Lon[1], g.Lon[2]}; !floats.Equal(s.Lon, want) || s.N != 2 {
		t.Errorf("subset = %v, want %v", s.Lon, want)
	}
	// Wrapping through 0.
	s, err = g.Subset(Degrees(300), Degrees(30))
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{g.Lon[0], g.Lon[7]}; !floats.Equal(s.Lon, want) {
		t.Errorf("wrapped subset = %v, want %v", s.Lon, want)
	}
	if _, err := g.Subset(Degrees(1), Degrees(2)); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("have %v, want %v", err, ErrInvalidBounds)
	}
}

func TestLongitudeGridNearest(t *testing.T) {
	g, err := NewLongitudeGrid(0, twoPi, 8)
	if err != nil {
		t.Fatal(err)
	}
	n := g.Nearest(Degrees(-10))
	if n.N != 1 || n.Lon[0] != g.Lon[7] {
		t.Errorf("nearest to -10° = %v", n.Lon)
	}
	n = g.Nearest(Degrees(100))
	if n.Lon[0] != g.Lon[2] {
		t.Errorf("nearest to 100° = %v", n.Lon)
	}
}

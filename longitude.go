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

// DefaultNLong is the number of longitude cells in the downstream model's
// canonical grid.
const DefaultNLong = 128

// LongitudeGrid is a uniform sampling of Carrington longitude at cell
// centers.
type LongitudeGrid struct {
	Lon  []float64 // cell centers [rad], strictly increasing, in [0, 2π)
	DLon float64   // cell width [rad]
	N    int       // number of cells
}

// NewLongitudeGrid divides [start, stop) into n cells and returns their
// centers, so the first sample is half a cell after start and the last is
// half a cell before stop.
func NewLongitudeGrid(start, stop Angle, n int) (*LongitudeGrid, error) {
	lo, hi := float64(start), float64(stop)
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return nil, fmt.Errorf("helioremap: longitude grid bounds [%g, %g): %w", lo, hi, ErrInvalidBounds)
	case !(hi > lo):
		return nil, fmt.Errorf("helioremap: longitude grid stop (%g) must be > start (%g): %w", hi, lo, ErrInvalidBounds)
	case lo < 0 || hi > twoPi:
		return nil, fmt.Errorf("helioremap: longitude grid bounds [%g, %g) outside [0, 2π]: %w", lo, hi, ErrInvalidBounds)
	case n < 1:
		return nil, fmt.Errorf("helioremap: longitude grid needs at least one cell, got %d: %w", n, ErrInvalidBounds)
	}
	g := &LongitudeGrid{
		DLon: (hi - lo) / float64(n),
		N:    n,
		Lon:  make([]float64, n),
	}
	if n == 1 {
		g.Lon[0] = lo + g.DLon/2
		return g, nil
	}
	floats.Span(g.Lon, lo+g.DLon/2, hi-g.DLon/2)
	return g, nil
}

// DefaultLongitudeGrid returns the canonical full-circle grid of
// DefaultNLong cells.
func DefaultLongitudeGrid() *LongitudeGrid {
	g, err := NewLongitudeGrid(0, twoPi, DefaultNLong)
	if err != nil {
		panic(err)
	}
	return g
}

// Subset returns the cells of g whose centers lie within [start, stop].
// If start > stop the range wraps through 0.
func (g *LongitudeGrid) Subset(start, stop Angle) (*LongitudeGrid, error) {
	lo, hi := zeroToTwoPi(float64(start)), float64(stop)
	if hi != twoPi {
		hi = zeroToTwoPi(hi)
	}
	out := &LongitudeGrid{DLon: g.DLon}
	for _, l := range g.Lon {
		var in bool
		if lo <= hi {
			in = l >= lo && l <= hi
		} else {
			in = l >= lo || l <= hi
		}
		if in {
			out.Lon = append(out.Lon, l)
		}
	}
	out.N = len(out.Lon)
	if out.N == 0 {
		return nil, fmt.Errorf("helioremap: no longitude cells in [%g, %g]: %w", lo, hi, ErrInvalidBounds)
	}
	return out, nil
}

// Nearest returns the single-cell grid whose center is closest to lon,
// measured around the circle. The result is a degenerate grid.
func (g *LongitudeGrid) Nearest(lon Angle) *LongitudeGrid {
	l := zeroToTwoPi(float64(lon))
	best, bestD := 0, math.Inf(1)
	for i, c := range g.Lon {
		d := math.Abs(c - l)
		if d > math.Pi {
			d = twoPi - d
		}
		if d < bestD {
			best, bestD = i, d
		}
	}
	return &LongitudeGrid{Lon: []float64{g.Lon[best]}, DLon: g.DLon, N: 1}
}

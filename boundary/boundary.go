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

// Package boundary reads heliospheric boundary-condition maps from the
// output of coronal models and makes them available as helioremap maps.
// It also locates and downloads MAS model runs and caches loaded
// boundaries.
package boundary

import (
	"errors"
	"fmt"

	"github.com/helioremap/helioremap"
)

// ErrUnsupportedFormat is returned when a boundary file is not in a format
// that can be read directly.
var ErrUnsupportedFormat = errors.New("unsupported boundary file format")

// A Source provides the speed and tracer maps of a boundary condition.
// Speed maps are in km/s. Tracer maps hold the radial magnetic field.
// The two maps need not share a grid.
type Source interface {
	Speed() (*helioremap.Map, error)
	Tracer() (*helioremap.Map, error)
}

// Boundary is a loaded boundary condition.
type Boundary struct {
	Speed, Tracer *helioremap.Map
}

// Load reads both maps from s.
func Load(s Source) (*Boundary, error) {
	v, err := s.Speed()
	if err != nil {
		return nil, fmt.Errorf("boundary: loading speed: %w", err)
	}
	br, err := s.Tracer()
	if err != nil {
		return nil, fmt.Errorf("boundary: loading tracer: %w", err)
	}
	return &Boundary{Speed: v, Tracer: br}, nil
}

// Advisories returns the advisories attached to both maps.
func (b *Boundary) Advisories() []helioremap.Advisory {
	var a []helioremap.Advisory
	if b.Speed != nil {
		a = append(a, b.Speed.Advisories...)
	}
	if b.Tracer != nil {
		a = append(a, b.Tracer.Advisories...)
	}
	return a
}

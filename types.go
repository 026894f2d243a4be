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

	"github.com/ctessum/sparse"
)

// Profile holds the values of a field along a longitude axis at a single
// radius and latitude.
type Profile struct {
	Kind   FieldKind
	Radius Distance
	Lon    []float64 // Carrington longitude [rad]
	Values []float64

	// Advisories holds non-fatal warnings about the profile, e.g., that
	// its longitude axis is degenerate.
	Advisories []Advisory
}

// NewProfile creates a new profile, returning an error if the number of
// values does not match the number of longitudes or if any value is
// invalid for the given field kind. The slices are not copied.
func NewProfile(kind FieldKind, radius Distance, lon, values []float64) (*Profile, error) {
	p := &Profile{Kind: kind, Radius: radius, Lon: lon, Values: values}
	if err := p.check(); err != nil {
		return nil, err
	}
	if len(lon) == 1 {
		p.Advisories = append(p.Advisories, degenerate("%s profile has a single longitude", kind))
	}
	return p, nil
}

func (p *Profile) check() error {
	if p == nil {
		return fmt.Errorf("helioremap: nil profile: %w", ErrGridMismatch)
	}
	if len(p.Lon) != len(p.Values) {
		return fmt.Errorf("helioremap: profile has %d values but %d longitudes: %w", len(p.Values), len(p.Lon), ErrGridMismatch)
	}
	if len(p.Lon) == 0 {
		return fmt.Errorf("helioremap: empty %s profile: %w", p.Kind, ErrGridMismatch)
	}
	if err := checkAxis("longitude", p.Lon); err != nil {
		return err
	}
	return p.Kind.Check(p.Values)
}

// Map holds the values of a field on a longitude-latitude grid at a
// single radius. Data is indexed [longitude][latitude].
type Map struct {
	Kind   FieldKind
	Radius Distance
	Lon    []float64 // Carrington longitude [rad]
	Lat    []float64 // latitude [rad], strictly increasing

	Data *sparse.DenseArray

	// Advisories holds non-fatal warnings about the map, e.g., that one
	// of its axes is degenerate.
	Advisories []Advisory
}

// NewMap creates a new map, returning an error if the shape of data is not
// [len(lon), len(lat)], if lat is not strictly increasing within
// [-π/2, π/2], or if any value is invalid for the given field kind.
// The arguments are not copied.
func NewMap(kind FieldKind, radius Distance, lon, lat []float64, data *sparse.DenseArray) (*Map, error) {
	m := &Map{Kind: kind, Radius: radius, Lon: lon, Lat: lat, Data: data}
	if err := m.check(); err != nil {
		return nil, err
	}
	if len(lon) == 1 {
		m.Advisories = append(m.Advisories, degenerate("%s map has a single longitude", kind))
	}
	if len(lat) == 1 {
		m.Advisories = append(m.Advisories, degenerate("%s map has a single latitude", kind))
	}
	return m, nil
}

// check validates the shape, axes and values of m.
func (m *Map) check() error {
	if m == nil {
		return fmt.Errorf("helioremap: nil map: %w", ErrGridMismatch)
	}
	kind, data := m.Kind, m.Data
	if data == nil {
		return fmt.Errorf("helioremap: %s map has no data: %w", kind, ErrGridMismatch)
	}
	if len(data.Shape) != 2 || data.Shape[0] != len(m.Lon) || data.Shape[1] != len(m.Lat) {
		return fmt.Errorf("helioremap: %s map data shape %v does not match axes [%d %d]: %w",
			kind, data.Shape, len(m.Lon), len(m.Lat), ErrGridMismatch)
	}
	if len(m.Lon) == 0 || len(m.Lat) == 0 {
		return fmt.Errorf("helioremap: %s map has an empty axis: %w", kind, ErrGridMismatch)
	}
	if len(data.Elements) != len(m.Lon)*len(m.Lat) {
		return fmt.Errorf("helioremap: %s map has %d elements for shape %v: %w",
			kind, len(data.Elements), data.Shape, ErrGridMismatch)
	}
	if err := checkAxis("longitude", m.Lon); err != nil {
		return err
	}
	if err := checkLatitude(m.Lat); err != nil {
		return err
	}
	return kind.Check(data.Elements)
}

func checkAxis(name string, x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("helioremap: %s %d is %g: %w", name, i, v, ErrGridMismatch)
		}
	}
	return nil
}

func checkLatitude(lat []float64) error {
	if err := checkAxis("latitude", lat); err != nil {
		return err
	}
	for i, v := range lat {
		if v < -math.Pi/2 || v > math.Pi/2 {
			return fmt.Errorf("helioremap: latitude %d = %g outside [-π/2, π/2]: %w", i, v, ErrGridMismatch)
		}
		if i > 0 && !(v > lat[i-1]) {
			return fmt.Errorf("helioremap: latitude axis not strictly increasing at index %d: %w", i, ErrGridMismatch)
		}
	}
	return nil
}

// row copies the values at latitude index j into dst, which must have
// length len(m.Lon).
func (m *Map) row(j int, dst []float64) {
	nlat := len(m.Lat)
	for i := range dst {
		dst[i] = m.Data.Elements[i*nlat+j]
	}
}

// Polarity returns a copy of the map with every value replaced by its
// sign, for use as a magnetic polarity tracer.
func (m *Map) Polarity() *Map {
	out := &Map{
		Kind:       PolarityField,
		Radius:     m.Radius,
		Lon:        m.Lon,
		Lat:        m.Lat,
		Data:       m.Data.Copy(),
		Advisories: m.Advisories,
	}
	for i, v := range out.Data.Elements {
		switch {
		case v > 0:
			out.Data.Elements[i] = 1
		case v < 0:
			out.Data.Elements[i] = -1
		default:
			out.Data.Elements[i] = 0
		}
	}
	return out
}

// CanonicalizeLatitude converts an axis of colatitudes [rad, measured from
// the north pole] into latitudes and, if necessary, reverses the
// latitude axis and the second dimension of data so that latitude is
// increasing. data must be indexed [longitude][colatitude].
// New arrays are returned; the inputs are not modified.
func CanonicalizeLatitude(colatitude []float64, data *sparse.DenseArray) ([]float64, *sparse.DenseArray, error) {
	if data == nil || len(data.Shape) != 2 || data.Shape[1] != len(colatitude) {
		var shape []int
		if data != nil {
			shape = data.Shape
		}
		return nil, nil, fmt.Errorf("helioremap: colatitude axis length %d does not match data shape %v: %w",
			len(colatitude), shape, ErrGridMismatch)
	}
	n := len(colatitude)
	lat := make([]float64, n)
	for i, th := range colatitude {
		lat[i] = math.Pi/2 - th
	}
	out := data.Copy()
	if n < 2 || lat[n-1] > lat[0] {
		return lat, out, nil
	}
	nlon := data.Shape[0]
	for j := 0; j < n/2; j++ {
		k := n - 1 - j
		lat[j], lat[k] = lat[k], lat[j]
		for i := 0; i < nlon; i++ {
			a, b := i*n+j, i*n+k
			out.Elements[a], out.Elements[b] = out.Elements[b], out.Elements[a]
		}
	}
	return lat, out, nil
}

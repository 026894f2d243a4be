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

// MapProfileInward maps the speed profile v from rOuter to rInner and
// resamples the result onto the target longitude grid.
func MapProfileInward(v *Profile, rOuter, rInner Distance, target *LongitudeGrid, p MappingParameters) (*Profile, error) {
	lonNew, v0, err := mapProfile(v, rOuter, rInner, target, p)
	if err != nil {
		return nil, err
	}
	return resampledProfile(SpeedField, rInner, target, lonNew, v0, append([]Advisory(nil), v.Advisories...))
}

// MapTracerProfileInward maps the tracer profile tracer from rOuter to
// rInner along with the speed profile v, shifting each tracer sample by
// the longitude shift of the co-located speed sample, and resamples the
// result onto the target longitude grid. v and tracer must share a
// longitude axis.
func MapTracerProfileInward(v, tracer *Profile, rOuter, rInner Distance, target *LongitudeGrid, p MappingParameters) (*Profile, error) {
	if err := tracer.check(); err != nil {
		return nil, err
	}
	if err := checkKind("tracer profile", tracer.Kind, TracerField, PolarityField); err != nil {
		return nil, err
	}
	if v != nil && !floats.Equal(v.Lon, tracer.Lon) {
		return nil, fmt.Errorf("helioremap: speed and tracer profiles have different longitude axes: %w", ErrGridMismatch)
	}
	lonNew, _, err := mapProfile(v, rOuter, rInner, target, p)
	if err != nil {
		return nil, err
	}
	adv := append(append([]Advisory(nil), v.Advisories...), tracer.Advisories...)
	return resampledProfile(tracer.Kind, rInner, target, lonNew, tracer.Values, adv)
}

// mapProfile validates its arguments and maps the points of the speed
// profile v inward.
func mapProfile(v *Profile, rOuter, rInner Distance, target *LongitudeGrid, p MappingParameters) (lonNew, v0 []float64, err error) {
	if err = checkRadii(rOuter, rInner); err != nil {
		return
	}
	if err = p.Validate(); err != nil {
		return
	}
	if err = v.check(); err != nil {
		return
	}
	if err = checkKind("speed profile", v.Kind, SpeedField); err != nil {
		return
	}
	if target == nil || len(target.Lon) == 0 {
		err = fmt.Errorf("helioremap: empty target longitude grid: %w", ErrGridMismatch)
		return
	}
	v0, lonNew = make([]float64, len(v.Values)), make([]float64, len(v.Values))
	mapPoints(v0, lonNew, v.Values, v.Lon, float64(rOuter-rInner), p)
	return
}

func resampledProfile(kind FieldKind, r Distance, target *LongitudeGrid, lon, values []float64, adv []Advisory) (*Profile, error) {
	vals, a, err := ResampleLongitude(target.Lon, lon, values)
	if err != nil {
		return nil, err
	}
	out := &Profile{
		Kind:       kind,
		Radius:     r,
		Lon:        append([]float64(nil), target.Lon...),
		Values:     vals,
		Advisories: append(adv, a...),
	}
	if len(target.Lon) == 1 {
		out.Advisories = append(out.Advisories, degenerate("target longitude grid has a single cell"))
	}
	return out, nil
}

// MapProfileAt maps the speed profile v from rOuter to rInner and returns
// the mapped speed at longitude lon.
func MapProfileAt(v *Profile, rOuter, rInner Distance, lon Angle, p MappingParameters) (Speed, error) {
	if err := checkAxis("longitude", []float64{float64(lon)}); err != nil {
		return 0, err
	}
	target := &LongitudeGrid{Lon: []float64{zeroToTwoPi(float64(lon))}, N: 1}
	lonNew, v0, err := mapProfile(v, rOuter, rInner, target, p)
	if err != nil {
		return 0, err
	}
	return Speed(PeriodicInterp(target.Lon, lonNew, v0, twoPi)[0]), nil
}

// LatitudeProfile returns the longitude profile of m at latitude lat,
// interpolating linearly between the map's latitudes. Latitudes beyond
// the ends of the map's latitude axis take the value of the nearest end.
func (m *Map) LatitudeProfile(lat Angle) (*Profile, error) {
	if err := m.check(); err != nil {
		return nil, err
	}
	l := float64(lat)
	if math.IsNaN(l) || l < -math.Pi/2 || l > math.Pi/2 {
		return nil, fmt.Errorf("helioremap: latitude %g outside [-π/2, π/2]: %w", l, ErrInvalidBounds)
	}
	nlat := len(m.Lat)
	out := &Profile{
		Kind:       m.Kind,
		Radius:     m.Radius,
		Lon:        append([]float64(nil), m.Lon...),
		Values:     make([]float64, len(m.Lon)),
		Advisories: append([]Advisory(nil), m.Advisories...),
	}
	for i := range out.Values {
		out.Values[i] = Interp(l, m.Lat, m.Data.Elements[i*nlat:(i+1)*nlat])
	}
	return out, nil
}

// OnGrid returns a copy of the profile resampled onto the longitude
// grid g.
func (p *Profile) OnGrid(g *LongitudeGrid) (*Profile, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	if g == nil || len(g.Lon) == 0 {
		return nil, fmt.Errorf("helioremap: empty target longitude grid: %w", ErrGridMismatch)
	}
	return resampledProfile(p.Kind, p.Radius, g, p.Lon, p.Values, append([]Advisory(nil), p.Advisories...))
}

// At returns the value of the profile at longitude lon, interpolating
// periodically between samples. It returns NaN for an empty profile.
func (p *Profile) At(lon Angle) float64 {
	return PeriodicInterp([]float64{float64(lon)}, p.Lon, p.Values, twoPi)[0]
}

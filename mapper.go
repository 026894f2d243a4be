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
)

// checkRadii returns an error if mapping from rOuter to rInner is not an
// inward (or identity) mapping.
func checkRadii(rOuter, rInner Distance) error {
	if math.IsNaN(float64(rOuter)) || math.IsNaN(float64(rInner)) {
		return fmt.Errorf("helioremap: radii %g, %g km: %w", float64(rOuter), float64(rInner), ErrInvalidRadialOrdering)
	}
	if rOuter < rInner {
		return fmt.Errorf("helioremap: r_outer=%g km < r_inner=%g km: %w",
			float64(rOuter), float64(rInner), ErrInvalidRadialOrdering)
	}
	return nil
}

// innerSpeed inverts the residual acceleration law to find the speed at
// rInner of wind that has speed v at rOuter.
func innerSpeed(v, dr float64, p MappingParameters) float64 {
	return v / (1 + p.Alpha*(1-math.Exp(-dr/float64(p.RAccel))))
}

// transitTime integrates dr/v(r) from rInner to rOuter = rInner+dr, where
// v(r) = A - α v0 exp(-(r-rInner)/r_H) and A = v0(1+α). The two
// logarithmic terms of the closed form are combined so that no exp(r/r_H)
// is ever evaluated on its own.
func transitTime(v0, dr float64, p MappingParameters) float64 {
	if dr == 0 {
		return 0
	}
	rH := float64(p.RAccel)
	a := v0 * (1 + p.Alpha)
	return dr/a + rH/a*math.Log((a-p.Alpha*v0*math.Exp(-dr/rH))/v0)
}

// lonShift converts a transit time into the longitude the Sun rotates
// through during it.
func lonShift(t float64, p MappingParameters) float64 {
	return t / float64(p.SynodicPeriod) * twoPi
}

// MapPoint maps a solar wind parcel with speed v at Carrington longitude
// lon and radius rOuter inward to rInner, accounting for residual
// acceleration but not for stream interactions. It returns the speed at
// rInner and the longitude, in [0, 2π), at which the parcel appears there.
func MapPoint(v Speed, rOuter Distance, lon Angle, rInner Distance, p MappingParameters) (Speed, Angle, error) {
	if err := checkRadii(rOuter, rInner); err != nil {
		return 0, 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	if err := SpeedField.Check([]float64{float64(v)}); err != nil {
		return 0, 0, err
	}
	if err := checkAxis("longitude", []float64{float64(lon)}); err != nil {
		return 0, 0, err
	}
	dr := float64(rOuter - rInner)
	v0 := innerSpeed(float64(v), dr, p)
	phi := zeroToTwoPi(float64(lon) + lonShift(transitTime(v0, dr, p), p))
	return Speed(v0), Angle(phi), nil
}

// TransitTime returns the time wind with speed v at rOuter took to travel
// from rInner.
func TransitTime(v Speed, rOuter, rInner Distance, p MappingParameters) (Duration, error) {
	if err := checkRadii(rOuter, rInner); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := SpeedField.Check([]float64{float64(v)}); err != nil {
		return 0, err
	}
	dr := float64(rOuter - rInner)
	return Duration(transitTime(innerSpeed(float64(v), dr, p), dr, p)), nil
}

// MapPoints is the vectorized form of MapPoint for speeds v [km/s] at
// longitudes lon [rad] sharing the same two radii. It returns new slices.
func MapPoints(v, lon []float64, rOuter, rInner Distance, p MappingParameters) (v0, lonNew []float64, err error) {
	if len(v) != len(lon) {
		return nil, nil, fmt.Errorf("helioremap: %d speeds but %d longitudes: %w", len(v), len(lon), ErrGridMismatch)
	}
	if err = checkAxis("longitude", lon); err != nil {
		return nil, nil, err
	}
	if err = checkRadii(rOuter, rInner); err != nil {
		return nil, nil, err
	}
	if err = p.Validate(); err != nil {
		return nil, nil, err
	}
	if err = SpeedField.Check(v); err != nil {
		return nil, nil, err
	}
	v0, lonNew = make([]float64, len(v)), make([]float64, len(v))
	mapPoints(v0, lonNew, v, lon, float64(rOuter-rInner), p)
	return v0, lonNew, nil
}

// mapPoints is the unchecked kernel behind MapPoints.
func mapPoints(v0, lonNew, v, lon []float64, dr float64, p MappingParameters) {
	for i, vi := range v {
		v0[i] = innerSpeed(vi, dr, p)
		lonNew[i] = zeroToTwoPi(lon[i] + lonShift(transitTime(v0[i], dr, p), p))
	}
}

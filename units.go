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

	"github.com/ctessum/unit"
)

// SolarRadius is the nominal solar radius [km].
const SolarRadius = 695700.0

const (
	secondsPerDay = 86400.0
	twoPi         = 2 * math.Pi
)

// Speed is a speed in km/s.
type Speed float64

// Distance is a radial distance in km.
type Distance float64

// Angle is an angle in radians.
type Angle float64

// Duration is a time interval in seconds.
type Duration float64

// KmPerSecond returns a Speed of v km/s.
func KmPerSecond(v float64) Speed { return Speed(v) }

// KmPerSecond returns the speed in km/s.
func (s Speed) KmPerSecond() float64 { return float64(s) }

// Kilometers returns a Distance of r km.
func Kilometers(r float64) Distance { return Distance(r) }

// SolarRadii returns a Distance of r solar radii.
func SolarRadii(r float64) Distance { return Distance(r * SolarRadius) }

// Kilometers returns the distance in km.
func (d Distance) Kilometers() float64 { return float64(d) }

// SolarRadii returns the distance in solar radii.
func (d Distance) SolarRadii() float64 { return float64(d) / SolarRadius }

// Radians returns an Angle of a radians.
func Radians(a float64) Angle { return Angle(a) }

// Degrees returns an Angle of a degrees.
func Degrees(a float64) Angle { return Angle(a / 180 * math.Pi) }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Wrap returns the angle wrapped into [0, 2π).
func (a Angle) Wrap() Angle { return Angle(zeroToTwoPi(float64(a))) }

// Seconds returns a Duration of t seconds.
func Seconds(t float64) Duration { return Duration(t) }

// Days returns a Duration of t days.
func Days(t float64) Duration { return Duration(t * secondsPerDay) }

// Seconds returns the duration in seconds.
func (t Duration) Seconds() float64 { return float64(t) }

// Days returns the duration in days.
func (t Duration) Days() float64 { return float64(t) / secondsPerDay }

// zeroToTwoPi wraps x into [0, 2π).
func zeroToTwoPi(x float64) float64 {
	x = math.Mod(x, twoPi)
	if x < 0 {
		x += twoPi
	}
	if x >= twoPi { // -tiny + 2π rounds up to 2π
		x = 0
	}
	return x
}

// Unit returns s as an SI unit value [m/s].
func (s Speed) Unit() *unit.Unit { return unit.New(float64(s)*1000, unit.MeterPerSecond) }

// Unit returns d as an SI unit value [m].
func (d Distance) Unit() *unit.Unit { return unit.New(float64(d)*1000, unit.Meter) }

// Unit returns t as an SI unit value [s].
func (t Duration) Unit() *unit.Unit { return unit.New(float64(t), unit.Second) }

// Unit returns a as a unit value [rad].
func (a Angle) Unit() *unit.Unit { return unit.New(float64(a), radian) }

var radian = unit.Dimensions{unit.AngleDim: 1}

// SpeedFromUnit converts a speed carrying SI dimensions into a Speed.
func SpeedFromUnit(u *unit.Unit) (Speed, error) {
	if u == nil {
		return 0, fmt.Errorf("helioremap: nil speed")
	}
	if err := u.Check(unit.MeterPerSecond); err != nil {
		return 0, fmt.Errorf("helioremap: speed: %v", err)
	}
	return Speed(u.Value() / 1000), nil
}

// DistanceFromUnit converts a length carrying SI dimensions into a Distance.
func DistanceFromUnit(u *unit.Unit) (Distance, error) {
	if u == nil {
		return 0, fmt.Errorf("helioremap: nil distance")
	}
	if err := u.Check(unit.Meter); err != nil {
		return 0, fmt.Errorf("helioremap: distance: %v", err)
	}
	return Distance(u.Value() / 1000), nil
}

// DurationFromUnit converts a time carrying SI dimensions into a Duration.
func DurationFromUnit(u *unit.Unit) (Duration, error) {
	if u == nil {
		return 0, fmt.Errorf("helioremap: nil duration")
	}
	if err := u.Check(unit.Second); err != nil {
		return 0, fmt.Errorf("helioremap: duration: %v", err)
	}
	return Duration(u.Value()), nil
}

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

// FieldKind identifies the physical quantity held by a Profile or Map.
type FieldKind int

const (
	// SpeedField is the radial solar wind speed [km/s].
	SpeedField FieldKind = iota
	// TracerField is a passive tracer advected with the wind, e.g. Br.
	TracerField
	// PolarityField is a magnetic polarity tracer collapsed to ±1.
	PolarityField
)

// MaxSpeed is the largest solar wind speed accepted as physical [km/s].
const MaxSpeed = 3000.0

var fieldKinds = [...]struct {
	name, units string
	min, max    float64
	openMin     bool
}{
	SpeedField:    {name: "speed", units: "km/s", min: 0, max: MaxSpeed, openMin: true},
	TracerField:   {name: "tracer", units: "dimensionless", min: math.Inf(-1), max: math.Inf(1)},
	PolarityField: {name: "polarity", units: "dimensionless", min: -1, max: 1},
}

func (k FieldKind) valid() bool { return k >= SpeedField && k <= PolarityField }

func (k FieldKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return fieldKinds[k].name
}

// Units returns the units of the field.
func (k FieldKind) Units() string {
	if !k.valid() {
		return ""
	}
	return fieldKinds[k].units
}

// Range returns the valid value range of the field. For SpeedField the
// lower bound is exclusive.
func (k FieldKind) Range() (min, max float64) {
	if !k.valid() {
		return math.NaN(), math.NaN()
	}
	return fieldKinds[k].min, fieldKinds[k].max
}

// Check returns an error if any value is non-finite or outside the
// valid range of the field.
func (k FieldKind) Check(values []float64) error {
	if !k.valid() {
		return fmt.Errorf("helioremap: unknown field kind %d", int(k))
	}
	f := fieldKinds[k]
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("helioremap: %s value %d is %g: %w", f.name, i, v, ErrOutOfRange)
		}
		if v < f.min || v > f.max || (f.openMin && v == f.min) {
			return fmt.Errorf("helioremap: %s value %d = %g %s outside valid range: %w", f.name, i, v, f.units, ErrOutOfRange)
		}
	}
	return nil
}

// ParseFieldKind returns the field kind with the given name.
func ParseFieldKind(name string) (FieldKind, error) {
	for k := range fieldKinds {
		if fieldKinds[k].name == name {
			return FieldKind(k), nil
		}
	}
	return 0, fmt.Errorf("helioremap: unknown field kind %q", name)
}

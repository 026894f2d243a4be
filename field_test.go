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
)

func TestFieldKindCheck(t *testing.T) {
	tests := []struct {
		kind FieldKind
		vals []float64
		ok   bool
	}{
		{kind: SpeedField, vals: []float64{250, 800, MaxSpeed}, ok: true},
		{kind: SpeedField, vals: []float64{400, 0}},
		{kind: SpeedField, vals: []float64{-1}},
		{kind: SpeedField, vals: []float64{MaxSpeed + 1}},
		{kind: TracerField, vals: []float64{-1e6, 0, 3e5}, ok: true},
		{kind: TracerField, vals: []float64{math.NaN()}},
		{kind: TracerField, vals: []float64{math.Inf(-1)}},
		{kind: PolarityField, vals: []float64{-1, 0, 1, 0.5}, ok: true},
		{kind: PolarityField, vals: []float64{1.5}},
	}
	for i, test := range tests {
		err := test.kind.Check(test.vals)
		if test.ok && err != nil {
			t.Errorf("%d: %v", i, err)
		}
		if !test.ok && !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%d: have %v, want %v", i, err, ErrOutOfRange)
		}
	}
	if err := FieldKind(9).Check(nil); err == nil {
		t.Error("unknown field kind should fail")
	}
}

func TestFieldKindMetadata(t *testing.T) {
	if SpeedField.String() != "speed" || SpeedField.Units() != "km/s" {
		t.Errorf("speed field: %s [%s]", SpeedField, SpeedField.Units())
	}
	if min, max := PolarityField.Range(); min != -1 || max != 1 {
		t.Errorf("polarity range [%g, %g]", min, max)
	}
	if s := FieldKind(7).String(); s != "FieldKind(7)" {
		t.Errorf("unknown kind prints as %q", s)
	}
}

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
	"io"
	"math"

	"github.com/BurntSushi/toml"
)

// MappingParameters holds the physical constants of the residual
// acceleration model. It is passed by value into every mapping call and
// is never modified by them.
type MappingParameters struct {
	// Alpha is the dimensionless acceleration scale factor.
	Alpha float64

	// RAccel is the acceleration length scale r_H.
	RAccel Distance

	// SynodicPeriod is the solar rotation period seen from the observer.
	SynodicPeriod Duration
}

// DefaultParameters returns the constants used by the downstream
// radial transport model.
func DefaultParameters() MappingParameters {
	return MappingParameters{
		Alpha:         0.15,
		RAccel:        SolarRadii(50),
		SynodicPeriod: Days(27.2753),
	}
}

// Validate checks that the parameters are physical.
func (p MappingParameters) Validate() error {
	if !(p.Alpha >= 0) || math.IsInf(p.Alpha, 0) {
		return fmt.Errorf("helioremap: Alpha=%g but should be >= 0: %w", p.Alpha, ErrInvalidParameters)
	}
	if !(p.RAccel > 0) || math.IsInf(float64(p.RAccel), 0) {
		return fmt.Errorf("helioremap: RAccel=%g km but should be > 0: %w", float64(p.RAccel), ErrInvalidParameters)
	}
	if !(p.SynodicPeriod > 0) || math.IsInf(float64(p.SynodicPeriod), 0) {
		return fmt.Errorf("helioremap: SynodicPeriod=%g s but should be > 0: %w", float64(p.SynodicPeriod), ErrInvalidParameters)
	}
	return nil
}

func (p MappingParameters) String() string {
	return fmt.Sprintf("α=%g r_H=%v T_syn=%v", p.Alpha, p.RAccel.Unit(), p.SynodicPeriod.Unit())
}

// ParameterSource provides mapping parameters, for example from a
// configuration file or a transport model's constants table.
type ParameterSource interface {
	MappingParameters() (MappingParameters, error)
}

// parameterFile is the on-disk form of MappingParameters.
type parameterFile struct {
	// Alpha is the acceleration scale factor.
	Alpha *float64

	// RAccel is the acceleration length scale in solar radii.
	RAccel *float64

	// SynodicPeriod is the synodic rotation period in days.
	SynodicPeriod *float64
}

// LoadParameters reads mapping parameters from a TOML document, e.g.
//
//	Alpha = 0.15
//	RAccel = 50.0        # solar radii
//	SynodicPeriod = 27.2753 # days
//
// Every field is required.
func LoadParameters(r io.Reader) (MappingParameters, error) {
	var f parameterFile
	if _, err := toml.DecodeReader(r, &f); err != nil {
		return MappingParameters{}, fmt.Errorf("helioremap: reading parameters: %v", err)
	}
	names := []string{"Alpha", "RAccel", "SynodicPeriod"}
	for i, v := range []*float64{f.Alpha, f.RAccel, f.SynodicPeriod} {
		if v == nil {
			return MappingParameters{}, fmt.Errorf("helioremap: reading parameters: %s is not specified: %w", names[i], ErrInvalidParameters)
		}
	}
	p := MappingParameters{
		Alpha:         *f.Alpha,
		RAccel:        SolarRadii(*f.RAccel),
		SynodicPeriod: Days(*f.SynodicPeriod),
	}
	return p, p.Validate()
}

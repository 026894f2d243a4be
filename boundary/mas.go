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

package boundary

import (
	"fmt"

	"github.com/helioremap/helioremap"
)

// MASSpeedUnit is the MAS model's unit of speed [km/s].
const MASSpeedUnit = 481.0

// Names of the datasets in MAS helio boundary files.
const (
	masLonVar   = "fakeDim0" // longitude [rad]
	masColatVar = "fakeDim1" // colatitude [rad]
	masDataVar  = "Data-Set-2"
)

// MASRadius is the radius of the outer boundary of the MAS coronal
// model, where the helio boundary conditions are given.
var MASRadius = helioremap.SolarRadii(30)

// MAS holds the speed and radial magnetic field boundary conditions from
// a MAS (Magnetohydrodynamic Algorithm outside a Sphere) helio run.
type MAS struct {
	speed, tracer *helioremap.Map
}

// OpenMAS reads the vr and br helio boundary files of a MAS run.
// The files must be in netCDF format; HDF4 files as distributed are
// rejected with ErrUnsupportedFormat.
func OpenMAS(speedFile, tracerFile string) (*MAS, error) {
	v, err := readMAS(speedFile, helioremap.SpeedField, MASSpeedUnit)
	if err != nil {
		return nil, err
	}
	br, err := readMAS(tracerFile, helioremap.TracerField, 1)
	if err != nil {
		return nil, err
	}
	return &MAS{speed: v, tracer: br}, nil
}

// Speed returns the solar wind speed map [km/s].
func (m *MAS) Speed() (*helioremap.Map, error) { return m.speed, nil }

// Tracer returns the radial magnetic field map in model units.
func (m *MAS) Tracer() (*helioremap.Map, error) { return m.tracer, nil }

// readMAS reads one MAS boundary file and multiplies its values by scale.
func readMAS(path string, kind helioremap.FieldKind, scale float64) (*helioremap.Map, error) {
	f, ff, err := openNCF(path)
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	lon, err := readVar(f, masLonVar)
	if err != nil {
		return nil, fmt.Errorf("boundary: MAS file %s: %v", path, err)
	}
	colat, err := readVar(f, masColatVar)
	if err != nil {
		return nil, fmt.Errorf("boundary: MAS file %s: %v", path, err)
	}
	data, err := readVar(f, masDataVar)
	if err != nil {
		return nil, fmt.Errorf("boundary: MAS file %s: %v", path, err)
	}
	if len(lon.Shape) != 1 || len(colat.Shape) != 1 {
		return nil, fmt.Errorf("boundary: MAS file %s: axes must be 1-D: %w", path, helioremap.ErrGridMismatch)
	}
	data.Scale(scale)

	lat, data, err := helioremap.CanonicalizeLatitude(colat.Elements, data)
	if err != nil {
		return nil, fmt.Errorf("boundary: MAS file %s: %w", path, err)
	}
	m, err := helioremap.NewMap(kind, MASRadius, lon.Elements, lat, data)
	if err != nil {
		return nil, fmt.Errorf("boundary: MAS file %s: %w", path, err)
	}
	return m, nil
}

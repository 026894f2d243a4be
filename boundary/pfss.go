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
	"math"

	"github.com/ctessum/sparse"
	"github.com/helioremap/helioremap"
)

// Names of the variables in PFSS solar wind boundary files.
const (
	pfssCosThVar = "cos(th)"
	pfssPhVar    = "ph"
	pfssBrVar    = "br"
	pfssVrVar    = "vr"
)

// PFSSRadius is the radius of the source surface of the potential field
// model.
var PFSSRadius = helioremap.SolarRadii(2.5)

// PFSS holds the speed and radial magnetic field boundary conditions from
// a potential field source surface (PFSS) model run. Both maps share a
// grid.
type PFSS struct {
	speed, tracer *helioremap.Map
}

// OpenPFSS reads a PFSS boundary file in netCDF format. The 2-D variables
// "cos(th)", "ph", "br" and "vr" must all be indexed [θ][φ].
func OpenPFSS(path string) (*PFSS, error) {
	f, ff, err := openNCF(path)
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	vars := make(map[string]*sparse.DenseArray)
	for _, v := range []string{pfssCosThVar, pfssPhVar, pfssBrVar, pfssVrVar} {
		d, err := readVar(f, v)
		if err != nil {
			return nil, fmt.Errorf("boundary: PFSS file %s: %v", path, err)
		}
		if len(d.Shape) != 2 {
			return nil, fmt.Errorf("boundary: PFSS file %s: variable %q has shape %v, want 2-D: %w",
				path, v, d.Shape, helioremap.ErrGridMismatch)
		}
		vars[v] = d
	}
	shape := vars[pfssBrVar].Shape
	for v, d := range vars {
		if d.Shape[0] != shape[0] || d.Shape[1] != shape[1] {
			return nil, fmt.Errorf("boundary: PFSS file %s: variable %q has shape %v but br has %v: %w",
				path, v, d.Shape, shape, helioremap.ErrGridMismatch)
		}
	}
	nth, nph := shape[0], shape[1]

	// Colatitude from the first column of cos(θ), longitude from the
	// first row of φ.
	colat := make([]float64, nth)
	for j := range colat {
		c := vars[pfssCosThVar].Get(j, 0)
		if c < -1 || c > 1 {
			return nil, fmt.Errorf("boundary: PFSS file %s: cos(θ) = %g: %w", path, c, helioremap.ErrOutOfRange)
		}
		colat[j] = math.Pi/2 - math.Asin(c)
	}
	lon := make([]float64, nph)
	for i := range lon {
		lon[i] = vars[pfssPhVar].Get(0, i)
	}

	p := new(PFSS)
	for _, x := range []struct {
		v    string
		kind helioremap.FieldKind
		m    **helioremap.Map
	}{
		{v: pfssVrVar, kind: helioremap.SpeedField, m: &p.speed},
		{v: pfssBrVar, kind: helioremap.TracerField, m: &p.tracer},
	} {
		lat, data, err := helioremap.CanonicalizeLatitude(colat, rot90(vars[x.v]))
		if err != nil {
			return nil, fmt.Errorf("boundary: PFSS file %s: %w", path, err)
		}
		*x.m, err = helioremap.NewMap(x.kind, PFSSRadius, append([]float64(nil), lon...), lat, data)
		if err != nil {
			return nil, fmt.Errorf("boundary: PFSS file %s: %s: %w", path, x.v, err)
		}
	}
	return p, nil
}

// Speed returns the solar wind speed map [km/s].
func (p *PFSS) Speed() (*helioremap.Map, error) { return p.speed, nil }

// Tracer returns the radial magnetic field map.
func (p *PFSS) Tracer() (*helioremap.Map, error) { return p.tracer, nil }

// rot90 rotates the 2-D array a by 90° counter-clockwise, so that
// out[i][j] = a[j][n-1-i], where n is the number of columns of a.
func rot90(a *sparse.DenseArray) *sparse.DenseArray {
	nr, nc := a.Shape[0], a.Shape[1]
	out := sparse.ZerosDense(nc, nr)
	for i := 0; i < nc; i++ {
		for j := 0; j < nr; j++ {
			out.Elements[i*nr+j] = a.Elements[j*nc+nc-1-i]
		}
	}
	return out
}

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
	"sort"

	"github.com/ctessum/cdf"
	"github.com/helioremap/helioremap"
)

var descriptions = map[helioremap.FieldKind]string{
	helioremap.SpeedField:    "Radial solar wind speed",
	helioremap.TracerField:   "Passive tracer (radial magnetic field)",
	helioremap.PolarityField: "Magnetic polarity",
}

// WriteNCF writes maps to w in netCDF format. Each map is stored as a
// variable with the map's name, indexed [name_lon][name_lat], along with
// its longitude and latitude axes [rad] in the variables name_lon and
// name_lat.
func WriteNCF(w cdf.ReaderWriterAt, maps map[string]*helioremap.Map) error {
	// Sort the names so they write in the same order every time.
	names := make([]string, 0, len(maps))
	for n := range maps {
		names = append(names, n)
	}
	sort.Strings(names)

	var dims []string
	var lengths []int
	for _, n := range names {
		m := maps[n]
		if m == nil || m.Data == nil {
			return fmt.Errorf("boundary: writing netCDF: map %q is empty", n)
		}
		if len(m.Data.Elements) != len(m.Lon)*len(m.Lat) || len(m.Lon) == 0 || len(m.Lat) == 0 {
			return fmt.Errorf("boundary: writing netCDF: map %q: %w", n, helioremap.ErrGridMismatch)
		}
		dims = append(dims, n+"_lon", n+"_lat")
		lengths = append(lengths, len(m.Lon), len(m.Lat))
	}

	h := cdf.NewHeader(dims, lengths)
	h.AddAttribute("", "comment", "Solar wind boundary conditions")
	for _, n := range names {
		m := maps[n]
		h.AddVariable(n+"_lon", []string{n + "_lon"}, []float64{0})
		h.AddAttribute(n+"_lon", "units", "rad")
		h.AddAttribute(n+"_lon", "description", "Carrington longitude")
		h.AddVariable(n+"_lat", []string{n + "_lat"}, []float64{0})
		h.AddAttribute(n+"_lat", "units", "rad")
		h.AddAttribute(n+"_lat", "description", "Latitude")
		h.AddVariable(n, []string{n + "_lon", n + "_lat"}, []float64{0})
		h.AddAttribute(n, "units", m.Kind.Units())
		h.AddAttribute(n, "description", descriptions[m.Kind])
		h.AddAttribute(n, "kind", m.Kind.String())
		h.AddAttribute(n, "radius_km", []float64{m.Radius.Kilometers()})
	}
	h.Define()

	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("boundary: writing netCDF: %v", err)
	}
	for _, n := range names {
		m := maps[n]
		for v, data := range map[string][]float64{n + "_lon": m.Lon, n + "_lat": m.Lat, n: m.Data.Elements} {
			if _, err := f.Writer(v, nil, nil).Write(data); err != nil {
				return fmt.Errorf("boundary: writing variable %s to netCDF: %v", v, err)
			}
		}
	}
	return nil
}

// ReadNCF reads maps written by WriteNCF.
func ReadNCF(rw cdf.ReaderWriterAt) (map[string]*helioremap.Map, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("boundary: reading netCDF: %v", err)
	}
	out := make(map[string]*helioremap.Map)
	for _, n := range f.Header.Variables() {
		kindName, ok := f.Header.GetAttribute(n, "kind").(string)
		if !ok {
			continue // an axis
		}
		kind, err := helioremap.ParseFieldKind(kindName)
		if err != nil {
			return nil, fmt.Errorf("boundary: reading netCDF variable %s: %v", n, err)
		}
		var r helioremap.Distance
		if rr, ok := f.Header.GetAttribute(n, "radius_km").([]float64); ok && len(rr) == 1 {
			r = helioremap.Kilometers(rr[0])
		}
		lon, err := readVar(f, n+"_lon")
		if err != nil {
			return nil, err
		}
		lat, err := readVar(f, n+"_lat")
		if err != nil {
			return nil, err
		}
		data, err := readVar(f, n)
		if err != nil {
			return nil, err
		}
		m, err := helioremap.NewMap(kind, r, lon.Elements, lat.Elements, data)
		if err != nil {
			return nil, fmt.Errorf("boundary: reading netCDF variable %s: %w", n, err)
		}
		out[n] = m
	}
	return out, nil
}

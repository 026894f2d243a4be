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
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// checkKind returns an error if k is not one of kinds.
func checkKind(what string, k FieldKind, kinds ...FieldKind) error {
	for _, kk := range kinds {
		if k == kk {
			return nil
		}
	}
	return fmt.Errorf("helioremap: %s has kind %s, want one of %v: %w", what, k, kinds, ErrFieldKind)
}

// forEachRow concurrently calls f for every row index in [0, nrows),
// striping the rows across GOMAXPROCS goroutines.
func forEachRow(nrows int, f func(j int)) {
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for j := pp; j < nrows; j += nprocs {
				f(j)
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()
}

// MapMapInward maps the speed map v from rOuter to rInner. Each latitude
// row is mapped independently and resampled onto the map's own
// longitude axis. The returned map is at radius rInner.
func MapMapInward(v *Map, rOuter, rInner Distance, p MappingParameters) (*Map, error) {
	if err := checkRadii(rOuter, rInner); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := v.check(); err != nil {
		return nil, err
	}
	if err := checkKind("speed map", v.Kind, SpeedField); err != nil {
		return nil, err
	}
	nlon, nlat := len(v.Lon), len(v.Lat)
	out := &Map{
		Kind:       SpeedField,
		Radius:     rInner,
		Lon:        append([]float64(nil), v.Lon...),
		Lat:        append([]float64(nil), v.Lat...),
		Data:       sparse.ZerosDense(nlon, nlat),
		Advisories: append([]Advisory(nil), v.Advisories...),
	}
	if nlon == 1 {
		out.Advisories = append(out.Advisories, degenerate("speed map has a single longitude; mapped rows are constant"))
	}
	dr := float64(rOuter - rInner)

	forEachRow(nlat, func(j int) {
		row := make([]float64, nlon)
		v0, lonNew := make([]float64, nlon), make([]float64, nlon)
		v.row(j, row)
		mapPoints(v0, lonNew, row, v.Lon, dr, p)
		for i, val := range PeriodicInterp(v.Lon, lonNew, v0, twoPi) {
			out.Data.Elements[i*nlat+j] = val
		}
	})
	return out, nil
}

// MapTracerMapInward maps the tracer map tracer from rOuter to rInner
// using the transit times of the speed map v. The two maps need not share
// a grid: for every tracer latitude, v is first interpolated to that
// latitude and then, periodically, to the tracer's longitudes. The
// returned map has the tracer's grid and is at radius rInner.
func MapTracerMapInward(v, tracer *Map, rOuter, rInner Distance, p MappingParameters) (*Map, error) {
	if err := checkRadii(rOuter, rInner); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := v.check(); err != nil {
		return nil, err
	}
	if err := checkKind("speed map", v.Kind, SpeedField); err != nil {
		return nil, err
	}
	if err := tracer.check(); err != nil {
		return nil, err
	}
	if err := checkKind("tracer map", tracer.Kind, TracerField, PolarityField); err != nil {
		return nil, err
	}
	nlon, nlat := len(tracer.Lon), len(tracer.Lat)
	vnlon, vnlat := len(v.Lon), len(v.Lat)
	out := &Map{
		Kind:   tracer.Kind,
		Radius: rInner,
		Lon:    append([]float64(nil), tracer.Lon...),
		Lat:    append([]float64(nil), tracer.Lat...),
		Data:   sparse.ZerosDense(nlon, nlat),
	}
	out.Advisories = append(out.Advisories, v.Advisories...)
	out.Advisories = append(out.Advisories, tracer.Advisories...)
	if nlon == 1 {
		out.Advisories = append(out.Advisories, degenerate("tracer map has a single longitude; mapped rows are constant"))
	}
	dr := float64(rOuter - rInner)

	forEachRow(nlat, func(j int) {
		lat := tracer.Lat[j]

		// Speed at this latitude on the speed map's longitudes.
		vlat := make([]float64, vnlon)
		for i := range vlat {
			vlat[i] = Interp(lat, v.Lat, v.Data.Elements[i*vnlat:(i+1)*vnlat])
		}
		// Speed co-located with each tracer sample.
		vco := PeriodicInterp(tracer.Lon, v.Lon, vlat, twoPi)

		row := make([]float64, nlon)
		tracer.row(j, row)
		v0, lonNew := make([]float64, nlon), make([]float64, nlon)
		mapPoints(v0, lonNew, vco, tracer.Lon, dr, p)
		for i, val := range PeriodicInterp(tracer.Lon, lonNew, row, twoPi) {
			out.Data.Elements[i*nlat+j] = val
		}
	})
	return out, nil
}

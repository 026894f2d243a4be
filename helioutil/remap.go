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

package helioutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ctessum/cdf"
	"github.com/helioremap/helioremap"
	"github.com/helioremap/helioremap/boundary"
	"github.com/sirupsen/logrus"
)

// Names of the maps written by RemapBoundary.
const (
	SpeedName    = "vr"
	TracerName   = "br"
	PolarityName = "polarity"
)

func logAdvisories(log logrus.FieldLogger, adv []helioremap.Advisory) {
	for _, a := range adv {
		log.WithField("advisory", a.Message).Warn("degenerate grid")
	}
}

// RemapBoundary maps the speed and tracer maps of b from rOuter to
// rInner. If polarity is true, the sign of the tracer is mapped instead
// of the tracer itself. The results are keyed by SpeedName and either
// TracerName or PolarityName.
func RemapBoundary(b *boundary.Boundary, rOuter, rInner helioremap.Distance, p helioremap.MappingParameters, polarity bool, log logrus.FieldLogger) (map[string]*helioremap.Map, error) {
	log = log.WithFields(logrus.Fields{
		"r_outer": rOuter.SolarRadii(),
		"r_inner": rInner.SolarRadii(),
		"params":  p.String(),
	})
	log.Info("mapping boundary conditions")

	v, err := helioremap.MapMapInward(b.Speed, rOuter, rInner, p)
	if err != nil {
		return nil, fmt.Errorf("helioremap: mapping speed: %w", err)
	}
	tracer, name := b.Tracer, TracerName
	if polarity {
		tracer, name = tracer.Polarity(), PolarityName
	}
	tr, err := helioremap.MapTracerMapInward(b.Speed, tracer, rOuter, rInner, p)
	if err != nil {
		return nil, fmt.Errorf("helioremap: mapping %s: %w", name, err)
	}
	logAdvisories(log.WithField("map", SpeedName), v.Advisories)
	logAdvisories(log.WithField("map", name), tr.Advisories)
	return map[string]*helioremap.Map{SpeedName: v, name: tr}, nil
}

// RemapProfile takes the speed and tracer profiles of b at latitude lat,
// maps them from rOuter to rInner and resamples them onto g. The tracer
// profile is first resampled onto the longitudes of the speed profile.
func RemapProfile(b *boundary.Boundary, lat helioremap.Angle, g *helioremap.LongitudeGrid, rOuter, rInner helioremap.Distance, p helioremap.MappingParameters, polarity bool, log logrus.FieldLogger) (v, tracer *helioremap.Profile, err error) {
	vp, err := b.Speed.LatitudeProfile(lat)
	if err != nil {
		return nil, nil, err
	}
	tm, name := b.Tracer, TracerName
	if polarity {
		tm, name = tm.Polarity(), PolarityName
	}
	tp, err := tm.LatitudeProfile(lat)
	if err != nil {
		return nil, nil, err
	}
	tp, err = tp.OnGrid(&helioremap.LongitudeGrid{Lon: vp.Lon, N: len(vp.Lon)})
	if err != nil {
		return nil, nil, err
	}

	log = log.WithField("latitude_deg", lat.Degrees())
	v, err = helioremap.MapProfileInward(vp, rOuter, rInner, g, p)
	if err != nil {
		return nil, nil, fmt.Errorf("helioremap: mapping speed profile: %w", err)
	}
	tracer, err = helioremap.MapTracerProfileInward(vp, tp, rOuter, rInner, g, p)
	if err != nil {
		return nil, nil, fmt.Errorf("helioremap: mapping tracer profile: %w", err)
	}
	logAdvisories(log.WithField("profile", SpeedName), v.Advisories)
	logAdvisories(log.WithField("profile", name), tracer.Advisories)
	return v, tracer, nil
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// WriteGrid writes the cells of g to w as CSV with the columns index,
// lon_rad and lon_deg.
func WriteGrid(w io.Writer, g *helioremap.LongitudeGrid) error {
	c := csv.NewWriter(w)
	c.Write([]string{"index", "lon_rad", "lon_deg"})
	for i, l := range g.Lon {
		c.Write([]string{strconv.Itoa(i), formatFloat(l), formatFloat(helioremap.Angle(l).Degrees())})
	}
	c.Flush()
	return c.Error()
}

// WriteProfiles writes the mapped speed and tracer profiles, which must
// share a longitude axis, to w as CSV with the columns lon_rad, v_kms and
// tracer.
func WriteProfiles(w io.Writer, v, tracer *helioremap.Profile) error {
	if len(v.Lon) != len(tracer.Lon) {
		return fmt.Errorf("helioremap: speed and tracer profiles have %d and %d longitudes: %w",
			len(v.Lon), len(tracer.Lon), helioremap.ErrGridMismatch)
	}
	c := csv.NewWriter(w)
	c.Write([]string{"lon_rad", "v_kms", "tracer"})
	for i, l := range v.Lon {
		c.Write([]string{formatFloat(l), formatFloat(v.Values[i]), formatFloat(tracer.Values[i])})
	}
	c.Flush()
	return c.Error()
}

// WriteMaps writes maps to path in netCDF format. The file is written
// next to path and renamed, so path is left untouched if writing fails.
func WriteMaps(path string, maps map[string]*helioremap.Map) error {
	w, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("helioremap: creating output file: %v", err)
	}
	if err = writeMaps(w, maps); err != nil {
		w.Close()
		os.Remove(w.Name())
		return err
	}
	if err = w.Close(); err != nil {
		os.Remove(w.Name())
		return fmt.Errorf("helioremap: writing output file: %v", err)
	}
	if err = os.Chmod(w.Name(), 0644); err != nil {
		os.Remove(w.Name())
		return fmt.Errorf("helioremap: writing output file: %v", err)
	}
	if err = os.Rename(w.Name(), path); err != nil {
		os.Remove(w.Name())
		return fmt.Errorf("helioremap: writing output file: %v", err)
	}
	return nil
}

func writeMaps(w *os.File, maps map[string]*helioremap.Map) error {
	if err := boundary.WriteNCF(w, maps); err != nil {
		return err
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		return fmt.Errorf("helioremap: writing output file: %v", err)
	}
	return nil
}

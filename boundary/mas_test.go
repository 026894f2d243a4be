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
	"errors"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/helioremap/helioremap"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "boundary")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestOpenMAS(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	vFile, brFile := LocalFiles(dir, 2100)
	writeMAS(t, vFile, 0.75, 0.01)
	writeMAS(t, brFile, -2, 1)

	m, err := OpenMAS(vFile, brFile)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(m)
	if err != nil {
		t.Fatal(err)
	}
	if b.Speed.Kind != helioremap.SpeedField || b.Tracer.Kind != helioremap.TracerField {
		t.Errorf("kinds = %v, %v", b.Speed.Kind, b.Tracer.Kind)
	}
	if b.Speed.Radius != MASRadius {
		t.Errorf("radius = %v", b.Speed.Radius)
	}
	if len(b.Advisories()) != 0 {
		t.Errorf("advisories: %v", b.Advisories())
	}

	// Colatitude is converted to increasing latitude.
	nlat := len(masColat)
	wantLat := []float64{math.Pi/2 - 2.5, math.Pi/2 - 1.5, math.Pi/2 - 0.5}
	for j, l := range b.Speed.Lat {
		if different(l, wantLat[j], 1e-6) {
			t.Errorf("lat[%d] = %g, want %g", j, l, wantLat[j])
		}
	}
	for i := range masLon {
		if different(b.Speed.Lon[i], float64(masLon[i]), 1e-12) {
			t.Errorf("lon[%d] = %g", i, b.Speed.Lon[i])
		}
		for j := 0; j < nlat; j++ {
			raw := 10*float64(i) + float64(nlat-1-j)
			if have, want := b.Speed.Data.Get(i, j), MASSpeedUnit*(0.75+0.01*raw); different(have, want, 1e-6) {
				t.Errorf("v[%d][%d] = %g, want %g", i, j, have, want)
			}
			if have, want := b.Tracer.Data.Get(i, j), raw-2; have != want {
				t.Errorf("br[%d][%d] = %g, want %g", i, j, have, want)
			}
		}
	}
}

func TestOpenMASUnsupported(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	for name, magic := range map[string][]byte{
		"hdf4.hdf": append(append([]byte(nil), hdf4Magic...), 0, 0, 0, 0),
		"hdf5.h5":  hdf5Magic,
		"text.txt": []byte("vr,br\n"),
		"empty":    nil,
	} {
		path := filepath.Join(dir, name)
		if err := ioutil.WriteFile(path, magic, 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := OpenMAS(path, path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: have %v, want %v", name, err, ErrUnsupportedFormat)
		}
	}
}

func TestOpenMASMissingVariable(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "vr_r0.hdf")
	writeNCF(t, path, []string{"fakeDim0"}, []int{2}, []ncVar{
		{name: "fakeDim0", dims: []string{"fakeDim0"}, data: []float32{1, 2}},
	})
	if _, err := OpenMAS(path, path); err == nil {
		t.Error("expected an error for a file without data")
	}
}

func TestOpenPFSS(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "pfss.nc")
	writePFSS(t, path)

	p, err := OpenPFSS(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	nlon, nlat := len(pfssPh), len(pfssCosTh)
	if s := b.Speed.Data.Shape; s[0] != nlon || s[1] != nlat {
		t.Fatalf("shape = %v", s)
	}
	wantLat := []float64{-math.Pi / 6, 0, math.Pi / 6}
	for j, l := range b.Tracer.Lat {
		if math.Abs(l-wantLat[j]) > 1e-6 {
			t.Errorf("lat[%d] = %g, want %g", j, l, wantLat[j])
		}
	}
	for i := range b.Tracer.Lon {
		if b.Tracer.Lon[i] != float64(pfssPh[i]) {
			t.Errorf("lon[%d] = %g", i, b.Tracer.Lon[i])
		}
	}
	// The arrays are rotated by 90° and the latitude axis is then
	// reversed to increase.
	for i := 0; i < nlon; i++ {
		for j := 0; j < nlat; j++ {
			want := 10*float64(nlat-1-j) + float64(nlon-1-i)
			if have := b.Tracer.Data.Get(i, j); have != want {
				t.Errorf("br[%d][%d] = %g, want %g", i, j, have, want)
			}
			if have := b.Speed.Data.Get(i, j); have != 300+want {
				t.Errorf("vr[%d][%d] = %g, want %g", i, j, have, 300+want)
			}
		}
	}
	if b.Speed.Radius != PFSSRadius {
		t.Errorf("radius = %v", b.Speed.Radius)
	}
}

func TestOpenPFSSMismatch(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "pfss.nc")
	dims := []string{"th", "ph", "x"}
	writeNCF(t, path, dims, []int{1, 2, 3}, []ncVar{
		{name: "cos(th)", dims: dims[:2], data: []float32{0, 0}},
		{name: "ph", dims: dims[:2], data: []float32{0, 1}},
		{name: "br", dims: dims[:2], data: []float32{0, 1}},
		{name: "vr", dims: []string{"th", "x"}, data: []float32{1, 2, 3}},
	})
	if _, err := OpenPFSS(path); !errors.Is(err, helioremap.ErrGridMismatch) {
		t.Errorf("have %v, want %v", err, helioremap.ErrGridMismatch)
	}
}

func TestRot90(t *testing.T) {
	// [[0 1 2]
	//  [3 4 5]] -> [[2 5] [1 4] [0 3]]
	a := rot90(denseOf([]int{2, 3}, 0, 1, 2, 3, 4, 5))
	want := []float64{2, 5, 1, 4, 0, 3}
	if a.Shape[0] != 3 || a.Shape[1] != 2 {
		t.Fatalf("shape = %v", a.Shape)
	}
	for i, v := range a.Elements {
		if v != want[i] {
			t.Errorf("%d: %g != %g", i, v, want[i])
		}
	}
}

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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

type ncVar struct {
	name string
	dims []string
	data []float32
}

// writeNCF writes a netCDF file at path with the given dimensions and
// float variables.
func writeNCF(t *testing.T, path string, dims []string, lengths []int, vars []ncVar) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	h := cdf.NewHeader(dims, lengths)
	for _, v := range vars {
		h.AddVariable(v.name, v.dims, []float32{0})
	}
	h.Define()
	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	f, err := cdf.Create(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range vars {
		if _, err := f.Writer(v.name, nil, nil).Write(v.data); err != nil {
			t.Fatal(err)
		}
	}
}

var (
	masLon   = []float32{0.5, 2, 3.5, 5}
	masColat = []float32{0.5, 1.5, 2.5}
)

// writeMAS writes a MAS helio boundary file in netCDF format whose value
// at longitude i and colatitude j is base+step(10i+j).
func writeMAS(t *testing.T, path string, base, step float32) {
	data := make([]float32, 0, len(masLon)*len(masColat))
	for i := range masLon {
		for j := range masColat {
			data = append(data, base+step*(10*float32(i)+float32(j)))
		}
	}
	writeNCF(t, path, []string{"fakeDim0", "fakeDim1"}, []int{len(masLon), len(masColat)}, []ncVar{
		{name: "fakeDim0", dims: []string{"fakeDim0"}, data: masLon},
		{name: "fakeDim1", dims: []string{"fakeDim1"}, data: masColat},
		{name: "Data-Set-2", dims: []string{"fakeDim0", "fakeDim1"}, data: data},
	})
}

var (
	pfssCosTh = []float32{0.5, 0, -0.5}
	pfssPh    = []float32{0.5, 2, 3.5, 5}
)

// writePFSS writes a PFSS boundary file where br[θ j][φ i] = 10j+i and
// vr = 300+br.
func writePFSS(t *testing.T, path string) {
	nth, nph := len(pfssCosTh), len(pfssPh)
	var costh, ph, br, vr []float32
	for j := 0; j < nth; j++ {
		for i := 0; i < nph; i++ {
			costh = append(costh, pfssCosTh[j])
			ph = append(ph, pfssPh[i])
			br = append(br, 10*float32(j)+float32(i))
			vr = append(vr, 300+10*float32(j)+float32(i))
		}
	}
	dims := []string{"th", "ph"}
	writeNCF(t, path, dims, []int{nth, nph}, []ncVar{
		{name: "cos(th)", dims: dims, data: costh},
		{name: "ph", dims: dims, data: ph},
		{name: "br", dims: dims, data: br},
		{name: "vr", dims: dims, data: vr},
	})
}

func denseOf(shape []int, v ...float64) *sparse.DenseArray {
	a := sparse.ZerosDense(shape...)
	copy(a.Elements, v)
	return a
}

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
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

var (
	hdf4Magic = []byte{0x0e, 0x03, 0x13, 0x01}
	hdf5Magic = []byte("\x89HDF\r\n\x1a\n")
	cdfMagic  = []byte("CDF")
)

// openNCF opens the netCDF-classic file at path. HDF files are
// rejected with ErrUnsupportedFormat.
func openNCF(path string) (*cdf.File, *os.File, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("boundary: %v", err)
	}
	if err := checkFormat(ff, path); err != nil {
		ff.Close()
		return nil, nil, err
	}
	f, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, nil, fmt.Errorf("boundary: reading %s: %v", path, err)
	}
	return f, ff, nil
}

func checkFormat(r io.ReaderAt, path string) error {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return fmt.Errorf("boundary: reading %s: %v", path, err)
	}
	magic = magic[:n]
	switch {
	case bytes.HasPrefix(magic, hdf4Magic):
		return fmt.Errorf("boundary: %s is an HDF4 file; convert it to netCDF (e.g., with h4tonccf): %w", path, ErrUnsupportedFormat)
	case bytes.HasPrefix(magic, hdf5Magic):
		return fmt.Errorf("boundary: %s is an HDF5 file: %w", path, ErrUnsupportedFormat)
	case !bytes.HasPrefix(magic, cdfMagic):
		return fmt.Errorf("boundary: %s is not a netCDF file: %w", path, ErrUnsupportedFormat)
	}
	return nil
}

// readVar reads the whole of variable v from f as float64.
func readVar(f *cdf.File, v string) (*sparse.DenseArray, error) {
	if !hasVar(f, v) {
		return nil, fmt.Errorf("boundary: missing variable %q", v)
	}
	dims := f.Header.Lengths(v)
	for _, d := range dims {
		if d == 0 {
			return nil, fmt.Errorf("boundary: variable %q has a zero-length or record dimension", v)
		}
	}
	out := sparse.ZerosDense(dims...)
	r := f.Reader(v, nil, nil)
	buf := r.Zero(len(out.Elements))
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("boundary: reading variable %q: %v", v, err)
	}
	switch b := buf.(type) {
	case []float64:
		copy(out.Elements, b)
	case []float32:
		for i, x := range b {
			out.Elements[i] = float64(x)
		}
	case []int32:
		for i, x := range b {
			out.Elements[i] = float64(x)
		}
	case []int16:
		for i, x := range b {
			out.Elements[i] = float64(x)
		}
	default:
		return nil, fmt.Errorf("boundary: variable %q has unsupported type %T", v, buf)
	}
	return out, nil
}

func hasVar(f *cdf.File, v string) bool {
	for _, vv := range f.Header.Variables() {
		if vv == v {
			return true
		}
	}
	return false
}

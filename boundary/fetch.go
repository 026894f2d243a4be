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
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/go-cloud/blob"
	"github.com/helioremap/helioremap"
	"github.com/sirupsen/logrus"
)

// DefaultMASBaseURL is the location of the MAS run archive. Run
// directories are found at <base><CR>-medium/<run>/helio/.
const DefaultMASBaseURL = "http://www.predsci.com/data/runs/cr"

// Default orders of preference for MAS runs.
var (
	DefaultObservatories = []string{"hmi", "mdi", "solis", "gong", "mwo", "wso", "kpo"}
	DefaultRunTypes      = []string{"masp", "mas", "mast"}
	DefaultRunNumbers    = []string{"0201", "0101"}
)

// Run identifies a MAS model run for one Carrington rotation.
type Run struct {
	CR          int
	Observatory string // source of the photospheric magnetogram, e.g. "hmi"
	RunType     string // e.g. "masp"
	RunNumber   string // e.g. "0201"
}

func (r Run) String() string {
	return fmt.Sprintf("cr%d-medium/%s_%s_mas_std_%s", r.CR, r.Observatory, r.RunType, r.RunNumber)
}

// helioPath returns the path of variable v ("vr" or "br") of run r
// relative to the archive root.
func (r Run) helioPath(v string) string {
	return fmt.Sprintf("%d-medium/%s_%s_mas_std_%s/helio/%s_r0.hdf",
		r.CR, r.Observatory, r.RunType, r.RunNumber, v)
}

// LocalFiles returns the paths in dir at which the speed and radial
// magnetic field boundary files for Carrington rotation cr are stored.
func LocalFiles(dir string, cr int) (speed, tracer string) {
	c := strconv.Itoa(cr)
	return filepath.Join(dir, "HelioMAS_CR"+c+"_vr_r0.hdf"),
		filepath.Join(dir, "HelioMAS_CR"+c+"_br_r0.hdf")
}

// Converted returns the netCDF conversion of the downloaded HDF4 file
// path, the file with the same name and a .nc extension, if it exists.
// Otherwise it returns path.
func Converted(path string) string {
	nc := strings.TrimSuffix(path, filepath.Ext(path)) + ".nc"
	if exists(nc) {
		return nc
	}
	return path
}

// Files are the local boundary files for a Carrington rotation.
type Files struct {
	Speed, Tracer string

	// Run is the run the files were downloaded from, or nil if existing
	// files were used.
	Run *Run
}

// Fetcher finds MAS runs in an archive and downloads their helio boundary
// files. The archive may be on a web server or, for base URLs starting
// with "gs://", "s3://" or "file://", in blob storage.
type Fetcher struct {
	// BaseURL is the archive root. The Carrington rotation number is
	// appended directly to it.
	BaseURL string

	// Dir is the directory the files are downloaded to.
	Dir string

	// Observatories, RunTypes and RunNumbers are the orders of
	// preference of the run attributes. If any of them is set, files
	// already in Dir are replaced. Otherwise the defaults are used and
	// existing files are kept.
	Observatories, RunTypes, RunNumbers []string

	// Client is used for requests. If nil, http.DefaultClient is used.
	Client *http.Client

	// MaxRetries is the number of times a failed request is retried.
	MaxRetries uint64

	// NewBackOff, if not nil, returns the retry policy for one request.
	// By default it is exponential.
	NewBackOff func() backoff.BackOff

	Log logrus.FieldLogger
}

// NewFetcher returns a fetcher for the default archive that downloads
// into dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{
		BaseURL:    DefaultMASBaseURL,
		Dir:        dir,
		MaxRetries: 5,
		Log:        logrus.StandardLogger(),
	}
}

func (f *Fetcher) log() logrus.FieldLogger {
	if f.Log == nil {
		return logrus.StandardLogger()
	}
	return f.Log
}

func (f *Fetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *Fetcher) overwrite() bool {
	return f.Observatories != nil || f.RunTypes != nil || f.RunNumbers != nil
}

func orDefault(s, def []string) []string {
	if len(s) == 0 {
		return def
	}
	return s
}

// Runs returns the candidate runs for Carrington rotation cr in order of
// preference.
func (f *Fetcher) Runs(cr int) []Run {
	var runs []Run
	for _, o := range orDefault(f.Observatories, DefaultObservatories) {
		for _, t := range orDefault(f.RunTypes, DefaultRunTypes) {
			for _, n := range orDefault(f.RunNumbers, DefaultRunNumbers) {
				runs = append(runs, Run{CR: cr, Observatory: o, RunType: t, RunNumber: n})
			}
		}
	}
	return runs
}

// Fetch makes sure the speed and radial magnetic field boundary files
// for Carrington rotation cr are in f.Dir, downloading them from the
// most preferred available run if necessary. If no run is available,
// the returned error wraps helioremap.ErrDataUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, cr int) (*Files, error) {
	if cr <= 0 {
		return nil, fmt.Errorf("boundary: invalid Carrington rotation %d", cr)
	}
	speed, tracer := LocalFiles(f.Dir, cr)
	files := &Files{Speed: speed, Tracer: tracer}
	log := f.log().WithField("cr", cr)
	if !f.overwrite() && exists(Converted(speed)) && exists(Converted(tracer)) {
		log.Info("boundary files already exist")
		files.Speed, files.Tracer = Converted(speed), Converted(tracer)
		return files, nil
	}

	a, err := f.archive(ctx)
	if err != nil {
		return nil, err
	}
	for _, run := range f.Runs(cr) {
		ok, err := f.retry(ctx, run.helioPath("br"), func() (bool, error) {
			return a.exists(ctx, run.helioPath("br"))
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			log.WithField("run", run.String()).Debug("run not available")
			continue
		}
		if err := os.MkdirAll(f.Dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("boundary: %v", err)
		}
		log.WithField("run", run.String()).Info("downloading boundary files")
		for _, x := range [][2]string{{"br", tracer}, {"vr", speed}} {
			p, dst := run.helioPath(x[0]), x[1]
			if _, err := f.retry(ctx, p, func() (bool, error) { return true, a.download(ctx, p, dst) }); err != nil {
				return nil, err
			}
		}
		r := run
		files.Run = &r
		return files, nil
	}
	return nil, fmt.Errorf("boundary: no MAS run for CR%d with observatories %v, run types %v, run numbers %v: %w",
		cr, orDefault(f.Observatories, DefaultObservatories), orDefault(f.RunTypes, DefaultRunTypes),
		orDefault(f.RunNumbers, DefaultRunNumbers), helioremap.ErrDataUnavailable)
}

// permanentError is a failure that retrying will not fix.
type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }

// retry runs op until it succeeds, it returns a permanentError, the
// retries are exhausted or ctx is done.
func (f *Fetcher) retry(ctx context.Context, what string, op func() (bool, error)) (bool, error) {
	var b backoff.BackOff
	if f.NewBackOff != nil {
		b = f.NewBackOff()
	} else {
		b = backoff.NewExponentialBackOff()
	}
	b = backoff.WithContext(backoff.WithMaxRetries(b, f.MaxRetries), ctx)
	var ok bool
	var stop error
	err := backoff.RetryNotify(
		func() error {
			var err error
			ok, err = op()
			if p, isPermanent := err.(permanentError); isPermanent {
				stop = p.err
				return nil
			}
			return err
		},
		b,
		func(err error, d time.Duration) {
			f.log().WithFields(logrus.Fields{"path": what, "error": err}).Warnf("retrying in %v", d)
		},
	)
	if stop != nil {
		err = stop
	}
	if err != nil {
		return false, fmt.Errorf("boundary: %s: %v", what, err)
	}
	return ok, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// archive is a store of MAS runs.
type archive interface {
	// exists reports whether path is in the archive. A non-nil error
	// means the answer is not known and the request may be retried.
	exists(ctx context.Context, path string) (bool, error)
	download(ctx context.Context, path, dst string) error
}

func (f *Fetcher) archive(ctx context.Context) (archive, error) {
	if IsBlob(f.BaseURL) {
		u, err := url.Parse(f.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("boundary: %v", err)
		}
		b, prefix, err := OpenBucket(ctx, u)
		if err != nil {
			return nil, err
		}
		return &blobArchive{bucket: b, prefix: prefix}, nil
	}
	return &httpArchive{base: f.BaseURL, client: f.client()}, nil
}

type httpArchive struct {
	base   string
	client *http.Client
}

func (h *httpArchive) exists(ctx context.Context, path string) (bool, error) {
	req, err := http.NewRequest(http.MethodHead, h.base+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := h.client.Do(req.WithContext(ctx))
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return false, fmt.Errorf("HEAD %s: %s", h.base+path, resp.Status)
	}
	return resp.StatusCode < 400, nil
}

func (h *httpArchive) download(ctx context.Context, path, dst string) error {
	req, err := http.NewRequest(http.MethodGet, h.base+path, nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("GET %s: %s", h.base+path, resp.Status)
	}
	if resp.StatusCode >= 400 {
		return permanentError{fmt.Errorf("GET %s: %s", h.base+path, resp.Status)}
	}
	return writeFile(dst, resp.Body)
}

type blobArchive struct {
	bucket *blob.Bucket
	prefix string
}

func (b *blobArchive) exists(ctx context.Context, path string) (bool, error) {
	r, err := b.bucket.NewReader(ctx, b.prefix+path)
	if err != nil {
		return false, nil
	}
	r.Close()
	return true, nil
}

func (b *blobArchive) download(ctx context.Context, path, dst string) error {
	r, err := b.bucket.NewReader(ctx, b.prefix+path)
	if err != nil {
		return err
	}
	defer r.Close()
	return writeFile(dst, r)
}

// writeFile copies r to a temporary file next to dst and then renames it
// to dst, so dst is never partially written.
func writeFile(dst string, r io.Reader) error {
	w, err := ioutil.TempFile(filepath.Dir(dst), "."+filepath.Base(dst))
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		os.Remove(w.Name())
		return err
	}
	if err := w.Close(); err != nil {
		os.Remove(w.Name())
		return err
	}
	return os.Rename(w.Name(), dst)
}

// IsBlob returns whether the given path refers to blob storage
// (i.e., if it starts with "gs://", "s3://", or "file://").
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

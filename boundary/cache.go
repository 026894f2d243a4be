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
	"encoding/gob"
	"fmt"
	"runtime"

	"github.com/ctessum/requestcache"
	"github.com/helioremap/helioremap/internal/hash"
)

func init() {
	gob.Register(&Boundary{})
}

// request is a request for a boundary condition.
type request struct {
	Source string // "mas" or "pfss"
	CR     int
	Path   string
}

// Cache loads boundary conditions and keeps the most recently used ones
// in memory and, optionally, on disk. Concurrent requests for the same
// boundary are only loaded once. Results are shared between callers and
// must not be modified.
type Cache struct {
	fetcher *Fetcher
	cache   *requestcache.Cache
}

// NewCache returns a cache that holds up to size boundaries in memory and
// uses f to download MAS runs. If dir is not empty, boundaries are also
// stored in that directory.
func NewCache(f *Fetcher, size int, dir string) *Cache {
	c := &Cache{fetcher: f}
	funcs := []requestcache.CacheFunc{requestcache.Deduplicate(), requestcache.Memory(size)}
	if dir != "" {
		funcs = append(funcs, requestcache.Disk(dir, requestcache.MarshalGob, requestcache.UnmarshalGob))
	}
	c.cache = requestcache.NewCache(c.load, runtime.GOMAXPROCS(-1), funcs...)
	return c
}

func (c *Cache) load(ctx context.Context, r interface{}) (interface{}, error) {
	req := r.(request)
	switch req.Source {
	case "mas":
		if c.fetcher == nil {
			return nil, fmt.Errorf("boundary: no fetcher for MAS CR%d", req.CR)
		}
		files, err := c.fetcher.Fetch(ctx, req.CR)
		if err != nil {
			return nil, err
		}
		m, err := OpenMAS(Converted(files.Speed), Converted(files.Tracer))
		if err != nil {
			return nil, err
		}
		return Load(m)
	case "pfss":
		p, err := OpenPFSS(req.Path)
		if err != nil {
			return nil, err
		}
		return Load(p)
	default:
		return nil, fmt.Errorf("boundary: unknown source %q", req.Source)
	}
}

func (c *Cache) get(ctx context.Context, req request) (*Boundary, error) {
	result, err := c.cache.NewRequest(ctx, req, hash.Key(req)).Result()
	if err != nil {
		return nil, err
	}
	return result.(*Boundary), nil
}

// MAS returns the MAS boundary condition for Carrington rotation cr,
// downloading it if necessary.
func (c *Cache) MAS(ctx context.Context, cr int) (*Boundary, error) {
	return c.get(ctx, request{Source: "mas", CR: cr})
}

// PFSS returns the boundary condition in the PFSS file at path.
func (c *Cache) PFSS(ctx context.Context, path string) (*Boundary, error) {
	return c.get(ctx, request{Source: "pfss", Path: path})
}

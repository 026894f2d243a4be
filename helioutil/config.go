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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/helioremap/helioremap"
	"github.com/helioremap/helioremap/boundary"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// Config reads mapping settings from a viper configuration.
type Config struct {
	*viper.Viper
}

// MappingParameters returns the mapping parameters from ParamsFile if it
// is set, or otherwise from the Alpha, RAccel and SynodicPeriod options.
func (c Config) MappingParameters() (helioremap.MappingParameters, error) {
	if path := os.ExpandEnv(c.GetString("ParamsFile")); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return helioremap.MappingParameters{}, fmt.Errorf("helioremap: opening ParamsFile: %v", err)
		}
		defer f.Close()
		return helioremap.LoadParameters(f)
	}
	p := helioremap.MappingParameters{
		Alpha:         c.GetFloat64("Alpha"),
		RAccel:        helioremap.SolarRadii(c.GetFloat64("RAccel")),
		SynodicPeriod: helioremap.Days(c.GetFloat64("SynodicPeriod")),
	}
	return p, p.Validate()
}

var _ helioremap.ParameterSource = Config{}

// LongitudeGrid returns the output longitude grid given by the NLong,
// LonStart and LonStop options.
func LongitudeGrid(cfg *viper.Viper) (*helioremap.LongitudeGrid, error) {
	return helioremap.NewLongitudeGrid(
		helioremap.Degrees(cfg.GetFloat64("LonStart")),
		helioremap.Degrees(cfg.GetFloat64("LonStop")),
		cfg.GetInt("NLong"))
}

// radii returns the ROuter and RInner options.
func radii(cfg *viper.Viper) (rOuter, rInner helioremap.Distance) {
	return helioremap.SolarRadii(cfg.GetFloat64("ROuter")), helioremap.SolarRadii(cfg.GetFloat64("RInner"))
}

// toStringSliceE returns a string slice from a viper configuration,
// accounting for the fact that it might be a comma-separated list if it
// was set from an environment variable.
func toStringSliceE(s interface{}) ([]string, error) {
	if str, ok := s.(string); ok {
		str = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(str), "["), "]")
		if strings.TrimSpace(str) == "" {
			return nil, nil
		}
		var o []string
		for _, v := range strings.Split(str, ",") {
			o = append(o, strings.TrimSpace(v))
		}
		return o, nil
	}
	o, err := cast.ToStringSliceE(s)
	if err != nil {
		return nil, err
	}
	if len(o) == 0 {
		return nil, nil
	}
	return o, nil
}

// Fetcher returns a MAS run fetcher configured by the MAS.* and
// BoundaryDir options.
func Fetcher(cfg *viper.Viper) *boundary.Fetcher {
	f := boundary.NewFetcher(os.ExpandEnv(cfg.GetString("BoundaryDir")))
	f.BaseURL = os.ExpandEnv(cfg.GetString("MAS.BaseURL"))
	f.Log = Log
	for _, x := range []struct {
		name string
		dst  *[]string
	}{
		{name: "MAS.Observatories", dst: &f.Observatories},
		{name: "MAS.RunTypes", dst: &f.RunTypes},
		{name: "MAS.RunNumbers", dst: &f.RunNumbers},
	} {
		v, err := toStringSliceE(cfg.Get(x.name))
		if err != nil {
			Log.WithField("option", x.name).Warnf("ignoring invalid value: %v", err)
			continue
		}
		*x.dst = v
	}
	return f
}

// LoadBoundary loads the boundary conditions of the configured Source.
// If CacheDir is set, loaded boundaries are also kept there.
func LoadBoundary(ctx context.Context, cfg *viper.Viper) (*boundary.Boundary, error) {
	c := boundary.NewCache(Fetcher(cfg), 1, os.ExpandEnv(cfg.GetString("CacheDir")))
	var b *boundary.Boundary
	var err error
	switch src := strings.ToLower(cfg.GetString("Source")); src {
	case "mas":
		cr := cfg.GetInt("MAS.CR")
		if cr <= 0 {
			return nil, fmt.Errorf("helioremap: MAS.CR must be set to a Carrington rotation number")
		}
		b, err = c.MAS(ctx, cr)
	case "pfss":
		path := os.ExpandEnv(cfg.GetString("PFSS.File"))
		if path == "" {
			return nil, fmt.Errorf("helioremap: PFSS.File must be set for the pfss source")
		}
		b, err = c.PFSS(ctx, path)
	default:
		return nil, fmt.Errorf("helioremap: invalid Source %q; it should be mas or pfss", src)
	}
	if err != nil {
		return nil, err
	}
	logAdvisories(Log.WithField("source", cfg.GetString("Source")), b.Advisories())
	return b, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`helioremap: you need to specify an output file configuration variable (for example: OutputFile="helioremap.ncf")`)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(filepath.Dir(f)); err != nil {
		return f, fmt.Errorf("helioremap: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

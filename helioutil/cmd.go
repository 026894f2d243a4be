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

// Package helioutil contains the command-line interface and configuration
// handling for helioremap.
package helioutil

import (
	"context"
	"fmt"
	"os"

	"github.com/helioremap/helioremap"
	"github.com/helioremap/helioremap/boundary"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log = logrus.New()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	mapping := []*pflag.FlagSet{mapCmd.Flags(), profileCmd.Flags()}
	source := []*pflag.FlagSet{fetchCmd.Flags(), mapCmd.Flags(), profileCmd.Flags()}
	grids := []*pflag.FlagSet{gridCmd.Flags(), profileCmd.Flags()}

	// Options are the configuration options available to helioremap.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print:
              debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Alpha",
			usage: `
              Alpha is the dimensionless scale factor of the residual
              acceleration of the solar wind.`,
			defaultVal: helioremap.DefaultParameters().Alpha,
			flagsets:   mapping,
		},
		{
			name: "RAccel",
			usage: `
              RAccel is the length scale of the residual acceleration of
              the solar wind, in solar radii.`,
			defaultVal: helioremap.DefaultParameters().RAccel.SolarRadii(),
			flagsets:   mapping,
		},
		{
			name: "SynodicPeriod",
			usage: `
              SynodicPeriod is the solar rotation period as seen from
              Earth, in days.`,
			defaultVal: helioremap.DefaultParameters().SynodicPeriod.Days(),
			flagsets:   mapping,
		},
		{
			name: "ParamsFile",
			usage: `
              ParamsFile is the path to a TOML file giving Alpha, RAccel
              [solar radii] and SynodicPeriod [days]. If it is set, it
              overrides the individual parameter options.`,
			defaultVal: "",
			flagsets:   mapping,
		},
		{
			name: "NLong",
			usage: `
              NLong is the number of cells of the output longitude grid.`,
			defaultVal: helioremap.DefaultNLong,
			flagsets:   grids,
		},
		{
			name: "LonStart",
			usage: `
              LonStart is the start of the output longitude grid [degrees].`,
			defaultVal: 0.0,
			flagsets:   grids,
		},
		{
			name: "LonStop",
			usage: `
              LonStop is the end of the output longitude grid [degrees].`,
			defaultVal: 360.0,
			flagsets:   grids,
		},
		{
			name: "ROuter",
			usage: `
              ROuter is the radius of the boundary condition that is
              mapped inward, in solar radii.`,
			defaultVal: 30.0,
			flagsets:   mapping,
		},
		{
			name: "RInner",
			usage: `
              RInner is the radius the boundary condition is mapped to,
              in solar radii.`,
			defaultVal: 21.5,
			flagsets:   mapping,
		},
		{
			name: "Latitude",
			usage: `
              Latitude is the latitude the longitude profile is taken at
              [degrees].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{profileCmd.Flags()},
		},
		{
			name: "Source",
			usage: `
              Source is the coronal model the boundary conditions come
              from: mas or pfss.`,
			defaultVal: "mas",
			flagsets:   []*pflag.FlagSet{mapCmd.Flags(), profileCmd.Flags()},
		},
		{
			name: "MAS.CR",
			usage: `
              MAS.CR is the Carrington rotation number of the MAS run.`,
			defaultVal: 0,
			flagsets:   source,
		},
		{
			name: "MAS.Observatories",
			usage: `
              MAS.Observatories is the order of preference of the
              magnetogram sources of MAS runs. If it is empty, the default
              order is used and existing boundary files are kept.`,
			defaultVal: []string{},
			flagsets:   source,
		},
		{
			name: "MAS.RunTypes",
			usage: `
              MAS.RunTypes is the order of preference of MAS run types.`,
			defaultVal: []string{},
			flagsets:   source,
		},
		{
			name: "MAS.RunNumbers",
			usage: `
              MAS.RunNumbers is the order of preference of MAS run numbers.`,
			defaultVal: []string{},
			flagsets:   source,
		},
		{
			name: "MAS.BaseURL",
			usage: `
              MAS.BaseURL is the location of the MAS run archive. It can be
              a web address or a blob storage location starting with gs://,
              s3:// or file://.`,
			defaultVal: boundary.DefaultMASBaseURL,
			flagsets:   source,
		},
		{
			name: "BoundaryDir",
			usage: `
              BoundaryDir is the directory MAS boundary files are stored in.
              It can contain environment variables.`,
			defaultVal: "${HOME}/.helioremap/boundary",
			flagsets:   source,
		},
		{
			name: "CacheDir",
			usage: `
              CacheDir, if set, is a directory where loaded boundary
              conditions are stored for reuse by later runs.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{mapCmd.Flags(), profileCmd.Flags()},
		},
		{
			name: "PFSS.File",
			usage: `
              PFSS.File is the path to a PFSS boundary file in netCDF format.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{mapCmd.Flags(), profileCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the netCDF file the mapped
              boundary conditions are written to.`,
			shorthand:  "o",
			defaultVal: "helioremap.ncf",
			flagsets:   []*pflag.FlagSet{mapCmd.Flags()},
		},
		{
			name: "Polarity",
			usage: `
              Polarity specifies whether to map the magnetic polarity
              (the sign of the radial field) instead of the field itself.`,
			defaultVal: false,
			flagsets:   mapping,
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("HELIOREMAP")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
			case bool:
				set.Bool(option.name, option.defaultVal.(bool), option.usage)
			case int:
				set.Int(option.name, option.defaultVal.(int), option.usage)
			case float64:
				set.Float64(option.name, option.defaultVal.(float64), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(gridCmd)
	Root.AddCommand(fetchCmd)
	Root.AddCommand(mapCmd)
	Root.AddCommand(profileCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("helioremap: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("helioremap: %v", err)
	}
	Log.Level = level
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "helioremap",
	Short: "Map solar wind boundary conditions between radii.",
	Long: `helioremap maps solar wind speed and magnetic field boundary conditions
from the outer boundary of a coronal model inward to the inner boundary of a
heliospheric solar wind model, accounting for the residual acceleration of the
wind and the rotation of the Sun.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'HELIOREMAP_var' where 'var' is the
name of the variable to be set. Paths are additionally allowed to contain
environment variables within them.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of helioremap.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "helioremap v%s\n", helioremap.Version)
	},
	DisableAutoGenTag: true,
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the output longitude grid.",
	Long: `grid prints the cell centers of the longitude grid that mapped profiles
are resampled onto, as comma-separated index, radians and degrees.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := LongitudeGrid(Cfg)
		if err != nil {
			return err
		}
		return WriteGrid(cmd.OutOrStdout(), g)
	},
	DisableAutoGenTag: true,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download MAS boundary conditions.",
	Long: `fetch downloads the helio boundary speed and radial magnetic field files
of the most preferred available MAS run for Carrington rotation MAS.CR into
BoundaryDir. The files are distributed in HDF4 format, which helioremap
can't read; convert them to netCDF next to the downloads, for example with
"h4tonccf HelioMAS_CR2100_vr_r0.hdf HelioMAS_CR2100_vr_r0.nc". The
converted .nc files are used in place of the downloads and are not
downloaded again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := Fetcher(Cfg).Fetch(context.Background(), Cfg.GetInt("MAS.CR"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), files.Speed)
		fmt.Fprintln(cmd.OutOrStdout(), files.Tracer)
		return nil
	},
	DisableAutoGenTag: true,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Map boundary condition maps inward.",
	Long: `map loads the speed and radial magnetic field maps of the configured
Source, maps them from ROuter to RInner and writes them to OutputFile in
netCDF format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		b, err := LoadBoundary(ctx, Cfg)
		if err != nil {
			return err
		}
		p, err := Config{Cfg}.MappingParameters()
		if err != nil {
			return err
		}
		rOuter, rInner := radii(Cfg)
		maps, err := RemapBoundary(b, rOuter, rInner, p, Cfg.GetBool("Polarity"), Log)
		if err != nil {
			return err
		}
		if err := WriteMaps(outputFile, maps); err != nil {
			return err
		}
		Log.WithField("file", outputFile).Info("wrote mapped boundary conditions")
		return nil
	},
	DisableAutoGenTag: true,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print a boundary condition profile mapped inward.",
	Long: `profile takes the speed and radial magnetic field profiles of the
configured Source at Latitude, maps them from ROuter to RInner onto the output
longitude grid and prints them as comma-separated values with the columns
lon_rad, v_kms and tracer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		b, err := LoadBoundary(ctx, Cfg)
		if err != nil {
			return err
		}
		p, err := Config{Cfg}.MappingParameters()
		if err != nil {
			return err
		}
		g, err := LongitudeGrid(Cfg)
		if err != nil {
			return err
		}
		rOuter, rInner := radii(Cfg)
		v, tracer, err := RemapProfile(b, helioremap.Degrees(Cfg.GetFloat64("Latitude")),
			g, rOuter, rInner, p, Cfg.GetBool("Polarity"), Log)
		if err != nil {
			return err
		}
		return WriteProfiles(cmd.OutOrStdout(), v, tracer)
	},
	DisableAutoGenTag: true,
}

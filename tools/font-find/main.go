// seehuhn.de/go/fontfind - locate and classify font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Font-find lists the font files found below one or more paths.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seehuhn.de/go/fontfind"
	"seehuhn.de/go/fontfind/describe"
	"seehuhn.de/go/fontfind/fontfile"
	"seehuhn.de/go/fontfind/tools/internal/buildinfo"
	"seehuhn.de/go/fontfind/tools/internal/profile"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// filterFlags maps command line flags to the corresponding filter field.
var filterFlags = []struct {
	name  string
	usage string
	set   func(*fontfind.Filter)
}{
	{"no-static", "omit static fonts", func(f *fontfind.Filter) { f.OmitStatic = true }},
	{"no-variable", "omit variable fonts", func(f *fontfind.Filter) { f.OmitVariable = true }},
	{"no-tt", "omit fonts with TrueType outlines", func(f *fontfind.Filter) { f.OmitTrueType = true }},
	{"no-ps", "omit fonts with PostScript (CFF) outlines", func(f *fontfind.Filter) { f.OmitPostScript = true }},
	{"no-sfnt", "omit unwrapped TrueType and OpenType fonts", func(f *fontfind.Filter) { f.OmitSFNT = true }},
	{"no-woff", "omit WOFF fonts", func(f *fontfind.Filter) { f.OmitWOFF = true }},
	{"no-woff2", "omit WOFF2 fonts", func(f *fontfind.Filter) { f.OmitWOFF2 = true }},
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "font-find [flags] <path>...",
		Short: "List font files below the given paths",
		Long: `Font-find searches files and directories for TrueType, OpenType,
WOFF and WOFF2 fonts and prints one line per font found.  Filters
restrict the output by container format, outline format and
variability.

` + buildinfo.Short("font-find"),
		Version:      buildinfo.Version(),
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			setupLogging(cmd, v.GetBool("verbose"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.font-find.yaml)")
	flags.BoolP("verbose", "v", false, "report skipped files")
	flags.BoolP("recursive", "r", false, "search subdirectories")
	for _, f := range filterFlags {
		flags.Bool(f.name, false, f.usage)
	}
	flags.Bool("describe", false, "show family and style names")
	flags.String("sort", "path", "sort order, `path` or family")
	flags.String("cpuprofile", "", "write cpu profile to `file`")
	flags.String("memprofile", "", "write memory profile to `file`")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	return cmd
}

// initConfig reads the optional config file and sets up the environment
// variable lookup.  A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("FONTFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".font-find")
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	logger := slog.Default()

	stop, err := profile.Start(v.GetString("cpuprofile"), v.GetString("memprofile"), logger)
	if err != nil {
		return err
	}
	defer stop()

	var filter fontfind.Filter
	for _, f := range filterFlags {
		if v.GetBool(f.name) {
			f.set(&filter)
		}
	}
	order, err := parseOrder(v.GetString("sort"))
	if err != nil {
		return err
	}

	s := &search{
		recursive: v.GetBool("recursive"),
		filter:    filter,
		withNames: v.GetBool("describe") || order == byFamily,
		logger:    logger,
	}
	entries, err := s.collect(args)
	if err != nil {
		return err
	}

	sortEntries(entries, order)
	return writeEntries(cmd.OutOrStdout(), entries, v.GetBool("describe"))
}

// search holds the settings for collecting fonts from several roots.
type search struct {
	fsys      afero.Fs // nil means the OS filesystem
	recursive bool
	filter    fontfind.Filter
	withNames bool
	logger    *slog.Logger
}

// collect returns one entry per font found below the given roots.
// Each font is closed before the next one is opened, so that the number
// of open files does not grow with the number of fonts.
func (s *search) collect(roots []string) ([]entry, error) {
	var entries []entry
	for _, root := range roots {
		finder, err := fontfind.New(root, &fontfind.Options{
			Recursive: s.recursive,
			Filter:    s.filter,
			FS:        s.fsys,
			Logger:    s.logger,
		})
		if err != nil {
			return nil, err
		}

		found := 0
		for font := range finder.Fonts() {
			entries = append(entries, s.entryFor(font))
			font.Close()
			found++
		}
		if found == 0 {
			return nil, &fontfind.FinderError{Path: root, Err: fontfind.ErrNoFontsFound}
		}
	}
	return entries, nil
}

func (s *search) entryFor(font *fontfile.Font) entry {
	e := entry{Path: font.Path(), Class: fontfind.Classify(font)}
	if !s.withNames {
		return e
	}
	info, err := describe.Font(font)
	if err != nil {
		s.logger.Warn("cannot read font names", "path", e.Path, "error", err)
		return e
	}
	e.Family = info.Family
	e.Style = info.Subfamily
	return e
}

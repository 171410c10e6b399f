// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Jmhplot shows JMH benchmark results as an interactive chart.
//
// Usage:
//
//	jmhplot [flags]
//
// Jmhplot reads the text report printed by the JMH harness, one result
// per line:
//
//	Benchmark                          (size)  Mode  Cnt   Score   Error  Units
//	ListBenchmarks.arrayList_indexOf     1000  avgt    5  12.345 ± 0.101  ns/op
//
// Lines of any other shape are ignored. Each distinct benchmark name,
// with the prefix common to all names removed, becomes one series of
// (size, score) points on a log-log chart. Series are colored by list
// type, the part of the name before the first '_' or '.', and grouped
// by method, a known operation name found in the benchmark name.
//
// The window has one checkbox per method. Clicking it hides every
// series of that method if any is shown, and otherwise shows them all.
// The Select All and Unselect All buttons show or hide every series.
// Hovering over a point shows its list type, method, size and score.
//
// The flags are:
//
//	-f, --file path
//		read results from path (default benchmarks.txt); "-" means
//		standard input
//	--config path
//		read settings from a YAML, TOML or JSON config file
//	--op name
//		also recognize name as a method; may be repeated
//	--width, --height pixels
//		initial window size (default 1500x900)
//	-v, --verbose
//		log a summary of the loaded series
//
// Any setting can also be given in the environment as JMHPLOT_<NAME>,
// for example JMHPLOT_FILE. Flags take precedence over the environment,
// which takes precedence over the config file. Without --config,
// jmhplot.yaml (or .toml, .json) in the current directory is used if
// present.
//
// Jmhplot exits with status 1 if the input cannot be read or contains
// no results, and with status 0 when the window is closed.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"golang.org/x/jmhplot/jmhfmt"
	"golang.org/x/jmhplot/jmhname"
	"golang.org/x/jmhplot/jmhtab"
	"golang.org/x/jmhplot/jmhview"
)

var exit = os.Exit

// config is the merged configuration of one run.
type config struct {
	File    string
	Ops     []string
	Width   int
	Height  int
	Verbose bool
}

// A showFunc presents a loaded session. It returns when the user is
// done with it.
type showFunc func(sess *jmhview.Session, cfg config) error

func main() {
	log.SetPrefix("jmhplot: ")
	log.SetFlags(0)
	exit(run(os.Args[1:], os.Stdin, showWindow))
}

// run executes the command line args and returns the exit status.
func run(args []string, stdin io.Reader, show showFunc) int {
	cmd := newRootCmd(viper.New(), stdin, show)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, jmhfmt.ErrNoRecords) {
			log.Print("No benchmark lines parsed. Check file format.")
		} else {
			log.Print(err)
		}
		return 1
	}
	return 0
}

func newRootCmd(v *viper.Viper, stdin io.Reader, show showFunc) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:           "jmhplot",
		Short:         "Plot JMH benchmark results on an interactive log-log chart",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			sess, err := load(cfg, stdin)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				if err := summarize(log.Writer(), sess.Table, deriver(cfg), cfg.File); err != nil {
					return err
				}
			}
			return show(sess, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "read settings from `path`")
	flags.StringP("file", "f", "benchmarks.txt", "read results from `path` (\"-\" for standard input)")
	flags.StringSlice("op", nil, "also recognize `name` as a method (repeatable)")
	flags.Int("width", 1500, "initial window width in `pixels`")
	flags.Int("height", 900, "initial window height in `pixels`")
	flags.BoolP("verbose", "v", false, "log a summary of the loaded series")
	for _, name := range []string{"file", "op", "width", "height", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	v.SetEnvPrefix("jmhplot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

// loadConfig reads the config file, if any, and returns the merged
// configuration.
func loadConfig(v *viper.Viper, cfgFile string) (config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("jmhplot")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("reading config: %w", err)
		}
	}
	cfg := config{
		File:    v.GetString("file"),
		Ops:     v.GetStringSlice("op"),
		Width:   v.GetInt("width"),
		Height:  v.GetInt("height"),
		Verbose: v.GetBool("verbose"),
	}
	if cfg.File == "" {
		return config{}, errors.New("no input file")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return config{}, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// load reads the results named by cfg and builds a session over them.
func load(cfg config, stdin io.Reader) (*jmhview.Session, error) {
	in := &jmhfmt.Input{Path: cfg.File, Stdin: stdin}
	recs, err := in.Load()
	if err != nil {
		return nil, err
	}
	tab, err := jmhtab.Build(recs, deriver(cfg))
	if err != nil {
		return nil, err
	}
	return jmhview.NewSession(tab, nil), nil
}

// deriver returns the name deriver for cfg.
func deriver(cfg config) *jmhname.Deriver {
	return jmhname.NewDeriver(cfg.Ops...)
}

// summarize logs what was loaded from file, followed by the records
// table written to w.
func summarize(w io.Writer, t *jmhtab.Table, d *jmhname.Deriver, file string) error {
	log.Printf("%s: %d results in %d series, %d methods, %d list types",
		file, t.Len(), len(t.Series), len(t.Methods), len(t.ListTypes))
	unit := t.Unit
	if unit == "" {
		unit = "mixed units"
	}
	log.Printf("title %q, %s", t.Title, unit)
	log.Printf("known methods: %s", strings.Join(d.KnownOps(), " "))
	for _, s := range t.Series {
		name, line := s.Points[0].Record.Pos()
		log.Printf("  %s: method %s, list type %s, %d points from %s:%d",
			s.ShortName, s.Method, s.ListType, len(s.Points), name, line)
	}
	return t.Fprint(w)
}

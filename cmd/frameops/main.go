/*
Copyright 2022 The l7mp/stunner team.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/l7mp/frameops/internal/buildinfo"
	"github.com/l7mp/frameops/internal/config"
	"github.com/l7mp/frameops/pkg/exec"
	"github.com/l7mp/frameops/pkg/frame"
	"github.com/l7mp/frameops/pkg/session"
	"github.com/l7mp/frameops/pkg/store"
	"github.com/l7mp/frameops/pkg/util"
	"github.com/l7mp/frameops/pkg/visualize"
)

var (
	version    = "dev"
	commitHash = "n/a"
	buildDate  = "<unknown>"
)

type options struct {
	dataFile, scriptFile, snapshotFile string
	dot, mermaid, dumpMetrics          bool
	config                             config.Config
}

func main() {
	var configFile string
	var showVersion bool
	var opts options

	flag.StringVar(&configFile, "config", "", "Config file (YAML or JSON).")
	flag.StringVar(&opts.dataFile, "data", "", "Dataset file holding the input frames (YAML or JSON).")
	flag.StringVar(&opts.scriptFile, "script", "", "Script file mapping names to expressions (YAML or JSON).")
	flag.StringVar(&opts.snapshotFile, "snapshot", "", "Write a compressed snapshot of the store to this file.")
	flag.BoolVar(&opts.dot, "dot", false, "Print the call trees of the script as a Graphviz DOT diagram and exit.")
	flag.BoolVar(&opts.mermaid, "mermaid", false, "Print the call trees of the script as a Mermaid flowchart and exit.")
	flag.BoolVar(&opts.dumpMetrics, "dump-metrics", false, "Print the executor metrics at exit.")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit.")
	framePath := flag.String("frame-path", "", "JSONPath of the frame map inside the dataset.")
	chunkSize := flag.Int("chunk-size", 0, "Rows per partition.")
	parallelism := flag.Int("parallelism", 0, "Maximum number of partitions processed at once.")
	seed := flag.Int64("seed", 0, "Default seed of random number generation.")

	zapOpts := zap.Options{
		Development:     true,
		DestWriter:      os.Stderr,
		StacktraceLevel: zapcore.Level(3),
		TimeEncoder:     zapcore.RFC3339NanoTimeEncoder,
	}
	zapOpts.BindFlags(flag.CommandLine)
	flag.Parse()

	logger := zap.New(zap.UseFlagOptions(&zapOpts))
	setupLog := logger.WithName("setup")

	buildInfo := buildinfo.BuildInfo{Version: version, CommitHash: commitHash, BuildDate: buildDate}
	if showVersion {
		fmt.Println(buildInfo.String())
		return
	}
	setupLog.V(2).Info(fmt.Sprintf("starting frameops %s", buildInfo.String()))

	opts.config = config.Default()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			setupLog.Error(err, "unable to load config")
			os.Exit(1)
		}
		opts.config = c
	}

	// explicit flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frame-path":
			opts.config.FramePath = *framePath
		case "chunk-size":
			opts.config.ChunkSize = *chunkSize
		case "parallelism":
			opts.config.Parallelism = *parallelism
		case "seed":
			opts.config.Seed = *seed
		}
	})
	if err := opts.config.Validate(); err != nil {
		setupLog.Error(err, "invalid configuration")
		os.Exit(1)
	}

	if err := run(ctrl.SetupSignalHandler(), opts, os.Stdout, logger); err != nil {
		setupLog.Error(err, "frameops failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, w io.Writer, logger logr.Logger) error {
	if opts.scriptFile == "" {
		return fmt.Errorf("no script given")
	}
	doc, err := os.ReadFile(opts.scriptFile)
	if err != nil {
		return err
	}
	script, err := session.LoadScript(doc)
	if err != nil {
		return err
	}

	if opts.dot || opts.mermaid {
		var gen visualize.Generator = &visualize.DotGenerator{}
		if opts.mermaid {
			gen = &visualize.MermaidGenerator{}
		}
		_, err := fmt.Fprintln(w, gen.Generate(visualize.BuildGraph(opts.scriptFile, script)))
		return err
	}

	reg := prometheus.NewRegistry()
	s := session.New(session.Options{
		ChunkSize:   opts.config.ChunkSize,
		Parallelism: opts.config.Parallelism,
		Seed:        opts.config.Seed,
		Metrics:     exec.NewMetrics(reg),
		Logger:      logger,
	})

	if opts.dataFile != "" {
		doc, err := os.ReadFile(opts.dataFile)
		if err != nil {
			return err
		}
		frames, err := frame.LoadFrames(doc, opts.config.FramePath, opts.config.ChunkSize)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(frames))
		for n := range frames {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if err := s.AddFrame(n, frames[n]); err != nil {
				return err
			}
		}
	}

	results, err := s.Run(ctx, script)
	lines := util.Map(func(r session.Result) string {
		return fmt.Sprintf("%s = %s\n", r.Name, r.Value.String())
	}, results)
	if _, werr := io.WriteString(w, strings.Join(lines, "")); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		return err
	}

	if opts.snapshotFile != "" {
		f, err := os.Create(opts.snapshotFile)
		if err != nil {
			return err
		}
		if err := store.WriteSnapshot(s.Store(), f); err != nil {
			f.Close() //nolint:errcheck
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if opts.dumpMetrics {
		return dumpMetrics(w, reg)
	}

	return nil
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), formatLabels(m.GetLabel()), metricValue(mf.GetType(), m))
		}
	}
	return nil
}

func formatLabels(ls []*dto.LabelPair) string {
	if len(ls) == 0 {
		return ""
	}
	ss := make([]string, len(ls))
	for i, l := range ls {
		ss[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return "{" + strings.Join(ss, ",") + "}"
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return m.GetUntyped().GetValue()
	}
}

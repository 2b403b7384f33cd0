package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/fxsml/gostep/middleware"
	"github.com/fxsml/gostep/promstep"
)

type performOptions struct {
	configPath  string
	extra       string
	concurrency int
	timeout     time.Duration
	logFormat   string
	logLevel    string
	metrics     bool
}

type result struct {
	input  string
	output string
	err    error
}

func newPerformCmd() *cobra.Command {
	var opts performOptions
	cmd := &cobra.Command{
		Use:   "perform <step> [inputs...]",
		Short: "Perform a built-in step on each input",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("concurrency") {
				cfg.Concurrency = max(opts.concurrency, 1)
			}
			if flags.Changed("timeout") {
				cfg.Timeout = opts.timeout
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = opts.logFormat
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			return runPerform(cmd, cfg, args[0], args[1:], opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	f.StringVar(&opts.extra, "extra", "", "Extra value passed to every call")
	f.IntVar(&opts.concurrency, "concurrency", 0, "Maximum concurrent calls")
	f.DurationVar(&opts.timeout, "timeout", 0, "Deadline for each call (0 disables it)")
	f.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.BoolVar(&opts.metrics, "metrics", false, "Print Prometheus metrics after the run")
	return cmd
}

func runPerform(cmd *cobra.Command, cfg cliConfig, name string, inputs []string, opts performOptions) (err error) {
	b, err := lookupBuiltin(name)
	if err != nil {
		return err
	}
	base, err := b.build()
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}

	logger, flush, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		// Sync on stderr commonly fails with EINVAL; it is not worth reporting.
		_ = flush()
	}()

	reg := prometheus.NewRegistry()
	collector, err := promstep.NewCollector(reg, cfg.Metrics)
	if err != nil {
		return err
	}

	step := middleware.Apply(base,
		middleware.MetadataProvider[string, string, string](func(in, _ string) middleware.Metadata {
			return middleware.Metadata{"step": name, "input": in}
		}),
		middleware.LogWith[string, string, string](logger, cfg.Log),
		middleware.MetricsMiddleware[string, string, string](collector.For(name)),
		middleware.Timeout[string, string, string](cfg.Timeout),
	)

	results := make([]result, len(inputs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			out, err := step.Perform(ctx, in, opts.extra)
			results[i] = result{input: in, output: out, err: err}
			return nil
		})
	}
	_ = g.Wait()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"#", "Input", "Output", "Error"})
	for i, r := range results {
		var msg string
		if r.err != nil {
			msg = r.err.Error()
			err = multierr.Append(err, fmt.Errorf("input %d (%q): %w", i+1, r.input, r.err))
		}
		t.AppendRow(table.Row{i + 1, r.input, r.output, msg})
	}
	t.Render()

	if opts.metrics {
		if werr := promstep.WriteText(cmd.OutOrStdout(), reg); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	return err
}

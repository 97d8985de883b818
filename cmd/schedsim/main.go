package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	applog "schedsim/internal/log"
	"schedsim/internal/runner"
	"schedsim/internal/sched"
	"schedsim/internal/tracing"
	"schedsim/internal/workload"
)

const version = "0.1.0"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("schedsim", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath = flags.String("config", "config.yml", "YAML configuration file")
		policy     = flags.String("policy", "", "scheduling policy: FCFS, SJF, Priority or RR")
		quantum    = flags.Int64("quantum", 0, "Round-Robin time quantum")
		input      = flags.String("input", "", "workload source (path or URL)")
		output     = flags.String("output", "", "report destination (path or URL)")
		events     = flags.String("events", "", "CSV event log path")
		traceOut   = flags.String("trace", "", "span output file, - for stdout")
		compare    = flags.Bool("compare", false, "compare all policies on the workload")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Read the configuration, then let explicit flags win
	cfg, err := sched.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "policy":
			cfg.Policy = *policy
		case "quantum":
			cfg.Quantum = *quantum
		case "input":
			cfg.Input = *input
		case "output":
			cfg.Output = *output
		case "events":
			cfg.EventsCSV = *events
		case "trace":
			cfg.TraceOutput = *traceOut
		case "compare":
			cfg.Compare = *compare
		}
	})

	// nothing is created or written before the configuration is known to be good
	if err := runner.Validate(cfg); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := applog.BuildLogger(cfg.LogLevel)
	opts := []runner.Option{runner.WithLogger(logger), runner.WithStdout(stdout)}

	tracer, closeTrace, err := newTracer(cfg.TraceOutput, stdout)
	if err != nil {
		logger.Error("tracing not initialised", applog.ErrAttr(err))
		return 1
	}
	defer func() {
		_ = tracer.Shutdown(ctx)
		if err := closeTrace(); err != nil {
			logger.Error("span file not closed", applog.ErrAttr(err))
		}
	}()
	opts = append(opts, runner.WithTracer(tracer))

	if cfg.EventsCSV != "" {
		log, err := workload.CreateEventLog(cfg.EventsCSV)
		if err != nil {
			logger.Error("event log not created", applog.ErrAttr(err))
			return 1
		}
		defer log.Close()
		opts = append(opts, runner.WithEventLog(log))
	}

	r, err := runner.New(cfg, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.Compare {
		_, err = r.RunCompare(ctx)
	} else {
		_, err = r.Run(ctx)
	}
	if err != nil {
		return 1
	}
	return 0
}

// newTracer builds the tracer for dest and a func that releases the span file,
// to be called after the tracer is shut down.
func newTracer(dest string, stdout io.Writer) (*tracing.Tracer, func() error, error) {
	noClose := func() error { return nil }
	switch dest {
	case "":
		return tracing.Noop(), noClose, nil
	case "-":
		tracer, err := tracing.New("schedsim", version, stdout)
		return tracer, noClose, err
	}
	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, err
	}
	tracer, err := tracing.New("schedsim", version, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return tracer, f.Close, nil
}

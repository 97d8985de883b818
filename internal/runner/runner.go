// Package runner ties one configured simulation together: it loads the
// workload, schedules it, records events and spans, and writes the report.
package runner

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"go.opentelemetry.io/otel/attribute"

	applog "schedsim/internal/log"
	"schedsim/internal/sched"
	"schedsim/internal/tracing"
	"schedsim/internal/workload"
)

// Runner executes simulations for one configuration.
type Runner struct {
	cfg    sched.Config
	policy sched.Policy
	fs     afs.Service
	logger *slog.Logger
	tracer *tracing.Tracer
	events *workload.EventLog
	stdout io.Writer
}

// Option customises a Runner.
type Option func(r *Runner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.logger = l } }

// WithTracer sets the tracer used for run spans.
func WithTracer(t *tracing.Tracer) Option { return func(r *Runner) { r.tracer = t } }

// WithEventLog records every run's events into l.
func WithEventLog(l *workload.EventLog) Option { return func(r *Runner) { r.events = l } }

// WithStdout sets where tables are printed.
func WithStdout(w io.Writer) Option { return func(r *Runner) { r.stdout = w } }

// WithFS sets the storage used for input and output.
func WithFS(fs afs.Service) Option { return func(r *Runner) { r.fs = fs } }

// Validate reports configuration errors: an unknown policy name, or a
// non-positive quantum when RR will run.
func Validate(cfg sched.Config) error {
	if _, err := cfg.SchedPolicy(); err != nil {
		return err
	}
	if cfg.Compare {
		if _, err := sched.NewPolicy(sched.RoundRobin, cfg.Quantum); err != nil {
			return err
		}
	}
	return nil
}

// New validates the configuration and builds a Runner. Configuration
// errors surface here, before anything is loaded or simulated.
func New(cfg sched.Config, opts ...Option) (*Runner, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	policy, _ := cfg.SchedPolicy()

	r := &Runner{
		cfg:    cfg,
		policy: policy,
		fs:     afs.New(),
		logger: applog.BuildLogger(cfg.LogLevel),
		tracer: tracing.Noop(),
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Policy returns the validated policy.
func (r *Runner) Policy() sched.Policy { return r.policy }

// Load reads the configured input. Load failures are logged and yield an
// empty workload.
func (r *Runner) Load(ctx context.Context) sched.Workload {
	w, err := workload.Load(ctx, r.fs, r.cfg.Input)
	if err != nil {
		r.logger.Warn("workload not loaded, continuing with an empty one",
			slog.String("input", r.cfg.Input), applog.ErrAttr(err))
	}
	return w
}

// Simulate schedules w under p inside its own span and records its events.
func (r *Runner) Simulate(ctx context.Context, w sched.Workload, p sched.Policy) (res sched.Result, err error) {
	runID := uuid.New().String()
	_, span := r.tracer.StartSpan(ctx, "sched."+p.Kind.String())
	defer func() { span.End(err) }()

	r.logger.Debug("simulation started",
		slog.String("run_id", runID),
		slog.String("policy", p.String()),
		slog.Int("processes", len(w)))

	res, err = p.Schedule(w)
	if err != nil {
		r.logger.Error("simulation rejected", slog.String("run_id", runID), applog.ErrAttr(err))
		return res, err
	}

	sum := sched.Summarize(res)
	span.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("policy", p.Kind.String()),
		attribute.Int64("quantum", p.Quantum),
		attribute.Int("processes", sum.Processes),
		attribute.Int64("makespan", sum.Makespan),
		attribute.Float64("avg_waiting", sum.AvgWaiting),
	)
	r.logger.Info("simulation finished",
		slog.String("run_id", runID),
		slog.String("policy", p.String()),
		slog.Int("processes", sum.Processes),
		slog.Int64("makespan", sum.Makespan),
		slog.Float64("avg_waiting", sum.AvgWaiting),
		slog.Float64("avg_turnaround", sum.AvgTurnaround))

	if r.events != nil {
		if err = r.events.Record(runID, res); err != nil {
			r.logger.Error("event log write failed", slog.String("run_id", runID), applog.ErrAttr(err))
			return res, err
		}
	}
	return res, nil
}

// Run loads the input, simulates it under the configured policy, saves the
// report to the configured output and prints the schedule table.
func (r *Runner) Run(ctx context.Context) (res sched.Result, err error) {
	ctx, span := r.tracer.StartSpan(ctx, "run")
	defer func() { span.End(err) }()

	w := r.Load(ctx)
	res, err = r.Simulate(ctx, w, r.policy)
	if err != nil {
		return res, err
	}
	if err = workload.Save(ctx, r.fs, r.cfg.Output, res); err != nil {
		r.logger.Error("report not saved", slog.String("output", r.cfg.Output), applog.ErrAttr(err))
		return res, err
	}
	r.logger.Info("report saved", slog.String("output", r.cfg.Output))

	workload.WriteSchedule(r.stdout, res)
	_, _ = io.WriteString(r.stdout, res.Trace.Timeline()+"\n")
	return res, nil
}

// Compare runs every policy over its own copy of w and returns their
// summaries in FCFS, SJF, Priority, RR order.
func (r *Runner) Compare(ctx context.Context, w sched.Workload) (sums []sched.Summary, err error) {
	ctx, span := r.tracer.StartSpan(ctx, "compare")
	defer func() { span.End(err) }()

	for _, kind := range sched.Kinds {
		p, err := sched.NewPolicy(kind, r.cfg.Quantum)
		if err != nil {
			return nil, err
		}
		res, err := r.Simulate(ctx, w, p)
		if err != nil {
			return nil, err
		}
		sums = append(sums, sched.Summarize(res))
	}
	return sums, nil
}

// RunCompare loads the input, compares all policies and prints the table.
func (r *Runner) RunCompare(ctx context.Context) ([]sched.Summary, error) {
	sums, err := r.Compare(ctx, r.Load(ctx))
	if err != nil {
		return nil, err
	}
	workload.WriteComparison(r.stdout, sums)
	return sums, nil
}

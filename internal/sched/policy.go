package sched

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownPolicy is returned for a policy name outside FCFS, SJF, Priority and RR.
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
	// ErrInvalidQuantum is returned when Round-Robin gets a non-positive time quantum.
	ErrInvalidQuantum = errors.New("time quantum must be a positive integer")
	// ErrInvalidWorkload is returned when a workload breaks the process data model.
	ErrInvalidWorkload = errors.New("invalid workload")
)

// Kind is the closed set of scheduling disciplines.
type Kind int

const (
	FCFS Kind = iota
	SJF
	Priority
	RoundRobin
)

// Kinds lists every discipline in presentation order.
var Kinds = []Kind{FCFS, SJF, Priority, RoundRobin}

func (k Kind) String() string {
	switch k {
	case FCFS:
		return "FCFS"
	case SJF:
		return "SJF"
	case Priority:
		return "Priority"
	case RoundRobin:
		return "RR"
	default:
		return "Unknown"
	}
}

// ParseKind resolves a policy name, ignoring case. "RoundRobin" is accepted for RR.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fcfs":
		return FCFS, nil
	case "sjf":
		return SJF, nil
	case "priority":
		return Priority, nil
	case "rr", "roundrobin":
		return RoundRobin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Policy is a discipline plus its parameters. Quantum only matters for RoundRobin.
type Policy struct {
	Kind    Kind
	Quantum int64
}

// NewPolicy validates and builds a policy.
func NewPolicy(kind Kind, quantum int64) (Policy, error) {
	p := Policy{Kind: kind, Quantum: quantum}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate reports configuration errors.
func (p Policy) Validate() error {
	if p.Kind < FCFS || p.Kind > RoundRobin {
		return fmt.Errorf("%w: kind %d", ErrUnknownPolicy, int(p.Kind))
	}
	if p.Kind == RoundRobin && p.Quantum <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantum, p.Quantum)
	}
	return nil
}

func (p Policy) String() string {
	if p.Kind == RoundRobin {
		return fmt.Sprintf("RR(q=%d)", p.Quantum)
	}
	return p.Kind.String()
}

// Result is the outcome of one schedule call. It is read-only once returned.
type Result struct {
	Policy    Policy
	Processes []*Process // finished processes, in policy order
	Trace     Trace
	Events    []StatusEvent
	Makespan  int64 // final clock value
}

// schedulers is the dispatch table from discipline to algorithm.
var schedulers = [...]func(p Policy, s *simulation, w Workload) []*Process{
	FCFS:       scheduleFCFS,
	SJF:        scheduleSJF,
	Priority:   schedulePriority,
	RoundRobin: scheduleRoundRobin,
}

// Schedule simulates the workload under the policy. The workload is copied
// first, so the caller's processes are never mutated and the same workload can
// be replayed under several policies.
func (p Policy) Schedule(w Workload) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := w.Validate(); err != nil {
		return Result{}, err
	}

	own := w.Clone()
	s := newSimulation(own)
	done := schedulers[p.Kind](p, s, own)

	return Result{
		Policy:    p,
		Processes: done,
		Trace:     s.trace,
		Events:    s.events,
		Makespan:  s.clock.Now(),
	}, nil
}

// Validate checks the process data model: positive unique IDs, non-negative
// arrivals and positive bursts.
func (w Workload) Validate() error {
	seen := make(map[ProcessID]struct{}, len(w))
	for i, p := range w {
		switch {
		case p == nil:
			return fmt.Errorf("%w: nil process at %d", ErrInvalidWorkload, i)
		case p.ID <= 0:
			return fmt.Errorf("%w: process id %d is not positive", ErrInvalidWorkload, p.ID)
		case p.Arrival < 0:
			return fmt.Errorf("%w: process %d arrives at %d", ErrInvalidWorkload, p.ID, p.Arrival)
		case p.Burst <= 0:
			return fmt.Errorf("%w: process %d has burst %d", ErrInvalidWorkload, p.ID, p.Burst)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate process id %d", ErrInvalidWorkload, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

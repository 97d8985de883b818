package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedWorkload() Workload {
	return Workload{
		NewProcess(1, 0, 5, 2),
		NewProcess(2, 1, 3, 1),
		NewProcess(3, 2, 8, 4),
		NewProcess(4, 3, 6, 3),
	}
}

type outcome struct {
	waiting    int64
	turnaround int64
}

func outcomes(r Result) map[ProcessID]outcome {
	out := make(map[ProcessID]outcome, len(r.Processes))
	for _, p := range r.Processes {
		out[p.ID] = outcome{waiting: p.Waiting, turnaround: p.Turnaround}
	}
	return out
}

func order(r Result) []ProcessID {
	ids := make([]ProcessID, 0, len(r.Trace))
	for _, s := range r.Trace {
		ids = append(ids, s.ProcessID)
	}
	return ids
}

func mustSchedule(t *testing.T, p Policy, w Workload) Result {
	t.Helper()
	r, err := p.Schedule(w)
	require.NoError(t, err)
	assertInvariants(t, w, r)
	return r
}

// assertInvariants checks what must hold for every policy and workload.
func assertInvariants(t *testing.T, w Workload, r Result) {
	t.Helper()
	require.Len(t, r.Processes, len(w))
	assert.Equal(t, w.TotalBurst(), r.Trace.Busy(), "trace must cover every burst tick")

	seen := map[ProcessID]bool{}
	for _, p := range r.Processes {
		assert.False(t, seen[p.ID], "process %d reported twice", p.ID)
		seen[p.ID] = true
		assert.True(t, p.Done(), "process %d not finished", p.ID)
		assert.GreaterOrEqual(t, p.Waiting, int64(0), "process %d", p.ID)
		assert.Equal(t, p.Waiting+p.Burst, p.Turnaround, "process %d", p.ID)
	}

	var clock int64
	for _, s := range r.Trace {
		assert.GreaterOrEqual(t, s.Start, clock, "segments must not overlap")
		assert.Positive(t, s.Duration)
		clock = s.End()
	}
	assert.Equal(t, clock, r.Makespan)
}

func TestScheduleFixtures(t *testing.T) {
	rr2, err := NewPolicy(RoundRobin, 2)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		policy   Policy
		workload Workload
		order    []ProcessID
		expect   map[ProcessID]outcome
		trace    string
	}{
		{
			name:     "fcfs mixed",
			policy:   Policy{Kind: FCFS},
			workload: mixedWorkload(),
			order:    []ProcessID{1, 2, 3, 4},
			expect:   map[ProcessID]outcome{1: {0, 5}, 2: {4, 7}, 3: {6, 14}, 4: {13, 19}},
			trace:    "| P1 | P2 | P3 | P4 |",
		},
		{
			name:     "sjf mixed",
			policy:   Policy{Kind: SJF},
			workload: mixedWorkload(),
			order:    []ProcessID{1, 2, 4, 3},
			expect:   map[ProcessID]outcome{1: {0, 5}, 2: {4, 7}, 3: {12, 20}, 4: {5, 11}},
			trace:    "| P1 | P2 | P4 | P3 |",
		},
		{
			name:     "priority mixed",
			policy:   Policy{Kind: Priority},
			workload: mixedWorkload(),
			order:    []ProcessID{1, 2, 4, 3},
			expect:   map[ProcessID]outcome{1: {0, 5}, 2: {4, 7}, 3: {12, 20}, 4: {5, 11}},
			trace:    "| P1 | P2 | P4 | P3 |",
		},
		{
			name:     "round robin two processes",
			policy:   rr2,
			workload: Workload{NewProcess(1, 0, 5, 0), NewProcess(2, 1, 3, 0)},
			order:    []ProcessID{1, 2, 1, 2, 1},
			expect:   map[ProcessID]outcome{1: {3, 8}, 2: {3, 6}},
			trace:    "| P1 | P2 | P1 | P2 | P1 |",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := mustSchedule(t, tc.policy, tc.workload)
			assert.Equal(t, tc.order, order(r))
			assert.Equal(t, tc.expect, outcomes(r))
			assert.Equal(t, tc.trace, r.Trace.String())
		})
	}
}

func TestRoundRobinSegmentDurations(t *testing.T) {
	r := mustSchedule(t, Policy{Kind: RoundRobin, Quantum: 2},
		Workload{NewProcess(1, 0, 5, 0), NewProcess(2, 1, 3, 0)})

	assert.Equal(t, Trace{
		{ProcessID: 1, Start: 0, Duration: 2},
		{ProcessID: 2, Start: 2, Duration: 2},
		{ProcessID: 1, Start: 4, Duration: 2},
		{ProcessID: 2, Start: 6, Duration: 1},
		{ProcessID: 1, Start: 7, Duration: 1},
	}, r.Trace)
	// input order is kept for round robin results
	assert.Equal(t, ProcessID(1), r.Processes[0].ID)
	assert.Equal(t, ProcessID(2), r.Processes[1].ID)
}

func TestRoundRobinNewcomersBeforePreempted(t *testing.T) {
	// P2 arrives during P1's first slice and runs before P1's second one.
	// P3 arrives during P2's slice and lands between P1 and P2.
	w := Workload{
		NewProcess(1, 0, 4, 0),
		NewProcess(2, 1, 4, 0),
		NewProcess(3, 3, 2, 0),
	}
	r := mustSchedule(t, Policy{Kind: RoundRobin, Quantum: 2}, w)

	assert.Equal(t, []ProcessID{1, 2, 1, 3, 2}, order(r))
	assert.Equal(t, map[ProcessID]outcome{
		1: {2, 6},
		2: {5, 9},
		3: {3, 5},
	}, outcomes(r))
}

func TestRoundRobinSimultaneousArrivalsByID(t *testing.T) {
	w := Workload{
		NewProcess(3, 0, 1, 0),
		NewProcess(1, 0, 1, 0),
		NewProcess(2, 0, 1, 0),
	}
	r := mustSchedule(t, Policy{Kind: RoundRobin, Quantum: 4}, w)
	assert.Equal(t, []ProcessID{1, 2, 3}, order(r))
	// input order is kept in the results
	assert.Equal(t, ProcessID(3), r.Processes[0].ID)
}

func TestIdleGapIsSkipped(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			w := Workload{NewProcess(1, 5, 3, 0)}
			r := mustSchedule(t, Policy{Kind: kind, Quantum: 2}, w)

			require.Len(t, r.Processes, 1)
			assert.Equal(t, int64(0), r.Processes[0].Waiting)
			assert.Equal(t, int64(3), r.Processes[0].Turnaround)
			assert.Equal(t, int64(5), r.Trace[0].Start, "no segment for ticks 0-4")
			assert.Equal(t, int64(8), r.Makespan)

			require.NotEmpty(t, r.Events)
			assert.Equal(t, StatusEvent{Tick: 0, Kind: StatusIdle, RanTicks: 5}, r.Events[0])
		})
	}
}

func TestEmptyWorkload(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			r, err := Policy{Kind: kind, Quantum: 1}.Schedule(nil)
			require.NoError(t, err)
			assert.Empty(t, r.Processes)
			assert.Empty(t, r.Trace)
			assert.Empty(t, r.Events)
			assert.Equal(t, int64(0), r.Makespan)
			assert.Equal(t, "", r.Trace.String())
		})
	}
}

func TestNonPreemptiveRunsEachProcessOnce(t *testing.T) {
	w := Workload{
		NewProcess(1, 0, 7, 3),
		NewProcess(2, 2, 4, 1),
		NewProcess(3, 4, 1, 2),
		NewProcess(4, 5, 4, 1),
		NewProcess(5, 20, 2, 0),
	}
	for _, kind := range []Kind{FCFS, SJF, Priority} {
		t.Run(kind.String(), func(t *testing.T) {
			r := mustSchedule(t, Policy{Kind: kind}, w)
			require.Len(t, r.Trace, len(w))
			count := map[ProcessID]int{}
			for _, s := range r.Trace {
				count[s.ProcessID]++
				for _, p := range r.Processes {
					if p.ID == s.ProcessID {
						assert.Equal(t, p.Burst, s.Duration)
					}
				}
			}
			for _, p := range w {
				assert.Equal(t, 1, count[p.ID], "process %d", p.ID)
			}
		})
	}
}

func TestTieBreaksBySmallestID(t *testing.T) {
	w := Workload{
		NewProcess(4, 0, 3, 1),
		NewProcess(2, 0, 3, 1),
		NewProcess(3, 0, 3, 1),
	}
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			r := mustSchedule(t, Policy{Kind: kind, Quantum: 5}, w)
			assert.Equal(t, []ProcessID{2, 3, 4}, order(r))
		})
	}
}

func TestScheduleDoesNotMutateWorkload(t *testing.T) {
	w := mixedWorkload()
	for _, kind := range Kinds {
		_, err := Policy{Kind: kind, Quantum: 3}.Schedule(w)
		require.NoError(t, err)
	}
	for _, p := range w {
		assert.Equal(t, p.Burst, p.Remaining)
		assert.Zero(t, p.Waiting)
		assert.Zero(t, p.Turnaround)
	}
}

func TestFCFSDeterministic(t *testing.T) {
	w := mixedWorkload()
	first := mustSchedule(t, Policy{Kind: FCFS}, w)
	second := mustSchedule(t, Policy{Kind: FCFS}, w.Clone())
	assert.Equal(t, outcomes(first), outcomes(second))
	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.Events, second.Events)
}

func TestRoundRobinFairnessBound(t *testing.T) {
	const quantum = 3
	w := Workload{
		NewProcess(1, 0, 9, 0),
		NewProcess(2, 0, 9, 0),
		NewProcess(3, 0, 9, 0),
	}
	r := mustSchedule(t, Policy{Kind: RoundRobin, Quantum: quantum}, w)

	// gap between consecutive slices of the same process
	last := map[ProcessID]int64{}
	for _, s := range r.Trace {
		if end, ok := last[s.ProcessID]; ok {
			assert.LessOrEqual(t, s.Start-end, int64((len(w)-1)*quantum))
		}
		last[s.ProcessID] = s.End()
	}
	assert.Equal(t, map[ProcessID]outcome{1: {12, 21}, 2: {15, 24}, 3: {18, 27}}, outcomes(r))
}

func TestEventStream(t *testing.T) {
	r := mustSchedule(t, Policy{Kind: RoundRobin, Quantum: 2},
		Workload{NewProcess(1, 0, 3, 0), NewProcess(2, 4, 1, 0)})

	kinds := make([]StatusKind, 0, len(r.Events))
	for _, ev := range r.Events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []StatusKind{
		StatusEnqueue, StatusDispatch, StatusPreempt,
		StatusDispatch, StatusFinish,
		StatusIdle,
		StatusEnqueue, StatusDispatch, StatusFinish,
	}, kinds)
	assert.Equal(t, StatusEvent{Tick: 3, Kind: StatusIdle, RanTicks: 1}, r.Events[5])
	assert.Equal(t, StatusEvent{Tick: 5, Kind: StatusFinish, ProcessID: 2, RanTicks: 1}, r.Events[8])
}

func TestPolicyValidation(t *testing.T) {
	_, err := NewPolicy(RoundRobin, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantum)
	_, err = NewPolicy(RoundRobin, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantum)
	_, err = NewPolicy(Kind(9), 1)
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	p, err := NewPolicy(SJF, 0)
	require.NoError(t, err)
	assert.Equal(t, "SJF", p.String())

	_, err = Policy{Kind: RoundRobin}.Schedule(mixedWorkload())
	assert.ErrorIs(t, err, ErrInvalidQuantum)
}

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in   string
		want Kind
	}{
		{"FCFS", FCFS},
		{"sjf", SJF},
		{"Priority", Priority},
		{"RR", RoundRobin},
		{"roundrobin", RoundRobin},
	}
	for _, tc := range testCases {
		got, err := ParseKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseKind("lottery")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestWorkloadValidation(t *testing.T) {
	testCases := []struct {
		name string
		w    Workload
	}{
		{"zero id", Workload{NewProcess(0, 0, 1, 0)}},
		{"negative arrival", Workload{NewProcess(1, -1, 1, 0)}},
		{"zero burst", Workload{NewProcess(1, 0, 0, 0)}},
		{"duplicate id", Workload{NewProcess(1, 0, 1, 0), NewProcess(1, 2, 1, 0)}},
		{"nil process", Workload{nil}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Policy{Kind: FCFS}.Schedule(tc.w)
			assert.ErrorIs(t, err, ErrInvalidWorkload)
		})
	}
}

func TestExecutePanicsOnOverrun(t *testing.T) {
	p := NewProcess(1, 0, 2, 0)
	assert.Panics(t, func() { p.execute(3) })
	p.execute(2)
	assert.True(t, p.Done())
	assert.Panics(t, func() { p.execute(1) }, "a finished process must not run again")
}

func TestFarArrivalJumpsClock(t *testing.T) {
	const arrival = 1_000_000_000_000
	for _, kind := range Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			w := Workload{NewProcess(1, 0, 2, 0), NewProcess(2, arrival, 1, 0)}
			r := mustSchedule(t, Policy{Kind: kind, Quantum: 2}, w)

			assert.Equal(t, Trace{
				{ProcessID: 1, Start: 0, Duration: 2},
				{ProcessID: 2, Start: arrival, Duration: 1},
			}, r.Trace)
			assert.Equal(t, int64(arrival+1), r.Makespan)

			idle := 0
			for _, ev := range r.Events {
				if ev.Kind == StatusIdle {
					idle++
					assert.Equal(t, StatusEvent{Tick: 2, Kind: StatusIdle, RanTicks: arrival - 2}, ev)
				}
			}
			assert.Equal(t, 1, idle)
		})
	}
}

func TestRoundRobinBatchAdmissionOrder(t *testing.T) {
	// P4 and P3 arrive during P1's slice, P2 and P5 arrive together later in
	// the same slice: they are queued earliest arrival first, then by ID,
	// regardless of input order.
	w := Workload{
		NewProcess(1, 0, 4, 0),
		NewProcess(5, 3, 1, 0),
		NewProcess(2, 3, 1, 0),
		NewProcess(3, 2, 1, 0),
		NewProcess(4, 1, 1, 0),
	}
	r := mustSchedule(t, Policy{Kind: RoundRobin, Quantum: 4}, w)

	assert.Equal(t, []ProcessID{1, 4, 3, 2, 5}, order(r))
	assert.Equal(t, []ProcessID{1, 5, 2, 3, 4}, func() []ProcessID {
		ids := make([]ProcessID, 0, len(r.Processes))
		for _, p := range r.Processes {
			ids = append(ids, p.ID)
		}
		return ids
	}(), "results keep input order")
}

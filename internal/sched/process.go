package sched

import "fmt"

// ProcessID uniquely identifies a process within a workload.
type ProcessID int

// Process is one schedulable process: fixed load-time fields plus the
// simulation state a policy mutates while it runs.
type Process struct {
	ID         ProcessID
	Arrival    int64 // tick at which the process becomes eligible to run
	Burst      int64 // total CPU ticks required
	Priority   int   // lower value is served first
	Remaining  int64 // ticks still to execute, in [0, Burst]
	Waiting    int64 // final once Remaining reaches 0
	Turnaround int64 // final once Remaining reaches 0
}

// NewProcess creates a process with Remaining set to the full burst.
func NewProcess(id ProcessID, arrival, burst int64, priority int) *Process {
	return &Process{
		ID:        id,
		Arrival:   arrival,
		Burst:     burst,
		Priority:  priority,
		Remaining: burst,
	}
}

// Ready reports whether the process may run at tick t.
func (p *Process) Ready(t int64) bool {
	return p.Arrival <= t && p.Remaining > 0
}

// Done reports whether the process has completed.
func (p *Process) Done() bool { return p.Remaining == 0 }

// Completion is the tick at which the process finished.
func (p *Process) Completion() int64 { return p.Arrival + p.Turnaround }

// execute consumes d ticks of the remaining burst.
func (p *Process) execute(d int64) {
	if d <= 0 || d > p.Remaining {
		panic(fmt.Sprintf("sched: process %d cannot run %d ticks with %d remaining", p.ID, d, p.Remaining))
	}
	p.Remaining -= d
}

// complete freezes waiting and turnaround times at tick now.
func (p *Process) complete(now int64) {
	p.Waiting = now - p.Arrival - p.Burst
	p.Turnaround = p.Waiting + p.Burst
}

// Workload is the ordered set of processes for one simulation run.
type Workload []*Process

// Clone returns an independent copy with simulation state reset.
func (w Workload) Clone() Workload {
	out := make(Workload, len(w))
	for i, p := range w {
		out[i] = NewProcess(p.ID, p.Arrival, p.Burst, p.Priority)
	}
	return out
}

// TotalBurst sums the burst times of every process.
func (w Workload) TotalBurst() int64 {
	var total int64
	for _, p := range w {
		total += p.Burst
	}
	return total
}

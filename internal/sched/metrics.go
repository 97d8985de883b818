package sched

// Summary aggregates the per-process metrics of a finished run.
type Summary struct {
	Policy          Policy
	Processes       int
	TotalWaiting    int64
	TotalTurnaround int64
	AvgWaiting      float64
	AvgTurnaround   float64
	Makespan        int64
	Busy            int64   // ticks the CPU was executing
	Idle            int64   // ticks the CPU sat idle before the last completion
	Utilization     float64 // Busy / Makespan
	Throughput      float64 // processes per tick
}

// Summarize computes averages, utilization and throughput for a result.
// An empty result yields a zero summary.
func Summarize(r Result) Summary {
	sum := Summary{
		Policy:    r.Policy,
		Processes: len(r.Processes),
		Makespan:  r.Makespan,
		Busy:      r.Trace.Busy(),
	}
	sum.Idle = sum.Makespan - sum.Busy

	for _, p := range r.Processes {
		sum.TotalWaiting += p.Waiting
		sum.TotalTurnaround += p.Turnaround
	}
	if n := float64(sum.Processes); n > 0 {
		sum.AvgWaiting = float64(sum.TotalWaiting) / n
		sum.AvgTurnaround = float64(sum.TotalTurnaround) / n
	}
	if sum.Makespan > 0 {
		sum.Utilization = float64(sum.Busy) / float64(sum.Makespan)
		sum.Throughput = float64(sum.Processes) / float64(sum.Makespan)
	}
	return sum
}

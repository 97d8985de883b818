// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
)

// StatusEvent is emitted on every key action of a run, stamped with the virtual tick.
type StatusEvent struct {
	Tick      int64
	Kind      StatusKind
	ProcessID ProcessID // zero for idle events
	RanTicks  int64     // ticks executed (dispatch/preempt/finish) or skipped (idle)
	Remaining int64
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// internal/sched/scheduler.go

package sched

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// simulation carries the state of one schedule call: the virtual clock,
// the Gantt trace, the event stream and the pool of processes that have
// not arrived yet.
type simulation struct {
	clock   TickClock
	trace   Trace
	events  []StatusEvent
	pending *redblacktree.Tree // not yet arrived, ordered by arrival time and process ID
}

func newSimulation(w Workload) *simulation {
	s := &simulation{pending: redblacktree.NewWith(cmp)}
	for _, p := range w {
		s.pending.Put(nodeKey{rank: p.Arrival, id: p.ID}, p)
	}
	return s
}

// admit hands every process that has arrived by the current tick to enqueue,
// earliest arrival first and by ID among simultaneous arrivals.
func (s *simulation) admit(enqueue func(p *Process)) {
	for {
		node := s.pending.Left()
		if node == nil {
			return
		}
		p := node.Value.(*Process)
		if p.Arrival > s.clock.Now() {
			return
		}
		s.pending.Remove(node.Key)
		s.emit(StatusEvent{Tick: s.clock.Now(), Kind: StatusEnqueue, ProcessID: p.ID, Remaining: p.Remaining})
		enqueue(p)
	}
}

// nextArrival returns the earliest pending arrival tick.
func (s *simulation) nextArrival() (int64, bool) {
	node := s.pending.Left()
	if node == nil {
		return 0, false
	}
	return node.Key.(nodeKey).rank, true
}

// idle passes the ticks up to the next arrival with nothing on the CPU.
// Stepping one tick at a time would give the same trace and merged Idle
// event, just slower. It reports false when nothing is left to arrive.
func (s *simulation) idle() bool {
	next, ok := s.nextArrival()
	if !ok {
		return false
	}
	s.idleUntil(next)
	return true
}

// idleUntil jumps the clock forward to tick t with nothing on the CPU.
func (s *simulation) idleUntil(t int64) {
	start := s.clock.Now()
	if gap := s.clock.AdvanceTo(t); gap > 0 {
		s.markIdle(start, gap)
	}
}

// markIdle records an idle stretch, merging it into the previous idle
// event when the two are contiguous.
func (s *simulation) markIdle(start, ticks int64) {
	if n := len(s.events); n > 0 {
		last := &s.events[n-1]
		if last.Kind == StatusIdle && last.Tick+last.RanTicks == start {
			last.RanTicks += ticks
			return
		}
	}
	s.emit(StatusEvent{Tick: start, Kind: StatusIdle, RanTicks: ticks})
}

// run puts p on the CPU for d ticks and reports whether it finished.
func (s *simulation) run(p *Process, d int64) bool {
	start := s.clock.Now()
	s.emit(StatusEvent{Tick: start, Kind: StatusDispatch, ProcessID: p.ID, Remaining: p.Remaining})

	p.execute(d)
	s.clock.Advance(d)
	s.trace = append(s.trace, Segment{ProcessID: p.ID, Start: start, Duration: d})

	kind := StatusPreempt
	if p.Done() {
		kind = StatusFinish
		p.complete(s.clock.Now())
	}
	s.emit(StatusEvent{Tick: s.clock.Now(), Kind: kind, ProcessID: p.ID, RanTicks: d, Remaining: p.Remaining})
	return p.Done()
}

func (s *simulation) emit(ev StatusEvent) {
	s.events = append(s.events, ev)
}

// nodeKey is used as a key in the red-black trees: a policy-specific rank
// (arrival time, burst time or priority) with the process ID as tie-break.
type nodeKey struct {
	rank int64
	id   ProcessID
}

// cmp orders nodeKeys by rank, then by ID.
func cmp(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.rank < kb.rank:
		return -1
	case ka.rank > kb.rank:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

package sched

import "github.com/emirpasic/gods/trees/redblacktree"

// scheduleSJF picks the ready process with the smallest total burst.
func scheduleSJF(_ Policy, s *simulation, w Workload) []*Process {
	return scheduleByRank(s, w, func(p *Process) int64 { return p.Burst })
}

// schedulePriority picks the ready process with the lowest priority value.
func schedulePriority(_ Policy, s *simulation, w Workload) []*Process {
	return scheduleByRank(s, w, func(p *Process) int64 { return int64(p.Priority) })
}

// scheduleByRank is the shared non-preemptive loop: at every decision point
// the ready process with the smallest rank (then smallest ID) runs to
// completion. With nothing ready the clock moves to the next arrival.
func scheduleByRank(s *simulation, w Workload, rank func(p *Process) int64) []*Process {
	done := make([]*Process, 0, len(w))
	ready := redblacktree.NewWith(cmp)
	enqueue := func(p *Process) {
		ready.Put(nodeKey{rank: rank(p), id: p.ID}, p)
	}

	for {
		s.admit(enqueue)
		node := ready.Left()
		if node == nil {
			if !s.idle() {
				return done
			}
			continue
		}
		ready.Remove(node.Key)
		p := node.Value.(*Process)
		s.run(p, p.Remaining)
		done = append(done, p)
	}
}

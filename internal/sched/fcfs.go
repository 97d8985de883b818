package sched

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// scheduleFCFS runs processes to completion in arrival order, ties broken by ID.
// When nothing has arrived the clock jumps straight to the next arrival.
func scheduleFCFS(_ Policy, s *simulation, w Workload) []*Process {
	done := make([]*Process, 0, len(w))
	ready := linkedlistqueue.New()
	enqueue := func(p *Process) { ready.Enqueue(p) }

	for {
		s.admit(enqueue)
		v, ok := ready.Dequeue()
		if !ok {
			if !s.idle() {
				return done
			}
			continue
		}
		p := v.(*Process)
		s.run(p, p.Remaining)
		done = append(done, p)
	}
}

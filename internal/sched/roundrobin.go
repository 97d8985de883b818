package sched

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// scheduleRoundRobin gives each ready process at most one quantum per turn
// from a FIFO queue. Processes that arrive while a slice runs are queued
// before the preempted process goes to the back, which shapes the waiting
// times and must not be reordered.
//
// Results come back in the workload's input order.
func scheduleRoundRobin(pol Policy, s *simulation, w Workload) []*Process {
	ready := linkedlistqueue.New()
	enqueue := func(p *Process) { ready.Enqueue(p) }

	for {
		s.admit(enqueue)
		v, ok := ready.Dequeue()
		if !ok {
			if !s.idle() {
				break
			}
			continue
		}

		p := v.(*Process)
		exec := min(p.Remaining, pol.Quantum)
		finished := s.run(p, exec)

		// newcomers first, then the preempted process
		s.admit(enqueue)
		if !finished {
			ready.Enqueue(p)
		}
	}

	done := make([]*Process, len(w))
	copy(done, w)
	return done
}

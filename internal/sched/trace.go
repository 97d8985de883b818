package sched

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment records one uninterrupted stretch of CPU occupancy.
type Segment struct {
	ProcessID ProcessID
	Start     int64
	Duration  int64
}

// End is the tick right after the segment.
func (s Segment) End() int64 { return s.Start + s.Duration }

// Trace is the append-only Gantt record of a run.
type Trace []Segment

// Busy returns the total ticks spent executing.
func (tr Trace) Busy() int64 {
	var total int64
	for _, s := range tr {
		total += s.Duration
	}
	return total
}

// String renders the trace as "| P1 | P2 |". An empty trace renders as "".
func (tr Trace) String() string {
	if len(tr) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range tr {
		fmt.Fprintf(&sb, "| P%d ", s.ProcessID)
	}
	sb.WriteString("|")
	return sb.String()
}

// Timeline renders the trace with its tick boundaries underneath.
// Idle gaps between segments show up as "--" blocks.
func (tr Trace) Timeline() string {
	if len(tr) == 0 {
		return ""
	}

	// an auxiliary function to center a label in a fixed-width cell
	center := func(str string, width int) string {
		if len(str) >= width {
			return str
		}
		spaces := (width - len(str)) / 2
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	const width = 6
	var bar, ticks strings.Builder
	bar.WriteString("|")
	var clock int64
	cell := func(label string, start int64) {
		bar.WriteString(center(label, width) + "|")
		ticks.WriteString(fmt.Sprintf("%-*s", width+1, strconv.FormatInt(start, 10)))
	}
	for _, s := range tr {
		if s.Start > clock {
			cell("--", clock)
		}
		cell("P"+strconv.Itoa(int(s.ProcessID)), s.Start)
		clock = s.End()
	}
	ticks.WriteString(strconv.FormatInt(clock, 10))
	return bar.String() + "\n" + ticks.String()
}

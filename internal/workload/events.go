package workload

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"schedsim/internal/sched"
)

// EventLog writes scheduler events as CSV rows.
type EventLog struct {
	file   *os.File
	writer *csv.Writer
}

// NewEventLog writes the header and returns a log on top of w.
func NewEventLog(w io.Writer) (*EventLog, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "policy", "tick", "event", "process_id", "ran_ticks", "remaining"}); err != nil {
		return nil, err
	}
	cw.Flush()
	return &EventLog{writer: cw}, cw.Error()
}

// CreateEventLog opens the given file path for CSV logging of events.
func CreateEventLog(path string) (*EventLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l, err := NewEventLog(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	l.file = f
	return l, nil
}

// Record appends every event of a run.
func (l *EventLog) Record(runID string, r sched.Result) error {
	for _, ev := range r.Events {
		rec := []string{
			runID,
			r.Policy.String(),
			strconv.FormatInt(ev.Tick, 10),
			ev.Kind.String(),
			strconv.Itoa(int(ev.ProcessID)),
			strconv.FormatInt(ev.RanTicks, 10),
			strconv.FormatInt(ev.Remaining, 10),
		}
		if err := l.writer.Write(rec); err != nil {
			return err
		}
	}
	l.writer.Flush()
	return l.writer.Error()
}

// Close flushes and closes the underlying file, if the log owns one.
func (l *EventLog) Close() error {
	l.writer.Flush()
	if l.file == nil {
		return l.writer.Error()
	}
	return l.file.Close()
}

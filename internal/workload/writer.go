package workload

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"schedsim/internal/sched"
)

// Write emits one line per process followed by the Gantt chart:
//
//	Process 1: Waiting Time = 0, Turnaround Time = 5
//
//	Gantt Chart:
//	| P1 | P2 |
func Write(w io.Writer, r sched.Result) error {
	for _, p := range r.Processes {
		if _, err := fmt.Fprintf(w, "Process %d: Waiting Time = %d, Turnaround Time = %d\n",
			p.ID, p.Waiting, p.Turnaround); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nGantt Chart:\n%s", r.Trace)
	return err
}

// Save renders the result and uploads it to URL.
func Save(ctx context.Context, fs afs.Service, URL string, r sched.Result) error {
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return err
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, &buf); err != nil {
		return fmt.Errorf("failed to save result to %s: %w", URL, err)
	}
	return nil
}

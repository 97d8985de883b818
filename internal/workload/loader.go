// Package workload moves processes and results between the simulator and
// text: the process list it reads and the report it writes.
package workload

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/viant/afs"

	"schedsim/internal/sched"
)

// ErrEmptySource is returned when a source holds no complete process record.
var ErrEmptySource = errors.New("workload source has no process records")

// Parse reads whitespace separated "id arrival burst priority" records.
// Reading stops quietly at the first token that is not an integer, at an
// incomplete trailing record, or at a record that breaks the process model
// (non-positive id or burst, negative arrival, repeated id).
func Parse(r io.Reader) (sched.Workload, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var (
		w     sched.Workload
		seen  = map[sched.ProcessID]bool{}
		field [4]int64
	)
	for {
		complete := true
		for i := range field {
			if !scanner.Scan() {
				complete = false
				break
			}
			v, err := strconv.ParseInt(scanner.Text(), 10, 64)
			if err != nil {
				complete = false
				break
			}
			field[i] = v
		}
		if !complete {
			break
		}

		id := sched.ProcessID(field[0])
		if id <= 0 || field[1] < 0 || field[2] <= 0 || seen[id] {
			break
		}
		seen[id] = true
		w = append(w, sched.NewProcess(id, field[1], field[2], int(field[3])))
	}
	if err := scanner.Err(); err != nil {
		return w, fmt.Errorf("scan workload: %w", err)
	}
	if len(w) == 0 {
		return w, ErrEmptySource
	}
	return w, nil
}

// Load downloads the source at URL (a plain path or any afs scheme) and
// parses it. On failure the returned workload is empty so callers can still
// run it.
func Load(ctx context.Context, fs afs.Service, URL string) (sched.Workload, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return sched.Workload{}, fmt.Errorf("failed to load workload from %s: %w", URL, err)
	}
	w, err := Parse(bytes.NewReader(data))
	if err != nil {
		return w, fmt.Errorf("%s: %w", URL, err)
	}
	return w, nil
}

package workload

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"schedsim/internal/sched"
)

// WriteSchedule prints the per-process table with averages in the footer.
func WriteSchedule(w io.Writer, r sched.Result) {
	sum := sched.Summarize(r)

	rows := make([][]string, 0, len(r.Processes))
	for _, p := range r.Processes {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.Burst),
			fmt.Sprint(p.Arrival),
			fmt.Sprint(p.Waiting),
			fmt.Sprint(p.Turnaround),
			fmt.Sprint(p.Completion()),
		})
	}

	_, _ = fmt.Fprintf(w, "%s schedule\n", r.Policy)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", sum.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", sum.AvgTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", sum.Throughput)})
	table.Render()
}

// WriteComparison prints one row per policy summary.
func WriteComparison(w io.Writer, sums []sched.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Processes", "Avg Wait", "Avg Turnaround", "Makespan", "Idle", "Utilization", "Throughput"})
	for _, s := range sums {
		table.Append([]string{
			s.Policy.String(),
			fmt.Sprint(s.Processes),
			fmt.Sprintf("%.2f", s.AvgWaiting),
			fmt.Sprintf("%.2f", s.AvgTurnaround),
			fmt.Sprint(s.Makespan),
			fmt.Sprint(s.Idle),
			fmt.Sprintf("%.1f%%", s.Utilization*100),
			fmt.Sprintf("%.2f/t", s.Throughput),
		})
	}
	table.Render()
}

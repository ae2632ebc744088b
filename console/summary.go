package console

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/perfgo/lingsgrade/model"
)

// FormatPassRate renders the pass rate with two decimals, "0.00%" for an
// empty run.
func FormatPassRate(s model.Statistics) string {
	return fmt.Sprintf("%.2f%%", s.PassRate())
}

// Summary prints the statistics of a grading run as a table.
func (c *Console) Summary(result *model.GradeResult) error {
	s := result.Statistics

	passColor.Fprintln(c.out, "grading statistics")

	table := tablewriter.NewWriter(c.out)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	data := [][]string{
		{"Total exercises", strconv.Itoa(s.Total)},
		{"Passed", strconv.Itoa(s.Succeeds)},
		{"Failed", strconv.Itoa(s.Failures)},
		{"Total time", fmt.Sprintf("%ds", s.TotalTime)},
		{"Pass rate", FormatPassRate(s)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// FailedList prints the exercises that did not pass.
func (c *Console) FailedList(result *model.GradeResult) {
	failed := result.Failed()
	if len(failed) == 0 {
		passColor.Fprintln(c.out, "no failed exercises")
		return
	}
	failColor.Fprintf(c.out, "failed exercises (%d):\n", len(failed))
	for _, name := range failed {
		fmt.Fprintf(c.out, "  %s %s\n", failColor.Sprint("✗"), name)
	}
}

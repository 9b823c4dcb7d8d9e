package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"systest/internal/domain"
)

// Formatter formats and displays suite output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// PrintTestList prints every defined test as "- name: description".
// failed is optional; tests in it failed in the last run and are marked [F].
func (f *Formatter) PrintTestList(cases []domain.TestCase, failed map[string]struct{}) {
	fmt.Fprintln(f.out, "Available tests:")
	for _, tc := range cases {
		marker := ""
		if _, ok := failed[tc.Name]; ok {
			marker = " " + color.RedString("[F]")
		}
		fmt.Fprintf(f.out, "- %s: %s%s\n", tc.Name, tc.Description, marker)
	}
}

// PrintSummary prints the per-case table and the final pass/fail line
func (f *Formatter) PrintSummary(report *domain.RunReport) {
	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("System Test Results")
	t.AppendHeader(table.Row{"#", "Test", "Result", "Transport", "Producer", "Consumer", "Validation", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	for i, c := range report.Details {
		t.AppendRow(table.Row{
			i + 1,
			c.Name,
			resultLabel(c.Passed),
			c.Transport.Status(),
			c.Producer.Status(),
			c.Consumer.Status(),
			validationLabel(c.Validation),
			fmt.Sprintf("%.2fs", c.Duration.Seconds()),
		})
	}

	meta := report.Meta
	t.AppendFooter(table.Row{"", "Total", meta.TotalTests, "", "", "", "", fmt.Sprintf("%.2fs", meta.DurationSeconds)})
	t.Render()

	fmt.Fprintln(f.out)
	if meta.FailedTests == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All %d test(s) passed!", meta.TotalTests))
		return
	}
	fmt.Fprintln(f.out, color.RedString("✗ %d of %d test(s) failed", meta.FailedTests, meta.TotalTests))
}

func resultLabel(passed bool) string {
	if passed {
		return color.GreenString("PASS")
	}
	return color.RedString("FAIL")
}

func validationLabel(v domain.ValidationReport) string {
	switch {
	case !v.Requested:
		return "-"
	case v.Error != "":
		return "error"
	case v.Match:
		return "match"
	default:
		return "mismatch"
	}
}

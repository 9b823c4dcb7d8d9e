package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"systest/internal/domain"
	"systest/internal/logging"
	"systest/internal/storage"
)

const maxDetailLines = 40

// FailureViewer displays failed cases of the last run in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
	logger  logging.Logger
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage, logger logging.Logger) *FailureViewer {
	return &FailureViewer{
		storage: st,
		logger:  logger,
	}
}

// View displays the failed cases of report. Toggling a case resolved saves the report.
func (fv *FailureViewer) View(report *domain.RunReport) error {
	// Indexes into report.Details so resolved flags land on the saved report
	var failed []int
	for i, c := range report.Details {
		if !c.Passed {
			failed = append(failed, i)
		}
	}
	if len(failed) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	listItemText := func(n int) string {
		c := report.Details[failed[n]]
		if c.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", n+1, tview.Escape(c.Name))
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", n+1, tview.Escape(c.Name))
	}

	for n := range failed {
		list.AddItem(listItemText(n), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// List on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for _, i := range failed {
			if !report.Details[i].Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" Failed system tests (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ", len(failed), unresolved))
	}

	updateDetails := func() {
		n := list.GetCurrentItem()
		if n < 0 || n >= len(failed) {
			return
		}
		c := report.Details[failed[n]]
		statsView.SetText(formatCaseStats(report.Meta, c))
		detailsView.SetText(formatCaseDetails(c)).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				n := list.GetCurrentItem()
				if n >= 0 && n < len(failed) {
					c := &report.Details[failed[n]]
					c.Resolved = !c.Resolved
					list.SetItemText(n, listItemText(n), "")
					updateHeader()
					if err := fv.storage.Save(report); err != nil {
						statsView.SetText(fmt.Sprintf("[red]failed to save resolved status: %s[white]", tview.Escape(err.Error())))
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	fv.logger.Debug("Failures viewer closed")
	return nil
}

// formatCaseStats formats the stats header for a failed case
func formatCaseStats(meta domain.RunReportMeta, c domain.CaseResult) string {
	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white]::[yellow]%s[white]\n[cyan]run:[white] %s  [cyan]at:[white] %s",
		tview.Escape(meta.SuiteFile), tview.Escape(c.Name), meta.RunID, meta.Timestamp)
}

// formatCaseDetails formats a failed case using tview color tags
func formatCaseDetails(c domain.CaseResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Test: %s[white]\n", tview.Escape(c.Name))
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n", tview.Escape(c.Description))
	}
	fmt.Fprintf(&b, "[gray]Duration: %.2fs[white]\n\n", c.Duration.Seconds())

	if c.Error != "" {
		fmt.Fprintf(&b, "[yellow]Error:[white]\n%s\n\n", tview.Escape(c.Error))
	}

	for _, r := range []domain.RunResult{c.Transport, c.Producer, c.Consumer} {
		fmt.Fprintf(&b, "[cyan]%s[white]: %s (exit %d, %.2fs)\n", r.Runner, statusTag(r), r.ExitCode, r.Duration.Seconds())
		if r.Error != "" {
			fmt.Fprintf(&b, "  [yellow]%s[white]\n", tview.Escape(r.Error))
		}
		if r.Stderr != "" {
			fmt.Fprintf(&b, "[yellow]  stderr:[white]\n%s\n", indent(tview.Escape(r.Stderr)))
		}
	}
	fmt.Fprintln(&b)

	v := c.Validation
	if v.Requested {
		fmt.Fprintf(&b, "[cyan]Validation:[white] %s\n", tview.Escape(v.File))
		if v.Error != "" {
			fmt.Fprintf(&b, "  [red]%s[white]\n", tview.Escape(v.Error))
		}
		if v.Expected != "" {
			fmt.Fprintf(&b, "[yellow]Expected:[white]\n%s\n", indent(tview.Escape(v.Expected)))
		}
		if v.Actual != "" {
			fmt.Fprintf(&b, "[yellow]Actual:[white]\n%s\n", indent(tview.Escape(v.Actual)))
		}
		if v.Diff != "" {
			fmt.Fprintf(&b, "[yellow]Diff (-expected +actual):[white]\n%s\n", indent(tview.Escape(v.Diff)))
		}
	}

	return b.String()
}

func statusTag(r domain.RunResult) string {
	status := r.Status()
	switch status {
	case "ok":
		return "[green]" + status + "[white]"
	case "not started":
		return "[gray]" + status + "[white]"
	default:
		return "[red]" + status + "[white]"
	}
}

// indent prefixes every line with two spaces, keeping at most maxDetailLines lines
func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	more := 0
	if len(lines) > maxDetailLines {
		more = len(lines) - maxDetailLines
		lines = lines[:maxDetailLines]
	}
	out := "  " + strings.Join(lines, "\n  ")
	if more > 0 {
		out += fmt.Sprintf("\n  [gray]... and %d more lines[white]", more)
	}
	return out
}

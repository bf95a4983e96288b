package logwriter

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/brightops/prove/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// Table layout constraints for the human-mode report.
const (
	fallbackTermWidth = 100
	minReasonWidth    = 24
	fixedColumnsWidth = 40 // check id, status, duration columns plus padding
)

// jsonReport is the wire shape of the final report line in JSON mode.
type jsonReport struct {
	Type string `json:"type"`
	schema.ProveResult
}

// GenerateReport aggregates the produced check results into the final
// ProveResult, emits it exactly once as a result-level entry, and returns
// it for the CLI entry to map to an exit code. The checks sequence is
// sorted by check id so output is reproducible regardless of completion
// order under concurrency.
func (l *Logger) GenerateReport(mode schema.Mode, checks []schema.CheckResult) schema.ProveResult {
	sorted := make([]schema.CheckResult, len(checks))
	copy(sorted, checks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	success := true
	for _, c := range sorted {
		success = success && c.OK
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	result := schema.ProveResult{
		Mode:    mode,
		Checks:  sorted,
		TotalMs: time.Since(l.start).Milliseconds(),
		Success: success,
	}

	entry := schema.LogEntry{
		Level:     schema.ResultLevel,
		Message:   "prove-report",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      map[string]any{"success": success, "totalMs": result.TotalMs},
	}
	l.entries = append(l.entries, entry)

	if l.jsonMode {
		l.writeJSON(jsonReport{Type: "prove-report", ProveResult: result})
		return result
	}

	l.writeReportTable(result)
	return result
}

// writeReportTable renders the human-readable final report. Callers hold l.mu.
func (l *Logger) writeReportTable(result schema.ProveResult) {
	table := tablewriter.NewWriter(l.out)
	table.Header([]string{"Check", "Status", "Ms", "Reason"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	reasonWidth := maxReasonWidth()
	var data [][]string
	for _, c := range result.Checks {
		status := passLabel(l.useColors)
		if !c.OK {
			status = failLabel(l.useColors)
		}
		data = append(data, []string{
			c.ID,
			status,
			fmt.Sprintf("%d", c.DurationMs),
			truncateReason(c.Reason, reasonWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return
	}
	if err := table.Render(); err != nil {
		return
	}

	passed := 0
	for _, c := range result.Checks {
		if c.OK {
			passed++
		}
	}
	if result.Success {
		_, _ = fmt.Fprintf(l.out, "%s prove: %d/%d checks passed in %dms (mode %s)\n",
			successGlyph, passed, len(result.Checks), result.TotalMs, result.Mode)
		return
	}
	_, _ = fmt.Fprintf(l.out, "%s prove: %d/%d checks failed in %dms (mode %s)\n",
		errorGlyph, len(result.Checks)-passed, len(result.Checks), result.TotalMs, result.Mode)
}

// passLabel returns the rendered pass status cell.
func passLabel(useColors bool) string {
	if useColors {
		return successColor.Sprint("pass")
	}
	return "pass"
}

// failLabel returns the rendered fail status cell.
func failLabel(useColors bool) string {
	if useColors {
		return errorColor.Sprint("fail")
	}
	return "fail"
}

// truncateReason shortens a reason to fit the table, ellipsis suffixed.
func truncateReason(reason string, maxWidth int) string {
	runes := []rune(reason)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return reason
}

// maxReasonWidth derives the reason column budget from the terminal width.
func maxReasonWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = fallbackTermWidth
	}
	if width-fixedColumnsWidth < minReasonWidth {
		return minReasonWidth
	}
	return width - fixedColumnsWidth
}

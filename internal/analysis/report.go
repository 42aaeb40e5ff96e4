package analysis

import (
	"fmt"
	"strings"
)

// ProportionsMarkdown renders a proportion series as a compact table.
func ProportionsMarkdown(column string, props []Proportion) string {
	var b strings.Builder
	b.WriteString("[VALUE PROPORTIONS]\n")
	b.WriteString(fmt.Sprintf("Column: %s\n", safeName(column)))
	b.WriteString(fmt.Sprintf("Distinct values: %d\n\n", len(props)))
	b.WriteString("| value | count | share |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, p := range props {
		b.WriteString(fmt.Sprintf("| %s | %d | %.4f |\n", safeVal(p.Value.String()), p.Count, p.Share))
	}
	return b.String()
}

// Markdown renders the test result with both group summaries and the verdict.
func (r TTestResult) Markdown() string {
	var b strings.Builder
	b.WriteString("[T-TEST]\n")
	b.WriteString(fmt.Sprintf("Column: %s\n", safeName(r.Column)))
	b.WriteString(fmt.Sprintf("Alpha: %.4g (two-tailed), df %d\n\n", r.Alpha, r.DF))
	b.WriteString("[GROUPS]\n")
	for _, g := range []struct {
		name string
		s    SampleStats
	}{{"Regular hosts", r.Regular}, {"Superhosts", r.Super}} {
		b.WriteString(fmt.Sprintf("- %s (n=%d): mean %.4g, std %.4g, sum of squares %.4g\n",
			g.name, g.s.N, g.s.Mean, g.s.StdDev, g.s.SumSquares))
	}
	b.WriteString("\n[RESULT]\n")
	b.WriteString(fmt.Sprintf("t = %.4f, critical = ±%.4f\n", r.T, r.Critical))
	if r.Significant() {
		b.WriteString("Reject the null hypothesis: group means differ.\n")
	} else {
		b.WriteString("Cannot reject the null hypothesis of equal means.\n")
	}
	return b.String()
}

// DroppedMarkdown lists removed single-value columns.
func DroppedMarkdown(dropped []string) string {
	var b strings.Builder
	b.WriteString("[DROPPED COLUMNS]\n")
	if len(dropped) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, c := range dropped {
		b.WriteString("- ")
		b.WriteString(safeName(c))
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders both group summaries as one table.
func (c Comparison) Markdown() string {
	var b strings.Builder
	b.WriteString("[SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Column: %s\n\n", safeName(c.Column)))
	b.WriteString("| group | n | nulls | mean | std | min | q1 | median | q3 | max |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	rows := []struct {
		name string
		s    GroupSummary
	}{{"Regular hosts", c.Regular}, {"Superhosts", c.Super}}
	for _, r := range rows {
		s := r.s
		b.WriteString(fmt.Sprintf("| %s | %d | %d | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
			r.name, s.N, s.Nulls, s.Mean, s.StdDev, s.Min, s.Q1, s.Median, s.Q3, s.Max))
	}
	b.WriteString("\n[OUTLIERS]\n")
	for _, r := range rows {
		s := r.s
		if s.MAD == 0 {
			b.WriteString(fmt.Sprintf("- %s: MAD is zero, robust z undefined\n", r.name))
			continue
		}
		b.WriteString(fmt.Sprintf("- %s: %d above |z|>%.1f (max |z|≈%.2f)\n", r.name, s.Outliers, s.Threshold, s.MaxAbsZ))
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

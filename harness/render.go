package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/theapemachine/grover"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7"))

	targetBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e0af68"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9ece6a"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f7768e"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)
)

/*
RenderHistogram draws one bar per basis index: the exact probability as the
bar, the shot count beside it. The target row is highlighted.
*/
func RenderHistogram(report Report) string {
	c := report.Case

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", caseName(c), c)))
	b.WriteString("\n")

	if report.Result == nil {
		b.WriteString(failStyle.Render(report.Reason))
		return panelStyle.Render(b.String())
	}

	qubits := report.Result.Register.Qubits
	for idx, p := range report.Result.Distribution {
		style := barStyle
		if idx == c.Target {
			style = targetBarStyle
		}

		bar := strings.Repeat("█", int(math.Round(p*barWidth)))
		fmt.Fprintf(
			&b,
			"%s %s %s %s\n",
			labelStyle.Render(grover.FormatBitstring(idx, qubits)),
			style.Width(barWidth).Render(bar),
			fmt.Sprintf("%6.2f%%", p*100),
			dimStyle.Render(fmt.Sprintf("(%d)", report.Counts[idx])),
		)
	}

	fmt.Fprintf(
		&b,
		"P(%s) observed %.4f, expected %.4f, threshold %.4f\n",
		grover.FormatBitstring(c.Target, qubits),
		report.Observed,
		report.Expected,
		report.Threshold,
	)
	b.WriteString(verdict(report))

	return panelStyle.Render(b.String())
}

// RenderSummary prints one line per report.
func RenderSummary(reports []Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("--- Test Summary ---"))
	b.WriteString("\n")

	for _, r := range reports {
		fmt.Fprintf(&b, "%s (%s): %s\n", caseName(r.Case), r.Case, verdict(r))
	}

	return b.String()
}

func verdict(r Report) string {
	if r.Passed {
		return passStyle.Render("PASSED")
	}
	return failStyle.Render("FAILED") + " " + dimStyle.Render(r.Reason)
}

func caseName(c Case) string {
	if c.Name != "" {
		return c.Name
	}
	return "Case"
}

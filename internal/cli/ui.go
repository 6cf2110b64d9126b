package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Terminal colors. Adaptive pairs keep output readable on light and dark
// backgrounds.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "30", Dark: "36"}
	colorOK     = lipgloss.AdaptiveColor{Light: "28", Dark: "35"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "172", Dark: "220"}
	colorFail   = lipgloss.AdaptiveColor{Light: "160", Dark: "167"}
	colorLink   = lipgloss.AdaptiveColor{Light: "25", Dark: "75"}
	colorText   = lipgloss.AdaptiveColor{Light: "235", Dark: "255"}
	colorLabel  = lipgloss.AdaptiveColor{Light: "242", Dark: "245"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "247", Dark: "240"}
)

// Exported styles shared with other commands.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// statusMark is the leading glyph of a one-line status message.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorLabel)}
)

func (m statusMark) String() string { return m.style.Render(m.glyph) }

func printStatus(m statusMark, msg string) {
	fmt.Println(m.String() + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(markSuccess, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}

// printStats prints a one-line summary of a rendered page.
func printStats(components, bytes int, cached bool) {
	parts := []string{StyleDim.Render(plural(components, "component"))}
	if bytes > 0 {
		parts = append(parts, StyleDim.Render(formatBytes(bytes)))
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, markInfo.style.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

func formatBytes(n int) string {
	const kb, mb = 1 << 10, 1 << 20
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	}
	return fmt.Sprintf("%d B", n)
}

// headerRow is the row index lipgloss/table passes for the header.
const headerRow = -1

// renderTable lays rows out under headers. Rows for which highlight
// reports true are drawn in the accent color.
func renderTable(headers []string, rows [][]string, highlight func(row int) bool) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return cell.Foreground(colorLabel).Bold(true)
			case highlight != nil && highlight(row):
				return cell.Foreground(colorAccent).Bold(true)
			case col == 0:
				return cell.Foreground(colorMuted)
			}
			return cell
		}).
		Render()
}

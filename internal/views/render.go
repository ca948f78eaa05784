package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"focusgrid/internal/model"
)

type AppData struct {
	Header     string
	LeftPane   string
	RightPane  string
	StatusLine string
	AlertLine  string
	Footer     string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9")).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	stageStyles = map[string]lipgloss.Style{
		model.StageLabelSeed:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.StageLabelSprout: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.StageLabelYoung:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.StageLabelStrong: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.StageLabelFull:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	}
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.AlertLine != "" {
		lines = append(lines, alertStyle.Render(data.AlertLine))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// StageBadge colors a tree stage label for inline use.
func StageBadge(label string) string {
	if style, ok := stageStyles[label]; ok {
		return style.Render(label)
	}
	return label
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

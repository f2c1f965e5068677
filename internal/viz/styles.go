package viz

import "github.com/charmbracelet/lipgloss"

type styles struct {
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	hint    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	picker  lipgloss.Style
	current lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(panelWidth - 1),
		header:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		ok:      lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		help:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Foreground(t.Text).Padding(0, 2),
		picker:  lipgloss.NewStyle().Foreground(t.Muted),
		current: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
	}
}

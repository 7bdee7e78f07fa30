package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/rootcheck/pkg/detect"
	"github.com/mittwald/rootcheck/pkg/probe"
)

var colorSuccess = lipgloss.Color("#00B785")
var colorFailed = lipgloss.Color("#e1244c")

var stylePresent = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
var styleAbsent = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleNotSet = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D689C"))

var styleReasons = lipgloss.NewStyle().PaddingLeft(2)
var styleCheckName = lipgloss.NewStyle().Width(14)

func pathLine(r probe.PathResult) string {
	if r.Found {
		return lipgloss.JoinHorizontal(lipgloss.Left, stylePresent.Render("PRESENT"), " ", styleHighlight.Render(r.Path))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, styleAbsent.Render("Absent "), " ", styleNotSet.Render(r.Path))
}

func reportView(r *detect.Report) string {
	headline := styleAbsent.Render("no root indicators found")
	if r.Rooted {
		headline = stylePresent.Render(fmt.Sprintf("device appears to be rooted (%d indicators)", len(r.Reasons)))
	}

	lines := []string{headline, ""}
	for _, c := range r.Checks {
		status := styleAbsent.Render("clean")
		if c.Found {
			status = stylePresent.Render("found")
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left, styleCheckName.Render(c.Name), status))
		for _, reason := range c.Reasons {
			lines = append(lines, styleReasons.Render("- "+reason))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

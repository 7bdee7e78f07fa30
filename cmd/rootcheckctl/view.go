package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/rootcheck/pkg/detect"
)

func reportSummary(r *detect.Report) string {
	if !r.Rooted {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			styleClean.Render("✔"), " ",
			styleClean.Render("no root indicators found"), " (report ",
			styleHighlight.Render(r.ID), ", ",
			r.CreatedAt.Format(time.RFC3339), ")",
		)
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Left,
			styleRooted.Render("✘"), " ",
			styleRooted.Render(fmt.Sprintf("%d root indicators found", len(r.Reasons))), " (report ",
			styleHighlight.Render(r.ID), ", ",
			r.CreatedAt.Format(time.RFC3339), ")",
		),
	}
	for _, reason := range r.Reasons {
		lines = append(lines, styleListItem.Render("- "+reason))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

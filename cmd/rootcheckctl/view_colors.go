package main

import (
	"github.com/charmbracelet/lipgloss"
)

var colorSuccess = lipgloss.Color("#00B785")
var colorFailed = lipgloss.Color("#e1244c")

var styleClean = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleRooted = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)

var styleListItem = lipgloss.NewStyle().Padding(0, 2)

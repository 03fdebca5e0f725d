// Package ui holds the shared terminal styles and report primitives.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	// TitleStyle renders report headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	// SectionStyle renders section names.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	// ReadyStyle marks healthy rows.
	ReadyStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// FailedStyle marks unhealthy rows.
	FailedStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	// WarnStyle marks degraded rows.
	WarnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	// DimStyle renders secondary detail.
	DimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Row marks used in plain (non-styled) output.
const (
	CheckMark = "[OK]"
	CrossMark = "[!!]"
	WarnMark  = "[??]"
)

// Package ui renders command results for the terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Warning     = lipgloss.Color("#FFC107") // Yellow
	Info        = lipgloss.Color("#2196F3") // Blue
	Muted       = lipgloss.Color("#7a8699")
)

// Styles holds all the styled components
type Styles struct {
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Money   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles builds the styles on r so color output follows r's terminal.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(Info),
		Body:    r.NewStyle(),
		Muted:   r.NewStyle().Foreground(Muted),
		Bold:    r.NewStyle().Bold(true),
		Money:   r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(Success),
		Error:   r.NewStyle().Foreground(Destructive).Bold(true),
		Warning: r.NewStyle().Foreground(Warning),
		Info:    r.NewStyle().Foreground(Info),
	}
}

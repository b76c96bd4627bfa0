package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	Prompt        lipgloss.Style
	LineNumber    lipgloss.Style
	SelectionBg   lipgloss.Style
	Misspelled    lipgloss.Style
	Help          lipgloss.Style
	SuggestIndex  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		LineNumber:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Misspelled:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Underline(true),
		Help:          lipgloss.NewStyle().Faint(true),
		SuggestIndex:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	}
}

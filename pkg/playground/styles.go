package playground

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	cyanColor    = lipgloss.Color("45")
	warningColor = lipgloss.Color("214")
)

// Trigger button styles
var (
	triggerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	triggerFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(primaryColor).
				Bold(true).
				Padding(0, 2)

	triggerHoverStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("245")).
				Padding(0, 2)
)

// Item styles
var (
	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	itemSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	itemFocusedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255")).
				Bold(true)

	itemHoverStyle = lipgloss.NewStyle().
			Foreground(cyanColor)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	tabSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("237")).
				Underline(true).
				Padding(0, 1)

	tabFocusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(primaryColor).
			Bold(true).
			Padding(0, 1)
)

// Status line styles
var (
	statusStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	modalityStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
)

package tui

import "github.com/charmbracelet/lipgloss"

const sidebarWidth = 30

var (
	// Standard ANSI colors so the user's terminal theme is respected.
	primaryColor   = lipgloss.ANSIColor(14)
	secondaryColor = lipgloss.ANSIColor(8)
	userColor      = lipgloss.ANSIColor(12)
	assistantColor = lipgloss.ANSIColor(13)
	warningColor   = lipgloss.ANSIColor(11)
	errorColor     = lipgloss.ANSIColor(9)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(userColor).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(assistantColor).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1).
			Width(sidebarWidth)

	sidebarFocusedStyle = sidebarStyle.
				BorderForeground(primaryColor)

	sidebarItemStyle = lipgloss.NewStyle().
				MaxWidth(sidebarWidth - 2)

	sidebarCursorStyle = sidebarItemStyle.
				Foreground(primaryColor).
				Bold(true)

	viewportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

package tui

import "github.com/charmbracelet/lipgloss"

// Color constants shared by the prompts and the generator output.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	accentColor    = "#06B6D4" // Cyan
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent rendering.
var (
	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// BoldStyle emphasises a word inside a sentence.
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// CommandStyle renders shell commands the user can copy.
	CommandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentColor))

	// QuestionStyle renders prompt questions.
	QuestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F3F4F6")).
			Bold(true)

	// SelectedStyle highlights the selected answer.
	SelectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 2)

	// UnselectedStyle renders the other answer.
	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 2)
)

package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorGreen     = lipgloss.Color("#50fa7b")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorOrange    = lipgloss.Color("#ffb86c")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	// Suggestion table styles
	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	rowFocusedStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorHighlight).
			Bold(true)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	scoreHighStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	scoreMidStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	scoreLowStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	// Filter bar
	filterBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	filterActiveStyle = lipgloss.NewStyle().
				Foreground(colorOrange).
				Bold(true)

	// Preview modal
	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(1, 2)

	previewHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true).
				Padding(0, 0, 1, 0)

	previewLabelStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Width(14)

	// Notification dropdown
	notifStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	notifUnreadStyle = lipgloss.NewStyle().
				Foreground(colorOrange).
				Bold(true)

	notifReadStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorRed).
			Bold(true).
			Padding(0, 1)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	// Toasts
	toastInfoStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	toastWarnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	// Help
	helpHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

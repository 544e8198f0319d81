package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Margin(1, 1)

	// Color palette (ANSI colors for broad terminal support)
	colorPrimary   = lipgloss.Color("5") // Magenta/Purple
	colorSecondary = lipgloss.Color("4") // Blue
	colorAccent    = lipgloss.Color("6") // Cyan
	colorSuccess   = lipgloss.Color("2") // Green
	colorError     = lipgloss.Color("1") // Red
	colorWarning   = lipgloss.Color("3") // Yellow
	colorFaint     = lipgloss.Color("8") // Gray
	colorText      = lipgloss.Color("7") // White/Light gray

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorFaint).Padding(0, 1)
	badgeStyle     = lipgloss.NewStyle().Foreground(colorSuccess).Border(lipgloss.RoundedBorder()).BorderForeground(colorSuccess).Padding(0, 1)
	listTitleStyle = lipgloss.NewStyle().Foreground(colorSecondary).Padding(0, 1).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(colorFaint)
	textStyle      = lipgloss.NewStyle().Foreground(colorText)

	statBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(colorFaint).Padding(0, 2).MarginRight(1)
	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)

	controlStyle       = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	controlActiveStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	searchInputStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)

	cardNameStyle         = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	cardSelectedNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	cardBodyStyle         = lipgloss.NewStyle().PaddingLeft(4)
	connectedStyle        = lipgloss.NewStyle().Foreground(colorSuccess)
	securedStyle          = lipgloss.NewStyle().Foreground(colorAccent)
	openStyle             = lipgloss.NewStyle().Foreground(colorWarning)
	secretStyle           = lipgloss.NewStyle().Foreground(colorText)
	maskStyle             = lipgloss.NewStyle().Foreground(colorFaint)

	statusMessageBaseStyle = lipgloss.NewStyle().MarginTop(1)
	errorStyle             = statusMessageBaseStyle.Foreground(colorError).Bold(true)
	successStyle           = statusMessageBaseStyle.Foreground(colorSuccess).Bold(true)
	warningStyle           = statusMessageBaseStyle.Foreground(colorWarning)
	infoStyle              = statusMessageBaseStyle.Foreground(colorFaint)
	loadingStyle           = lipgloss.NewStyle().Foreground(colorAccent)
	infoBoxStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(colorAccent).Padding(1, 2).MarginTop(1)
	helpGlobalStyle        = lipgloss.NewStyle().Foreground(colorFaint)
	emptyStyle             = lipgloss.NewStyle().Faint(true).Margin(1, 0).Foreground(colorFaint)

	// Signal strength styles
	signalExcellentStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	signalGoodStyle      = lipgloss.NewStyle().Foreground(colorWarning)
	signalWeakStyle      = lipgloss.NewStyle().Foreground(colorError)
)

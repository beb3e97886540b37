package log

import "github.com/charmbracelet/lipgloss"

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")) // Gray
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")) // Blue
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")) // Yellow
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")) // Red

	fatalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Background(lipgloss.Color("#000000")).
			Bold(true)

	levelStyles = []struct {
		level    Level
		maxWidth int
		style    lipgloss.Style
	}{
		{level: DebugLevel, maxWidth: 5, style: debugStyle},
		{level: InfoLevel, maxWidth: 5, style: infoStyle},
		{level: WarnLevel, maxWidth: 5, style: warnStyle},
		{level: ErrorLevel, maxWidth: 5, style: errorStyle},
		{level: FatalLevel, maxWidth: 5, style: fatalStyle},
	}
)

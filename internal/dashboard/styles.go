package dashboard

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	dangerColor = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}

	titleText    = lipgloss.NewStyle().Bold(true)
	mutedText    = lipgloss.NewStyle().Foreground(dimColor)
	errorText    = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	avatarText   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	deleteText   = lipgloss.NewStyle().Foreground(dangerColor)
	selectedText = lipgloss.NewStyle().Bold(true)
	labelText    = lipgloss.NewStyle().Width(7)
)

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
		Padding(0, 1)
}

// paneStyle picks the border for a pane depending on focus.
func paneStyle(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder()
	}
	return UnfocusedBorder()
}

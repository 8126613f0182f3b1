package cli

import "github.com/charmbracelet/lipgloss"

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// passMark and failMark prefix result lines in text output. Colour is
// dropped when the terminal does not support it.
func passMark() string { return passStyle.Render("✓") }
func failMark() string { return failStyle.Render("✗") }

func verdict(accepted bool) string {
	if accepted {
		return passStyle.Render("accepted")
	}
	return failStyle.Render("not accepted")
}

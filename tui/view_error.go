package tui

func (m Model) viewError(msg string) string {
	return errorStyle.Render("✗ " + msg)
}

package tui

// errorOverlayModel shows a page-level load failure.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := "Error\n\n" + m.message + "\n\nr retry    esc back"
	return overlayBoxStyle.Render(errorStyle.Render(content))
}

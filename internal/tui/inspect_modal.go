package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/usercrud/internal/keybinds"
)

// renderInspect renders the record inspection modal
func (m Model) renderInspect() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	// Fixed footer for keybinds
	footer := styleSubtle.Render("↑/↓ scroll [y] copy [ESC] close")
	if m.errorMsg != "" {
		footer += "  " + styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		footer += "  " + styleSuccess.Render(m.statusMsg)
	}

	inspectView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(modalWidth).
		Height(modalHeight).
		Padding(1, 2).
		Render(styleTitle.Render("Inspect Record") + "\n\n" + m.inspectView.View() + "\n\n" + footer)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		inspectView,
	)
}

// handleInspectKeys handles keyboard input in inspect mode
func (m *Model) handleInspectKeys(msg tea.KeyMsg) tea.Cmd {
	// Match key to action using keybinds registry
	action, ok := m.keybinds.Match(keybinds.ContextInspect, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal, keybinds.ActionQuit:
		m.mode = ModeNormal

	case keybinds.ActionCopyRow:
		return m.copyRow()

	case keybinds.ActionScrollUp:
		m.inspectView.ScrollUp(1)

	case keybinds.ActionScrollDown:
		m.inspectView.ScrollDown(1)
	}

	return nil
}

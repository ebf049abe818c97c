package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Force quit works in every mode
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		return m.quit()
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeEdit:
		return m.handleFormKeys(keybinds.ContextEdit, msg)
	case ModeForm:
		return m.handleFormKeys(keybinds.ContextForm, msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModeInspect:
		return m.handleInspectKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// matchInput matches a key for a text entry context, falling back to the
// bindings shared by all text inputs
func (m *Model) matchInput(context keybinds.Context, key string) (keybinds.Action, bool) {
	if action, ok := m.keybinds.Match(context, key); ok {
		return action, true
	}
	return m.keybinds.Match(keybinds.ContextTextInput, key)
}

func (m *Model) quit() tea.Cmd {
	m.Cleanup()
	return tea.Quit
}

// handleNormalKeys handles keyboard input on the table
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNormal, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionNavigateUp:
		m.moveCursor(-1)
	case keybinds.ActionNavigateDown:
		m.moveCursor(1)
	case keybinds.ActionPageUp:
		m.moveCursor(-m.tableHeight())
	case keybinds.ActionPageDown:
		m.moveCursor(m.tableHeight())
	case keybinds.ActionGoToTop:
		m.cursor = 0
		m.clampCursor()
	case keybinds.ActionGoToBottom:
		m.cursor = m.controller.Len() - 1
		m.clampCursor()

	case keybinds.ActionOpenSearch:
		m.mode = ModeSearch
		return m.searchInput.Focus()

	case keybinds.ActionClearSearch:
		if m.searchInput.Value() != "" {
			m.clearSearch()
		}

	case keybinds.ActionEditRow:
		return m.beginEdit()

	case keybinds.ActionDeleteRow:
		return m.confirmDelete()

	case keybinds.ActionAddRecord:
		return m.openForm()

	case keybinds.ActionReload:
		return m.reload()

	case keybinds.ActionCopyRow:
		return m.copyRow()

	case keybinds.ActionOpenInspect:
		return m.openInspect()

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.updateHelpView()
	}

	return nil
}

// handleSearchKeys handles keyboard input while typing a search
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.matchInput(keybinds.ContextSearch, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.mode = ModeNormal
			m.searchInput.Blur()
			return nil

		case keybinds.ActionTextCancel:
			m.mode = ModeNormal
			m.searchInput.Blur()
			m.clearSearch()
			return nil

		case keybinds.ActionNavigateUp:
			m.moveCursor(-1)
			return nil

		case keybinds.ActionNavigateDown:
			m.moveCursor(1)
			return nil
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.applySearch()
	}
	return cmd
}

// handleFormKeys handles keyboard input for inline edit and the add form
func (m *Model) handleFormKeys(context keybinds.Context, msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.matchInput(context, msg.String()); ok {
		switch action {
		case keybinds.ActionSave, keybinds.ActionTextSubmit:
			if m.mode == ModeEdit {
				return m.saveEdit()
			}
			return m.submitForm()

		case keybinds.ActionCancel, keybinds.ActionTextCancel:
			if m.mode == ModeEdit {
				m.cancelEdit()
			} else {
				// The staged values stay in the form
				m.mode = ModeNormal
				m.blurInputs()
			}
			return nil

		case keybinds.ActionNextField:
			return m.focusInput(m.focusIndex + 1)

		case keybinds.ActionPrevField:
			return m.focusInput(m.focusIndex - 1)
		}
	}

	field := types.FormFields[m.focusIndex]
	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	m.controller.SetField(field, m.formInputs[m.focusIndex].Value())
	return cmd
}

// handleConfirmDeleteKeys handles the delete confirmation prompt
func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirmYes:
		return m.deletePending()
	case keybinds.ActionConfirmNo:
		m.mode = ModeNormal
	}

	return nil
}

// syncInputsFromForm copies the controller's form state into the inputs
func (m *Model) syncInputsFromForm() {
	form := m.controller.Form()
	for i, field := range types.FormFields {
		m.formInputs[i].SetValue(form.Get(field))
	}
}

// focusInput focuses form input i, wrapping around
func (m *Model) focusInput(i int) tea.Cmd {
	n := len(m.formInputs)
	m.focusIndex = ((i % n) + n) % n

	m.blurInputs()
	return m.formInputs[m.focusIndex].Focus()
}

func (m *Model) blurInputs() {
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
}

// updateFocusedInput forwards non-key messages (cursor blink) to the active input
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case ModeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case ModeEdit, ModeForm:
		m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	case ModeHelp:
		if m.helpFiltering {
			m.helpFilter, cmd = m.helpFilter.Update(msg)
		}
	}
	return cmd
}

// moveCursor moves the selected row by delta
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor on a row and the row on screen
func (m *Model) clampCursor() {
	n := m.controller.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	height := m.tableHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset > max(0, n-height) {
		m.offset = max(0, n-height)
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// tableHeight returns the number of visible table rows
func (m *Model) tableHeight() int {
	if m.height == 0 {
		return 20
	}
	return max(1, m.height-MainViewOverhead)
}

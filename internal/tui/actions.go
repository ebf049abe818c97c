package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/format"
	"github.com/studiowebux/usercrud/internal/records"
	"github.com/studiowebux/usercrud/internal/types"
)

// loadUsers fetches the directory in the background. Any earlier load stops
// waiting and its result will be ignored.
func (m *Model) loadUsers() tea.Cmd {
	if m.loadCancel != nil {
		m.loadCancel()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.loadCancel = cancel
	m.loadSeq++
	m.loading = true

	seq := m.loadSeq
	controller := m.controller
	return func() tea.Msg {
		defer cancel()
		users, err := controller.Fetch(ctx)
		return usersLoadedMsg{seq: seq, users: users, err: err}
	}
}

// copyRow copies the selected record as JSON to the clipboard
func (m *Model) copyRow() tea.Cmd {
	rec, ok := m.controller.At(m.cursor)
	if !ok {
		return m.setErrorMessage("No record to copy")
	}

	text, err := format.Marshal(rec, false)
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to encode record: %v", err))
	}

	write := m.clipboard
	name := rec.FullName()
	return func() tea.Msg {
		if err := write(text); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied %s to clipboard", name))
	}
}

// beginEdit opens inline editing of the selected row
func (m *Model) beginEdit() tea.Cmd {
	if !m.controller.BeginEdit(m.cursor) {
		return m.setErrorMessage("No record to edit")
	}
	m.mode = ModeEdit
	m.syncInputsFromForm()
	return m.focusInput(0)
}

// saveEdit writes the edited row back and returns to the table
func (m *Model) saveEdit() tea.Cmd {
	rec, _ := m.controller.At(m.controller.EditIndex())
	saved := m.controller.SaveEdit()

	m.mode = ModeNormal
	m.blurInputs()
	m.syncInputsFromForm()
	m.clampCursor()

	if !saved {
		return m.setErrorMessage("Record no longer exists")
	}
	return m.setStatusMessage(fmt.Sprintf("Saved record %d", rec.ID))
}

// cancelEdit leaves inline editing without writing
func (m *Model) cancelEdit() {
	m.controller.CancelEdit()
	m.mode = ModeNormal
	m.blurInputs()
	m.syncInputsFromForm()
}

// openForm focuses the add record form
func (m *Model) openForm() tea.Cmd {
	m.mode = ModeForm
	m.syncInputsFromForm()
	return m.focusInput(0)
}

// submitForm adds a record from the form state
func (m *Model) submitForm() tea.Cmd {
	rec, err := m.controller.AddRecord(m.controller.Form())
	if errors.Is(err, records.ErrEmptyForm) {
		return m.setErrorMessage("Fill in at least one field to add a record")
	}
	if err != nil {
		return m.setErrorMessage(err.Error())
	}

	m.mode = ModeNormal
	m.blurInputs()
	m.syncInputsFromForm()

	// Select the new record when it matches the current search
	view := m.controller.View()
	for i, r := range view {
		if r.ID == rec.ID {
			m.cursor = i
			break
		}
	}
	m.clampCursor()

	m.logger.Debug("record added from form", zap.Int("id", rec.ID))
	return m.setStatusMessage(fmt.Sprintf("Added %s", rec.FullName()))
}

// confirmDelete asks before removing the selected row
func (m *Model) confirmDelete() tea.Cmd {
	if _, ok := m.controller.At(m.cursor); !ok {
		return m.setErrorMessage("No record to delete")
	}
	m.pendingDelete = m.cursor
	m.mode = ModeConfirmDelete
	return nil
}

// deletePending removes the row awaiting confirmation
func (m *Model) deletePending() tea.Cmd {
	m.mode = ModeNormal

	rec, ok := m.controller.At(m.pendingDelete)
	if !ok || !m.controller.Delete(m.pendingDelete) {
		return m.setErrorMessage("No record to delete")
	}

	m.syncInputsFromForm()
	m.clampCursor()
	return m.setStatusMessage(fmt.Sprintf("Deleted %s", rec.FullName()))
}

// applySearch filters the table with the search input's value
func (m *Model) applySearch() {
	m.controller.Search(m.searchInput.Value())
	m.cursor = 0
	m.offset = 0
}

// clearSearch resets the search text
func (m *Model) clearSearch() {
	m.searchInput.SetValue("")
	m.applySearch()
}

// openInspect shows the selected record as highlighted JSON
func (m *Model) openInspect() tea.Cmd {
	rec, ok := m.controller.At(m.cursor)
	if !ok {
		return m.setErrorMessage("No record to inspect")
	}

	content, err := format.Marshal(types.RemoteFromRecord(rec), true)
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to encode record: %v", err))
	}

	m.inspectView.SetContent(content)
	m.inspectView.GotoTop()
	m.mode = ModeInspect
	return nil
}

// reload re-fetches the directory, replacing the collection
func (m *Model) reload() tea.Cmd {
	m.statusMsg = "Reloading..."
	m.errorMsg = ""
	return m.loadUsers()
}

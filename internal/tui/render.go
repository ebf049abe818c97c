package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/usercrud/internal/format"
	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleButton = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#2e7d32")).
			Padding(0, 1)
)

// renderMain renders the search line, the record table and the add form
func (m Model) renderMain() string {
	title := styleTitle.Render("CRUD Application")

	searchLine := lipgloss.JoinHorizontal(lipgloss.Center,
		m.searchInput.View(),
		"  ",
		styleButton.Render("Add Record"),
	)

	// One consistent view of the controller per frame
	snap := m.controller.Snapshot()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		searchLine,
		m.renderTable(snap),
		m.renderForm(snap),
		m.renderStatusBar(snap),
	)
}

// renderTable renders the visible slice of the filtered view
func (m Model) renderTable(snap types.Snapshot) string {
	view := snap.View
	height := m.tableHeight()

	end := min(len(view), m.offset+height)
	start := min(m.offset, end)

	rows := [][]string{format.Columns}
	for i := start; i < end; i++ {
		rows = append(rows, format.Row(i, view[i]))
	}
	widths := format.ColumnWidths(rows)

	var sb strings.Builder
	sb.WriteString(styleHeader.Render(format.JoinCells(format.Columns, widths)))
	sb.WriteString("\n")

	switch {
	case m.loading && len(view) == 0:
		sb.WriteString(styleSubtle.Render("Loading users..."))
		sb.WriteString("\n")
	case len(view) == 0 && snap.SearchText != "":
		sb.WriteString(styleSubtle.Render(fmt.Sprintf("No records match %q", snap.SearchText)))
		sb.WriteString("\n")
	case len(view) == 0:
		sb.WriteString(styleSubtle.Render("No records"))
		sb.WriteString("\n")
	}

	for i := start; i < end; i++ {
		var line string
		if i == snap.EditIndex && m.mode == ModeEdit {
			line = m.renderEditRow(i, widths[0])
		} else {
			line = format.JoinCells(format.Row(i, view[i]), widths)
		}

		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		if m.mode == ModeConfirmDelete && i == m.pendingDelete {
			line = styleError.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if len(view) > height {
		sb.WriteString(styleSubtle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(view))))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderEditRow renders the row being edited with its inputs inline
func (m Model) renderEditRow(index, numberWidth int) string {
	cells := []string{format.Cell(fmt.Sprintf("%d", index+1), numberWidth)}
	for _, in := range m.formInputs {
		cells = append(cells, in.View())
	}
	return strings.Join(cells, " | ") + "  " + styleButton.Render("Save")
}

// renderForm renders the add record form. While a row is being edited the
// inputs live in the table, so the form only shows the staged values.
func (m Model) renderForm(snap types.Snapshot) string {
	var fields []string
	if m.mode == ModeForm {
		for _, in := range m.formInputs {
			fields = append(fields, in.View())
		}
	} else {
		for _, field := range types.FormFields {
			value := snap.Form.Get(field)
			if value == "" {
				value = styleSubtle.Render(field.Label())
			}
			fields = append(fields, format.Cell(value, FormInputWidth))
		}
	}

	borderColor := colorGray
	if m.mode == ModeForm {
		borderColor = colorGreen
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(strings.Join(fields, "  ") + "  " + styleButton.Render("Add Record"))
}

// renderStatusBar renders the mode, profile and messages
func (m Model) renderStatusBar(snap types.Snapshot) string {
	left := fmt.Sprintf("[%s] Profile: %s", m.mode, m.profile)
	if m.loading {
		left += " (loading)"
	}

	right := ""
	switch {
	case m.mode == ModeConfirmDelete:
		if m.pendingDelete >= 0 && m.pendingDelete < len(snap.View) {
			rec := snap.View[m.pendingDelete]
			right = styleWarning.Render(fmt.Sprintf("Delete %s? (%s/%s)",
				rec.FullName(),
				m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirmYes),
				m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirmNo)))
		}
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	case m.mode == ModeEdit:
		right = m.renderHints(keybinds.ContextEdit,
			keyHint{keybinds.ActionSave, "save"},
			keyHint{keybinds.ActionCancel, "cancel"},
			keyHint{keybinds.ActionNextField, "next field"})
	case m.mode == ModeForm:
		right = m.renderHints(keybinds.ContextForm,
			keyHint{keybinds.ActionSave, "add"},
			keyHint{keybinds.ActionCancel, "close"},
			keyHint{keybinds.ActionNextField, "next field"})
	default:
		right = m.renderHints(keybinds.ContextNormal,
			keyHint{keybinds.ActionOpenSearch, "search"},
			keyHint{keybinds.ActionEditRow, "edit"},
			keyHint{keybinds.ActionDeleteRow, "delete"},
			keyHint{keybinds.ActionAddRecord, "add"},
			keyHint{keybinds.ActionOpenHelp, "help"},
			keyHint{keybinds.ActionQuit, "quit"})
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// keyHint labels an action in the status bar
type keyHint struct {
	action keybinds.Action
	label  string
}

// renderHints lists the keys currently bound to each action. Unbound
// actions are left out.
func (m Model) renderHints(context keybinds.Context, hints ...keyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		keys := m.keybinds.GetBinding(context, h.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, strings.Join(keys, "/")+" "+h.label)
	}
	return styleSubtle.Render(strings.Join(parts, " | "))
}

// updateViewports resizes viewers after a window change
func (m *Model) updateViewports() {
	width := max(20, m.width-ModalWidthMargin-4)
	height := max(5, m.height-ModalHeightMargin-ModalOverheadLines)

	m.inspectView.Width = width
	m.inspectView.Height = height
	m.helpView.Width = width
	m.helpView.Height = height

	m.clampCursor()
	if m.mode == ModeHelp {
		m.updateHelpView()
	}
}

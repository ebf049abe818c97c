package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/usercrud/internal/filter"
	"github.com/studiowebux/usercrud/internal/keybinds"
)

// helpIntro is shown above the keybinding tables
const helpIntro = `# usercrud

Records are fetched once from the directory and edited in memory.
Nothing is written back.

Search matches the full name or the city, ignoring case.
`

// helpMarkdown builds the help page. A non-empty query keeps only the
// bindings that fuzzy-match it, best matches first.
func (m *Model) helpMarkdown(query string) string {
	var sb strings.Builder
	sb.WriteString(helpIntro)

	shown := 0
	for _, context := range keybinds.Contexts {
		bindings := m.keybinds.ListBindings(context)
		if context != keybinds.ContextGlobal {
			// Globals are listed once under their own heading
			bindings = withoutContext(bindings, keybinds.ContextGlobal)
		}

		if query != "" {
			candidates := make([]string, len(bindings))
			for i, b := range bindings {
				candidates[i] = b.Key + " " + string(b.Action)
			}
			ranked := filter.FuzzyRank(candidates, query)
			filtered := make([]keybinds.Binding, len(ranked))
			for i, idx := range ranked {
				filtered[i] = bindings[idx]
			}
			bindings = filtered
		}

		if len(bindings) == 0 {
			continue
		}
		shown += len(bindings)

		sb.WriteString(fmt.Sprintf("\n## %s\n\n", context))
		sb.WriteString("| Key | Action |\n|---|---|\n")
		for _, b := range bindings {
			sb.WriteString(fmt.Sprintf("| `%s` | %s |\n", escapeTableCell(b.Key), strings.ReplaceAll(string(b.Action), "_", " ")))
		}
	}

	if shown == 0 {
		sb.WriteString(fmt.Sprintf("\nNo bindings match `%s`.\n", query))
	}

	return sb.String()
}

func withoutContext(bindings []keybinds.Binding, context keybinds.Context) []keybinds.Binding {
	out := bindings[:0:0]
	for _, b := range bindings {
		if b.Context != context {
			out = append(out, b)
		}
	}
	return out
}

// escapeTableCell keeps a pipe key from splitting the markdown table
func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// updateHelpView renders the help markdown into the help viewport
func (m *Model) updateHelpView() {
	md := m.helpMarkdown(m.helpFilter.Value())

	wrap := max(20, m.helpView.Width-2)
	if m.helpRenderer == nil || m.helpWidth != wrap {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			m.helpRenderer = renderer
			m.helpWidth = wrap
		}
	}

	content := md
	if m.helpRenderer != nil {
		if rendered, err := m.helpRenderer.Render(md); err == nil {
			content = rendered
		}
	}

	m.helpView.SetContent(content)
	m.helpView.GotoTop()
}

// renderHelp renders the help modal
func (m Model) renderHelp() string {
	footer := styleSubtle.Render("↑/↓ scroll | / filter | ESC close")
	if m.helpFiltering || m.helpFilter.Value() != "" {
		footer = m.helpFilter.View() + "  " + footer
	}

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width-ModalWidthMargin).
		Height(m.height-ModalHeightMargin).
		Padding(1, 2).
		Render(styleTitle.Render("Help") + "\n\n" + m.helpView.View() + "\n\n" + footer)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}

// handleHelpKeys handles keyboard input in the help viewer
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	if m.helpFiltering {
		return m.handleHelpFilterKeys(msg)
	}

	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal, keybinds.ActionQuit:
		m.mode = ModeNormal
		m.helpFilter.SetValue("")

	case keybinds.ActionFilterHelp:
		m.helpFiltering = true
		return m.helpFilter.Focus()

	case keybinds.ActionScrollUp:
		m.helpView.ScrollUp(1)

	case keybinds.ActionScrollDown:
		m.helpView.ScrollDown(1)
	}

	return nil
}

// handleHelpFilterKeys handles typing in the help filter
func (m *Model) handleHelpFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextTextInput, msg.String()); ok {
		switch action {
		case keybinds.ActionTextSubmit:
			m.helpFiltering = false
			m.helpFilter.Blur()
			return nil

		case keybinds.ActionTextCancel:
			m.helpFiltering = false
			m.helpFilter.Blur()
			m.helpFilter.SetValue("")
			m.updateHelpView()
			return nil
		}
	}

	before := m.helpFilter.Value()
	var cmd tea.Cmd
	m.helpFilter, cmd = m.helpFilter.Update(msg)
	if m.helpFilter.Value() != before {
		m.updateHelpView()
	}
	return cmd
}

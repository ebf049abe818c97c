package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/records"
	"github.com/studiowebux/usercrud/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeEdit
	ModeForm
	ModeConfirmDelete
	ModeInspect
	ModeHelp
)

// String returns the label shown in the status bar
func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "SEARCH"
	case ModeEdit:
		return "EDIT"
	case ModeForm:
		return "ADD"
	case ModeConfirmDelete:
		return "DELETE"
	case ModeInspect:
		return "INSPECT"
	case ModeHelp:
		return "HELP"
	}
	return "NORMAL"
}

// Model represents the TUI state
type Model struct {
	// Core state
	controller *records.Controller
	keybinds   *keybinds.Registry
	logger     *zap.Logger
	mode       Mode
	profile    string
	sourceURL  string
	clipboard  func(string) error

	// Directory loading
	ctx        context.Context
	loading    bool
	loadSeq    int
	loadCancel context.CancelFunc

	// Table
	cursor int // Selected row in the filtered view
	offset int // First visible row

	// Inputs
	searchInput textinput.Model
	formInputs  []textinput.Model // One per types.FormFields entry
	focusIndex  int               // Focused form input

	// Delete confirmation
	pendingDelete int

	// Viewers
	inspectView   viewport.Model
	helpView      viewport.Model
	helpFilter    textinput.Model
	helpFiltering bool
	helpRenderer  *glamour.TermRenderer
	helpWidth     int // Word wrap the renderer was built for

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
}

// Init starts loading the directory
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadUsers())
}

// Cleanup cancels any in-flight directory request
func (m *Model) Cleanup() {
	if m.loadCancel != nil {
		m.loadCancel()
		m.loadCancel = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()

	case usersLoadedMsg:
		cmd = m.handleUsersLoaded(msg)

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""

	case statusMsg:
		cmd = m.setStatusMessage(string(msg))

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))

	default:
		// Cursor blink and other input housekeeping
		cmd = m.updateFocusedInput(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeInspect:
		return m.renderInspect()
	default:
		return m.renderMain()
	}
}

// Custom message types
type usersLoadedMsg struct {
	seq   int
	users []types.UserRecord
	err   error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}

type statusMsg string
type errorMsg string

// Helper methods for setting messages with a timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.errorMsg = ""
	m.statusMsg = truncateMessage(msg)
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncateMessage(msg)
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// truncateMessage shortens messages to MaxStatusLength cells for footer display
func truncateMessage(msg string) string {
	return runewidth.Truncate(msg, MaxStatusLength, "...")
}

// handleUsersLoaded applies a finished directory fetch
func (m *Model) handleUsersLoaded(msg usersLoadedMsg) tea.Cmd {
	if msg.seq != m.loadSeq {
		// Superseded by a reload
		return nil
	}

	m.loading = false
	m.loadCancel = nil

	err := m.controller.ApplyFetch(msg.users, msg.err)

	// Load closes any edit session
	if m.mode == ModeEdit || m.mode == ModeConfirmDelete {
		m.mode = ModeNormal
	}
	m.syncInputsFromForm()
	m.clampCursor()

	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Error fetching data: %v", err))
	}
	return m.setStatusMessage(fmt.Sprintf("Loaded %d users", m.controller.Len()))
}

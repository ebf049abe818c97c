package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal    Context = "global"     // Available everywhere
	ContextNormal    Context = "normal"     // Table view
	ContextSearch    Context = "search"     // Search input focused
	ContextEdit      Context = "edit"       // Inline row editing
	ContextForm      Context = "form"       // Add record form focused
	ContextConfirm   Context = "confirm"    // Delete confirmation
	ContextHelp      Context = "help"       // Help viewer
	ContextInspect   Context = "inspect"    // Record inspector
	ContextTextInput Context = "text_input" // Shared by every text input
)

const (
	// Global actions
	ActionQuit      Action = "quit"
	ActionQuitForce Action = "quit_force"

	// Table navigation
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"

	// Record operations
	ActionOpenSearch  Action = "open_search"
	ActionClearSearch Action = "clear_search"
	ActionEditRow     Action = "edit_row"
	ActionDeleteRow   Action = "delete_row"
	ActionAddRecord   Action = "add_record"
	ActionReload      Action = "reload"
	ActionCopyRow     Action = "copy_row"
	ActionOpenInspect Action = "open_inspect"
	ActionOpenHelp    Action = "open_help"

	// Form and edit
	ActionSave      Action = "save"
	ActionCancel    Action = "cancel"
	ActionNextField Action = "next_field"
	ActionPrevField Action = "prev_field"

	// Confirmation
	ActionConfirmYes Action = "confirm_yes"
	ActionConfirmNo  Action = "confirm_no"

	// Viewers
	ActionCloseModal Action = "close_modal"
	ActionFilterHelp Action = "filter_help"
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"

	// Text input
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"
	ActionTextPaste  Action = "text_paste"
)

// knownActions is the set accepted in user configuration
var knownActions = map[Action]bool{
	ActionQuit: true, ActionQuitForce: true,
	ActionNavigateUp: true, ActionNavigateDown: true,
	ActionPageUp: true, ActionPageDown: true,
	ActionGoToTop: true, ActionGoToBottom: true,
	ActionOpenSearch: true, ActionClearSearch: true,
	ActionEditRow: true, ActionDeleteRow: true, ActionAddRecord: true,
	ActionReload: true, ActionCopyRow: true,
	ActionOpenInspect: true, ActionOpenHelp: true,
	ActionSave: true, ActionCancel: true,
	ActionNextField: true, ActionPrevField: true,
	ActionConfirmYes: true, ActionConfirmNo: true,
	ActionCloseModal: true, ActionFilterHelp: true,
	ActionScrollUp: true, ActionScrollDown: true,
	ActionTextSubmit: true, ActionTextCancel: true, ActionTextPaste: true,
}

// IsKnown reports whether the action is handled by the UI
func (a Action) IsKnown() bool {
	return knownActions[a]
}

// Contexts lists every context in display order
var Contexts = []Context{
	ContextGlobal,
	ContextNormal,
	ContextSearch,
	ContextEdit,
	ContextForm,
	ContextConfirm,
	ContextHelp,
	ContextInspect,
	ContextTextInput,
}

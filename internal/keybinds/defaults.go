package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerTextInputBindings(r)
	registerNormalModeBindings(r)
	registerSearchBindings(r)
	registerEditBindings(r)
	registerFormBindings(r)
	registerConfirmBindings(r)
	registerHelpBindings(r)
	registerInspectBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

// registerTextInputBindings sets up bindings shared by every text input
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
	r.RegisterMultiple(ContextTextInput, []string{"ctrl+v", "shift+insert"}, ActionTextPaste)
}

// registerNormalModeBindings sets up keybindings for the table view
func registerNormalModeBindings(r *Registry) {
	r.Register(ContextNormal, "q", ActionQuit)

	r.RegisterMultiple(ContextNormal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextNormal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextNormal, "pgup", ActionPageUp)
	r.Register(ContextNormal, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextNormal, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextNormal, []string{"end", "G"}, ActionGoToBottom)

	r.Register(ContextNormal, "/", ActionOpenSearch)
	r.Register(ContextNormal, "esc", ActionClearSearch)
	r.Register(ContextNormal, "e", ActionEditRow)
	r.Register(ContextNormal, "d", ActionDeleteRow)
	r.Register(ContextNormal, "a", ActionAddRecord)
	r.Register(ContextNormal, "r", ActionReload)
	r.Register(ContextNormal, "y", ActionCopyRow)
	r.RegisterMultiple(ContextNormal, []string{"i", "enter"}, ActionOpenInspect)
	r.Register(ContextNormal, "?", ActionOpenHelp)
}

// registerSearchBindings sets up keybindings while typing a search
func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
	r.Register(ContextSearch, "up", ActionNavigateUp)
	r.Register(ContextSearch, "down", ActionNavigateDown)
}

// registerEditBindings sets up keybindings for inline row editing
func registerEditBindings(r *Registry) {
	r.Register(ContextEdit, "enter", ActionSave)
	r.Register(ContextEdit, "esc", ActionCancel)
	r.Register(ContextEdit, "tab", ActionNextField)
	r.Register(ContextEdit, "shift+tab", ActionPrevField)
}

// registerFormBindings sets up keybindings for the add record form
func registerFormBindings(r *Registry) {
	r.Register(ContextForm, "enter", ActionSave)
	r.Register(ContextForm, "esc", ActionCancel)
	r.RegisterMultiple(ContextForm, []string{"tab", "down"}, ActionNextField)
	r.RegisterMultiple(ContextForm, []string{"shift+tab", "up"}, ActionPrevField)
}

// registerConfirmBindings sets up keybindings for confirmation dialogs
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirmYes)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc", "q"}, ActionConfirmNo)
}

// registerHelpBindings sets up keybindings for the help viewer
func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?", "q"}, ActionCloseModal)
	r.Register(ContextHelp, "/", ActionFilterHelp)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionScrollDown)
}

// registerInspectBindings sets up keybindings for the record inspector
func registerInspectBindings(r *Registry) {
	r.RegisterMultiple(ContextInspect, []string{"esc", "i", "q"}, ActionCloseModal)
	r.Register(ContextInspect, "y", ActionCopyRow)
	r.RegisterMultiple(ContextInspect, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextInspect, []string{"down", "j"}, ActionScrollDown)
}

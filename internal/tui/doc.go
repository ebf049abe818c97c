/*
Package tui implements the terminal user interface for usercrud.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: UI state around a records.Controller
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Model struct, modes, Update and View
  - init.go: construction and Run
  - keys.go: keyboard input handling and keybind routing
  - actions.go: side effects (directory load, clipboard, inspect)
  - render.go: table, add form and status bar
  - help.go, inspect_modal.go: viewers

# State Management

The record collection, filtered view, edit index and form state live in the
controller. The model keeps only presentation state: cursor, scroll offset,
focused input and status messages. Text inputs are re-synced from the
controller's form state whenever a form or edit session starts.

# Loading

The directory fetch runs in a tea.Cmd. Its result is applied on the update
loop through usersLoadedMsg. A reload cancels the in-flight request and
results of superseded loads are dropped.
*/
package tui

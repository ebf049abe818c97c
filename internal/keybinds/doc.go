/*
Package keybinds provides customizable keyboard binding management.

# Overview

Bindings are organised by context. A key pressed while the table has focus
is looked up in the normal context first, then in the global context.

Contexts:
  - global: available everywhere (ctrl+c)
  - normal: table view
  - search, edit, form: text entry modes
  - confirm: delete confirmation
  - help, inspect: viewers

# Configuration File Format

Overrides are read from keybinds.json or keybinds.jsonc in the config
directory. Each section maps a key to an action; an empty action unbinds
the key:

	{
	  // vim users
	  "normal": {
	    "x": "delete_row",
	    "d": ""
	  }
	}

Unknown actions are rejected when the file is loaded.

# Example Usage

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if action, ok := registry.Match(keybinds.ContextNormal, msg.String()); ok {
		// handle action
	}
*/
package keybinds

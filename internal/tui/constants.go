package tui

import "time"

// UI Layout Constants
const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin  = 6 // m.width - 6
	ModalHeightMargin = 3 // m.height - 3

	// Main view overhead: title, search line, table header and rule,
	// add form (border + line), status bar
	MainViewOverhead = 10

	// Modal Content Calculations
	ModalOverheadLines = 8 // Border (2) + padding (2) + title (2) + footer (2)

	// Status line
	MaxStatusLength = 100
	StatusTimeout   = 5 * time.Second

	// Text inputs
	SearchInputWidth = 30
	FormInputWidth   = 16
)

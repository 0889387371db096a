package types

import "photogrid/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "left", "right", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Grid actions
type TapAction struct{}

func (a TapAction) Type() string { return "tap" }

type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type ShareAction struct{}

func (a ShareAction) Type() string { return "share" }

type ExitSharingAction struct{}

func (a ExitSharingAction) Type() string { return "exit_sharing" }

// Drag and drop actions
type BeginDragAction struct {
	Source domain.CellRef
}

func (a BeginDragAction) Type() string { return "begin_drag" }

type DropAction struct{}

func (a DropAction) Type() string { return "drop" }

type CancelDragAction struct{}

func (a CancelDragAction) Type() string { return "cancel_drag" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Other
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type StatusAction struct {
	Message string
}

func (a StatusAction) Type() string { return "status" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

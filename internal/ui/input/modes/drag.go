package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"photogrid/internal/ui/input/types"
)

// DragMode moves the drop target around while a photo is picked up
type DragMode struct{}

func NewDragMode() *DragMode {
	return &DragMode{}
}

func (m *DragMode) Name() string {
	return "drag"
}

func (m *DragMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DragMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DragMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := navigationKey(msg); ok {
		return actions, true
	}

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "enter", "m":
		if _, ok := ctx.DragSource(); !ok {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
		}
		return []types.Action{
			types.DropAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "esc":
		return []types.Action{
			types.CancelDragAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Everything else is swallowed while dragging
	return nil, true
}

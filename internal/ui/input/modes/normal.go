package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"photogrid/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := navigationKey(msg); ok {
		return actions, true
	}

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "enter":
		if _, ok := ctx.Cursor(); ok {
			return []types.Action{types.TapAction{}}, true
		}
		return nil, false

	case " ":
		// Space only selects while sharing
		if ctx.Sharing() {
			if _, ok := ctx.Cursor(); ok {
				return []types.Action{types.ToggleSelectAction{}}, true
			}
		}
		return nil, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "m":
		ref, ok := ctx.Cursor()
		if !ok {
			return nil, false
		}
		if !ctx.CanDrag(ref) {
			return []types.Action{types.StatusAction{Message: "Photo has no thumbnail yet"}}, true
		}
		return []types.Action{
			types.BeginDragAction{Source: ref},
			types.ChangeModeAction{Mode: types.ModeDrag},
		}, true

	case "s":
		if !ctx.HasPhotos() {
			return nil, true
		}
		return []types.Action{types.ShareAction{}}, true

	case "esc":
		if ctx.Sharing() {
			return []types.Action{types.ExitSharingAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}

// navigationKey maps cursor movement keys shared by normal and drag mode
func navigationKey(msg tea.KeyMsg) ([]types.Action, bool) {
	var direction string
	switch msg.String() {
	case "up", "k":
		direction = "up"
	case "down", "j":
		direction = "down"
	case "left", "h":
		direction = "left"
	case "right", "l":
		direction = "right"
	case "pgup":
		direction = "pageup"
	case "pgdown":
		direction = "pagedown"
	case "home", "g":
		direction = "home"
	case "end", "G":
		direction = "end"
	default:
		return nil, false
	}
	return []types.Action{types.NavigateAction{Direction: direction}}, true
}

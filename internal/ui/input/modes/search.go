package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"photogrid/internal/ui/input/types"
)

const searchPrompt = "Search Flickr: "

// SearchMode edits the query in the shared text input. Keys it does not
// claim are typed into the input by the handler.
type SearchMode struct {
	query *textinput.Model
}

func NewSearchMode(query *textinput.Model) *SearchMode {
	return &SearchMode{query: query}
}

func (m *SearchMode) Name() string {
	return "search"
}

// Enter starts every search from an empty prompt
func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	if m.query == nil {
		return nil
	}
	m.query.Reset()
	m.query.Prompt = searchPrompt
	m.query.Focus()
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	if m.query != nil {
		m.query.Blur()
	}
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	backToGrid := types.ChangeModeAction{Mode: types.ModeNormal}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc:
		return []types.Action{types.CancelTextAction{}, backToGrid}, true
	case tea.KeyEnter:
		var text string
		if m.query != nil {
			text = m.query.Value()
		}
		return []types.Action{types.SubmitTextAction{Text: text, Mode: types.ModeSearch}, backToGrid}, true
	}
	return nil, false
}

package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	SectionHeader lipgloss.Style
	Caption       lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	DragSource    lipgloss.Style
	DropTarget    lipgloss.Style
	Placeholder   lipgloss.Style
	Sharing       lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Caption:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		DragSource:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		DropTarget:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Sharing:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

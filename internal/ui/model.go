package ui

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"photogrid/internal/config"
	"photogrid/internal/domain"
	"photogrid/internal/eventbus"
	"photogrid/internal/gallery"
	"photogrid/internal/share"
	"photogrid/internal/ui/handlers"
	"photogrid/internal/ui/input"
	inputtypes "photogrid/internal/ui/input/types"
	"photogrid/internal/ui/logic"
	"photogrid/internal/ui/views"
)

// statusTimeout is how long a status message stays up
const statusTimeout = 5 * time.Second

// PhotoSource searches for photos and fetches their large images
type PhotoSource interface {
	Search(ctx context.Context, term string) (*domain.SearchResultGroup, error)
	LoadLargeImage(ctx context.Context, photo *domain.Photo) (image.Image, error)
	LargeURL(photo *domain.Photo) string
}

// Model represents the UI state
type Model struct {
	ctx        context.Context
	bus        eventbus.EventBus
	config     *config.Config
	controller *gallery.Controller
	photos     PhotoSource
	sharer     share.Sharer

	width          int
	height         int
	cursor         domain.CellRef
	dragSource     *domain.CellRef
	viewportOffset int
	scrollTarget   *domain.CellRef
	rows           []logic.Row
	frame          views.GridFrame
	initialQuery   string
	sharingBusy    bool
	showFullHelp   bool
	inPagerMode    bool

	statusMessage string
	statusKind    views.StatusKind
	statusSeq     int

	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	renderer     *views.Renderer
	inputHandler *input.Handler
	eventHandler *handlers.EventHandler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, cfg *config.Config, bus eventbus.EventBus, photos PhotoSource, sharer share.Sharer) *Model {
	layout := gallery.NewLayout(cfg.Grid.Columns, domain.Insets{
		Top:    cfg.Grid.InsetTop,
		Left:   cfg.Grid.InsetLeft,
		Bottom: cfg.Grid.InsetBottom,
		Right:  cfg.Grid.InsetRight,
	})

	var publisher gallery.Publisher
	if bus != nil {
		publisher = bus
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return &Model{
		ctx:          ctx,
		bus:          bus,
		config:       cfg,
		controller:   gallery.NewController(layout, publisher),
		photos:       photos,
		sharer:       sharer,
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(cfg.UISettings.Color, cfg.Flickr.CacheSize),
		inputHandler: input.New(),
		eventHandler: handlers.NewEventHandler(),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(nil),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// SetInitialQuery makes Init start a search for query
func (m *Model) SetInitialQuery(query string) {
	m.initialQuery = query
}

// Controller exposes the gallery controller
func (m *Model) Controller() *gallery.Controller {
	return m.controller
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.initialQuery == "" {
		return nil
	}
	return m.submitSearch(m.initialQuery)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.relayout()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scrollTarget = &m.cursor
		return nil

	case tea.KeyMsg:
		if m.showFullHelp {
			m.showFullHelp = false
			return nil
		}

		ctx := &input.ModelContext{
			Grid:      m.controller,
			CursorRef: m.cursor,
			DragRef:   m.dragSource,
		}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return tea.Batch(cmds...)

	case searchResultMsg:
		hadResults := m.controller.Sections() > 0
		redraw := m.controller.CompleteSearch(msg.term, msg.group, msg.err)
		if msg.err == nil && msg.group != nil && hadResults {
			// Existing sections moved down by one
			m.cursor.Section++
			if m.dragSource != nil {
				m.dragSource.Section++
			}
		}
		m.applyRedraw(redraw)
		return nil

	case largeImageMsg:
		redraw, applied := m.controller.CompleteLargeImage(msg.req, msg.img, msg.err)
		if !applied && msg.err == nil {
			log.Printf("Large image for %s arrived after its cell changed", msg.req.Photo.ID)
		}
		m.applyRedraw(redraw)
		return nil

	case shareDoneMsg:
		m.sharingBusy = false
		m.applyRedraw(m.controller.CompleteShare(msg.count, msg.err))
		if msg.err == nil {
			return m.setStatus(m.sharer.Describe(msg.count), views.StatusSuccess)
		}
		return nil

	case spinner.TickMsg:
		if !m.controller.Searching() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case EventMsg:
		if status, ok := m.eventHandler.HandleEvent(msg.Event); ok {
			return m.setStatus(status.Message, status.Kind)
		}
		return nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
		return nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: fall back to the inline help
			log.Printf("Help pager failed: %v", msg.err)
			m.showFullHelp = true
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	default:
		return m.inputHandler.Update(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		nav := logic.NewNavigator(m.rows)
		m.cursor = nav.Move(m.cursor, a.Direction, m.pageRows())
		m.scrollTarget = &m.cursor

	case inputtypes.TapAction:
		redraw, req := m.controller.Tap(m.cursor)
		m.applyRedraw(redraw)
		if req != nil {
			return m.loadLargeImage(*req)
		}

	case inputtypes.ToggleSelectAction:
		m.applyRedraw(m.controller.ToggleSelection(m.cursor))

	case inputtypes.ShareAction:
		return m.share()

	case inputtypes.ExitSharingAction:
		m.applyRedraw(m.controller.ExitSharing())

	case inputtypes.BeginDragAction:
		src := a.Source
		m.dragSource = &src
		return m.setStatus("Choose a spot, Enter to drop, Esc to cancel", views.StatusInfo)

	case inputtypes.DropAction:
		if m.dragSource == nil {
			return nil
		}
		src := *m.dragSource
		m.dragSource = nil
		redraw, err := m.controller.Move(src, m.cursor)
		if err != nil {
			log.Printf("Move %v -> %v failed: %v", src, m.cursor, err)
			m.cursor = src
			return m.setStatus("Can't drop the photo there", views.StatusError)
		}
		if redraw.ScrollTo != nil {
			m.cursor = *redraw.ScrollTo
		}
		m.applyRedraw(redraw)

	case inputtypes.CancelDragAction:
		if m.dragSource != nil {
			m.cursor = *m.dragSource
			m.scrollTarget = &m.cursor
			m.dragSource = nil
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.submitSearch(a.Text)
		}

	case inputtypes.ToggleHelpAction:
		return m.showHelp()

	case inputtypes.StatusAction:
		return m.setStatus(a.Message, views.StatusInfo)

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

func (m *Model) submitSearch(query string) tea.Cmd {
	term, err := m.controller.SubmitSearch(query)
	if err != nil {
		if errors.Is(err, gallery.ErrEmptyQuery) {
			return m.setStatus("Type something to search for", views.StatusInfo)
		}
		return m.setStatus(err.Error(), views.StatusError)
	}

	ctx := m.ctx
	photos := m.photos
	search := func() tea.Msg {
		group, err := photos.Search(ctx, term)
		return searchResultMsg{term: term, group: group, err: err}
	}
	return tea.Batch(search, m.spinner.Tick)
}

func (m *Model) loadLargeImage(req gallery.LargeImageRequest) tea.Cmd {
	ctx := m.ctx
	photos := m.photos
	return func() tea.Msg {
		img, err := photos.LoadLargeImage(ctx, req.Photo)
		return largeImageMsg{req: req, img: img, err: err}
	}
}

func (m *Model) share() tea.Cmd {
	if m.sharingBusy {
		return nil
	}

	decision := m.controller.Share()
	switch decision.Kind {
	case gallery.ShareToggled:
		m.applyRedraw(decision.Redraw)
		return nil
	case gallery.ShareNone:
		if m.controller.Sharing() && len(m.controller.Selected()) > 0 {
			return m.setStatus("Selected photos have no images yet", views.StatusInfo)
		}
		return nil
	}

	items := make([]share.Item, 0, len(decision.Photos))
	for _, p := range decision.Photos {
		name := p.Title
		if name == "" {
			name = p.ID
		}
		items = append(items, share.Item{Name: name, Image: p.Thumbnail, URL: m.photos.LargeURL(p)})
	}

	m.sharingBusy = true
	ctx := m.ctx
	sharer := m.sharer
	count := len(items)
	return tea.Batch(
		m.setStatus("Sharing...", views.StatusInfo),
		func() tea.Msg {
			return shareDoneMsg{count: count, err: sharer.Share(ctx, items)}
		},
	)
}

func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		m.showFullHelp = true
		return nil
	}
	content := m.helpRenderer.RenderHelpContent()
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) setStatus(message string, kind views.StatusKind) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.statusMessage = message
	m.statusKind = kind
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// applyRedraw records where the grid should scroll. The whole frame is
// re-rendered every update; unchanged cells come from the art cache.
func (m *Model) applyRedraw(redraw gallery.Redraw) {
	if redraw.ScrollTo != nil {
		target := *redraw.ScrollTo
		m.scrollTarget = &target
	}
}

func (m *Model) viewportHeight() int {
	h := m.height - views.ChromeRows
	if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) gridWidth() int {
	// Main style pads one column on each side
	w := m.width - 2
	if w < 1 {
		w = 1
	}
	return w
}

// pageRows estimates how many grid rows fit on a screen
func (m *Model) pageRows() int {
	layout := m.controller.Layout()
	side := layout.ThumbnailSide(float64(m.gridWidth()))
	rowLines := int(side/2) + 1 + int(layout.LineSpacing()/2)
	if rowLines < 1 {
		return 1
	}
	if n := m.viewportHeight() / rowLines; n > 1 {
		return n
	}
	return 1
}

// relayout rebuilds the rows and the rendered frame and keeps the scroll
// target in view
func (m *Model) relayout() {
	var expanded *domain.CellRef
	if ref, ok := m.controller.Expanded(); ok {
		expanded = &ref
	}

	var extra func(int) int
	if m.dragSource != nil {
		src := *m.dragSource
		// Other sections get a drop slot past their last photo
		extra = func(section int) int {
			if section != src.Section {
				return 1
			}
			return 0
		}
	}

	m.rows = logic.BuildRows(m.controller, m.controller.Layout().Columns, expanded, extra)
	nav := logic.NewNavigator(m.rows)
	if ref, ok := nav.Clamp(m.cursor); ok {
		m.cursor = ref
	} else {
		m.cursor = domain.CellRef{}
	}

	if m.width == 0 {
		return
	}

	m.frame = m.renderer.Grid().Render(views.GridState{
		Width:      m.gridWidth(),
		Height:     m.viewportHeight(),
		Rows:       m.rows,
		Layout:     m.controller.Layout(),
		Data:       m.controller,
		Cursor:     m.cursor,
		HasCursor:  len(m.rows) > 0,
		Sharing:    m.controller.Sharing(),
		DragSource: m.dragSource,
	})

	height := m.viewportHeight()
	if m.scrollTarget != nil {
		if top, bottom, ok := m.frame.Span(*m.scrollTarget); ok {
			switch {
			case top < m.viewportOffset || bottom-top > height:
				m.viewportOffset = top
			case bottom > m.viewportOffset+height:
				m.viewportOffset = bottom - height
			}
		}
		m.scrollTarget = nil
	}

	maxOffset := len(m.frame.Lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.viewportOffset > maxOffset {
		m.viewportOffset = maxOffset
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	textInput := ""
	if ti := m.inputHandler.TextInput(); ti != nil {
		textInput = ti.View()
	}

	helpLine := m.help.ShortHelpView(m.keys.ShortHelp(m.inputHandler.CurrentMode(), m.controller.Sharing()))
	if !m.config.UISettings.ShowHelpLine {
		helpLine = ""
	}
	if m.showFullHelp {
		helpLine = m.help.FullHelpView(m.keys.FullHelp())
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Frame:          m.frame,
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight(),
		HasResults:     m.controller.Sections() > 0,
		Searching:      m.controller.Searching(),
		SpinnerFrame:   m.spinner.View(),
		PendingCount:   m.controller.PendingSearches(),
		SharingLabel:   m.controller.SelectionLabel(),
		Dragging:       m.dragSource != nil,
		TextInput:      textInput,
		StatusMessage:  m.statusMessage,
		StatusKind:     m.statusKind,
		HelpLine:       helpLine,
	})
}

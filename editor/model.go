package editor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/redline/document"
)

// chromeHeight is the number of rows below the text: status and footer.
const chromeHeight = 2

// Model is a Bubble Tea component that edits an essay, submits it for
// feedback and renders the returned comments as highlights with a card.
type Model struct {
	cfg     Config
	doc     *document.Document
	session *Session
	log     zerolog.Logger

	focused bool
	width   int
	height  int

	viewport viewport.Model
	help     help.Model
	layout   layoutCache
	card     cardState

	lastDocVersion uint64
	lastCursor     document.Pos
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	doc := cfg.Document
	if doc == nil {
		doc = document.FromText(cfg.Text)
	}
	m := Model{
		cfg:      cfg,
		doc:      doc,
		session:  newSession(cfg),
		log:      cfg.Logger.With().Str("component", "editor").Logger(),
		focused:  true,
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
	m.lastDocVersion = doc.Version()
	m.lastCursor = doc.Cursor()
	m.rebuildContent()
	return m
}

func (m Model) Document() *document.Document { return m.doc }

func (m Model) Session() *Session { return m.session }

func (m Model) Init() tea.Cmd { return nil }

// SetSize sets the outer size. Two rows are kept for the status line and the
// footer.
func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chromeHeight, 0)
	m.help.Width = m.width

	m.rebuildContent()
	m.followCursor()
	m.syncCard()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case FeedbackResultMsg:
		m.session.Apply(m.doc, msg)
	}

	cursorChanged := m.syncFromDocument()
	m.rebuildContent()
	if cursorChanged {
		m.followCursor()
	}
	m.syncCard()
	return m, cmd
}

func (m Model) View() string {
	body := m.viewport.View()
	if view, ok := m.cardView(body); ok {
		body = view
	}
	return body + "\n" + m.statusView() + "\n" + m.footerView()
}

// syncFromDocument notes document changes made by Update or by the host. It
// reports whether the cursor moved.
func (m *Model) syncFromDocument() (cursorChanged bool) {
	ver := m.doc.Version()
	cur := m.doc.Cursor()
	if ver == m.lastDocVersion && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastDocVersion = ver
	m.lastCursor = cur
	return cursorChanged
}

func (m *Model) rebuildContent() {
	yOffset := m.viewport.YOffset
	m.viewport.SetContent(m.renderContent())
	m.viewport.SetYOffset(yOffset)
}

// followCursor scrolls the minimum amount needed to show the cursor row.
func (m *Model) followCursor() {
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}
	layout := m.ensureLayout()
	bi, col := m.doc.BlockCol(m.doc.Cursor())
	row, _, ok := layout.visualPosition(bi, col)
	if !ok {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

func (m Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}

// Package widget implements the Packeta pickup point picker as a bubbletea
// component: a summary or call-to-action line that opens a modal with a
// city search box and the list of pickup points returned by the store.
package widget

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/pickup"
	"github.com/jask/packeta/internal/store"
)

// Backend is the store contract the widget depends on. *store.Client
// satisfies it.
type Backend interface {
	ListPickupPoints(ctx context.Context, city string) ([]pickup.Point, error)
	SelectPickupPoint(ctx context.Context, sel store.SelectRequest) error
}

// Props are the inputs owned by the parent.
type Props struct {
	CartID string
	// OnSelect runs once per confirmed selection, inside Update.
	OnSelect func(pickup.Point)
	Selected *pickup.Point
}

// Options tune behaviour that is not owned by the parent.
type Options struct {
	Labels Labels
	// Timeout bounds each backend call. Zero means no timeout.
	Timeout time.Duration
	// Debounce delays the lookup after a search edit. Zero fires immediately.
	Debounce time.Duration
	// DiscardStale drops lookup responses that are not from the most recent
	// request. When false the last response to arrive wins.
	DiscardStale bool
	Logger       *logger.Logger
	Keys         *KeyMap
}

// SelectedMsg is emitted after the backend confirmed a selection.
type SelectedMsg struct {
	WidgetID int
	Point    pickup.Point
}

type lookupResultMsg struct {
	widgetID int
	seq      uint64
	city     string
	points   []pickup.Point
	err      error
}

type searchDebounceMsg struct {
	widgetID int
	seq      uint64
}

type selectResultMsg struct {
	widgetID int
	point    pickup.Point
	err      error
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Model is the pickup point picker.
type Model struct {
	id      int
	ctx     context.Context
	backend Backend
	props   Props
	opts    Options
	keys    KeyMap
	log     *logger.Logger

	modal   Modal
	search  textinput.Model
	spinner spinner.Model

	points    []pickup.Point
	loading   bool
	cursor    int
	notice    string
	selecting bool

	lookupSeq uint64
	searchSeq uint64

	width  int
	height int
}

// New creates a closed picker for the given cart.
func New(ctx context.Context, backend Backend, props Props, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Labels == (Labels{}) {
		opts.Labels = Czech
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	ti := textinput.New()
	ti.Placeholder = opts.Labels.SearchPlaceholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 64

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		id:      nextID(),
		ctx:     ctx,
		backend: backend,
		props:   props,
		opts:    opts,
		keys:    keys,
		log:     log,
		modal:   NewModal(opts.Labels.ModalTitle),
		search:  ti,
		spinner: sp,
		points:  []pickup.Point{},
	}
}

// ID identifies this widget instance in emitted messages.
func (m Model) ID() int { return m.id }

func (m Model) IsOpen() bool { return m.modal.IsOpen() }

func (m Model) Loading() bool { return m.loading }

func (m Model) SearchTerm() string { return m.search.Value() }

func (m Model) Notice() string { return m.notice }

func (m Model) Cursor() int { return m.cursor }

// PickupPoints returns a copy of the current list.
func (m Model) PickupPoints() []pickup.Point {
	return append([]pickup.Point(nil), m.points...)
}

func (m Model) Selected() *pickup.Point { return m.props.Selected }

// SetSelected updates the parent-owned selection.
func (m *Model) SetSelected(p *pickup.Point) {
	if p == nil {
		m.props.Selected = nil
		return
	}
	cp := *p
	m.props.Selected = &cp
}

func (m *Model) SetCartID(id string) { m.props.CartID = id }

func (m Model) Init() tea.Cmd { return nil }

// Open shows the modal and issues a lookup. Opening an open modal is a no-op.
func (m Model) Open() (Model, tea.Cmd) {
	if m.modal.IsOpen() {
		return m, nil
	}
	m.modal.Open()
	m.notice = ""
	m.cursor = 0
	focus := m.search.Focus()
	m, lookup := m.lookup()
	return m, tea.Batch(focus, lookup)
}

// Close hides the modal. In-flight requests keep running.
func (m Model) Close() Model {
	m.modal.Close()
	m.search.Blur()
	return m
}

// SetSearchTerm replaces the search text as if typed, issuing a lookup when
// the modal is open and the term changed.
func (m Model) SetSearchTerm(term string) (Model, tea.Cmd) {
	before := m.search.Value()
	m.search.SetValue(term)
	if m.search.Value() == before {
		return m, nil
	}
	return m.searchChanged()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = max(10, min(48, msg.Width-16))
		return m, nil

	case tea.KeyMsg:
		if m.modal.IsOpen() {
			return m.handleModalKey(msg)
		}
		return m.handleClosedKey(msg)

	case searchDebounceMsg:
		if msg.widgetID != m.id || msg.seq != m.searchSeq || !m.modal.IsOpen() {
			return m, nil
		}
		return m.lookup()

	case lookupResultMsg:
		if msg.widgetID != m.id {
			return m, nil
		}
		return m.applyLookup(msg), nil

	case selectResultMsg:
		if msg.widgetID != m.id {
			return m, nil
		}
		return m.applySelect(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal.IsOpen() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleClosedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Open):
		return m.Open()
	case m.props.Selected != nil && key.Matches(msg, m.keys.Change):
		return m.Open()
	}
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.Close(), nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.points)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if m.loading || m.selecting || len(m.points) == 0 {
			return m, nil
		}
		return m.selectPoint(m.points[m.cursor])
	}

	before := m.search.Value()
	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, inputCmd
	}
	m, lookup := m.searchChanged()
	return m, tea.Batch(inputCmd, lookup)
}

func (m Model) searchChanged() (Model, tea.Cmd) {
	if !m.modal.IsOpen() {
		return m, nil
	}
	m.searchSeq++
	if m.opts.Debounce <= 0 {
		return m.lookup()
	}
	id, seq := m.id, m.searchSeq
	return m, tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{widgetID: id, seq: seq}
	})
}

// lookup marks the widget loading and returns the command that fetches the
// list for the current search term.
func (m Model) lookup() (Model, tea.Cmd) {
	m.lookupSeq++
	m.loading = true

	id, seq := m.id, m.lookupSeq
	city := strings.TrimSpace(m.search.Value())
	ctx, backend, timeout := m.ctx, m.backend, m.opts.Timeout
	m.log.Debug("pickup_lookup_dispatched", "city", city, "seq", seq)

	fetch := func() tea.Msg {
		callCtx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		points, err := backend.ListPickupPoints(callCtx, city)
		return lookupResultMsg{widgetID: id, seq: seq, city: city, points: points, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, fetch)
}

func (m Model) applyLookup(msg lookupResultMsg) Model {
	if m.opts.DiscardStale && msg.seq != m.lookupSeq {
		m.log.Debug("pickup_lookup_stale", "city", msg.city, "seq", msg.seq, "latest", m.lookupSeq)
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.log.LookupFailed(msg.city, msg.err)
		m.notice = m.opts.Labels.LookupFailed
		return m
	}
	m.notice = ""
	m.points = msg.points
	if m.points == nil {
		m.points = []pickup.Point{}
	}
	if m.cursor >= len(m.points) {
		m.cursor = max(0, len(m.points)-1)
	}
	return m
}

func (m Model) selectPoint(p pickup.Point) (Model, tea.Cmd) {
	m.selecting = true
	m.notice = ""

	id := m.id
	ctx, backend, timeout := m.ctx, m.backend, m.opts.Timeout
	sel := store.NewSelectRequest(m.props.CartID, p)
	return m, func() tea.Msg {
		callCtx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		err := backend.SelectPickupPoint(callCtx, sel)
		return selectResultMsg{widgetID: id, point: p, err: err}
	}
}

func (m Model) applySelect(msg selectResultMsg) (Model, tea.Cmd) {
	m.selecting = false
	if msg.err != nil {
		m.log.SelectionFailed(m.props.CartID, msg.point.ID, msg.err)
		m.notice = m.opts.Labels.SelectFailed
		return m, nil
	}
	m.log.Info("pickup_point_selected", "cart_id", m.props.CartID, "pickup_point_id", msg.point.ID)
	if m.props.OnSelect != nil {
		m.props.OnSelect(msg.point)
	}
	m = m.Close()
	id, point := m.id, msg.point
	return m, func() tea.Msg { return SelectedMsg{WidgetID: id, Point: point} }
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// View renders the inline control and, while open, the modal on top of it.
func (m Model) View() string {
	return m.Overlay(m.InlineView(), m.width, m.height)
}

// Overlay draws the modal (if open) over a host-rendered base view.
func (m Model) Overlay(base string, width, height int) string {
	if !m.modal.IsOpen() {
		return base
	}
	return m.modal.Overlay(base, m.modalBody(), width, height)
}

// InlineView renders the confirmation summary when a point is selected and
// the call-to-action otherwise.
func (m Model) InlineView() string {
	l := m.opts.Labels
	heading := headingStyle.Render(l.Heading)
	if p := m.props.Selected; p != nil {
		info := lipgloss.JoinVertical(lipgloss.Left,
			summaryNameStyle.Render(p.Name),
			summaryAddressStyle.Render(p.Address()),
		)
		change := changeStyle.Render("[c] " + l.Change)
		return heading + "\n" + summaryStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, info, "   ", change))
	}
	return heading + "\n" + buttonStyle.Render(l.Choose)
}

func (m Model) modalBody() string {
	l := m.opts.Labels
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(centeredMutedStyle.Render(m.spinner.View() + " " + l.Loading))
	case len(m.points) == 0:
		b.WriteString(centeredMutedStyle.Render(l.Empty))
	default:
		b.WriteString(strings.Join(m.renderRows(), "\n"))
	}

	if m.selecting {
		b.WriteString("\n" + helpStyle.Render(l.Saving))
	}
	b.WriteString("\n\n" + helpStyle.Render(l.Help))
	return b.String()
}

// renderRows renders the visible window of rows. Without a known viewport
// every row is rendered.
func (m Model) renderRows() []string {
	start, end := 0, len(m.points)
	if visible := m.visibleRows(); visible > 0 && visible < len(m.points) {
		start = m.cursor - visible/2
		if start < 0 {
			start = 0
		}
		if start+visible > len(m.points) {
			start = len(m.points) - visible
		}
		end = start + visible
	}
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(m.points[i], i == m.cursor))
	}
	return rows
}

func (m Model) visibleRows() int {
	if m.height <= 0 {
		return 0
	}
	// card chrome, title, search, help and spacing take roughly 14 lines;
	// a row is up to three lines tall.
	return max(1, (m.height-14)/3)
}

func (m Model) renderRow(p pickup.Point, active bool) string {
	lines := []string{
		rowNameStyle.Render(p.Name),
		rowAddressStyle.Render(p.Address()),
	}
	if badges := p.Badges(m.opts.Labels.Badges); badges != "" {
		lines = append(lines, badgeStyle.Render(badges))
	}
	style := rowStyle
	if active {
		style = rowActiveStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

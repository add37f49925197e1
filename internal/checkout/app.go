// Package checkout hosts the pickup point picker inside a minimal checkout
// delivery step: it owns the cart id and the confirmed selection.
package checkout

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/packeta/internal/config"
	"github.com/jask/packeta/internal/logger"
	"github.com/jask/packeta/internal/pickup"
	"github.com/jask/packeta/internal/widget"
)

// App ties the cart and the picker together.
type App struct {
	ctx      context.Context
	cfg      config.Config
	log      *logger.Logger
	text     text
	cartID   string
	selected *pickup.Point
	picker   widget.Model
	status   string
	width    int
	height   int
}

type text struct {
	cart    string
	saved   string
	quit    string
	missing string
}

var texts = map[string]text{
	"cs": {cart: "Košík", saved: "Výdejní místo uloženo: %s", quit: "q ukončit", missing: "Výdejní místo zatím není vybráno."},
	"en": {cart: "Cart", saved: "Pickup point saved: %s", quit: "q quit", missing: "No pickup point selected yet."},
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
)

// New builds the checkout step for cartID. selected may carry a selection
// restored from an earlier session.
func New(ctx context.Context, cfg config.Config, backend widget.Backend, cartID string, selected *pickup.Point, log *logger.Logger) *App {
	if log == nil {
		log = logger.Discard()
	}
	locale := strings.ToLower(cfg.UI.Locale)
	t, ok := texts[locale]
	if !ok {
		t = texts["cs"]
	}
	a := &App{
		ctx:    ctx,
		cfg:    cfg,
		log:    log,
		text:   t,
		cartID: cartID,
	}
	a.picker = widget.New(ctx, backend, widget.Props{
		CartID:   cartID,
		Selected: selected,
		OnSelect: func(p pickup.Point) {
			a.log.Info("checkout_pickup_point_set", "cart_id", a.cartID, "pickup_point_id", p.ID)
		},
	}, widget.Options{
		Labels:       widget.LabelsFor(cfg.UI.Locale),
		Timeout:      cfg.Backend.Timeout,
		Debounce:     cfg.UI.SearchDebounce,
		DiscardStale: cfg.UI.DiscardStaleLookups,
		Logger:       log,
	})
	if selected != nil {
		cp := *selected
		a.selected = &cp
	}
	return a
}

// Selection returns the confirmed pickup point, if any.
func (a *App) Selection() *pickup.Point { return a.selected }

func (a *App) Status() string { return a.status }

func (a *App) Init() tea.Cmd {
	return a.picker.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !a.picker.IsOpen() {
				return a, tea.Quit
			}
		}
	case widget.SelectedMsg:
		if m.WidgetID != a.picker.ID() {
			return a, nil
		}
		p := m.Point
		a.selected = &p
		a.picker.SetSelected(&p)
		a.status = fmt.Sprintf(a.text.saved, p.Name)
		return a, nil
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", a.text.cart, a.cartID)))
	b.WriteString("\n\n")
	b.WriteString(a.picker.InlineView())
	b.WriteString("\n\n")
	switch {
	case a.status != "":
		b.WriteString(statusStyle.Render(a.status))
	case a.selected == nil:
		b.WriteString(mutedStyle.Render(a.text.missing))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(a.text.quit))
	return a.picker.Overlay(b.String(), a.width, a.height)
}

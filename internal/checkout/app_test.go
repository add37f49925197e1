package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/packeta/internal/config"
	"github.com/jask/packeta/internal/pickup"
	"github.com/jask/packeta/internal/store"
)

type stubBackend struct {
	points  []pickup.Point
	selects []store.SelectRequest
}

func (s *stubBackend) ListPickupPoints(context.Context, string) ([]pickup.Point, error) {
	return s.points, nil
}

func (s *stubBackend) SelectPickupPoint(_ context.Context, sel store.SelectRequest) error {
	s.selects = append(s.selects, sel)
	return nil
}

var point = pickup.Point{ID: "42", Name: "Z-BOX Florenc", Street: "Main 1", City: "Prague", Zip: "11000"}

func testConfig(locale string) config.Config {
	return config.Config{
		Backend: config.BackendConfig{URL: "http://localhost:9000", Timeout: time.Second},
		UI:      config.UIConfig{Locale: locale, DiscardStaleLookups: true},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drive feeds msg to the app and then every message its commands produce,
// skipping commands that block (timers, cursor blink).
func drive(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100)
		next := queue[0]
		queue = queue[1:]
		_, cmd := a.Update(next)
		queue = append(queue, run(cmd)...)
	}
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, run(c)...)
			}
			return out
		case tea.QuitMsg:
			return nil
		case spinner.TickMsg:
			return nil
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func TestSelectionFlow(t *testing.T) {
	backend := &stubBackend{points: []pickup.Point{point}}
	a := New(context.Background(), testConfig("en"), backend, "cart_7", nil, nil)
	require.Contains(t, a.View(), "No pickup point selected yet.")
	require.Contains(t, a.View(), "Cart cart_7")

	drive(t, a, key("enter"))
	require.Contains(t, a.View(), point.Name)

	drive(t, a, key("enter"))
	require.NotNil(t, a.Selection())
	require.Equal(t, point, *a.Selection())
	require.Equal(t, "Pickup point saved: Z-BOX Florenc", a.Status())
	require.Len(t, backend.selects, 1)
	require.Equal(t, "cart_7", backend.selects[0].CartID)

	view := a.View()
	require.Contains(t, view, "Main 1, Prague 11000")
	require.Contains(t, view, "[c] Change")
}

func TestQuitOnlyWhenPickerClosed(t *testing.T) {
	backend := &stubBackend{}
	a := New(context.Background(), testConfig("cs"), backend, "cart_1", nil, nil)

	_, cmd := a.Update(key("o"))
	require.NotNil(t, cmd)
	_, cmd = a.Update(key("q"))
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		require.False(t, quit, "q types into the search box while the modal is open")
	}

	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = a.Update(key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = a.Update(key("ctrl+c"))
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRestoredSelectionRendersSummary(t *testing.T) {
	restored := point
	a := New(context.Background(), testConfig("cs"), &stubBackend{}, "cart_1", &restored, nil)
	view := a.View()
	require.Contains(t, view, "Z-BOX Florenc")
	require.Contains(t, view, "Změnit")
	require.NotContains(t, view, "Výdejní místo zatím není vybráno.")
	require.Equal(t, point, *a.Selection())
}

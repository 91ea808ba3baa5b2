package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bft-labs/charview/internal/domain"
	"github.com/bft-labs/charview/pkg/observable"
)

// fakeSource records calls and exposes cells the test writes directly.
type fakeSource struct {
	mu       sync.Mutex
	loadAlls int
	loadOnes []string

	characters *observable.Cell[domain.Page]
	errs       *observable.Cell[string]
	details    map[string]*observable.Cell[domain.Character]
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		characters: observable.NewCell[domain.Page](),
		errs:       observable.NewCell[string](),
		details:    map[string]*observable.Cell[domain.Character]{},
	}
}

func (f *fakeSource) LoadAll(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadAlls++
}

func (f *fakeSource) LoadOne(_ context.Context, id string) observable.Readable[domain.Character] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadOnes = append(f.loadOnes, id)
	cell, ok := f.details[id]
	if !ok {
		cell = observable.NewCell[domain.Character]()
		f.details[id] = cell
	}
	return cell
}

func (f *fakeSource) Characters() observable.Readable[domain.Page] { return f.characters }
func (f *fakeSource) Error() observable.Readable[string]          { return f.errs }

var (
	goku   = domain.Character{ID: "1", Name: "Goku", Ki: "60.000.000", Race: "Saiyan"}
	vegeta = domain.Character{ID: "2", Name: "Vegeta", Ki: "54.000.000"}
	page   = domain.Page{Items: []domain.Character{goku, vegeta}}
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := a.Update(msg)
	return cmd
}

func newApp(t *testing.T, src *fakeSource) *App {
	t.Helper()
	a := New(context.Background(), src)
	t.Cleanup(a.Close)
	return a
}

func TestApp_LoadingUntilPage(t *testing.T) {
	a := newApp(t, newFakeSource())

	if view := a.View(); !strings.Contains(view, "Loading") {
		t.Errorf("initial view = %q, want loading indicator", view)
	}

	update(t, a, pageMsg(page))

	view := a.View()
	for _, want := range []string{"ID: 1", "Goku", "Strength: 60.000.000", "ID: 2", "Vegeta"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Loading") {
		t.Errorf("list view still loading:\n%s", view)
	}
}

func TestApp_EmptyPage(t *testing.T) {
	a := newApp(t, newFakeSource())

	update(t, a, pageMsg(domain.Page{}))

	if view := a.View(); !strings.Contains(view, "No characters.") {
		t.Errorf("view = %q", view)
	}
	if cmd := update(t, a, key("enter")); cmd != nil {
		t.Error("enter on empty list returned a command")
	}
}

func TestApp_ErrorWins(t *testing.T) {
	a := newApp(t, newFakeSource())

	update(t, a, pageMsg(page))
	update(t, a, errorMsg("Error: 404 Not Found"))

	view := a.View()
	if !strings.Contains(view, "Error: 404 Not Found") {
		t.Errorf("view missing error:\n%s", view)
	}
	if strings.Contains(view, "Goku") {
		t.Errorf("error view still renders the list:\n%s", view)
	}
}

func TestApp_SubscriptionDeliversPage(t *testing.T) {
	src := newFakeSource()
	a := newApp(t, src)

	src.characters.Set(page)

	msg := listenForPage(a.pageCh)()
	got, ok := msg.(pageMsg)
	if !ok {
		t.Fatalf("msg = %T, want pageMsg", msg)
	}
	if len(got.Items) != 2 {
		t.Errorf("page has %d items, want 2", len(got.Items))
	}
}

func TestApp_SubscriptionDeliversError(t *testing.T) {
	src := newFakeSource()
	a := newApp(t, src)

	src.errs.Set("Error: timeout")

	msg := listenForError(a.errCh)()
	if got, ok := msg.(errorMsg); !ok || string(got) != "Error: timeout" {
		t.Fatalf("msg = %#v, want errorMsg(Error: timeout)", msg)
	}
}

func TestApp_CursorBounds(t *testing.T) {
	a := newApp(t, newFakeSource())
	update(t, a, pageMsg(page))

	update(t, a, key("up"))
	if a.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", a.cursor)
	}
	update(t, a, key("down"))
	update(t, a, key("j"))
	if a.cursor != 1 {
		t.Errorf("cursor = %d after moving past end, want 1", a.cursor)
	}
	update(t, a, key("k"))
	if a.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.cursor)
	}
}

func TestApp_DetailNavigation(t *testing.T) {
	src := newFakeSource()
	a := newApp(t, src)
	update(t, a, pageMsg(page))
	update(t, a, key("down"))

	cmd := update(t, a, key("enter"))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	if a.state != viewDetail {
		t.Fatalf("state = %v, want detail", a.state)
	}
	if got := src.loadOnes; len(got) != 1 || got[0] != "2" {
		t.Fatalf("LoadOne calls = %v, want [2]", got)
	}
	if view := a.View(); !strings.Contains(view, "Loading") {
		t.Errorf("detail view before data = %q, want loading", view)
	}

	src.details["2"].Set(vegeta)
	update(t, a, cmd())

	view := a.View()
	if !strings.Contains(view, "Name: Vegeta") || !strings.Contains(view, "Strength: 54.000.000") {
		t.Errorf("detail view:\n%s", view)
	}

	update(t, a, key("esc"))
	if a.state != viewList {
		t.Errorf("state = %v after esc, want list", a.state)
	}
	if view := a.View(); !strings.Contains(view, "Goku") {
		t.Errorf("list view after back:\n%s", view)
	}
}

func TestApp_StaleDetailIgnored(t *testing.T) {
	src := newFakeSource()
	a := newApp(t, src)
	update(t, a, pageMsg(page))

	update(t, a, key("enter"))
	update(t, a, key("esc"))
	update(t, a, key("down"))
	update(t, a, key("enter"))

	update(t, a, detailMsg{seq: 1, character: goku})
	if a.hasDetail {
		t.Error("detail from superseded load was applied")
	}
	update(t, a, detailMsg{seq: 2, character: vegeta})
	if !a.hasDetail || a.detail != vegeta {
		t.Errorf("detail = %+v, want %+v", a.detail, vegeta)
	}
}

func TestApp_ReloadClearsError(t *testing.T) {
	src := newFakeSource()
	a := newApp(t, src)
	update(t, a, errorMsg("Error: timeout"))

	cmd := update(t, a, key("r"))
	if cmd == nil {
		t.Fatal("r returned no command")
	}
	cmd()

	if src.loadAlls != 1 {
		t.Errorf("LoadAll called %d times, want 1", src.loadAlls)
	}
	if strings.Contains(a.View(), "Error: timeout") {
		t.Error("error still shown after reload")
	}
}

func TestApp_ReloadMsg(t *testing.T) {
	src := newFakeSource()
	a := newApp(t, src)

	cmd := update(t, a, ReloadMsg{Reason: "config changed"})
	cmd()

	if src.loadAlls != 1 {
		t.Errorf("LoadAll called %d times, want 1", src.loadAlls)
	}
	if !strings.Contains(a.View(), "config changed") {
		t.Errorf("view missing status:\n%s", a.View())
	}
}

func TestApp_Quit(t *testing.T) {
	a := newApp(t, newFakeSource())

	cmd := update(t, a, key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestFormatRow(t *testing.T) {
	want := "ID: 1  Goku  Strength: 60.000.000"
	if got := FormatRow(goku); got != want {
		t.Errorf("FormatRow() = %q, want %q", got, want)
	}
}

func TestFormatDetail(t *testing.T) {
	got := FormatDetail(goku)
	want := "ID: 1\nName: Goku\nStrength: 60.000.000\nRace: Saiyan"
	if got != want {
		t.Errorf("FormatDetail() = %q, want %q", got, want)
	}
}

// Package tui is the interactive terminal browser for characters.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bft-labs/charview/internal/domain"
	"github.com/bft-labs/charview/pkg/observable"
)

// Source is the view state the browser renders. *app.Coordinator satisfies it.
type Source interface {
	LoadAll(ctx context.Context)
	LoadOne(ctx context.Context, id string) observable.Readable[domain.Character]
	Characters() observable.Readable[domain.Page]
	Error() observable.Readable[string]
}

// App ties together the list and detail views.
type App struct {
	ctx    context.Context
	source Source

	state  appState
	cursor int
	frame  int

	page    domain.Page
	hasPage bool
	errText string

	detailID   string
	detail     domain.Character
	hasDetail  bool
	detailSeq  int
	detailStop func()

	pageCh   <-chan domain.Page
	pageStop func()
	errCh    <-chan string
	errStop  func()

	status string
}

type appState string

const (
	viewList   appState = "list"
	viewDetail appState = "detail"
)

// messages
type (
	pageMsg   domain.Page
	errorMsg  string
	detailMsg struct {
		seq       int
		character domain.Character
	}
	tickMsg time.Time
)

// ReloadMsg asks the browser to reload the list, e.g. after the API endpoint changed.
type ReloadMsg struct {
	Reason string
}

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// New creates the browser and subscribes to the source's shared cells.
func New(ctx context.Context, source Source) *App {
	a := &App{
		ctx:    ctx,
		source: source,
		state:  viewList,
	}
	a.pageCh, a.pageStop = source.Characters().Subscribe()
	a.errCh, a.errStop = source.Error().Subscribe()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		listenForPage(a.pageCh),
		listenForError(a.errCh),
		a.loadAll(),
		tick(),
	)
}

// Close releases every subscription held by the browser.
func (a *App) Close() {
	a.pageStop()
	a.errStop()
	a.stopDetail()
}

func (a *App) loadAll() tea.Cmd {
	return func() tea.Msg {
		a.source.LoadAll(a.ctx)
		return nil
	}
}

// listenForPage returns a tea.Cmd that blocks until the list cell publishes.
func listenForPage(ch <-chan domain.Page) tea.Cmd {
	return func() tea.Msg {
		page, ok := <-ch
		if !ok {
			return nil
		}
		return pageMsg(page)
	}
}

// listenForError returns a tea.Cmd that blocks until the error cell publishes.
func listenForError(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return errorMsg(text)
	}
}

func listenForDetail(ch <-chan domain.Character, seq int) tea.Cmd {
	return func() tea.Msg {
		character, ok := <-ch
		if !ok {
			return nil
		}
		return detailMsg{seq: seq, character: character}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case pageMsg:
		a.page = domain.Page(m)
		a.hasPage = true
		if a.cursor >= len(a.page.Items) {
			a.cursor = 0
		}
		return a, listenForPage(a.pageCh)
	case errorMsg:
		a.errText = string(m)
		return a, listenForError(a.errCh)
	case detailMsg:
		if m.seq == a.detailSeq {
			a.detail = m.character
			a.hasDetail = true
			a.stopDetail()
		}
	case ReloadMsg:
		a.status = m.Reason
		a.errText = ""
		return a, a.loadAll()
	case tickMsg:
		a.frame = (a.frame + 1) % len(spinnerFrames)
		return a, tick()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "r":
		a.errText = ""
		a.status = ""
		if a.state == viewDetail && a.detailID != "" {
			return a, a.openDetail(a.detailID)
		}
		return a, a.loadAll()
	}

	switch a.state {
	case viewList:
		switch m.String() {
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.page.Items)-1 {
				a.cursor++
			}
		case "enter":
			if len(a.page.Items) == 0 {
				return a, nil
			}
			return a, a.openDetail(a.page.Items[a.cursor].ID)
		}
	case viewDetail:
		switch m.String() {
		case "esc", "backspace", "left", "h":
			a.stopDetail()
			a.state = viewList
			a.detailID = ""
			a.hasDetail = false
		}
	}
	return a, nil
}

func (a *App) openDetail(id string) tea.Cmd {
	a.stopDetail()
	a.state = viewDetail
	a.detailID = id
	a.detail = domain.Character{}
	a.hasDetail = false
	a.detailSeq++

	ch, stop := a.source.LoadOne(a.ctx, id).Subscribe()
	a.detailStop = stop
	return listenForDetail(ch, a.detailSeq)
}

func (a *App) stopDetail() {
	if a.detailStop != nil {
		a.detailStop()
		a.detailStop = nil
	}
}

func (a *App) View() string {
	var body string
	switch {
	case a.errText != "":
		body = a.renderError()
	case a.state == viewDetail:
		body = a.renderDetail()
	default:
		body = a.renderList()
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	return body
}

func (a *App) spinner() string {
	return spinnerStyle.Render(spinnerFrames[a.frame]) + " Loading..."
}

func (a *App) renderError() string {
	return fmt.Sprintf("%s\n%s\n\n%s",
		titleStyle.Render("Characters"),
		errorStyle.Render(a.errText),
		helpStyle.Render("[r] Retry  [q] Quit"),
	)
}

func (a *App) renderList() string {
	title := titleStyle.Render("Characters")
	if !a.hasPage {
		return fmt.Sprintf("%s\n%s", title, a.spinner())
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if len(a.page.Items) == 0 {
		b.WriteString(dimStyle.Render("No characters."))
		b.WriteString("\n")
	}
	for i, c := range a.page.Items {
		row := FormatRow(c)
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if meta := a.page.Meta; meta.TotalItems > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("page %d of %d, %d characters total", meta.CurrentPage, meta.TotalPages, meta.TotalItems)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[↑/↓] Move  [enter] Details  [r] Reload  [q] Quit"))
	return b.String()
}

func (a *App) renderDetail() string {
	title := titleStyle.Render("Character " + a.detailID)
	help := helpStyle.Render("[esc] Back  [r] Reload  [q] Quit")
	if !a.hasDetail {
		return fmt.Sprintf("%s\n%s\n\n%s", title, a.spinner(), help)
	}
	return fmt.Sprintf("%s\n%s\n\n%s", title, FormatDetail(a.detail), help)
}

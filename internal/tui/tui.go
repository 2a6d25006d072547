package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ingyamilmolinar/holostack/core/engine"
	"github.com/ingyamilmolinar/holostack/core/feedback"
	"github.com/ingyamilmolinar/holostack/core/model"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

const frameInterval = time.Second / 60

var copyToClipboard = clipboard.WriteAll

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 3)
)

type frameMsg time.Time

// Model renders a Scene as text rows. It is the host used when no graphics
// backend is available.
type Model struct {
	scene   *engine.Scene
	logger  *game_log.Logger
	accents []lipgloss.Color

	search    textinput.Model
	searching bool
	notice    string

	last          time.Time
	width, height int
}

func New(scene *engine.Scene, logger *game_log.Logger) *Model {
	in := textinput.New()
	in.Placeholder = "card, category or subtitle"
	in.Prompt = "/ "
	in.CharLimit = 64
	in.Width = 40

	pal := feedback.Palette(scene.Catalog())
	accents := make([]lipgloss.Color, len(pal))
	for i, c := range pal {
		accents[i] = lipgloss.Color(feedback.Accent(c).Hex())
	}
	return &Model{scene: scene, logger: logger, accents: accents, search: in}
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case frameMsg:
		t := time.Time(msg)
		dt := 0.0
		if !m.last.IsZero() {
			dt = t.Sub(m.last).Seconds()
		}
		m.last = t
		m.scene.Frame(dt)
		return m, tickCmd()
	case tea.MouseMsg:
		if m.searching || m.scene.State().ModalOpen() {
			return m, nil
		}
		switch msg.Type {
		case tea.MouseWheelUp:
			m.scene.Input().Wheel(-1)
		case tea.MouseWheelDown:
			m.scene.Input().Wheel(1)
		}
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.scene.Dismiss()
		m.notice = ""
		return m, nil
	}

	if st := m.scene.State(); st.ModalOpen() {
		if key == "y" {
			m.copy(*st.Selected)
		}
		return m, nil
	}

	in := m.scene.Input()
	switch key {
	case "up", "k":
		in.Wheel(-1)
	case "down", "j":
		in.Wheel(1)
	case "left", "h":
		in.PrevCard()
	case "right", "l":
		in.NextCard()
	case "enter":
		m.scene.SelectActive()
	case "/":
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.endSearch()
		return m, nil
	case "enter":
		q := m.search.Value()
		m.endSearch()
		id, ok := m.scene.Catalog().Find(q)
		if !ok {
			m.notice = fmt.Sprintf("No card matches %q", q)
			return m, nil
		}
		m.logger.Debugf("[TUI] search %q -> %s", q, id)
		m.notice = ""
		m.scene.Select(id)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) endSearch() {
	m.searching = false
	m.search.Blur()
}

func (m *Model) copy(c model.Card) {
	if err := copyToClipboard(cardText(c)); err != nil {
		m.logger.Warnf("[TUI] copy failed: %v", err)
		m.notice = "Copy failed"
		return
	}
	m.notice = "Copied"
}

func cardText(c model.Card) string {
	if !c.HasSubtitle() {
		return c.Title
	}
	return c.Title + "\n" + c.Subtitle
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("holostack"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.scene.Status().String()))
	b.WriteString("\n\n")

	st := m.scene.State()
	cat := m.scene.Catalog()
	for i := 0; i < cat.Len(); i++ {
		b.WriteString(m.renderRow(i, st.CategoryIndex, st.CardIndex))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if st.ModalOpen() {
		b.WriteString(m.renderDetail(*st.Selected))
		b.WriteString("\n")
	}
	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help(st.ModalOpen())))
	return b.String()
}

// renderRow draws one category. Rows the feedback engine dims render faint;
// the active row uses its palette accent and marks the active card.
func (m *Model) renderRow(row, activeRow, activeCard int) string {
	cat := m.scene.Catalog()
	dim := m.scene.Uniforms(model.CardID{Category: row}).Dim > 0.5
	name := lipgloss.NewStyle().Width(12).Render(cat.Name(row))

	cards := make([]string, cat.CardCount(row))
	for i := range cards {
		title := cat.Card(model.CardID{Category: row, Index: i}).Title
		if row == activeRow && i == activeCard {
			cards[i] = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(m.accents[row]).Render(" " + title + " ")
		} else {
			cards[i] = " " + title + " "
		}
	}
	line := name + strings.Join(cards, "·")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	if dim || row != activeRow {
		return faintStyle.Render(line)
	}
	return lipgloss.NewStyle().Foreground(m.accents[row]).Render(line)
}

func (m *Model) renderDetail(c model.Card) string {
	sub := c.Subtitle
	if !c.HasSubtitle() {
		sub = "Detailed description coming soon…"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(c.Title),
		sub,
		"",
		helpStyle.Render("y copy  esc close"),
	)
	style := detailStyle
	if i := m.scene.State().SelectedID.Category; i < len(m.accents) {
		style = style.BorderForeground(m.accents[i])
	}
	return style.Render(body)
}

func (m *Model) help(modal bool) string {
	if modal {
		return "y copy • esc close • q quit"
	}
	return "↑/↓ k/j category • ←/→ h/l card • enter open • / search • q quit"
}

// Run starts the terminal host and blocks until the user quits.
func Run(scene *engine.Scene, logger *game_log.Logger) error {
	prog := tea.NewProgram(New(scene, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}

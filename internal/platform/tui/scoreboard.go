package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kids-arcade/internal/registry"
	"github.com/vovakirdan/kids-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80 // narrower terminals get tabs instead
	sidebarWidth       = 20
	maxScores          = 100 // rows loaded per page
)

var (
	boardAccent    = lipgloss.Color("229")
	boardBorder    = lipgloss.Color("240")
	boardDim       = lipgloss.Color("241")
	boardHighlight = lipgloss.Color("57")

	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(boardAccent).MarginBottom(1)
	boardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(boardBorder).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(boardDim).Italic(true).Padding(2, 4)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(boardDim)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(boardAccent).Background(boardHighlight).Padding(0, 1)
	boardTab        = lipgloss.NewStyle().Foreground(boardDim).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up, Down   key.Binding
	Next, Prev key.Binding
	Back, Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next page")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev page")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardPage is one page of the scoreboard: a game's high scores, or the
// flight log when gameID is empty.
type boardPage struct {
	gameID string
	title  string
}

func (p boardPage) isFlightLog() bool {
	return p.gameID == ""
}

var flightLogPage = boardPage{title: "Flight Log"}

// ScoreboardModel shows the high scores of every game and the rocket
// flight log, one page at a time.
type ScoreboardModel struct {
	pages     []boardPage
	page      int
	store     *storage.Store
	scores    []storage.ScoreEntry
	flights   []storage.FlightRecord
	stats     *storage.FlightStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the first game. A nil store
// shows empty pages.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	games := registry.List()
	pages := make([]boardPage, 0, len(games)+1)
	for _, g := range games {
		pages = append(pages, boardPage{gameID: g.ID, title: g.Title})
	}
	pages = append(pages, flightLogPage)

	m := ScoreboardModel{
		pages:  pages,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) currentPage() boardPage {
	return m.pages[m.page]
}

func (m *ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// turn moves by delta pages, wrapping at both ends.
func (m *ScoreboardModel) turn(delta int) {
	n := len(m.pages)
	m.page = ((m.page+delta)%n + n) % n
	m.load()
}

// load fetches the rows of the current page. Storage errors leave the page
// empty.
func (m *ScoreboardModel) load() {
	m.scores, m.flights, m.stats = nil, nil, nil
	page := m.currentPage()

	if m.store != nil {
		if page.isFlightLog() {
			m.flights, _ = m.store.RecentFlights(maxScores)
			m.stats, _ = m.store.FlightStats()
		} else {
			m.scores, _ = m.store.TopScores(page.gameID, maxScores)
		}
	}
	m.rebuildTable()
}

// rebuildTable recreates the table for the current page and size.
func (m *ScoreboardModel) rebuildTable() {
	columns, rows := flightColumns(), flightRows(m.flights)
	if !m.currentPage().isFlightLog() {
		columns, rows = scoreColumns(m.tableWidth()), scoreRows(m.scores)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(boardBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(boardAccent).Background(boardHighlight).Bold(false)

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
		table.WithStyles(styles),
	)
}

// tableWidth is the room left for the table after margins and the sidebar.
func (m *ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.wide() {
		w -= sidebarWidth + 3
	}
	return w
}

// scoreColumns gives the player name whatever the fixed columns leave over.
func scoreColumns(width int) []table.Column {
	const rankW, scoreW, dateW = 5, 7, 12
	playerW := min(max(width-rankW-scoreW-dateW-8, 8), 16)
	return []table.Column{
		{Title: "Rank", Width: rankW},
		{Title: "Player", Width: playerW},
		{Title: "Score", Width: scoreW},
		{Title: "Date", Width: dateW},
	}
}

// scoreRows formats high scores for the score table.
func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Player,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func flightColumns() []table.Column {
	return []table.Column{
		{Title: "Result", Width: 9},
		{Title: "Orbits", Width: 7},
		{Title: "Score", Width: 6},
		{Title: "Fuel", Width: 11},
		{Title: "Quiz", Width: 6},
		{Title: "Date", Width: 13},
	}
}

// flightRows formats flight records for the flight log table.
func flightRows(flights []storage.FlightRecord) []table.Row {
	rows := make([]table.Row, len(flights))
	for i, f := range flights {
		rows[i] = table.Row{
			f.Outcome,
			fmt.Sprintf("%d", f.Orbits),
			fmt.Sprintf("%d", f.Score),
			fmt.Sprintf("%.0f%% -> %.0f%%", f.FuelStart, f.FuelLeft),
			fmt.Sprintf("%d/%d", f.QuizCorrect, f.QuizTotal),
			f.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.turn(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.turn(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES - " + m.currentPage().title
	if m.currentPage().isFlightLog() {
		title = "FLIGHT LOG"
	}

	body := m.viewNarrow()
	if m.wide() {
		body = m.viewWide()
	}

	return boardTitleStyle.Render(centerText(title, m.width)) + "\n\n" +
		body + "\n" +
		boardHelpStyle.Render(m.help.View(m.keys))
}

// viewWide puts the page list in a sidebar next to the table.
func (m ScoreboardModel) viewWide() string {
	var list strings.Builder
	list.WriteString("Pages\n")
	list.WriteString(strings.Repeat("─", sidebarWidth-4))
	for i, p := range m.pages {
		list.WriteString("\n")
		name := truncate(p.title, sidebarWidth-6)
		if i == m.page {
			list.WriteString(lipgloss.NewStyle().Bold(true).Foreground(boardAccent).Render("▸ " + name))
		} else {
			list.WriteString("  " + name)
		}
	}

	sidebar := boardBoxStyle.Width(sidebarWidth).Render(list.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", boardBoxStyle.Render(m.viewPage()))
}

// viewNarrow puts the pages in a tab row above the table.
func (m ScoreboardModel) viewNarrow() string {
	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		style := boardTab
		if i == m.page {
			style = boardActiveTab
		}
		tabs[i] = style.Render(truncate(p.title, 10))
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(tabRow) > m.width-4 {
		tabRow = fmt.Sprintf("‹ %s ›", m.currentPage().title)
	}
	return centerText(tabRow, m.width) + "\n\n" + centerText(boardBoxStyle.Render(m.viewPage()), m.width)
}

// viewPage renders the table of the current page, or why it is empty.
func (m ScoreboardModel) viewPage() string {
	if m.currentPage().isFlightLog() {
		if len(m.flights) == 0 {
			return boardEmptyStyle.Render("No flights yet.\nAnswer the quiz and launch a rocket!")
		}
		if m.stats == nil {
			return m.table.View()
		}
		summary := fmt.Sprintf("Flights: %d  Landed: %d  Crashed: %d  Best orbits: %d  Avg fuel: %.0f%%",
			m.stats.Attempts, m.stats.Landings, m.stats.Crashes, m.stats.BestOrbits, m.stats.AvgFuel)
		return lipgloss.NewStyle().Foreground(boardAccent).Render(summary) + "\n\n" + m.table.View()
	}

	if len(m.scores) == 0 {
		return boardEmptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// truncate shortens s to n cells, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program. It reports whether
// the player went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

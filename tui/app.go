package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/IhorHliba/Cinema-Seat-Simulator/config"
	"github.com/IhorHliba/Cinema-Seat-Simulator/hall"
	"github.com/IhorHliba/Cinema-Seat-Simulator/store"
)

// bannerHeight is the number of terminal rows the SCREEN banner
// occupies. The seat grid starts one blank line below it.
const bannerHeight = 3

type keyMap struct {
	Reset key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset all seats"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "save and quit"),
		),
	}
}

var (
	seatStyleFree = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleSold = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	screenStyle   = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214"))
	screenBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))
)

// appModel is the session: it owns the grid and wires mouse clicks and
// key presses to toggles, resets, persistence, and redraws. All state
// lives here; there are no package-level seats.
type appModel struct {
	grid     *hall.Grid
	dataPath string
	keys     keyMap

	width  int
	height int

	// rowCache holds the rendered line for each seat row. A toggle
	// invalidates only the rows it touched, so a click repaints one
	// line instead of the whole hall.
	rowCache []string

	notice  string // startup recovery, shown faint in the footer
	saveErr error  // last snapshot write failure
}

// New builds the session model: a grid sized from the configuration
// with occupancy restored from the snapshot file. An unreadable
// snapshot is recovered locally by starting with a fresh hall.
func New(cfg config.Config) (tea.Model, error) {
	grid, err := hall.New(cfg.Rows, cfg.Cols, cfg.Layout())
	if err != nil {
		return nil, err
	}

	path := cfg.DataFile
	if path == "" {
		path, err = store.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve snapshot path: %w", err)
		}
	}

	m := appModel{
		grid:     grid,
		dataPath: path,
		keys:     defaultKeyMap(),
		rowCache: make([]string, cfg.Rows),
	}

	seats, err := store.Load(path)
	if err != nil {
		m.notice = "could not read saved seats; starting with a fresh hall"
	} else {
		_, _ = grid.Update(func() error {
			grid.Apply(seats)
			return nil
		})
	}
	return m, nil
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.persist()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			changed, _ := m.grid.Update(func() error {
				m.grid.Reset()
				return nil
			})
			m.invalidateRows(changed)
			m.persist()
			return m, nil
		}
	}
	return m, nil
}

// handleMouse toggles the seat under a left click. Clicks in the gaps
// between seats, on the banner, or in the footer hit nothing and change
// nothing.
func (m appModel) handleMouse(msg tea.MouseMsg) appModel {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return m
	}
	originX, originY := m.gridOrigin()
	row, col, ok := m.grid.HitTest(msg.X-originX, msg.Y-originY)
	if !ok {
		return m
	}
	changed, _ := m.grid.Update(func() error {
		m.grid.Toggle(row, col)
		return nil
	})
	m.invalidateRows(changed)
	m.persist()
	return m
}

func (m *appModel) persist() {
	m.saveErr = store.Save(m.dataPath, m.grid.Snapshot())
}

func (m *appModel) invalidateRows(rows []int) {
	for _, row := range rows {
		if row >= 0 && row < len(m.rowCache) {
			m.rowCache[row] = ""
		}
	}
}

// gridOrigin returns the screen coordinates of the top-left seat cell:
// the grid sits below the banner and a blank line, indented past the
// row labels.
func (m appModel) gridOrigin() (x, y int) {
	return m.labelWidth() + 1, bannerHeight + 1
}

func (m appModel) labelWidth() int {
	return len(strconv.Itoa(m.grid.Rows()))
}

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.bannerView())
	b.WriteString("\n")

	layout := m.grid.Layout()
	gap := strings.Repeat("\n", layout.GapY)
	for row := 0; row < m.grid.Rows(); row++ {
		b.WriteString(m.seatRowView(row))
		b.WriteString("\n")
		if row < m.grid.Rows()-1 {
			b.WriteString(gap)
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m appModel) bannerView() string {
	gridWidth, _ := m.grid.Layout().GridSize(m.grid.Rows(), m.grid.Cols())
	block := screenBar(gridWidth, "SCREEN")
	indent := strings.Repeat(" ", m.labelWidth()+1)

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(screenBorderStyle.Render(block.top))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(screenStyle.Render(block.mid))
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(screenBorderStyle.Render(block.bot))
	b.WriteString("\n")
	return b.String()
}

func (m appModel) seatRowView(row int) string {
	if m.rowCache[row] != "" {
		return m.rowCache[row]
	}

	layout := m.grid.Layout()
	gap := strings.Repeat(" ", layout.GapX)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%*d ", m.labelWidth(), row+1))
	for col := 0; col < m.grid.Cols(); col++ {
		if col > 0 {
			b.WriteString(gap)
		}
		state, _ := m.grid.State(row, col)
		if state == hall.Sold {
			b.WriteString(seatStyleSold.Render(padCell("XX", layout.SeatWidth)))
		} else {
			b.WriteString(seatStyleFree.Render(padCell("[]", layout.SeatWidth)))
		}
	}

	line := b.String()
	m.rowCache[row] = line
	return line
}

func (m appModel) footerView() string {
	sold, free := m.grid.Counts()

	lines := []string{
		fmt.Sprintf("Free: %d   Sold: %d", free, sold),
		seatStyleFree.Render("[]") + hint(" free") + "   " + seatStyleSold.Render("XX") + hint(" sold"),
		hint("click seat toggle • r reset • q/esc save & quit"),
	}
	if m.notice != "" {
		lines = append(lines, hint(m.notice))
	}
	if m.saveErr != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("could not save seats: %v", m.saveErr)))
	}
	return strings.Join(lines, "\n")
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBar(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}

	top := "╭" + strings.Repeat("─", width-2) + "╮"
	bot := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: top, mid: mid, bot: bot}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IhorHliba/Cinema-Seat-Simulator/config"
	"github.com/IhorHliba/Cinema-Seat-Simulator/hall"
	"github.com/IhorHliba/Cinema-Seat-Simulator/store"
)

func newTestModel(t *testing.T, rows, cols int) (appModel, string) {
	t.Helper()
	cfg := config.Default()
	cfg.Rows = rows
	cfg.Cols = cols
	cfg.DataFile = filepath.Join(t.TempDir(), "seats.json")

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	model := m.(appModel)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(appModel), cfg.DataFile
}

// clickSeat sends a left mouse press at the first cell of (row, col).
func clickSeat(t *testing.T, m appModel, row, col int) appModel {
	t.Helper()
	originX, originY := m.gridOrigin()
	x, y := m.grid.Layout().CellOrigin(row, col)
	updated, _ := m.Update(tea.MouseMsg{
		X:      originX + x,
		Y:      originY + y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	return updated.(appModel)
}

func soldSeats(t *testing.T, path string) map[string]bool {
	t.Helper()
	seats, err := store.Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	sold := map[string]bool{}
	for _, seat := range seats {
		if seat.State == hall.Sold {
			sold[fmt.Sprintf("%d,%d", seat.Row, seat.Col)] = true
		}
	}
	return sold
}

func TestClickTogglesSeatAndPersists(t *testing.T) {
	m, dataPath := newTestModel(t, 5, 10)

	m = clickSeat(t, m, 2, 3)

	if state, _ := m.grid.State(2, 3); state != hall.Sold {
		t.Fatal("clicked seat should be sold")
	}
	if sold, free := m.grid.Counts(); sold != 1 || free != 49 {
		t.Fatalf("expected counts (1, 49), got (%d, %d)", sold, free)
	}

	persisted := soldSeats(t, dataPath)
	if len(persisted) != 1 || !persisted["2,3"] {
		t.Fatalf("expected only seat (2,3) persisted as sold, got %v", persisted)
	}
}

func TestDoubleClickRestoresSeat(t *testing.T) {
	m, dataPath := newTestModel(t, 5, 10)

	m = clickSeat(t, m, 1, 1)
	m = clickSeat(t, m, 1, 1)

	if state, _ := m.grid.State(1, 1); state != hall.Free {
		t.Fatal("double-clicked seat should be free again")
	}
	if persisted := soldSeats(t, dataPath); len(persisted) != 0 {
		t.Fatalf("expected no sold seats persisted, got %v", persisted)
	}
}

func TestClickInGapDoesNothing(t *testing.T) {
	m, dataPath := newTestModel(t, 5, 10)
	originX, originY := m.gridOrigin()

	// x = originX+2 is the gap column between seats 0 and 1.
	updated, _ := m.Update(tea.MouseMsg{
		X:      originX + 2,
		Y:      originY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	m = updated.(appModel)

	if sold, _ := m.grid.Counts(); sold != 0 {
		t.Fatalf("gap click should not toggle anything, got sold=%d", sold)
	}
	if _, err := os.Stat(dataPath); !os.IsNotExist(err) {
		t.Fatal("a miss should not write a snapshot")
	}
}

func TestClickOutsideGridDoesNothing(t *testing.T) {
	m, _ := newTestModel(t, 5, 10)

	// The banner row is above the grid origin.
	updated, _ := m.Update(tea.MouseMsg{
		X:      5,
		Y:      0,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
	m = updated.(appModel)

	if sold, _ := m.grid.Counts(); sold != 0 {
		t.Fatalf("banner click should not toggle anything, got sold=%d", sold)
	}
}

func TestMouseReleaseAndRightButtonIgnored(t *testing.T) {
	m, _ := newTestModel(t, 5, 10)
	originX, originY := m.gridOrigin()

	updated, _ := m.Update(tea.MouseMsg{
		X:      originX,
		Y:      originY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	m = updated.(appModel)
	updated, _ = m.Update(tea.MouseMsg{
		X:      originX,
		Y:      originY,
		Button: tea.MouseButtonRight,
		Action: tea.MouseActionPress,
	})
	m = updated.(appModel)

	if sold, _ := m.grid.Counts(); sold != 0 {
		t.Fatalf("only left presses should toggle, got sold=%d", sold)
	}
}

func TestResetKeyFreesEverySeat(t *testing.T) {
	m, dataPath := newTestModel(t, 4, 6)
	m = clickSeat(t, m, 0, 0)
	m = clickSeat(t, m, 2, 5)
	m = clickSeat(t, m, 3, 1)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(appModel)

	if sold, free := m.grid.Counts(); sold != 0 || free != 24 {
		t.Fatalf("expected counts (0, 24) after reset, got (%d, %d)", sold, free)
	}
	if persisted := soldSeats(t, dataPath); len(persisted) != 0 {
		t.Fatalf("reset should persist an all-free hall, got %v", persisted)
	}
}

func TestQuitKeySavesAndQuits(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m, dataPath := newTestModel(t, 3, 3)
		m = clickSeat(t, m, 0, 2)

		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s should produce a quit command", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s should quit, got %T", msg.String(), cmd())
		}

		persisted := soldSeats(t, dataPath)
		if len(persisted) != 1 || !persisted["0,2"] {
			t.Fatalf("quit should persist current occupancy, got %v", persisted)
		}
	}
}

func TestSaveFailureShownOnStatusLine(t *testing.T) {
	cfg := config.Default()
	cfg.Rows = 3
	cfg.Cols = 3
	// A directory as the snapshot path makes every write fail.
	cfg.DataFile = t.TempDir()

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("an unwritable snapshot path must not fail startup, got %v", err)
	}
	model := m.(appModel)

	model = clickSeat(t, model, 0, 0)
	if model.saveErr == nil {
		t.Fatal("writing the snapshot to a directory should fail")
	}
	if !strings.Contains(model.View(), "could not save seats") {
		t.Fatal("the save error should be visible on the status line")
	}

	// The failure never aborts the loop: clicks keep toggling.
	model = clickSeat(t, model, 1, 1)
	if sold, free := model.grid.Counts(); sold != 2 || free != 7 {
		t.Fatalf("expected counts (2, 7) after a second click, got (%d, %d)", sold, free)
	}
	if !strings.Contains(model.View(), "Free: 7   Sold: 2") {
		t.Fatal("counts should keep updating while saves fail")
	}
}

func TestStateRestoredAcrossSessions(t *testing.T) {
	cfg := config.Default()
	cfg.Rows = 5
	cfg.Cols = 10
	cfg.DataFile = filepath.Join(t.TempDir(), "seats.json")

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	m := first.(appModel)
	m = clickSeat(t, m, 2, 3)

	second, err := New(cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	restored := second.(appModel)

	if state, _ := restored.grid.State(2, 3); state != hall.Sold {
		t.Fatal("seat (2,3) should be restored as sold")
	}
	if sold, free := restored.grid.Counts(); sold != 1 || free != 49 {
		t.Fatalf("expected counts (1, 49) after restore, got (%d, %d)", sold, free)
	}
}

func TestCorruptSnapshotStartsFresh(t *testing.T) {
	cfg := config.Default()
	cfg.DataFile = filepath.Join(t.TempDir(), "seats.json")
	if err := os.WriteFile(cfg.DataFile, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("a corrupt snapshot must not fail startup, got %v", err)
	}
	model := m.(appModel)
	if sold, _ := model.grid.Counts(); sold != 0 {
		t.Fatalf("expected a fresh hall, got sold=%d", sold)
	}
	if !strings.Contains(model.View(), "fresh hall") {
		t.Fatal("the recovery notice should be visible")
	}
}

func TestInvalidDimensionsFailStartup(t *testing.T) {
	cfg := config.Default()
	cfg.Rows = 0
	cfg.DataFile = filepath.Join(t.TempDir(), "seats.json")

	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for a 0-row hall")
	}
}

func TestViewShowsBannerGridAndCounts(t *testing.T) {
	m, _ := newTestModel(t, 5, 10)

	view := m.View()
	if !strings.Contains(view, "SCREEN") {
		t.Fatal("view should contain the screen banner")
	}
	if !strings.Contains(view, "Free: 50   Sold: 0") {
		t.Fatal("view should show initial counts")
	}

	m = clickSeat(t, m, 2, 3)
	view = m.View()
	if !strings.Contains(view, "Free: 49   Sold: 1") {
		t.Fatal("view should show updated counts after a click")
	}
	if !strings.Contains(view, "XX") {
		t.Fatal("a sold seat should render as XX")
	}
}

func TestSeatRowCacheInvalidation(t *testing.T) {
	m, _ := newTestModel(t, 3, 3)
	_ = m.View() // populate the cache

	cachedBefore := m.rowCache[1]
	if cachedBefore == "" {
		t.Fatal("row 1 should be cached after a render")
	}

	m = clickSeat(t, m, 1, 0)
	if m.rowCache[1] != "" {
		t.Fatal("the clicked row's cache entry should be invalidated")
	}
	if m.rowCache[0] == "" || m.rowCache[2] == "" {
		t.Fatal("untouched rows should keep their cached render")
	}

	_ = m.View()
	if m.rowCache[1] == cachedBefore {
		t.Fatal("the re-rendered row should differ from the cached free row")
	}
}

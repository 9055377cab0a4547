package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/camctl/internal/camview"
	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/editflow"
)

type stubDirectory struct{}

func (stubDirectory) FetchAll(context.Context) (directory.Collection, error) {
	return nil, errors.New("not used")
}

func (stubDirectory) UpdateStatus(context.Context, string, directory.Status) error {
	return errors.New("not used")
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func typeText(t *testing.T, m AppModel, text string) AppModel {
	t.Helper()
	for _, r := range text {
		m, _ = send(t, m, keyPress(string(r)))
	}
	return m
}

// started returns a model whose first fetch is in flight with ticket 1
func started(t *testing.T) AppModel {
	t.Helper()
	m := NewAppModel(context.Background(), stubDirectory{}, nil)
	require.NotNil(t, m.Init())
	require.Equal(t, camview.Loading, m.Store.Load().Kind)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func loadedWith(t *testing.T, coll directory.Collection) AppModel {
	t.Helper()
	m := started(t)
	m, _ = send(t, m, fetchDoneMsg{ticket: 1, devices: coll})
	require.Equal(t, camview.Loaded, m.Store.Load().Kind)
	return m
}

func lobby(status directory.Status) directory.Collection {
	return directory.Collection{
		{ID: "1", Name: "Lobby", Location: "HQ", Recorder: "R1", TaskCount: 2, Status: status},
	}
}

func TestLoadingShowsSpinnerOnly(t *testing.T) {
	m := started(t)
	view := m.View()
	assert.Contains(t, view, "Loading cameras")
	assert.NotContains(t, view, "Recorder")
}

func TestFetchFailureShowsErrorOnly(t *testing.T) {
	m := started(t)
	m, _ = send(t, m, fetchDoneMsg{ticket: 1, err: directory.NewHTTPError("fetch_all", 500, "")})

	view := m.View()
	assert.Contains(t, view, "Failed to fetch data")
	assert.NotContains(t, view, "Loading cameras")
	assert.NotContains(t, view, "Recorder")

	// Table keys do nothing while failed
	m, _ = send(t, m, keyPress("e"))
	assert.False(t, m.Store.Edit().DialogOpen)

	// Reload is allowed
	m, cmd := send(t, m, keyPress("r"))
	assert.NotNil(t, cmd)
	assert.Equal(t, camview.Loading, m.Store.Load().Kind)
}

func TestLoadedRendersTable(t *testing.T) {
	m := loadedWith(t, lobby("Active"))
	view := m.View()
	for _, want := range []string{"Name", "Recorder", "Lobby", "HQ", "2 Tasks", "Active", "Showing 1 to 1 of 1 entries"} {
		assert.Contains(t, view, want)
	}
}

func TestSearchFiltersAsYouType(t *testing.T) {
	m := loadedWith(t, lobby("Active"))

	m, cmd := send(t, m, keyPress("/"))
	assert.NotNil(t, cmd, "focus starts the cursor blink")
	m = typeText(t, m, "LOB")
	assert.Equal(t, "LOB", m.Store.Criteria().Search)
	assert.Len(t, m.Store.Screen().Rows, 1)

	m, _ = send(t, m, keyPress("esc"))
	m, _ = send(t, m, keyPress("/"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = typeText(t, m, "xyz")

	sc := m.Store.Screen()
	assert.True(t, sc.Empty)
	assert.Contains(t, m.View(), "No data")
}

func TestLocationAndStatusInputs(t *testing.T) {
	coll := directory.Collection{
		{ID: "1", Name: "Gate", Location: "North", Status: "Active"},
		{ID: "2", Name: "Dock", Location: "South", Status: "Inactive"},
	}
	m := loadedWith(t, coll)

	m, _ = send(t, m, keyPress("L"))
	m = typeText(t, m, "south")
	m, _ = send(t, m, keyPress("enter"))
	require.Len(t, m.Store.Screen().Rows, 1)
	assert.Equal(t, "Dock", m.Store.Screen().Rows[0].Name)

	m, _ = send(t, m, keyPress("S"))
	m = typeText(t, m, "active")
	assert.True(t, m.Store.Screen().Empty)
}

func TestPagingKeys(t *testing.T) {
	coll := make(directory.Collection, 25)
	for i := range coll {
		coll[i] = directory.Device{ID: fmt.Sprint(i + 1), Name: fmt.Sprintf("Cam %02d", i+1), Status: "Active"}
	}
	m := loadedWith(t, coll)

	m, _ = send(t, m, keyPress("l"))
	assert.Equal(t, 2, m.Store.Paging().Page)
	m, _ = send(t, m, keyPress("right"))
	m, _ = send(t, m, keyPress("right"))
	assert.Equal(t, 3, m.Store.Paging().Page)
	m, _ = send(t, m, keyPress("h"))
	assert.Equal(t, 2, m.Store.Paging().Page)

	m, _ = send(t, m, keyPress("+"))
	assert.Equal(t, 1, m.Store.Paging().Page)
	assert.Equal(t, 20, m.Store.Paging().Size)
	assert.Contains(t, m.View(), "Showing 1 to 20 of 25 entries")

	m, _ = send(t, m, keyPress("-"))
	assert.Equal(t, 10, m.Store.Paging().Size)
}

func TestEditSuccessRefetches(t *testing.T) {
	m := loadedWith(t, lobby("Active"))

	m, _ = send(t, m, keyPress("e"))
	require.True(t, m.Store.Edit().DialogOpen)
	assert.Contains(t, m.View(), "Update Status")

	m, _ = send(t, m, keyPress("right"))
	assert.Equal(t, directory.StatusInactive, m.Store.Edit().Pending)

	m, cmd := send(t, m, keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, editflow.Confirming, m.Store.Edit().Phase)

	// Input is blocked while saving
	m, _ = send(t, m, keyPress("esc"))
	assert.True(t, m.Store.Edit().DialogOpen)

	m, cmd = send(t, m, updateDoneMsg{request: editflow.Request{DeviceID: "1", Status: directory.StatusInactive}})
	require.NotNil(t, cmd, "success triggers a refetch")
	assert.False(t, m.Store.Edit().DialogOpen)
	assert.Equal(t, camview.Loading, m.Store.Load().Kind)

	m, _ = send(t, m, fetchDoneMsg{ticket: 2, devices: lobby("Inactive")})
	rows := m.Store.Screen().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, camview.ChipInactive, rows[0].Chip)
	assert.Contains(t, m.View(), "Inactive")
}

func TestEditFailureKeepsDialogOpen(t *testing.T) {
	m := loadedWith(t, lobby("Active"))
	m, _ = send(t, m, keyPress("enter"))
	m, _ = send(t, m, keyPress("tab"))
	m, _ = send(t, m, keyPress("enter"))

	m, cmd := send(t, m, updateDoneMsg{err: directory.NewHTTPError("update_status", 502, "")})
	assert.Nil(t, cmd, "no refetch after a failure")
	assert.True(t, m.Store.Edit().DialogOpen)
	assert.Equal(t, camview.Loaded, m.Store.Load().Kind)
	assert.Contains(t, m.View(), "Failed to update status")

	m, _ = send(t, m, keyPress("esc"))
	assert.False(t, m.Store.Edit().DialogOpen)
}

func TestStaleFetchIsDropped(t *testing.T) {
	m := loadedWith(t, lobby("Active"))
	m, _ = send(t, m, keyPress("r"))
	m, _ = send(t, m, fetchDoneMsg{ticket: 1, err: errors.New("late")})
	assert.Equal(t, camview.Loading, m.Store.Load().Kind)
}

func TestCursorMovesWithinPage(t *testing.T) {
	coll := directory.Collection{
		{ID: "1", Name: "Gate", Status: "Active"},
		{ID: "2", Name: "Dock", Status: "Active"},
	}
	m := loadedWith(t, coll)
	m, _ = send(t, m, keyPress("down"))
	m, _ = send(t, m, keyPress("down"))
	m, _ = send(t, m, keyPress("e"))
	assert.Equal(t, "2", m.Store.Edit().DeviceID)
}

func TestFitRows(t *testing.T) {
	rows := make([]camview.Row, 10)
	for i := range rows {
		rows[i].ID = fmt.Sprint(i)
	}

	got, cur := fitRows(rows, 0, 4)
	assert.Len(t, got, 4)
	assert.Equal(t, 0, cur)

	got, cur = fitRows(rows, 9, 4)
	assert.Equal(t, "6", got[0].ID)
	assert.Equal(t, 3, cur)

	got, cur = fitRows(rows, 5, 20)
	assert.Len(t, got, 10)
	assert.Equal(t, 5, cur)
}

func TestQuit(t *testing.T) {
	m := loadedWith(t, lobby("Active"))
	_, cmd := send(t, m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

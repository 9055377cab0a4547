package camview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/editflow"
	"github.com/muurk/camctl/internal/filter"
	"github.com/muurk/camctl/internal/pagination"
)

// fakeDirectory is an in-memory Directory. Updates are applied to the
// stored collection so a refetch sees them.
type fakeDirectory struct {
	devices   directory.Collection
	fetchErr  error
	updateErr error

	fetches int
	updates []editflow.Request
}

func (f *fakeDirectory) FetchAll(ctx context.Context) (directory.Collection, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.devices.Clone(), nil
}

func (f *fakeDirectory) UpdateStatus(ctx context.Context, id string, status directory.Status) error {
	f.updates = append(f.updates, editflow.Request{DeviceID: id, Status: status})
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.devices {
		if f.devices[i].ID == id {
			f.devices[i].Status = status
		}
	}
	return nil
}

func lobby() directory.Collection {
	return directory.Collection{
		{ID: "1", Name: "Lobby", Location: "HQ", Recorder: "R1", TaskCount: 2, Status: "Active"},
	}
}

func manyDevices(n int) directory.Collection {
	out := make(directory.Collection, n)
	for i := range out {
		out[i] = directory.Device{
			ID:       fmt.Sprintf("%d", i+1),
			Name:     fmt.Sprintf("Cam %02d", i+1),
			Location: "Warehouse",
			Status:   directory.StatusActive,
		}
	}
	return out
}

func loaded(t *testing.T, coll directory.Collection) *Store {
	t.Helper()
	s := NewStore()
	require.True(t, s.CompleteFetch(s.BeginFetch(), coll, nil))
	return s
}

func TestNewStoreIsIdle(t *testing.T) {
	s := NewStore()
	sc := s.Screen()
	assert.Equal(t, Idle, sc.Load.Kind)
	assert.True(t, sc.ShowSpinner())
	assert.False(t, sc.ShowTable())
	assert.Nil(t, sc.Rows)
	assert.Equal(t, pagination.DefaultPageSize, s.Paging().Size)
}

func TestNewStoreWithPageSize(t *testing.T) {
	assert.Equal(t, 50, NewStoreWithPageSize(50).Paging().Size)
	assert.Equal(t, pagination.DefaultPageSize, NewStoreWithPageSize(7).Paging().Size)
}

func TestLoadingWithholdsTable(t *testing.T) {
	s := NewStore()
	s.BeginFetch()

	sc := s.Screen()
	assert.Equal(t, Loading, sc.Load.Kind)
	assert.True(t, sc.ShowSpinner())
	assert.False(t, sc.ShowTable())
	assert.Nil(t, sc.Rows)
}

func TestFetchFailure(t *testing.T) {
	dir := &fakeDirectory{fetchErr: directory.NewHTTPError("fetch_all", http.StatusInternalServerError, "")}
	c := NewController(dir, nil)

	err := c.Load(context.Background())
	require.Error(t, err)

	sc := c.Store.Screen()
	assert.Equal(t, Failed, sc.Load.Kind)
	assert.False(t, sc.ShowSpinner(), "no loading indicator")
	assert.False(t, sc.ShowTable(), "table withheld")
	assert.Nil(t, sc.Rows)
	assert.Equal(t, "Failed to fetch data: Directory error (HTTP 500)", sc.Message)
	assert.Equal(t, err, sc.Load.Err)
}

func TestFetchSuccessResetsCriteriaAndPaging(t *testing.T) {
	s := loaded(t, manyDevices(45))
	require.NoError(t, s.SetPageSize(20))
	s.SetPage(2)
	s.SetLocation("ware")
	s.SetSearch("cam")

	s.CompleteFetch(s.BeginFetch(), manyDevices(45), nil)

	assert.True(t, s.Criteria().IsZero())
	assert.Equal(t, 1, s.Paging().Page)
	assert.Equal(t, 20, s.Paging().Size, "preferred size survives a reload")
}

func TestStaleFetchIgnored(t *testing.T) {
	s := NewStore()
	first := s.BeginFetch()
	second := s.BeginFetch()

	assert.True(t, s.CompleteFetch(second, lobby(), nil))
	assert.False(t, s.CompleteFetch(first, nil, errors.New("late failure")))

	assert.Equal(t, Loaded, s.Load().Kind)
	assert.Len(t, s.Devices(), 1)
}

func TestStaleFetchIgnoredWhileNewerInFlight(t *testing.T) {
	s := NewStore()
	first := s.BeginFetch()
	s.BeginFetch()

	assert.False(t, s.CompleteFetch(first, lobby(), nil))
	assert.Equal(t, Loading, s.Load().Kind)
	assert.Empty(t, s.Devices())
}

func TestSnapshotIsCopied(t *testing.T) {
	src := lobby()
	s := loaded(t, src)
	src[0].Name = "Changed"
	assert.Equal(t, "Lobby", s.Devices()[0].Name)
}

func TestEmptyCollectionRendersNoData(t *testing.T) {
	s := loaded(t, directory.Collection{})
	sc := s.Screen()
	assert.True(t, sc.ShowTable())
	assert.True(t, sc.Empty)
	assert.Empty(t, sc.Rows)
	assert.Equal(t, "Showing 0 to 0 of 0 entries", sc.Window.Summary())
}

func TestLobbySearchScenario(t *testing.T) {
	s := loaded(t, lobby())

	s.SetSearch("lobby")
	sc := s.Screen()
	require.Len(t, sc.Rows, 1)
	assert.False(t, sc.Empty)
	assert.Equal(t, Row{
		ID:       "1",
		Name:     "Lobby",
		Location: "HQ",
		Recorder: "R1",
		Tasks:    "2 Tasks",
		Status:   "Active",
		Chip:     ChipActive,
	}, sc.Rows[0])

	s.SetSearch("xyz")
	sc = s.Screen()
	assert.True(t, sc.Empty, "no data is distinct from failure")
	assert.Equal(t, Loaded, sc.Load.Kind)
	assert.Empty(t, sc.Rows)
}

func TestRowFormatting(t *testing.T) {
	row := NewRow(directory.Device{ID: "9", Status: "inactive"})
	assert.Equal(t, NotAvailable, row.Name)
	assert.Equal(t, NotAvailable, row.Location)
	assert.Equal(t, NotAvailable, row.Recorder)
	assert.Equal(t, "0 Tasks", row.Tasks)
	assert.Equal(t, "Inactive", row.Status)
	assert.Equal(t, ChipInactive, row.Chip)

	odd := NewRow(directory.Device{ID: "10", Status: "Maintenance"})
	assert.Equal(t, "Maintenance", odd.Status)
	assert.Equal(t, ChipInactive, odd.Chip)

	assert.Equal(t, NotAvailable, NewRow(directory.Device{}).Status)
	assert.Equal(t, ChipActive, ChipFor("ACTIVE"))
}

func TestFilterChangeReclampsPage(t *testing.T) {
	coll := manyDevices(25)
	coll[24].Location = "Roof"
	s := loaded(t, coll)

	s.SetPage(3)
	require.Equal(t, 3, s.Paging().Page)

	s.SetLocation("roof")
	assert.Equal(t, 1, s.Paging().Page)

	sc := s.Screen()
	require.Len(t, sc.Rows, 1)
	assert.Equal(t, "25", sc.Rows[0].ID)
}

func TestPagingOperations(t *testing.T) {
	s := loaded(t, manyDevices(25))

	s.NextPage()
	s.NextPage()
	s.NextPage()
	assert.Equal(t, 3, s.Paging().Page)

	rows, w := s.Visible()
	assert.Len(t, rows, 5)
	assert.Equal(t, "Showing 21 to 25 of 25 entries", w.Summary())

	s.PrevPage()
	assert.Equal(t, 2, s.Paging().Page)

	s.CyclePageSize(1)
	assert.Equal(t, pagination.State{Page: 1, Size: 20}, s.Paging())
	s.CyclePageSize(-1)
	assert.Equal(t, 10, s.Paging().Size)

	assert.ErrorIs(t, s.SetPageSize(15), pagination.ErrInvalidPageSize)
	assert.Equal(t, 10, s.Paging().Size)
}

func TestOpenEditUnknownDevice(t *testing.T) {
	s := loaded(t, lobby())
	err := s.OpenEdit("nope")
	assert.ErrorIs(t, err, ErrUnknownDevice)
	assert.False(t, s.Screen().Dialog.Open)

	assert.ErrorIs(t, NewStore().OpenEdit("1"), ErrUnknownDevice, "nothing loaded")
}

func TestOpenEditNoStacking(t *testing.T) {
	coll := directory.Collection{
		{ID: "A", Name: "Gate", Status: "Active"},
		{ID: "B", Name: "Dock", Status: "Inactive"},
	}
	s := loaded(t, coll)

	require.NoError(t, s.OpenEdit("A"))
	require.NoError(t, s.SetPendingStatus(directory.StatusInactive))
	require.NoError(t, s.OpenEdit("B"))

	dlg := s.Screen().Dialog
	assert.True(t, dlg.Open)
	assert.Equal(t, "B", dlg.DeviceID)
	assert.Equal(t, "Dock", dlg.Device)
	assert.Equal(t, directory.StatusInactive, dlg.Pending)
}

func TestConfirmWithoutPendingIsNoop(t *testing.T) {
	dir := &fakeDirectory{devices: lobby()}
	c := NewController(dir, nil)
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.Store.OpenEdit("1"))
	require.NoError(t, c.Store.SetPendingStatus(""))

	err := c.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNothingToConfirm)
	assert.Empty(t, dir.updates, "no remote call")
	assert.Equal(t, editflow.Editing, c.Store.Edit().Phase)
}

func TestUpdateSuccessRefetches(t *testing.T) {
	dir := &fakeDirectory{devices: lobby()}
	c := NewController(dir, nil)
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, ChipActive, c.Store.Screen().Rows[0].Chip)

	require.NoError(t, c.Store.OpenEdit("1"))
	require.NoError(t, c.Store.SetPendingStatus(directory.StatusInactive))
	require.NoError(t, c.Confirm(context.Background()))

	assert.Equal(t, []editflow.Request{{DeviceID: "1", Status: directory.StatusInactive}}, dir.updates)
	assert.Equal(t, 2, dir.fetches, "update forces a refetch")

	sc := c.Store.Screen()
	assert.False(t, sc.Dialog.Open)
	require.Len(t, sc.Rows, 1)
	assert.Equal(t, "Inactive", sc.Rows[0].Status)
	assert.Equal(t, ChipInactive, sc.Rows[0].Chip)
}

func TestUpdateFailureKeepsDialogAndData(t *testing.T) {
	dir := &fakeDirectory{
		devices:   lobby(),
		updateErr: directory.NewHTTPError("update_status", http.StatusBadGateway, ""),
	}
	c := NewController(dir, nil)
	require.NoError(t, c.Load(context.Background()))
	require.NoError(t, c.Store.OpenEdit("1"))
	c.Store.TogglePendingStatus()

	err := c.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, dir.fetches, "no refetch after a failed update")

	sc := c.Store.Screen()
	assert.Equal(t, Loaded, sc.Load.Kind, "load state untouched")
	assert.Len(t, sc.Rows, 1, "last snapshot still visible")
	assert.True(t, sc.Dialog.Open)
	assert.False(t, sc.Dialog.Saving)
	assert.Equal(t, directory.StatusInactive, sc.Dialog.Pending)
	assert.Equal(t, "Directory error (HTTP 502)", sc.Dialog.Error)
	assert.Equal(t, "Failed to update status: Directory error (HTTP 502)", sc.Notice)

	// The next edit action clears the notice
	c.Store.TogglePendingStatus()
	assert.Empty(t, c.Store.Notice())
}

func TestDialogSavingWhileInFlight(t *testing.T) {
	s := loaded(t, lobby())
	require.NoError(t, s.OpenEdit("1"))
	_, ok := s.ConfirmEdit()
	require.True(t, ok)

	assert.True(t, s.Screen().Dialog.Saving)
	assert.ErrorIs(t, s.OpenEdit("1"), ErrUpdateInFlight)
	assert.False(t, s.CancelEdit())
}

func TestCancelEdit(t *testing.T) {
	s := loaded(t, lobby())
	require.NoError(t, s.OpenEdit("1"))
	assert.True(t, s.CancelEdit())
	assert.False(t, s.Screen().Dialog.Open)
}

func TestReloadDropsEditForVanishedDevice(t *testing.T) {
	s := loaded(t, lobby())
	require.NoError(t, s.OpenEdit("1"))

	s.CompleteFetch(s.BeginFetch(), directory.Collection{{ID: "2"}}, nil)
	assert.False(t, s.Screen().Dialog.Open)
}

func TestSetStatus(t *testing.T) {
	dir := &fakeDirectory{devices: lobby()}
	c := NewController(dir, nil)
	require.NoError(t, c.Load(context.Background()))

	d, err := c.SetStatus(context.Background(), "1", "inactive")
	require.NoError(t, err)
	assert.Equal(t, directory.StatusInactive, d.Status)

	_, err = c.SetStatus(context.Background(), "1", "paused")
	assert.True(t, directory.IsValidationError(err))
	assert.False(t, c.Store.Screen().Dialog.Open)

	_, err = c.SetStatus(context.Background(), "42", directory.StatusActive)
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

func TestUpdateAcceptedThenReloadFails(t *testing.T) {
	dir := &fakeDirectory{devices: lobby()}
	c := NewController(dir, nil)
	require.NoError(t, c.Load(context.Background()))

	reloadErr := directory.NewHTTPError("fetch_all", http.StatusInternalServerError, "")
	dir.fetchErr = reloadErr

	d, err := c.SetStatus(context.Background(), "1", "inactive")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRefetchFailed)
	assert.ErrorIs(t, err, reloadErr)
	assert.Len(t, dir.updates, 1)

	// The device reflects what was sent
	assert.Equal(t, "Lobby", d.Name)
	assert.Equal(t, directory.StatusInactive, d.Status)

	// The edit completed; only the view failed to reload
	sc := c.Store.Screen()
	assert.False(t, sc.Dialog.Open)
	assert.Empty(t, c.Store.Notice())
	assert.Equal(t, Failed, sc.Load.Kind)
	assert.Contains(t, sc.Message, "Failed to fetch data")
}

func TestConfirmUpdateFailureIsNotRefetchFailure(t *testing.T) {
	dir := &fakeDirectory{devices: lobby(), updateErr: errors.New("boom")}
	c := NewController(dir, nil)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.SetStatus(context.Background(), "1", directory.StatusInactive)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefetchFailed)
	assert.Equal(t, 1, dir.fetches)
}

func TestSetCriteria(t *testing.T) {
	s := loaded(t, lobby())
	s.SetCriteria(filter.Criteria{Status: " active "})
	assert.Len(t, s.Screen().Rows, 1)
	s.SetStatusFilter("inactive")
	assert.True(t, s.Screen().Empty)
}

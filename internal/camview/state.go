package camview

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/editflow"
	"github.com/muurk/camctl/internal/filter"
	"github.com/muurk/camctl/internal/logging"
	"github.com/muurk/camctl/internal/pagination"
)

var (
	// ErrUnknownDevice is returned when editing an id that is not in the
	// current snapshot.
	ErrUnknownDevice = errors.New("device not found in the loaded directory")

	// ErrUpdateInFlight is returned when an edit is attempted while an
	// update request is still pending.
	ErrUpdateInFlight = errors.New("a status update is already in progress")

	// ErrNothingToConfirm is returned when confirm is requested without a
	// selected device and status.
	ErrNothingToConfirm = errors.New("select a status before saving")

	// ErrRefetchFailed wraps a reload failure that followed an accepted
	// update. The remote status has changed; only the local view is stale.
	ErrRefetchFailed = errors.New("status updated but reload failed")
)

const (
	fetchFailedPrefix  = "Failed to fetch data"
	updateFailedPrefix = "Failed to update status"
)

// LoadKind is the tag of LoadState
type LoadKind int

const (
	Idle LoadKind = iota
	Loading
	Loaded
	Failed
)

func (k LoadKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("LoadKind(%d)", int(k))
	}
}

// LoadState is the lifecycle of the directory snapshot. Message and Err are
// only set when Kind is Failed.
type LoadState struct {
	Kind    LoadKind
	Message string
	Err     error
}

// Ticket identifies one fetch. Only the newest ticket may complete.
type Ticket uint64

// Store is the state container for the camera view. Every method is a
// synchronous transition; remote calls happen outside and report back
// through CompleteFetch and CompleteUpdate.
//
// Store is not safe for concurrent use.
type Store struct {
	load     LoadState
	latest   Ticket
	devices  directory.Collection
	criteria filter.Criteria
	paging   pagination.State
	edit     editflow.Machine
	notice   string
}

// NewStore returns an Idle store with default criteria and paging
func NewStore() *Store {
	return &Store{paging: pagination.New()}
}

// NewStoreWithPageSize is NewStore with a preferred page size. Sizes not in
// pagination.PageSizes fall back to the default.
func NewStoreWithPageSize(size int) *Store {
	s := NewStore()
	if st, err := s.paging.SetSize(size); err == nil {
		s.paging = st
	}
	return s
}

// Load returns the lifecycle state
func (s *Store) Load() LoadState {
	return s.load
}

// Devices returns the loaded snapshot. The caller must not modify it.
func (s *Store) Devices() directory.Collection {
	return s.devices
}

// Criteria returns the active filter
func (s *Store) Criteria() filter.Criteria {
	return s.criteria
}

// Paging returns the pagination state
func (s *Store) Paging() pagination.State {
	return s.paging
}

// Edit returns the edit workflow state
func (s *Store) Edit() editflow.Snapshot {
	return s.edit.Snapshot()
}

// Notice returns the last non-fatal error message, if any
func (s *Store) Notice() string {
	return s.notice
}

// Filtered returns the loaded devices that pass the active criteria
func (s *Store) Filtered() directory.Collection {
	return filter.Apply(s.devices, s.criteria)
}

// Visible returns the filtered devices on the current page and the window
// they were cut from.
func (s *Store) Visible() (directory.Collection, pagination.Window) {
	filtered := s.Filtered()
	w := s.paging.Window(len(filtered))
	return pagination.Slice(filtered, w), w
}

// BeginFetch moves to Loading and returns the ticket the result must carry.
// A newer BeginFetch supersedes any fetch still in flight.
func (s *Store) BeginFetch() Ticket {
	s.latest++
	s.load = LoadState{Kind: Loading}
	logging.LogTransition("fetch_begin", zap.Uint64("ticket", uint64(s.latest)))
	return s.latest
}

// CompleteFetch applies a fetch result. It reports false and changes
// nothing when t has been superseded.
func (s *Store) CompleteFetch(t Ticket, coll directory.Collection, err error) bool {
	if t != s.latest {
		logging.LogTransition("fetch_stale",
			zap.Uint64("ticket", uint64(t)),
			zap.Uint64("latest", uint64(s.latest)))
		return false
	}

	if err != nil {
		s.load = LoadState{
			Kind:    Failed,
			Message: fmt.Sprintf("%s: %s", fetchFailedPrefix, directory.ShortMessage(err)),
			Err:     err,
		}
		s.devices = nil
		logging.LogTransition("fetch_failed", zap.Uint64("ticket", uint64(t)), zap.Error(err))
		return true
	}

	s.devices = coll.Clone()
	if s.devices == nil {
		s.devices = directory.Collection{}
	}
	s.load = LoadState{Kind: Loaded}
	s.criteria = filter.Criteria{}
	s.paging = pagination.State{Page: 1, Size: s.paging.Size}.Clamp(len(s.devices))
	s.notice = ""

	// An edit opened before the reload survives only if its device does
	if snap := s.edit.Snapshot(); snap.Phase == editflow.Editing {
		if _, ok := s.devices.Find(snap.DeviceID); !ok {
			s.edit.Cancel()
		}
	}

	logging.LogTransition("fetch_loaded",
		zap.Uint64("ticket", uint64(t)),
		zap.Int("devices", len(s.devices)))
	return true
}

// SetCriteria replaces all three filter fields at once
func (s *Store) SetCriteria(c filter.Criteria) {
	s.criteria = c
	s.reclamp()
}

// SetLocation sets the location filter
func (s *Store) SetLocation(v string) {
	s.criteria.Location = v
	s.reclamp()
}

// SetStatusFilter sets the status filter
func (s *Store) SetStatusFilter(v string) {
	s.criteria.Status = v
	s.reclamp()
}

// SetSearch sets the free-text search
func (s *Store) SetSearch(v string) {
	s.criteria.Search = v
	s.reclamp()
}

// SetPage moves to page n, clamped to the filtered view
func (s *Store) SetPage(n int) {
	s.paging = s.paging.SetPage(n, len(s.Filtered()))
}

// NextPage advances one page if there is one
func (s *Store) NextPage() {
	s.paging = s.paging.Next(len(s.Filtered()))
}

// PrevPage goes back one page if there is one
func (s *Store) PrevPage() {
	s.paging = s.paging.Prev(len(s.Filtered()))
}

// SetPageSize changes the page size and returns to page 1
func (s *Store) SetPageSize(n int) error {
	st, err := s.paging.SetSize(n)
	if err != nil {
		return err
	}
	s.paging = st
	s.reclamp()
	return nil
}

// CyclePageSize steps through pagination.PageSizes, forward when delta is
// positive and backward otherwise.
func (s *Store) CyclePageSize(delta int) {
	if delta >= 0 {
		s.paging = s.paging.NextSize()
	} else {
		s.paging = s.paging.PrevSize()
	}
	s.reclamp()
}

func (s *Store) reclamp() {
	s.paging = s.paging.Clamp(len(s.Filtered()))
}

// OpenEdit selects a device from the snapshot for editing
func (s *Store) OpenEdit(id string) error {
	if s.edit.Phase() == editflow.Confirming {
		return ErrUpdateInFlight
	}
	d, ok := s.devices.Find(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDevice, id)
	}
	s.edit.Open(d.ID, d.Status)
	s.notice = ""
	logging.LogTransition("edit_open", zap.String("device_id", d.ID))
	return nil
}

// SetPendingStatus chooses the status to save; "" clears the choice
func (s *Store) SetPendingStatus(status directory.Status) error {
	if err := s.edit.SetPending(status); err != nil {
		return err
	}
	s.notice = ""
	return nil
}

// TogglePendingStatus flips the pending status between Active and Inactive
func (s *Store) TogglePendingStatus() {
	s.edit.TogglePending()
	s.notice = ""
}

// CancelEdit closes the dialog without saving
func (s *Store) CancelEdit() bool {
	if !s.edit.Cancel() {
		return false
	}
	s.notice = ""
	logging.LogTransition("edit_cancel")
	return true
}

// ConfirmEdit starts the update. ok is false when there is nothing to save.
func (s *Store) ConfirmEdit() (editflow.Request, bool) {
	req, ok := s.edit.Confirm()
	if ok {
		logging.LogTransition("edit_confirm",
			zap.String("device_id", req.DeviceID),
			zap.String("status", string(req.Status)))
	}
	return req, ok
}

// CompleteUpdate applies the outcome of the update started by ConfirmEdit.
// On success the dialog closes and the caller must refetch; the local
// snapshot is never patched. On failure the dialog stays open, a notice is
// set and LoadState is untouched.
func (s *Store) CompleteUpdate(err error) (refetch bool) {
	if s.edit.Phase() != editflow.Confirming {
		return false
	}
	if err != nil {
		s.edit.Failed(err)
		s.notice = fmt.Sprintf("%s: %s", updateFailedPrefix, directory.ShortMessage(err))
		logging.LogTransition("edit_failed", zap.Error(err))
		return false
	}
	s.edit.Succeeded()
	s.notice = ""
	logging.LogTransition("edit_succeeded")
	return true
}

package camview

import (
	"fmt"
	"strings"

	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/editflow"
	"github.com/muurk/camctl/internal/filter"
	"github.com/muurk/camctl/internal/pagination"
)

// NotAvailable is shown in place of absent text fields
const NotAvailable = "N/A"

// Chip selects the visual treatment of a status cell
type Chip int

const (
	ChipInactive Chip = iota
	ChipActive
)

// ChipFor returns ChipActive for an "active" status in any case, and
// ChipInactive for everything else.
func ChipFor(s directory.Status) Chip {
	if s.IsActive() {
		return ChipActive
	}
	return ChipInactive
}

// Text returns s, or NotAvailable when s is blank
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// Tasks formats a task count
func Tasks(n int) string {
	return fmt.Sprintf("%d Tasks", n)
}

// StatusLabel is the display text of a status: the canonical spelling when
// known, the raw value otherwise.
func StatusLabel(s directory.Status) string {
	if parsed, err := directory.ParseStatus(string(s)); err == nil {
		return string(parsed)
	}
	return Text(string(s))
}

// Row is one rendered device
type Row struct {
	ID       string
	Name     string
	Location string
	Recorder string
	Tasks    string
	Status   string
	Chip     Chip
}

// NewRow formats d for display
func NewRow(d directory.Device) Row {
	return Row{
		ID:       d.ID,
		Name:     Text(d.Name),
		Location: Text(d.Location),
		Recorder: Text(d.Recorder),
		Tasks:    Tasks(d.TaskCount),
		Status:   StatusLabel(d.Status),
		Chip:     ChipFor(d.Status),
	}
}

// Dialog is the "Update Status" modal
type Dialog struct {
	Open     bool
	Saving   bool
	DeviceID string
	Device   string // display name
	Current  directory.Status
	Pending  directory.Status // empty renders as "Select status"
	Error    string
}

// Screen is everything a renderer needs for one frame
type Screen struct {
	Load     LoadState
	Message  string // set while Failed
	Rows     []Row  // only populated while Loaded
	Empty    bool   // Loaded but nothing passes the filter
	Window   pagination.Window
	Dialog   Dialog
	Notice   string
	Criteria filter.Criteria
}

// ShowSpinner reports whether a loading indicator is due
func (sc Screen) ShowSpinner() bool {
	return sc.Load.Kind == Loading || sc.Load.Kind == Idle
}

// ShowTable reports whether the device table is due
func (sc Screen) ShowTable() bool {
	return sc.Load.Kind == Loaded
}

// Screen derives the render model from the current state
func (s *Store) Screen() Screen {
	sc := Screen{
		Load:     s.load,
		Notice:   s.notice,
		Criteria: s.criteria,
		Dialog:   s.dialog(),
	}

	switch s.load.Kind {
	case Failed:
		sc.Message = s.load.Message
	case Loaded:
		visible, w := s.Visible()
		sc.Window = w
		sc.Empty = w.Total == 0
		sc.Rows = make([]Row, 0, len(visible))
		for _, d := range visible {
			sc.Rows = append(sc.Rows, NewRow(d))
		}
	}
	return sc
}

func (s *Store) dialog() Dialog {
	snap := s.edit.Snapshot()
	if !snap.DialogOpen {
		return Dialog{}
	}

	dlg := Dialog{
		Open:     true,
		Saving:   snap.Phase == editflow.Confirming,
		DeviceID: snap.DeviceID,
		Device:   snap.DeviceID,
		Current:  snap.Current,
		Pending:  snap.Pending,
	}
	if d, ok := s.devices.Find(snap.DeviceID); ok {
		dlg.Device = Text(d.Name)
	}
	if snap.Err != nil {
		dlg.Error = directory.ShortMessage(snap.Err)
	}
	return dlg
}

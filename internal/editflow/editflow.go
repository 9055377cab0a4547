package editflow

import (
	"fmt"

	"github.com/muurk/camctl/internal/directory"
)

// Phase is the position of the edit workflow
type Phase int

const (
	// Idle means no device is selected and the dialog is closed
	Idle Phase = iota
	// Editing means a device is selected and the dialog is open
	Editing
	// Confirming means an update request is in flight
	Confirming
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Confirming:
		return "confirming"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Request is the remote update a confirmed edit asks for
type Request struct {
	DeviceID string
	Status   directory.Status
}

// Snapshot is a read-only view of the machine for rendering
type Snapshot struct {
	Phase      Phase
	DeviceID   string
	Current    directory.Status // status when the dialog was opened
	Pending    directory.Status // empty means "Select status"
	DialogOpen bool
	Err        error // last update failure, cleared on the next edit action
}

// Machine tracks the single device being edited. At most one device is in
// edit at a time: opening another replaces the selection.
//
// The zero value is an idle machine.
type Machine struct {
	phase    Phase
	deviceID string
	current  directory.Status
	pending  directory.Status
	err      error
}

// Phase returns the current phase
func (m *Machine) Phase() Phase {
	return m.phase
}

// DialogOpen reports whether the edit dialog is visible
func (m *Machine) DialogOpen() bool {
	return m.phase != Idle
}

// Err returns the last update failure, if any
func (m *Machine) Err() error {
	return m.err
}

// Snapshot returns the current state
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Phase:      m.phase,
		DeviceID:   m.deviceID,
		Current:    m.current,
		Pending:    m.pending,
		DialogOpen: m.DialogOpen(),
		Err:        m.err,
	}
}

// Open selects a device for editing, seeding the pending status with its
// current status. Any earlier selection is discarded. Ignored while an
// update is in flight.
func (m *Machine) Open(deviceID string, current directory.Status) bool {
	if m.phase == Confirming {
		return false
	}

	pending := directory.Status("")
	if parsed, err := directory.ParseStatus(string(current)); err == nil {
		pending = parsed
	}

	*m = Machine{
		phase:    Editing,
		deviceID: deviceID,
		current:  current,
		pending:  pending,
	}
	return true
}

// SetPending chooses the status to apply. Only Active and Inactive are
// accepted, and only while Editing. An empty status clears the choice.
func (m *Machine) SetPending(status directory.Status) error {
	if m.phase != Editing {
		return fmt.Errorf("cannot change status while %s", m.phase)
	}
	if status == "" {
		m.pending = ""
		m.err = nil
		return nil
	}
	parsed, err := directory.ParseStatus(string(status))
	if err != nil {
		return err
	}
	m.pending = parsed
	m.err = nil
	return nil
}

// TogglePending flips between Active and Inactive. An unset choice becomes
// Active.
func (m *Machine) TogglePending() {
	if m.phase != Editing {
		return
	}
	if m.pending == directory.StatusActive {
		m.pending = directory.StatusInactive
	} else {
		m.pending = directory.StatusActive
	}
	m.err = nil
}

// Confirm moves Editing to Confirming and returns the update to issue.
// With no device or no pending status it is a no-op and returns false.
func (m *Machine) Confirm() (Request, bool) {
	if m.phase != Editing || m.deviceID == "" || m.pending == "" {
		return Request{}, false
	}
	m.phase = Confirming
	m.err = nil
	return Request{DeviceID: m.deviceID, Status: m.pending}, true
}

// Succeeded closes the dialog after the remote update was accepted.
func (m *Machine) Succeeded() {
	if m.phase != Confirming {
		return
	}
	*m = Machine{}
}

// Failed returns to Editing with the dialog still open so the operator can
// resubmit or cancel. The pending choice is kept.
func (m *Machine) Failed(err error) {
	if m.phase != Confirming {
		return
	}
	m.phase = Editing
	m.err = err
}

// Cancel discards the selection without any remote call. Ignored while an
// update is in flight.
func (m *Machine) Cancel() bool {
	if m.phase == Confirming {
		return false
	}
	*m = Machine{}
	return true
}

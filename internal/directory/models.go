package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is a camera's operational status as reported by the directory.
// Input is case-insensitive; compare with Normalize or EqualFold.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Statuses lists the values an operator may assign, in display order.
var Statuses = []Status{StatusActive, StatusInactive}

// ParseStatus maps any casing of "active"/"inactive" to its canonical value.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	case "":
		return "", NewValidationError("status is required")
	default:
		return "", NewValidationError(fmt.Sprintf("unknown status %q (want Active or Inactive)", s))
	}
}

// Normalize returns the lower-cased, trimmed form used for comparisons.
func (s Status) Normalize() string {
	return strings.ToLower(strings.TrimSpace(string(s)))
}

// EqualFold reports whether two statuses are equal ignoring case.
func (s Status) EqualFold(other Status) bool {
	return s.Normalize() == other.Normalize()
}

// IsActive reports whether the status renders with the "active" chip.
// Anything that is not "active" renders as inactive.
func (s Status) IsActive() bool {
	return s.Normalize() == "active"
}

// Device is one camera in the remote directory. Values are snapshots: the
// local copy only changes when the whole collection is refetched.
type Device struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	Location  string `json:"location,omitempty"`
	Recorder  string `json:"recorder,omitempty"`
	TaskCount int    `json:"tasks"`
	Status    Status `json:"status"`
}

// wireDevice is the permissive decoding shape. The directory has shipped
// both "id" and "_id", and both "tasks" and "taskCount".
type wireDevice struct {
	ID        flexString `json:"id"`
	LegacyID  flexString `json:"_id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Recorder  string     `json:"recorder"`
	Tasks     *int       `json:"tasks"`
	TaskCount *int       `json:"taskCount"`
	Status    string     `json:"status"`
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Device) UnmarshalJSON(data []byte) error {
	var w wireDevice
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := string(w.ID)
	if id == "" {
		id = string(w.LegacyID)
	}

	tasks := 0
	switch {
	case w.Tasks != nil:
		tasks = *w.Tasks
	case w.TaskCount != nil:
		tasks = *w.TaskCount
	}
	if tasks < 0 {
		tasks = 0
	}

	*d = Device{
		ID:        id,
		Name:      w.Name,
		Location:  w.Location,
		Recorder:  w.Recorder,
		TaskCount: tasks,
		Status:    Status(strings.TrimSpace(w.Status)),
	}
	return nil
}

// flexString accepts a JSON string or number; ids are opaque to us.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// Collection is the ordered device list exactly as the directory returned it.
type Collection []Device

// Find returns the device with the given id.
func (c Collection) Find(id string) (Device, bool) {
	for _, d := range c {
		if d.ID == id {
			return d, true
		}
	}
	return Device{}, false
}

// Clone returns an independent copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// fetchResponse is the GET body: { "data": [ ... ] }. Data is a pointer so
// a missing key can be told apart from an empty array.
type fetchResponse struct {
	Data *Collection `json:"data"`
}

// statusUpdate is the PUT body: { "status": "...", "id": "..." }
type statusUpdate struct {
	Status Status `json:"status"`
	ID     string `json:"id"`
}

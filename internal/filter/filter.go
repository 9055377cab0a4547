package filter

import (
	"strings"

	"github.com/muurk/camctl/internal/directory"
)

// Criteria are the three independent constraints an operator can set.
// An empty field places no constraint.
type Criteria struct {
	Location string // case-insensitive substring of Device.Location
	Status   string // case-insensitive exact match on Device.Status
	Search   string // case-insensitive substring of name, location or recorder
}

// IsZero reports whether no constraint is set
func (c Criteria) IsZero() bool {
	return c.Location == "" && c.Status == "" && c.Search == ""
}

// Matches reports whether d passes every constraint in c
func Matches(d directory.Device, c Criteria) bool {
	if c.Location != "" && !containsFold(d.Location, c.Location) {
		return false
	}

	if status := strings.TrimSpace(c.Status); status != "" &&
		!strings.EqualFold(strings.TrimSpace(string(d.Status)), status) {
		return false
	}

	if c.Search != "" &&
		!containsFold(d.Name, c.Search) &&
		!containsFold(d.Location, c.Search) &&
		!containsFold(d.Recorder, c.Search) {
		return false
	}

	return true
}

// Apply returns the devices of src that match c, in source order.
// The result never aliases src and is never nil.
func Apply(src directory.Collection, c Criteria) directory.Collection {
	out := make(directory.Collection, 0, len(src))
	for _, d := range src {
		if Matches(d, c) {
			out = append(out, d)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

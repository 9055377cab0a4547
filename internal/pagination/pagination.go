package pagination

import (
	"errors"
	"fmt"
)

// PageSizes are the page sizes an operator may choose, smallest first.
var PageSizes = []int{10, 20, 50, 100}

// DefaultPageSize is used until the operator picks another size.
const DefaultPageSize = 10

// ErrInvalidPageSize is returned for sizes outside PageSizes.
var ErrInvalidPageSize = errors.New("invalid page size")

// State is the operator's paging position. Page is 1-based.
type State struct {
	Page int
	Size int
}

// New returns page 1 at the default size.
func New() State {
	return State{Page: 1, Size: DefaultPageSize}
}

// ValidSize reports whether n is one of PageSizes.
func ValidSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// TotalPages returns ceil(total/size), and 0 for an empty list.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// SetSize changes the page size and always returns to page 1.
func (s State) SetSize(n int) (State, error) {
	if !ValidSize(n) {
		return s, fmt.Errorf("%w: %d (want one of %v)", ErrInvalidPageSize, n, PageSizes)
	}
	return State{Page: 1, Size: n}, nil
}

// SetPage moves to page n, clamped into [1, max(1, TotalPages)]. A request
// past the end lands on the last page.
func (s State) SetPage(n, total int) State {
	last := TotalPages(total, s.Size)
	if n > last {
		n = last
	}
	s.Page = n
	return s.Clamp(total)
}

// Clamp pulls Page back into range after the total changed. A page that
// fell off the end resets to 1.
func (s State) Clamp(total int) State {
	if !ValidSize(s.Size) {
		s.Size = DefaultPageSize
	}
	last := TotalPages(total, s.Size)
	if last < 1 {
		last = 1
	}
	switch {
	case s.Page < 1:
		s.Page = 1
	case s.Page > last:
		s.Page = 1
	}
	return s
}

// Next advances one page, staying on the last page.
func (s State) Next(total int) State {
	if s.Page < TotalPages(total, s.Size) {
		s.Page++
	}
	return s.Clamp(total)
}

// Prev goes back one page, staying on page 1.
func (s State) Prev(total int) State {
	if s.Page > 1 {
		s.Page--
	}
	return s.Clamp(total)
}

// NextSize cycles to the next larger page size, wrapping around.
func (s State) NextSize() State {
	return s.stepSize(1)
}

// PrevSize cycles to the next smaller page size, wrapping around.
func (s State) PrevSize() State {
	return s.stepSize(-1)
}

func (s State) stepSize(delta int) State {
	idx := 0
	for i, size := range PageSizes {
		if size == s.Size {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(PageSizes)) % len(PageSizes)
	next, _ := s.SetSize(PageSizes[idx])
	return next
}

// Window is the visible slice of a filtered view. Start and End are 0-based
// half-open offsets into the filtered view.
type Window struct {
	Page       int
	Size       int
	Total      int
	TotalPages int
	Start      int
	End        int
}

// Window computes the visible bounds for total items.
func (s State) Window(total int) Window {
	s = s.Clamp(total)
	if total < 0 {
		total = 0
	}

	start := (s.Page - 1) * s.Size
	if start > total {
		start = total
	}
	end := start + s.Size
	if end > total {
		end = total
	}

	return Window{
		Page:       s.Page,
		Size:       s.Size,
		Total:      total,
		TotalPages: TotalPages(total, s.Size),
		Start:      start,
		End:        end,
	}
}

// Count is the number of visible items.
func (w Window) Count() int {
	return w.End - w.Start
}

// Summary renders the paginator total, e.g. "Showing 11 to 20 of 25 entries".
func (w Window) Summary() string {
	if w.Total == 0 {
		return "Showing 0 to 0 of 0 entries"
	}
	return fmt.Sprintf("Showing %d to %d of %d entries", w.Start+1, w.End, w.Total)
}

// Slice returns the window's items. The result shares items' backing array.
func Slice[T any](items []T, w Window) []T {
	start, end := w.Start, w.End
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}

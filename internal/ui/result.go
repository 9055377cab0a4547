package ui

import (
	"fmt"
	"strings"

	"github.com/muurk/camctl/internal/directory"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Detail is one key-value line in a result box
type Detail struct {
	Key   string
	Value string
}

// Result represents a result box (success, failure, or warning)
type Result struct {
	Type            ResultType
	Title           string   // e.g. "Status updated"
	Details         []Detail // rendered in order
	Error           error    // failure results only
	Troubleshooting []string // failure results only
	Width           int
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box. Directory errors get the
// client's troubleshooting hints.
func NewFailureResult(title string, err error) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: directory.Hint(err),
		Width:           GetTerminalWidth(),
	}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultWarning,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a detail line
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{""}
	switch r.Type {
	case ResultFailure:
		lines = append(lines, ErrorTitleStyle.Render(fmt.Sprintf("   %s  FAILED  ─  %s", FailureMarker, r.Title)), "")
		if r.Error != nil {
			lines = append(lines, ErrorMessageStyle.Render("   Error: "+directory.ShortMessage(r.Error)), "")
		}
		if len(r.Troubleshooting) > 0 {
			lines = append(lines, r.renderTroubleshootingBox(width), "")
		}
		return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))

	case ResultWarning:
		lines = append(lines, WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, r.Title)), "")
		lines = append(lines, r.detailLines()...)
		lines = append(lines, "")
		return WarningBoxStyle(width).Render(strings.Join(lines, "\n"))

	default:
		lines = append(lines, SuccessTitleStyle.Render(fmt.Sprintf("   %s  SUCCESS  ─  %s", SuccessMarker, r.Title)), "")
		lines = append(lines, r.detailLines()...)
		lines = append(lines, "")
		return SuccessBoxStyle(width).Render(strings.Join(lines, "\n"))
	}
}

func (r *Result) detailLines() []string {
	out := make([]string, 0, len(r.Details))
	for _, d := range r.Details {
		out = append(out, ResultKeyStyle.Render("   "+d.Key+":")+" "+ResultValueStyle.Render(d.Value))
	}
	return out
}

func (r *Result) renderTroubleshootingBox(width int) string {
	lines := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
	for _, tip := range r.Troubleshooting {
		lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
	}
	return TroubleshootingBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

package ui

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muurk/camctl/internal/camview"
	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/pagination"
)

func screen(rows ...camview.Row) camview.Screen {
	w := pagination.New().Window(len(rows))
	return camview.Screen{
		Load:   camview.LoadState{Kind: camview.Loaded},
		Rows:   rows,
		Empty:  len(rows) == 0,
		Window: w,
	}
}

func TestClampWidth(t *testing.T) {
	assert.Equal(t, MinTerminalWidth, clampWidth(10))
	assert.Equal(t, 80, clampWidth(80))
	assert.Equal(t, MaxContentWidth, clampWidth(500))
}

func TestRenderDeviceTable(t *testing.T) {
	sc := screen(
		camview.NewRow(directory.Device{ID: "1", Name: "Lobby", Location: "HQ", Recorder: "R1", TaskCount: 2, Status: "Active"}),
		camview.NewRow(directory.Device{ID: "2", Name: "Dock", Status: "inactive"}),
	)

	out := RenderDeviceTable(sc, 100)
	for _, want := range []string{"Name", "Location", "Recorder", "Tasks", "Status", "Lobby", "2 Tasks", "N/A", "Inactive", "Showing 1 to 2 of 2 entries"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDeviceTableEmpty(t *testing.T) {
	out := RenderDeviceTable(screen(), 80)
	assert.Contains(t, out, NoDataMessage)
	assert.Contains(t, out, "Showing 0 to 0 of 0 entries")
}

func TestRenderCompact(t *testing.T) {
	sc := screen(camview.NewRow(directory.Device{ID: "1", Name: "Lobby", Status: "Active"}))
	out := RenderCompact(sc, false)
	assert.Equal(t, "1\tLobby\tN/A\tN/A\t0 Tasks\tActive\nShowing 1 to 1 of 1 entries\n", out)
}

func TestRenderStatusChipKeepsLabel(t *testing.T) {
	assert.Contains(t, RenderStatusChip("Active", camview.ChipActive), "Active")
	assert.Contains(t, RenderStatusChip("Inactive", camview.ChipInactive), "Inactive")
}

func TestFailureResultCarriesHints(t *testing.T) {
	err := directory.NewHTTPError("fetch_all", http.StatusUnauthorized, "")
	r := NewFailureResult("Could not load cameras", err).SetWidth(90)

	assert.Equal(t, directory.Hint(err), r.Troubleshooting)
	out := r.Render()
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Authentication failed (HTTP 401)")
	assert.Contains(t, out, "Troubleshooting:")
}

func TestSuccessResultKeepsDetailOrder(t *testing.T) {
	out := NewSuccessResult("Status updated",
		Detail{Key: "Camera", Value: "Lobby"},
		Detail{Key: "Status", Value: "Inactive"},
	).SetWidth(80).Render()

	assert.Less(t, strings.Index(out, "Camera"), strings.Index(out, "Status:"))
}

func TestConfirmChange(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := NewPrinter(&out).SetWidth(80)
		got := p.ConfirmChange(strings.NewReader(tt.input), "Set status", Detail{Key: "Camera", Value: "1"})
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Apply this change?")
	}
}

func TestPrinterError(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).SetWidth(80).PrintError("Update failed", errors.New("boom"))
	assert.Contains(t, out.String(), "boom")
	assert.Contains(t, out.String(), "Please try again later.")
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/camctl/internal/camview"
)

// Columns are the device table headings, in display order
var Columns = []string{"Name", "Location", "Recorder", "Tasks", "Status"}

const statusColumn = 4

// NoDataMessage is shown in place of an empty table
const NoDataMessage = "No data"

// RenderStatusChip renders a status label with the chip treatment
func RenderStatusChip(label string, chip camview.Chip) string {
	if chip == camview.ChipActive {
		return ActiveChipStyle.Render(label)
	}
	return InactiveChipStyle.Render(label)
}

// RenderDeviceTable renders the rows of a loaded screen followed by the
// paging summary. An empty view renders NoDataMessage instead of a table.
func RenderDeviceTable(sc camview.Screen, width int) string {
	return RenderDeviceTableCursor(sc, sc.Rows, width, -1)
}

// RenderDeviceTableCursor renders rows, a subset of sc.Rows, highlighting
// the row at index cursor. A negative cursor highlights nothing.
func RenderDeviceTableCursor(sc camview.Screen, rows []camview.Row, width, cursor int) string {
	footer := FooterStyle.Render(sc.Window.Summary())
	if sc.Empty || len(rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(MutedColor).Padding(1, 2).Render(NoDataMessage),
			footer)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Location, r.Recorder, r.Tasks, r.Status})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(PrimaryColor)).
		Headers(Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			style := TableCellStyle
			if row == cursor {
				style = SelectedRowStyle
			}
			if col == statusColumn && row >= 0 && row < len(rows) {
				if rows[row].Chip == camview.ChipActive {
					return style.Foreground(SuccessColor).Bold(true)
				}
				return style.Foreground(ErrorColor).Bold(true)
			}
			return style
		})
	if width > 0 {
		t = t.Width(clampWidth(width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, t.String(), footer)
}

// RenderCompact renders one line per row, for narrow terminals and pipes.
// Status chips are only coloured when color is set.
func RenderCompact(sc camview.Screen, color bool) string {
	if sc.Empty || len(sc.Rows) == 0 {
		return NoDataMessage + "\n" + sc.Window.Summary() + "\n"
	}

	var b strings.Builder
	for _, r := range sc.Rows {
		status := r.Status
		if color {
			status = RenderStatusChip(r.Status, r.Chip)
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Location, r.Recorder, r.Tasks, status)
	}
	b.WriteString(sc.Window.Summary())
	b.WriteString("\n")
	return b.String()
}

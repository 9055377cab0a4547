package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/camctl/internal/camview"
	"github.com/muurk/camctl/internal/directory"
	"github.com/muurk/camctl/internal/ui"
)

// View renders the current state
func (m AppModel) View() string {
	sc := m.Store.Screen()

	if m.showHelp {
		return RenderModal(m.renderHelpModalContent(), m.Width, m.Height)
	}
	if sc.Dialog.Open {
		return RenderModal(m.renderDialogContent(sc.Dialog), m.Width, m.Height)
	}

	var content string
	var keys help.KeyMap
	switch sc.Load.Kind {
	case camview.Loaded:
		content = m.renderBrowser(sc)
		keys = m.keys.Browse
		if m.focus != noFocus {
			keys = m.keys.Filter
		}
	case camview.Failed:
		content = m.renderFailed(sc)
		keys = m.keys.Failed
	default:
		content = m.renderLoading()
		keys = m.keys.Failed
	}

	return RenderApplicationContainer(content, m.Help.View(keys), m.Width, m.Height)
}

func (m AppModel) renderLoading() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(
		fmt.Sprintf("%s Loading cameras...", m.Spinner.View()))
}

func (m AppModel) renderFailed(sc camview.Screen) string {
	lines := []string{sc.Message}
	if sc.Load.Err != nil {
		lines = append(lines, "")
		for _, tip := range directory.Hint(sc.Load.Err) {
			lines = append(lines, "• "+tip)
		}
	}
	box := ErrorBoxStyle.Width(SafeModalWidth(70, m.Width)).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, box, "", "Press r to try again."))
}

func (m AppModel) renderBrowser(sc camview.Screen) string {
	filters := lipgloss.JoinHorizontal(lipgloss.Top,
		m.Inputs[inputSearch].View(), "   ",
		m.Inputs[inputLocation].View(), "   ",
		m.Inputs[inputStatus].View())

	pageSize := FilterLabelStyle.Render(fmt.Sprintf("%d per page", sc.Window.Size))
	if sc.Window.TotalPages > 0 {
		pageSize = FilterLabelStyle.Render(fmt.Sprintf("Page %d of %d · %d per page",
			sc.Window.Page, sc.Window.TotalPages, sc.Window.Size))
	}

	rows, cursor := fitRows(sc.Rows, m.cursor, m.Height-chromeHeight)
	table := ui.RenderDeviceTableCursor(sc, rows, m.Width-6, cursor)

	parts := []string{filters, pageSize, table}
	if sc.Notice != "" {
		parts = append(parts, NoticeStyle.Render(sc.Notice))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// fitRows returns at most limit rows around cursor, and the cursor position
// within them. Each row takes one line.
func fitRows(rows []camview.Row, cursor, limit int) ([]camview.Row, int) {
	if limit < 1 {
		limit = 1
	}
	if len(rows) <= limit {
		return rows, cursor
	}
	start := cursor - limit/2
	if start < 0 {
		start = 0
	}
	if start+limit > len(rows) {
		start = len(rows) - limit
	}
	return rows[start : start+limit], cursor - start
}

func (m AppModel) renderDialogContent(dlg camview.Dialog) string {
	title := TitleStyle.Render("Update Status")
	device := fmt.Sprintf("Camera: %s", dlg.Device)
	current := "Current: " + ui.RenderStatusChip(camview.StatusLabel(dlg.Current), camview.ChipFor(dlg.Current))

	var options []string
	for _, s := range directory.Statuses {
		style := OptionStyle
		if dlg.Pending == s {
			style = SelectedOptionStyle
		}
		options = append(options, style.Render(string(s)))
	}
	selector := lipgloss.JoinHorizontal(lipgloss.Center, options[0], "  ", options[1])
	if dlg.Pending == "" {
		selector = lipgloss.JoinVertical(lipgloss.Left, FilterLabelStyle.Render("Select status"), selector)
	}

	parts := []string{title, "", device, current, "", selector, ""}
	switch {
	case dlg.Saving:
		parts = append(parts, fmt.Sprintf("%s Saving...", m.Spinner.View()))
	case dlg.Error != "":
		parts = append(parts, NoticeStyle.Render("Failed to update status: "+dlg.Error))
	}
	parts = append(parts, m.Help.View(m.keys.Dialog))

	return ModalStyle.Width(SafeModalWidth(56, m.Width)).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m AppModel) renderHelpModalContent() string {
	h := m.Help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Keys"),
		"",
		h.View(m.keys.Browse),
		"",
		FilterLabelStyle.Render("Press any key to close"))
	return ModalStyle.Render(content)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/camctl/internal/ui"
	"github.com/muurk/camctl/internal/version"
)

// Application branding
const (
	AppName = "CAMCTL CAMERA DIRECTORY"
	RepoURL = "github.com/muurk/camctl"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72
	chromeHeight     = 14 // header, filters, table borders, footer
)

// Color palette, shared with the non-interactive output
var (
	PrimaryColor = ui.PrimaryColor
	SuccessColor = ui.SuccessColor
	ErrorColor   = ui.ErrorColor
	WarningColor = ui.WarningColor
	SubtleColor  = ui.MutedColor
	TextColor    = ui.TextColor
	BorderColor  = ui.PrimaryColor
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// ErrorBoxStyle frames the fetch failure message
	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(1, 2)

	// NoticeStyle is for non-fatal errors shown above the footer
	NoticeStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			PaddingLeft(1)

	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	BlurredInputStyle = lipgloss.NewStyle().
				Foreground(SubtleColor)

	// OptionStyle and SelectedOptionStyle render the status selector
	OptionStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 2)

	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 2)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)
)

// BuildHeaderContent creates header content with app name and repository
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(RepoURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen in the full-terminal frame:
// header on top, help footer pinned to the bottom, bordered outer panel.
//
//	func (m Model) View() string {
//	    return RenderApplicationContainer(m.buildContent(), m.Help.View(keys), m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < chromeHeight {
		terminalHeight = chromeHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		lipgloss.NewStyle().Width(terminalWidth-4).Render(content),
		footerStyle.Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// SafeModalWidth returns requestedWidth, capped so the modal never exceeds
// the terminal.
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < 40 {
		maxWidth = 40
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// RenderModal centers modalContent on a dimmed full-screen backdrop.
func RenderModal(modalContent string, terminalWidth int, terminalHeight int) string {
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/camctl/internal/camview"
)

// Param is one key-value line in a command header
type Param struct {
	Key   string
	Value string
}

// RenderHeader renders a command banner: title, command line and parameters
func RenderHeader(title, command string, params []Param, width int) string {
	width = clampWidth(width)

	top := lipgloss.JoinVertical(lipgloss.Left,
		HeaderTitleStyle.Render(strings.ToUpper(title)),
		HeaderCommandStyle.Render(command))

	content := top
	if len(params) > 0 {
		lines := make([]string, 0, len(params))
		for _, p := range params {
			lines = append(lines, HeaderParamKeyStyle.Render(p.Key+":")+" "+HeaderParamValueStyle.Render(p.Value))
		}
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Render(strings.Repeat("─", max(width-6, 10)))
		content = lipgloss.JoinVertical(lipgloss.Left, top, divider, strings.Join(lines, "\n"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2).
		Render(content)
}

// Printer writes rendered components to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer. A nil writer means os.Stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, width: GetTerminalWidth()}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Width returns the width used for rendering
func (p *Printer) Width() int {
	return p.width
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(RenderHeader(title, command, params, p.width))
}

// PrintTable prints the device table for a loaded screen
func (p *Printer) PrintTable(sc camview.Screen) {
	p.Println(RenderDeviceTable(sc, p.width))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints a failure box with troubleshooting tips
func (p *Printer) PrintError(title string, err error) {
	p.Println(NewFailureResult(title, err).SetWidth(p.width).Render())
}

// PrintWarning prints a warning box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

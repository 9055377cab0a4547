package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmChange shows a warning box describing a remote change and asks for
// a yes/no answer on in. Anything other than "y" or "yes" declines,
// including EOF.
func (p *Printer) ConfirmChange(in io.Reader, title string, details ...Detail) bool {
	p.PrintWarning(title, details...)

	prompt := lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	_, _ = fmt.Fprint(p.out, prompt.Render("Apply this change? [y/N]: "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		p.Newline()
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	p.Println(lipgloss.NewStyle().Foreground(MutedColor).Render("  Cancelled."))
	return false
}

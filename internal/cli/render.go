package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Bold(true)
)

// Renderer formats command output. With color off every style is a no-op,
// so output written to pipes and test buffers is plain text.
type Renderer struct {
	color      bool
	timeFormat string
}

// NewRenderer enables color only when wanted and out is a terminal
func NewRenderer(out io.Writer, wantColor bool, timeFormat string) *Renderer {
	return &Renderer{
		color:      wantColor && isTerminal(out),
		timeFormat: timeFormat,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) Header(text string) string { return r.style(styleHeader, text) }
func (r *Renderer) Bold(text string) string { return r.style(styleBold, text) }
func (r *Renderer) Dim(text string) string { return r.style(styleDim, text) }
func (r *Renderer) Success(text string) string { return r.style(styleGreen, text) }
func (r *Renderer) Warn(text string) string { return r.style(styleYellow, text) }

// Status renders a task or session state word with its color
func (r *Renderer) Status(status string) string {
	switch status {
	case statusDone:
		return r.Success(status)
	case statusActive, statusOpen:
		return r.Warn(status)
	default:
		return r.Dim(status)
	}
}

// Table renders an aligned table with a header separator line. Widths are
// measured on the visible text so styled cells line up.
func (r *Renderer) Table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	var b strings.Builder

	writeRow := func(cells []string, styled func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(styled(cell))
			if i < cols-1 {
				pad := widths[i] - lipgloss.Width(cell)
				if pad < 0 {
					pad = 0
				}
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, r.Header)
	for i, w := range widths {
		b.WriteString(r.Dim(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

// ProgressBar draws a fixed-width bar for a 0..100 percentage
func (r *Renderer) ProgressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := r.Success(strings.Repeat("█", filled)) + r.Dim(strings.Repeat("░", width-filled))
	return bar
}

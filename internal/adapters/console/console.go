// Package console prints analysis results to a terminal or any writer.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/smartwatch/internal/domain/correlation"
)

// matrixDigits matches the tabular print of the survey notebook.
const matrixDigits = 6

// Printer writes tables to an output stream. Styles are resolved against
// the stream, so a pipe or file gets plain text.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// Option applies a configuration option to the Printer.
type Option func(*Printer)

// WithWriter sets the output stream. Nil is ignored.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) {
		if w != nil {
			p.out = w
		}
	}
}

// New creates a Printer writing to stdout unless WithWriter is given.
func New(opts ...Option) *Printer {
	p := &Printer{out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	p.renderer = lipgloss.NewRenderer(p.out)
	return p
}

// MatrixTable renders m with its labels as header row and first column.
func (p *Printer) MatrixTable(m *correlation.Matrix) string {
	labels := m.Labels()
	header := p.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := p.renderer.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	rows := m.Rows(matrixDigits)
	body := make([][]string, len(rows))
	for i, r := range rows {
		body[i] = append([]string{labels[i]}, r...)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle()).
		Headers(append([]string{""}, labels...)...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return header
			}
			return cell
		})
	return t.Render()
}

// PrintMatrix writes m as a bordered table followed by a newline.
func (p *Printer) PrintMatrix(m *correlation.Matrix) error {
	if _, err := fmt.Fprintln(p.out, p.MatrixTable(m)); err != nil {
		return fmt.Errorf("print correlation matrix: %w", err)
	}
	return nil
}

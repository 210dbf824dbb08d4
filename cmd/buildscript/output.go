package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexisbeaulieu97/buildscript/internal/model"
)

type styles struct {
	renderer *lipgloss.Renderer
	header   lipgloss.Style
	ok       lipgloss.Style
	failed   lipgloss.Style
	skipped  lipgloss.Style
	muted    lipgloss.Style
}

// newStyles detects colour support from out, so piped output stays plain.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		renderer: r,
		header:   r.NewStyle().Bold(true),
		ok:       r.NewStyle().Foreground(lipgloss.Color("2")),
		failed:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		skipped:  r.NewStyle().Foreground(lipgloss.Color("3")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s styles) table(headers []string, rows [][]string) string {
	header := s.header
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return s.renderer.NewStyle().Padding(0, 1)
		}).
		String()
}

func (s styles) status(status string) string {
	switch status {
	case model.StatusSuccess, model.StatusPlanned:
		return s.ok.Render(status)
	case model.StatusFailed:
		return s.failed.Render(status)
	case model.StatusSkipped:
		return s.skipped.Render(status)
	default:
		return status
	}
}

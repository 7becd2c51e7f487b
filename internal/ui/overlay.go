// Package ui holds shared compositing helpers for modal overlays.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Dim is the style for background content behind a modal. The background's
// own ANSI codes are stripped before it applies; SGR faint doesn't combine
// reliably with color codes in most terminals.
var Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// widest returns the largest visual width among lines, ignoring escape
// sequences.
func widest(lines []string) int {
	w := 0
	for _, line := range lines {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

// fadeRow strips a row's ANSI codes and re-styles it dimmed.
func fadeRow(s string) string {
	return Dim.Render(ansi.Strip(s))
}

// spliceRow lays modal over bg starting at column startX: faded background
// on the left, the modal row untouched, faded background remainder on the
// right. Column arithmetic is in visual cells, not bytes.
func spliceRow(bg, modal string, startX, modalWidth, totalWidth int) string {
	var row strings.Builder

	plain := ansi.Strip(bg)
	plainWidth := ansi.StringWidth(plain)

	if startX > 0 {
		left := ansi.Truncate(plain, startX, "")
		row.WriteString(Dim.Render(left))
		// Background may end before the modal starts.
		if pad := startX - ansi.StringWidth(left); pad > 0 {
			row.WriteString(strings.Repeat(" ", pad))
		}
	}

	row.WriteString(modal)

	if after := startX + modalWidth; after < totalWidth && plainWidth > after {
		row.WriteString(Dim.Render(ansi.Cut(plain, after, plainWidth)))
	}

	return row.String()
}

// OverlayModal centers modal over background within a width x height
// window. Rows the modal covers are spliced; every other row renders as
// faded background.
func OverlayModal(background, modal string, width, height int) string {
	bgRows := strings.Split(background, "\n")
	modalRows := strings.Split(modal, "\n")

	modalWidth := widest(modalRows)
	startX := (width - modalWidth) / 2
	startY := (height - len(modalRows)) / 2
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}

	out := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bg := ""
		if y < len(bgRows) {
			bg = bgRows[y]
		}
		if mi := y - startY; mi >= 0 && mi < len(modalRows) {
			out = append(out, spliceRow(bg, modalRows[mi], startX, modalWidth, width))
		} else {
			out = append(out, fadeRow(bg))
		}
	}

	return strings.Join(out, "\n")
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/arenatrack/internal/model"
	"github.com/verte-zerg/arenatrack/internal/tracker"
)

const (
	smallCellWidth  = 16
	mediumCellWidth = 22
)

var (
	wonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

func cellWidth(size string) int {
	if size == tracker.GridSmall {
		return smallCellWidth
	}
	return mediumCellWidth
}

// gridColumns returns how many cells fit in width. Always at least one.
func gridColumns(width int, size string) int {
	if width <= 0 {
		return 1
	}
	return maxInt(1, width/cellWidth(size))
}

// scrollOffset keeps row inside the window [offset, offset+height).
func scrollOffset(row, offset, height int) int {
	if height < 1 {
		height = 1
	}
	if row < offset {
		offset = row
	}
	if row >= offset+height {
		offset = row - height + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// cellText renders one champion as a fixed-width cell without styling.
func cellText(c model.Champion, won bool, width int) string {
	marker := "·"
	if won {
		marker = "✓"
	}
	name := runewidth.Truncate(c.Name, width-3, "…")
	return runewidth.FillRight(marker+" "+name, width-1)
}

func renderGrid(champions []model.Champion, wins model.CompletionMap, cursor, cols int, size string, offset, height int) string {
	width := cellWidth(size)
	lines := make([]string, 0, height)
	for row := offset; len(lines) < height; row++ {
		start := row * cols
		if start >= len(champions) {
			break
		}
		end := minInt(start+cols, len(champions))
		var b strings.Builder
		for i := start; i < end; i++ {
			c := champions[i]
			text := cellText(c, wins.Won(c.ID), width)
			style := pendingStyle
			if wins.Won(c.ID) {
				style = wonStyle
			}
			if i == cursor {
				style = style.Inherit(selectedStyle)
			}
			b.WriteString(style.Render(text))
			b.WriteString(" ")
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}

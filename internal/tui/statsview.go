package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/arenatrack/internal/stats"
	"github.com/verte-zerg/arenatrack/internal/tracker"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// progressLine is the one-line summary shown above every tab.
func progressLine(snap tracker.Snapshot, target int) string {
	p := snap.Progress
	arena := fmt.Sprintf("Arena God %d/%d (%d%%)", p.Completed, target, p.TargetPercentage)
	if p.IsTargetReached {
		arena += " reached"
	}
	roster := fmt.Sprintf("Champions %d/%d (%d%%)", p.Completed, p.Total, p.Percentage)
	return stats.Colorize(snap.TargetColor, arena) + "  " + stats.Colorize(snap.Color, roster)
}

func renderStats(snap tracker.Snapshot, target, width int) string {
	sections := []string{
		renderCards(snap, target, width),
		renderBars(snap, target, width),
		renderRoles(snap, width),
	}
	if est := snap.Estimate; est.Remaining > 0 {
		sections = append(sections, fmt.Sprintf("Estimated time left: ~%dh (%d days) for %d champions", est.Hours, est.Days, est.Remaining))
	} else if est.Total > 0 {
		sections = append(sections, "Every champion has an Arena win.")
	}
	return strings.Join(sections, "\n\n")
}

func renderCards(snap tracker.Snapshot, target, width int) string {
	p := snap.Progress
	remaining := fmt.Sprintf("%d", p.Remaining)
	if p.IsTargetReached {
		remaining = "done"
	}
	cards := []string{
		metricCard("Arena God", stats.Colorize(snap.TargetColor, fmt.Sprintf("%d/%d", p.Completed, target))),
		metricCard("Total Wins", fmt.Sprintf("%d", p.Completed)),
		metricCard("Overall", stats.Colorize(snap.Color, fmt.Sprintf("%d%%", p.Percentage))),
		metricCard("Remaining", remaining),
	}
	if width < 60 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func barWidth(width int) int {
	return minInt(maxInt(width-20, 10), 60)
}

func renderBars(snap tracker.Snapshot, target, width int) string {
	w := barWidth(width)
	p := snap.Progress
	lines := []string{
		fmt.Sprintf("%-10s %s %d%%", "Arena God", stats.RenderProgressBar(snap.Milestone.Progress, w, snap.TargetColor), p.TargetPercentage),
		fmt.Sprintf("%-10s %s %d%%", "Roster", stats.RenderProgressBar(snap.Segment.Position/100, w, snap.Segment.Color), p.Percentage),
	}
	if marker := milestoneMarker(w, target, p.Total); marker != "" {
		lines = append(lines, strings.Repeat(" ", 11)+marker)
	}
	return strings.Join(lines, "\n")
}

// milestoneMarker points at the target's position on a roster bar of width cells.
func milestoneMarker(width, target, total int) string {
	if width <= 0 || total <= 0 || target <= 0 || target > total {
		return ""
	}
	pos := int(float64(target) / float64(total) * float64(width))
	pos = minInt(pos, width-1)
	return strings.Repeat(" ", pos) + fmt.Sprintf("▲ %d", target)
}

func renderRoles(snap tracker.Snapshot, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCategoryTable(&buf, snap.Categories); err != nil {
		return fmt.Sprintf("Failed to render roles: %v", err)
	}
	share := stats.RenderShareBar(snap.Categories, barWidth(width))
	return strings.TrimRight(buf.String(), "\n") + "\n\n" + share
}

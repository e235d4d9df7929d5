package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// MinutesPerChampion is the assumed Arena time investment per champion.
const MinutesPerChampion = 30 * time.Minute

// Report contains every derived statistic for one roster and completion map.
type Report struct {
	Progress   model.ProgressStats
	Categories model.CategoryStats
	Segment    model.SegmentedProgress
	Estimate   model.TimeEstimate
	// Color follows the roster percentage, TargetColor the milestone percentage.
	Color       model.RGB
	TargetColor model.RGB
}

// BuildReport recomputes all statistics. Nothing is cached between calls.
func BuildReport(champions []model.Champion, completions model.CompletionMap, target int) Report {
	completed := completions.Count()
	total := len(champions)
	progress := CalculateProgress(completed, total, target)
	return Report{
		Progress:    progress,
		Categories:  CalculateCategoryStats(champions, completions),
		Segment:     CalculateSegmentedProgress(completed, total, target),
		Estimate:    EstimateTime(completed, total, MinutesPerChampion),
		Color:       SemanticColor(float64(progress.Percentage)),
		TargetColor: SemanticColor(float64(progress.TargetPercentage)),
	}
}

// Colorize renders s in the given ramp color.
func Colorize(c model.RGB, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(s)
}

// RenderSummary prints milestone and roster progress.
func RenderSummary(w io.Writer, r Report, target int) error {
	p := r.Progress
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	arena := fmt.Sprintf("%d/%d (%d%%)", p.Completed, target, p.TargetPercentage)
	if p.IsTargetReached {
		arena += " - Arena God!"
	}
	if _, err := fmt.Fprintf(w, "Arena God: %s\n", Colorize(r.TargetColor, arena)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Champions: %s\n", Colorize(r.Color, fmt.Sprintf("%d/%d (%d%%)", p.Completed, p.Total, p.Percentage))); err != nil {
		return err
	}
	if !p.IsTargetReached {
		if _, err := fmt.Fprintf(w, "Remaining to milestone: %d\n", p.Remaining); err != nil {
			return err
		}
	}
	if r.Estimate.Remaining > 0 {
		if _, err := fmt.Fprintf(w, "Estimated time left: ~%dh (%d days)\n", r.Estimate.Hours, r.Estimate.Days); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCategoryTable prints per-role wins with both percentage metrics.
func RenderCategoryTable(w io.Writer, cats model.CategoryStats) error {
	if _, err := fmt.Fprintln(w, "Roles"); err != nil {
		return err
	}
	headers := []string{"Role", "Wins", "Share", "Completed"}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Name,
			fmt.Sprintf("%d/%d", c.Wins, c.Total),
			fmt.Sprintf("%d%%", c.Percentage),
			fmt.Sprintf("%d%%", c.CompletionPercentage),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

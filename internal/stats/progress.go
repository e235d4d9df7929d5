// Package stats contains progress calculations and reporting.
package stats

import (
	"math"
	"time"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// CalculateProgress computes roster and milestone progress. A zero total yields
// 0%. Percentage is capped at 100 since completed may count wins for champions
// no longer in the roster; TargetPercentage is left unclamped so values past the
// milestone show as >100.
func CalculateProgress(completed, total, target int) model.ProgressStats {
	percentage := 0
	if total > 0 {
		percentage = min(roundHalfUp(float64(ratio(completed, total)*100)), 100)
	}
	targetPercentage := 100
	if target > 0 {
		targetPercentage = roundHalfUp(float64(ratio(completed, target) * 100))
	}
	remaining := target - completed
	if remaining < 0 {
		remaining = 0
	}
	return model.ProgressStats{
		Completed:        completed,
		Total:            total,
		Percentage:       percentage,
		TargetPercentage: targetPercentage,
		Remaining:        remaining,
		IsTargetReached:  completed >= target,
	}
}

// CalculateSegmentedProgress splits the bar at the milestone. Segment 1 runs from
// zero to target and ramps red to green at twice the speed; segment 2 covers the
// champions past the target starting from yellow.
func CalculateSegmentedProgress(completed, total, target int) model.SegmentedProgress {
	position := 0.0
	if total > 0 {
		position = min(ratio(completed, total)*100, 100)
	}
	if completed <= target || total <= target {
		progress := 100.0
		if target > 0 {
			progress = ratio(completed, target) * 100
		}
		return model.SegmentedProgress{
			Segment:  1,
			Progress: progress,
			Color:    SemanticColor(float64(progress * 2)),
			Position: position,
		}
	}
	progress := min(ratio(completed-target, total-target)*100, 100)
	return model.SegmentedProgress{
		Segment:  2,
		Progress: progress,
		Color:    SemanticColor(50 + float64(progress*0.5)),
		Position: position,
	}
}

// EstimateTime projects the time needed to finish the remaining champions.
func EstimateTime(completed, total int, perChampion time.Duration) model.TimeEstimate {
	remaining := total - completed
	if remaining < 0 {
		remaining = 0
	}
	left := time.Duration(remaining) * perChampion
	minutes := left.Minutes()
	return model.TimeEstimate{
		Completed:     completed,
		Remaining:     remaining,
		Total:         total,
		RemainingTime: left,
		Hours:         roundHalfUp(minutes / 60),
		Days:          roundHalfUp(minutes / (60 * 24)),
	}
}

func ratio(num, den int) float64 {
	return float64(num) / float64(den)
}

// roundHalfUp rounds .5 toward positive infinity. Callers pass explicitly
// converted values so a fused multiply-add cannot shift a boundary.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

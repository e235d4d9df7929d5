package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/verte-zerg/arenatrack/internal/model"
)

func TestCalculateProgressStart(t *testing.T) {
	got := CalculateProgress(0, 167, 60)
	assert.Equal(t, model.ProgressStats{
		Completed:        0,
		Total:            167,
		Percentage:       0,
		TargetPercentage: 0,
		Remaining:        60,
		IsTargetReached:  false,
	}, got)
}

func TestCalculateProgressAtMilestone(t *testing.T) {
	got := CalculateProgress(60, 167, 60)
	assert.Equal(t, model.ProgressStats{
		Completed:        60,
		Total:            167,
		Percentage:       36,
		TargetPercentage: 100,
		Remaining:        0,
		IsTargetReached:  true,
	}, got)
}

func TestCalculateProgressPastMilestoneIsUnclamped(t *testing.T) {
	got := CalculateProgress(90, 167, 60)
	assert.Equal(t, 150, got.TargetPercentage)
	assert.Equal(t, 0, got.Remaining)
	assert.True(t, got.IsTargetReached)
	assert.Equal(t, 54, got.Percentage)
}

func TestCalculateProgressRoundsHalfUp(t *testing.T) {
	// 1/8 = 12.5%, 3/8 = 37.5%
	assert.Equal(t, 13, CalculateProgress(1, 8, 60).Percentage)
	assert.Equal(t, 38, CalculateProgress(3, 8, 60).Percentage)
	// 59/60 = 98.33%
	assert.Equal(t, 98, CalculateProgress(59, 167, 60).TargetPercentage)
	assert.Equal(t, 1, CalculateProgress(59, 167, 60).Remaining)
}

func TestCalculateProgressZeroTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		completed := rapid.IntRange(0, 500).Draw(t, "completed")
		target := rapid.IntRange(0, 500).Draw(t, "target")
		got := CalculateProgress(completed, 0, target)
		if got.Percentage != 0 {
			t.Fatalf("percentage %d with zero total", got.Percentage)
		}
	})
}

func TestCalculateProgressInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(1, 300).Draw(t, "total")
		completed := rapid.IntRange(0, total).Draw(t, "completed")
		target := rapid.IntRange(1, 300).Draw(t, "target")
		got := CalculateProgress(completed, total, target)
		if got.Percentage < 0 || got.Percentage > 100 {
			t.Fatalf("percentage out of range: %d", got.Percentage)
		}
		if got.Remaining < 0 {
			t.Fatalf("negative remaining: %d", got.Remaining)
		}
		if got.IsTargetReached != (got.Remaining == 0) {
			t.Fatalf("reached=%v remaining=%d", got.IsTargetReached, got.Remaining)
		}
		if got.IsTargetReached && got.TargetPercentage < 100 {
			t.Fatalf("reached with target percentage %d", got.TargetPercentage)
		}
	})
}

func TestCalculateProgressZeroTarget(t *testing.T) {
	got := CalculateProgress(0, 10, 0)
	assert.Equal(t, 100, got.TargetPercentage)
	assert.True(t, got.IsTargetReached)
	assert.Equal(t, 0, got.Remaining)
}

func TestCalculateSegmentedProgress(t *testing.T) {
	first := CalculateSegmentedProgress(30, 167, 60)
	assert.Equal(t, 1, first.Segment)
	assert.InDelta(t, 50.0, first.Progress, 1e-9)
	assert.Equal(t, model.RGB{R: 67, G: 255, B: 67}, first.Color)
	assert.InDelta(t, 30.0/167*100, first.Position, 1e-9)

	empty := CalculateSegmentedProgress(0, 167, 60)
	assert.Equal(t, 1, empty.Segment)
	assert.Equal(t, model.RGB{R: 255, G: 107, B: 107}, empty.Color)

	second := CalculateSegmentedProgress(167, 167, 60)
	assert.Equal(t, 2, second.Segment)
	assert.InDelta(t, 100.0, second.Progress, 1e-9)
	assert.Equal(t, model.RGB{R: 67, G: 255, B: 67}, second.Color)

	justPast := CalculateSegmentedProgress(61, 167, 60)
	assert.Equal(t, 2, justPast.Segment)
	assert.Equal(t, uint8(255), justPast.Color.G)
}

func TestCalculateSegmentedProgressSmallRoster(t *testing.T) {
	got := CalculateSegmentedProgress(5, 0, 3)
	assert.Equal(t, 1, got.Segment)
	assert.Zero(t, got.Position)
}

func TestEstimateTime(t *testing.T) {
	got := EstimateTime(67, 167, 30*time.Minute)
	assert.Equal(t, 100, got.Remaining)
	assert.Equal(t, 50*time.Hour, got.RemainingTime)
	assert.Equal(t, 50, got.Hours)
	assert.Equal(t, 2, got.Days)

	done := EstimateTime(170, 167, 30*time.Minute)
	assert.Zero(t, done.Remaining)
	assert.Zero(t, done.RemainingTime)
}

func TestCalculateProgressCapsWinsOutsideRoster(t *testing.T) {
	got := CalculateProgress(3, 1, 60)
	assert.Equal(t, 100, got.Percentage)
	assert.Equal(t, 3, got.Completed)
	assert.Equal(t, 5, got.TargetPercentage)
	assert.Equal(t, 57, got.Remaining)

	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 200).Draw(t, "total")
		completed := rapid.IntRange(0, 400).Draw(t, "completed")
		target := rapid.IntRange(1, 300).Draw(t, "target")
		if p := CalculateProgress(completed, total, target).Percentage; p < 0 || p > 100 {
			t.Fatalf("percentage out of range: %d", p)
		}
		seg := CalculateSegmentedProgress(completed, total, target)
		if seg.Position < 0 || seg.Position > 100 {
			t.Fatalf("position out of range: %f", seg.Position)
		}
		if seg.Segment == 2 && seg.Progress > 100 {
			t.Fatalf("segment progress out of range: %f", seg.Progress)
		}
	})
}

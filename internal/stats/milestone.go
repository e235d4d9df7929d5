package stats

import "github.com/verte-zerg/arenatrack/internal/model"

// CalculateMilestoneStatus decides whether the celebration should appear or be
// retracted given the persisted flag. Repeating a call with the same reached
// state and flag never asks for either.
func CalculateMilestoneStatus(completed, target int, alreadyReached bool) model.MilestoneStatus {
	reached := completed >= target
	progress := 1.0
	if target > 0 {
		progress = ratio(completed, target)
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	return model.MilestoneStatus{
		HasReached: reached,
		ShouldShow: reached && !alreadyReached,
		ShouldHide: !reached && alreadyReached,
		Progress:   progress,
	}
}

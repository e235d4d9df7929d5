package stats

import "github.com/verte-zerg/arenatrack/internal/model"

// CalculateCategoryStats aggregates wins per role over model.Categories. Share
// percentages are relative to every completion, so a champion with two roles
// counts toward both.
func CalculateCategoryStats(champions []model.Champion, completions model.CompletionMap) model.CategoryStats {
	totalWins := completions.Count()
	out := make(model.CategoryStats, 0, len(model.Categories))
	for _, name := range model.Categories {
		members, wins := 0, 0
		for _, c := range champions {
			if !c.HasRole(name) {
				continue
			}
			members++
			if completions.Won(c.ID) {
				wins++
			}
		}
		stat := model.CategoryStat{Name: name, Wins: wins, Total: members}
		if totalWins > 0 {
			stat.Percentage = roundHalfUp(float64(ratio(wins, totalWins) * 100))
		}
		if members > 0 {
			stat.CompletionPercentage = roundHalfUp(float64(ratio(wins, members) * 100))
		}
		out = append(out, stat)
	}
	return out
}

// Package roster provides champion roster filtering and lookup helpers.
package roster

import (
	"strings"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// FilterFunc returns true when a champion should be kept.
type FilterFunc func(model.Champion) bool

// Filter returns the champions matching every filter, in roster order.
func Filter(champions []model.Champion, f model.Filter, completions model.CompletionMap) []model.Champion {
	preds := []FilterFunc{
		matchSearch(f.Search),
		matchRole(f.Role),
		matchCompletion(f.Completion, completions),
	}
	out := make([]model.Champion, 0, len(champions))
	for _, champ := range champions {
		if keep(champ, preds) {
			out = append(out, champ)
		}
	}
	return out
}

func keep(champ model.Champion, preds []FilterFunc) bool {
	for _, pred := range preds {
		if !pred(champ) {
			return false
		}
	}
	return true
}

func matchSearch(term string) FilterFunc {
	if term == "" {
		return matchAll
	}
	term = strings.ToLower(term)
	return func(c model.Champion) bool {
		return strings.Contains(strings.ToLower(c.Name), term)
	}
}

func matchRole(role string) FilterFunc {
	if role == "" {
		return matchAll
	}
	return func(c model.Champion) bool {
		return c.HasRole(role)
	}
}

func matchCompletion(state string, completions model.CompletionMap) FilterFunc {
	switch state {
	case model.CompletionWon:
		return func(c model.Champion) bool { return completions.Won(c.ID) }
	case model.CompletionNotWon:
		return func(c model.Champion) bool { return !completions.Won(c.ID) }
	default:
		return matchAll
	}
}

func matchAll(model.Champion) bool { return true }

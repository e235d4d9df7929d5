package roster

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// Valid reports whether a champion record carries every required field.
func Valid(c model.Champion) bool {
	return c.ID != "" && c.Name != "" && c.Key != "" && c.Roles != nil
}

// ByID returns the champion with the given ID.
func ByID(champions []model.Champion, id string) (model.Champion, bool) {
	for _, c := range champions {
		if c.ID == id {
			return c, true
		}
	}
	return model.Champion{}, false
}

// Find resolves user input to a champion: exact ID first, then case-insensitive
// name or ID, then a unique case-insensitive name prefix.
func Find(champions []model.Champion, query string) (model.Champion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.Champion{}, fmt.Errorf("empty champion name")
	}
	if c, ok := ByID(champions, query); ok {
		return c, nil
	}
	lower := strings.ToLower(query)
	for _, c := range champions {
		if strings.ToLower(c.Name) == lower || strings.ToLower(c.ID) == lower {
			return c, nil
		}
	}
	var matches []model.Champion
	for _, c := range champions {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return model.Champion{}, fmt.Errorf("no champion matches %q", query)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, c := range matches {
			names = append(names, c.Name)
		}
		return model.Champion{}, fmt.Errorf("%q is ambiguous: %s", query, strings.Join(names, ", "))
	}
}

// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// DefaultTarget is the Arena God milestone: wins needed on distinct champions.
const DefaultTarget = 60

// DefaultVersion is the Data Dragon version used when the latest one cannot be resolved.
const DefaultVersion = "14.21.1"

// Categories is the fixed role vocabulary used for aggregation, in display order.
var Categories = []string{"Fighter", "Tank", "Mage", "Assassin", "Marksman", "Support"}

// Completion filter values.
const (
	CompletionAll    = ""
	CompletionWon    = "won"
	CompletionNotWon = "not-won"
)

// Champion is one roster entry loaded from Data Dragon.
type Champion struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	Key   string   `json:"key"`
}

// HasRole reports whether the champion carries the given role tag.
func (c Champion) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CompletionMap records Arena wins per champion ID. A missing key means not won.
type CompletionMap map[string]bool

// Won reports whether the champion has been won with.
func (m CompletionMap) Won(id string) bool {
	return m[id]
}

// Count returns the number of true entries.
func (m CompletionMap) Count() int {
	n := 0
	for _, won := range m {
		if won {
			n++
		}
	}
	return n
}

// Clone returns an independent copy holding only true entries.
func (m CompletionMap) Clone() CompletionMap {
	out := make(CompletionMap, len(m))
	for id, won := range m {
		if won {
			out[id] = true
		}
	}
	return out
}

// Filter holds the champion list filters.
type Filter struct {
	Search     string
	Role       string
	Completion string
}

// ProgressStats summarizes progress over the roster and toward the milestone.
// TargetPercentage is not clamped and exceeds 100 past the milestone.
type ProgressStats struct {
	Completed        int  `json:"completed"`
	Total            int  `json:"total"`
	Percentage       int  `json:"percentage"`
	TargetPercentage int  `json:"targetPercentage"`
	Remaining        int  `json:"remaining"`
	IsTargetReached  bool `json:"isTargetReached"`
}

// CategoryStat holds per-role aggregates. Percentage is the role's share of all
// completions; CompletionPercentage is wins over the role's champion count.
type CategoryStat struct {
	Name                 string `json:"name"`
	Wins                 int    `json:"wins"`
	Percentage           int    `json:"percentage"`
	Total                int    `json:"total"`
	CompletionPercentage int    `json:"completionPercentage"`
}

// CategoryStats lists aggregates in Categories order.
type CategoryStats []CategoryStat

// Get returns the aggregate for a role name.
func (s CategoryStats) Get(name string) (CategoryStat, bool) {
	for _, stat := range s {
		if stat.Name == name {
			return stat, true
		}
	}
	return CategoryStat{}, false
}

// RGB is an 8-bit color triple.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// String formats the color as a CSS rgb() value.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MilestoneStatus is the outcome of one milestone evaluation.
type MilestoneStatus struct {
	HasReached bool
	ShouldShow bool
	ShouldHide bool
	// Progress is completed/target clamped to [0,1], for bar fills.
	Progress float64
}

// SegmentedProgress describes the two-part progress bar: up to the milestone, then beyond it.
type SegmentedProgress struct {
	Segment  int
	Progress float64
	Color    RGB
	Position float64
}

// TimeEstimate projects the time left to finish the roster.
type TimeEstimate struct {
	Completed     int
	Remaining     int
	Total         int
	RemainingTime time.Duration
	Hours         int
	Days          int
}

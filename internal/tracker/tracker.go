// Package tracker owns the application state: roster, completion map and the
// persisted milestone flag. All statistics are recomputed from this state on
// every call.
package tracker

import (
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/verte-zerg/arenatrack/internal/model"
	"github.com/verte-zerg/arenatrack/internal/roster"
	"github.com/verte-zerg/arenatrack/internal/stats"
)

// MilestoneEvent tells the presentation layer what to do with the celebration.
type MilestoneEvent int

const (
	// MilestoneNone means no change.
	MilestoneNone MilestoneEvent = iota
	// MilestoneShow means the milestone was just reached.
	MilestoneShow
	// MilestoneHide means the milestone is no longer met.
	MilestoneHide
)

func (e MilestoneEvent) String() string {
	switch e {
	case MilestoneShow:
		return "show"
	case MilestoneHide:
		return "hide"
	default:
		return "none"
	}
}

// Snapshot is the full set of derived values for the current state.
type Snapshot struct {
	stats.Report
	Milestone model.MilestoneStatus
}

// Update is the result of a state change.
type Update struct {
	Snapshot  Snapshot
	Milestone MilestoneEvent
}

// Tracker is the single owner of mutable state. It is not safe for concurrent use.
type Tracker struct {
	records  records
	target   int
	roster   []model.Champion
	wins     model.CompletionMap
	reached  bool
	gridSize string
}

// New loads persisted state. Unreadable or malformed records yield defaults.
func New(ctx context.Context, kv KV, target int) *Tracker {
	if target <= 0 {
		target = model.DefaultTarget
	}
	r := records{kv: kv}
	return &Tracker{
		records:  r,
		target:   target,
		wins:     r.loadWins(ctx),
		reached:  r.loadMilestone(ctx),
		gridSize: r.loadGridSize(ctx),
	}
}

// Target returns the milestone target.
func (t *Tracker) Target() int {
	return t.target
}

// SetRoster replaces the session roster.
func (t *Tracker) SetRoster(champions []model.Champion) {
	t.roster = champions
}

// Roster returns the session roster. Callers must not modify it.
func (t *Tracker) Roster() []model.Champion {
	return t.roster
}

// Completed reports whether the champion has been won with.
func (t *Tracker) Completed(id string) bool {
	return t.wins.Won(id)
}

// Completions returns a copy of the completion map.
func (t *Tracker) Completions() model.CompletionMap {
	return t.wins.Clone()
}

// Filter applies the champion list filters to the roster.
func (t *Tracker) Filter(f model.Filter) []model.Champion {
	return roster.Filter(t.roster, f, t.wins)
}

// Snapshot recomputes every statistic.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Report:    stats.BuildReport(t.roster, t.wins, t.target),
		Milestone: stats.CalculateMilestoneStatus(t.wins.Count(), t.target, t.reached),
	}
}

// Evaluate runs the milestone check and applies its side effects: the flag is
// persisted whenever the celebration is shown or retracted.
func (t *Tracker) Evaluate(ctx context.Context) MilestoneEvent {
	status := stats.CalculateMilestoneStatus(t.wins.Count(), t.target, t.reached)
	switch {
	case status.ShouldShow:
		t.reached = true
		t.records.saveMilestone(ctx, true)
		slog.Info("milestone reached", "target", t.target)
		return MilestoneShow
	case status.ShouldHide:
		t.reached = false
		t.records.saveMilestone(ctx, false)
		slog.Info("milestone no longer met", "target", t.target)
		return MilestoneHide
	default:
		return MilestoneNone
	}
}

// Toggle flips the completion of one champion, persists the map and
// re-evaluates the milestone.
func (t *Tracker) Toggle(ctx context.Context, id string) Update {
	if t.wins.Won(id) {
		delete(t.wins, id)
	} else {
		t.wins[id] = true
	}
	t.records.saveWins(ctx, t.wins)
	return t.update(ctx)
}

// Reset clears every win.
func (t *Tracker) Reset(ctx context.Context) Update {
	t.wins = model.CompletionMap{}
	t.records.saveWins(ctx, t.wins)
	return t.update(ctx)
}

// ClearAll removes wins and the milestone flag from storage. The grid size is
// a display preference and survives.
func (t *Tracker) ClearAll(ctx context.Context) {
	t.wins = model.CompletionMap{}
	t.reached = false
	t.records.remove(ctx, WinsKey)
	t.records.remove(ctx, MilestoneKey)
}

// GridSize returns the champion list density preference.
func (t *Tracker) GridSize() string {
	return t.gridSize
}

// SetGridSize stores the density preference; unknown sizes are ignored.
func (t *Tracker) SetGridSize(ctx context.Context, size string) {
	if !validGridSize(size) {
		return
	}
	t.gridSize = size
	t.records.set(ctx, GridSizeKey, size)
}

func (t *Tracker) update(ctx context.Context) Update {
	event := t.Evaluate(ctx)
	return Update{Snapshot: t.Snapshot(), Milestone: event}
}

// exportData mirrors the browser tracker's backup format.
type exportData struct {
	Wins             model.CompletionMap `json:"wins"`
	GridSize         string              `json:"gridSize"`
	MilestoneReached bool                `json:"milestoneReached"`
}

type importData struct {
	Wins             map[string]bool `json:"wins"`
	GridSize         string          `json:"gridSize"`
	MilestoneReached *bool           `json:"milestoneReached"`
}

// Export returns the persisted state as indented JSON.
func (t *Tracker) Export() ([]byte, error) {
	data, err := json.MarshalIndent(exportData{
		Wins:             t.wins.Clone(),
		GridSize:         t.gridSize,
		MilestoneReached: t.reached,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// Import restores state from an Export document. Missing fields keep their
// current values. Malformed input is reported and leaves the state untouched.
func (t *Tracker) Import(ctx context.Context, data []byte) (Update, error) {
	var in importData
	if err := json.Unmarshal(data, &in); err != nil {
		return Update{}, fmt.Errorf("%w: %w", ErrMalformedPersistedData, err)
	}
	if in.Wins != nil {
		t.wins = model.CompletionMap(in.Wins).Clone()
		t.records.saveWins(ctx, t.wins)
	}
	if in.GridSize != "" {
		t.SetGridSize(ctx, in.GridSize)
	}
	if in.MilestoneReached != nil {
		t.reached = *in.MilestoneReached
		t.records.saveMilestone(ctx, t.reached)
	}
	return t.update(ctx), nil
}

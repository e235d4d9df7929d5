package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/verte-zerg/arenatrack/internal/model"
)

type memKV map[string]string

func (m memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

func (m memKV) Remove(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

type brokenKV struct{}

var errDisabled = errors.New("storage disabled")

func (brokenKV) Get(context.Context, string) (string, bool, error) { return "", false, errDisabled }
func (brokenKV) Set(context.Context, string, string) error         { return errDisabled }
func (brokenKV) Remove(context.Context, string) error              { return errDisabled }

func makeRoster(n int) []model.Champion {
	champs := make([]model.Champion, n)
	for i := range champs {
		role := model.Categories[i%len(model.Categories)]
		champs[i] = model.Champion{
			ID:    fmt.Sprintf("C%03d", i),
			Name:  fmt.Sprintf("Champ %03d", i),
			Roles: []string{role},
			Key:   fmt.Sprint(i + 1),
		}
	}
	return champs
}

func TestNewLoadsPersistedState(t *testing.T) {
	kv := memKV{
		WinsKey:      `{"C001":true,"C002":false}`,
		MilestoneKey: "true",
		GridSizeKey:  GridSmall,
	}
	tr := New(context.Background(), kv, 60)
	assert.True(t, tr.Completed("C001"))
	assert.False(t, tr.Completed("C002"))
	assert.Equal(t, model.CompletionMap{"C001": true}, tr.Completions())
	assert.True(t, tr.reached)
	assert.Equal(t, GridSmall, tr.GridSize())
}

func TestNewMalformedWinsTreatedAsEmpty(t *testing.T) {
	for _, raw := range []string{`not json`, `null`, `["C001"]`, `{"C001": 1}`} {
		tr := New(context.Background(), memKV{WinsKey: raw}, 60)
		assert.Empty(t, tr.Completions(), "raw %q", raw)
	}
}

func TestNewDefaults(t *testing.T) {
	tr := New(context.Background(), memKV{GridSizeKey: "huge"}, 0)
	assert.Equal(t, model.DefaultTarget, tr.Target())
	assert.Equal(t, GridMedium, tr.GridSize())
	assert.False(t, tr.reached)
}

func TestBrokenStorageDoesNotCrash(t *testing.T) {
	ctx := context.Background()
	tr := New(ctx, brokenKV{}, 2)
	tr.SetRoster(makeRoster(4))

	tr.Toggle(ctx, "C000")
	up := tr.Toggle(ctx, "C001")
	assert.Equal(t, MilestoneShow, up.Milestone)
	assert.Equal(t, 2, up.Snapshot.Progress.Completed)
	tr.SetGridSize(ctx, GridSmall)
	tr.ClearAll(ctx)
	assert.Empty(t, tr.Completions())
}

func TestTogglePersistsAndRecomputes(t *testing.T) {
	ctx := context.Background()
	kv := memKV{}
	tr := New(ctx, kv, 60)
	tr.SetRoster(makeRoster(167))

	up := tr.Toggle(ctx, "C010")
	assert.Equal(t, 1, up.Snapshot.Progress.Completed)
	assert.Equal(t, 167, up.Snapshot.Progress.Total)
	assert.Equal(t, 59, up.Snapshot.Progress.Remaining)
	assert.Equal(t, `{"C010":true}`, kv[WinsKey])

	up = tr.Toggle(ctx, "C010")
	assert.Zero(t, up.Snapshot.Progress.Completed)
	assert.Equal(t, `{}`, kv[WinsKey])
}

func TestToggleTwiceRestoresState(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		champs := makeRoster(30)
		tr := New(ctx, memKV{}, 10)
		tr.SetRoster(champs)
		for _, c := range champs {
			if rapid.Bool().Draw(rt, c.ID) {
				tr.Toggle(ctx, c.ID)
			}
		}
		id := champs[rapid.IntRange(0, len(champs)-1).Draw(rt, "pick")].ID
		before := tr.Snapshot()
		wasWon := tr.Completed(id)

		tr.Toggle(ctx, id)
		if tr.Completed(id) == wasWon {
			rt.Fatalf("toggle did not flip %s", id)
		}
		tr.Toggle(ctx, id)

		if tr.Completed(id) != wasWon {
			rt.Fatalf("double toggle changed %s", id)
		}
		after := tr.Snapshot()
		if after.Progress != before.Progress {
			rt.Fatalf("progress changed: %+v -> %+v", before.Progress, after.Progress)
		}
		for i := range before.Categories {
			if before.Categories[i] != after.Categories[i] {
				rt.Fatalf("category changed: %+v -> %+v", before.Categories[i], after.Categories[i])
			}
		}
	})
}

func TestMilestoneLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := memKV{}
	tr := New(ctx, kv, 3)
	tr.SetRoster(makeRoster(10))

	assert.Equal(t, MilestoneNone, tr.Toggle(ctx, "C000").Milestone)
	assert.Equal(t, MilestoneNone, tr.Toggle(ctx, "C001").Milestone)

	up := tr.Toggle(ctx, "C002")
	assert.Equal(t, MilestoneShow, up.Milestone)
	assert.True(t, up.Snapshot.Progress.IsTargetReached)
	assert.Equal(t, "true", kv[MilestoneKey])

	assert.Equal(t, MilestoneNone, tr.Toggle(ctx, "C003").Milestone)
	assert.Equal(t, MilestoneNone, tr.Toggle(ctx, "C003").Milestone)

	up = tr.Toggle(ctx, "C000")
	assert.Equal(t, MilestoneHide, up.Milestone)
	assert.Equal(t, "false", kv[MilestoneKey])
	assert.False(t, tr.reached)

	assert.Equal(t, MilestoneShow, tr.Toggle(ctx, "C000").Milestone)
}

func TestEvaluateAtStartup(t *testing.T) {
	ctx := context.Background()
	kv := memKV{WinsKey: `{"C000":true}`, MilestoneKey: "true"}
	tr := New(ctx, kv, 2)
	assert.Equal(t, MilestoneHide, tr.Evaluate(ctx))
	assert.Equal(t, MilestoneNone, tr.Evaluate(ctx))
	assert.Equal(t, "false", kv[MilestoneKey])
}

func TestResetClearsWinsAndRetractsMilestone(t *testing.T) {
	ctx := context.Background()
	kv := memKV{}
	tr := New(ctx, kv, 1)
	tr.SetRoster(makeRoster(5))
	require.Equal(t, MilestoneShow, tr.Toggle(ctx, "C004").Milestone)

	up := tr.Reset(ctx)
	assert.Equal(t, MilestoneHide, up.Milestone)
	assert.Zero(t, up.Snapshot.Progress.Completed)
	assert.Equal(t, `{}`, kv[WinsKey])
}

func TestClearAllKeepsGridSize(t *testing.T) {
	ctx := context.Background()
	kv := memKV{}
	tr := New(ctx, kv, 1)
	tr.SetGridSize(ctx, GridSmall)
	tr.Toggle(ctx, "C000")

	tr.ClearAll(ctx)
	_, hasWins := kv[WinsKey]
	_, hasFlag := kv[MilestoneKey]
	assert.False(t, hasWins)
	assert.False(t, hasFlag)
	assert.Equal(t, GridSmall, kv[GridSizeKey])
}

func TestFilterUsesCurrentCompletions(t *testing.T) {
	ctx := context.Background()
	tr := New(ctx, memKV{}, 60)
	tr.SetRoster(makeRoster(6))
	tr.Toggle(ctx, "C002")

	won := tr.Filter(model.Filter{Completion: model.CompletionWon})
	require.Len(t, won, 1)
	assert.Equal(t, "C002", won[0].ID)
	assert.Len(t, tr.Filter(model.Filter{}), 6)
}

func TestSnapshotEmptyRoster(t *testing.T) {
	tr := New(context.Background(), memKV{}, 60)
	snap := tr.Snapshot()
	assert.Zero(t, snap.Progress.Percentage)
	assert.Zero(t, snap.Progress.Total)
	assert.Equal(t, 60, snap.Progress.Remaining)
	assert.Len(t, snap.Categories, len(model.Categories))
}

func TestSetGridSizeIgnoresUnknown(t *testing.T) {
	ctx := context.Background()
	kv := memKV{}
	tr := New(ctx, kv, 60)
	tr.SetGridSize(ctx, "tiny")
	assert.Equal(t, GridMedium, tr.GridSize())
	_, ok := kv[GridSizeKey]
	assert.False(t, ok)
}

package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// Persistence keys, shared with the browser tracker's export format.
const (
	WinsKey      = "arenaWinsByChampion"
	MilestoneKey = "milestone60"
	GridSizeKey  = "gridSize"
)

// Grid sizes for the champion list.
const (
	GridSmall  = "small"
	GridMedium = "medium"
)

var (
	// ErrPersistenceUnavailable reports a failing key-value backend.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrMalformedPersistedData reports a stored record that does not decode.
	ErrMalformedPersistedData = errors.New("malformed persisted data")
)

// KV is the durability backend for tracker records.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// records reads and writes the logical records. Failures never escape: reads
// fall back to defaults and writes are dropped, both logged.
type records struct {
	kv KV
}

func (r records) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		slog.Error("failed to read record", "key", key, "err", fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err))
		return "", false
	}
	return value, ok
}

func (r records) set(ctx context.Context, key, value string) {
	if err := r.kv.Set(ctx, key, value); err != nil {
		slog.Error("failed to write record", "key", key, "err", fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err))
	}
}

func (r records) remove(ctx context.Context, key string) {
	if err := r.kv.Remove(ctx, key); err != nil {
		slog.Error("failed to remove record", "key", key, "err", fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err))
	}
}

func (r records) loadWins(ctx context.Context) model.CompletionMap {
	raw, ok := r.get(ctx, WinsKey)
	if !ok || raw == "" {
		return model.CompletionMap{}
	}
	wins, err := decodeWins([]byte(raw))
	if err != nil {
		slog.Warn("ignoring stored wins", "err", err)
		return model.CompletionMap{}
	}
	return wins
}

func (r records) saveWins(ctx context.Context, wins model.CompletionMap) {
	data, err := json.Marshal(wins)
	if err != nil {
		slog.Error("failed to encode wins", "err", err)
		return
	}
	r.set(ctx, WinsKey, string(data))
}

func (r records) loadMilestone(ctx context.Context) bool {
	raw, _ := r.get(ctx, MilestoneKey)
	return raw == "true"
}

func (r records) saveMilestone(ctx context.Context, reached bool) {
	r.set(ctx, MilestoneKey, strconv.FormatBool(reached))
}

func (r records) loadGridSize(ctx context.Context) string {
	raw, _ := r.get(ctx, GridSizeKey)
	if !validGridSize(raw) {
		return GridMedium
	}
	return raw
}

func validGridSize(size string) bool {
	return size == GridSmall || size == GridMedium
}

// decodeWins parses a JSON object of champion ID to boolean, keeping only true
// entries. Anything else is ErrMalformedPersistedData.
func decodeWins(data []byte) (model.CompletionMap, error) {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPersistedData, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: wins must be an object", ErrMalformedPersistedData)
	}
	return model.CompletionMap(raw).Clone(), nil
}

package ddragon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// RosterCache stores rosters per version.
type RosterCache interface {
	SaveRoster(ctx context.Context, version string, champions []model.Champion) error
	LoadRoster(ctx context.Context, version string) ([]model.Champion, error)
	LatestRosterVersion(ctx context.Context) (string, bool, error)
}

// Result is a loaded roster and where it came from.
type Result struct {
	Champions []model.Champion
	Version   string
	Cached    bool
}

// CachedProvider serves fresh rosters and falls back to the cache when the
// source is unreachable.
type CachedProvider struct {
	source Provider
	cache  RosterCache
}

// NewCachedProvider wraps source with cache.
func NewCachedProvider(source Provider, cache RosterCache) *CachedProvider {
	return &CachedProvider{source: source, cache: cache}
}

// Roster implements Provider.
func (p *CachedProvider) Roster(ctx context.Context, version string) ([]model.Champion, error) {
	res, err := p.Load(ctx, version)
	if err != nil {
		return nil, err
	}
	return res.Champions, nil
}

// Load fetches version from the source and caches it. When the source fails it
// serves the cached roster for version, then the latest cached version. With
// nothing cached the source error is returned.
func (p *CachedProvider) Load(ctx context.Context, version string) (Result, error) {
	champions, err := p.source.Roster(ctx, version)
	if err == nil {
		if cerr := p.cache.SaveRoster(ctx, version, champions); cerr != nil {
			slog.Warn("failed to cache roster", "version", version, "err", cerr)
		}
		return Result{Champions: champions, Version: version}, nil
	}
	if !errors.Is(err, ErrRosterUnavailable) {
		return Result{}, err
	}

	cached, cerr := p.cache.LoadRoster(ctx, version)
	if cerr == nil && len(cached) > 0 {
		slog.Warn("serving cached roster", "version", version, "err", err)
		return Result{Champions: cached, Version: version, Cached: true}, nil
	}
	latest, ok, lerr := p.cache.LatestRosterVersion(ctx)
	if lerr != nil || !ok {
		return Result{}, err
	}
	cached, cerr = p.cache.LoadRoster(ctx, latest)
	if cerr != nil {
		return Result{}, fmt.Errorf("%w (cache: %v)", err, cerr)
	}
	if len(cached) == 0 {
		return Result{}, err
	}
	slog.Warn("serving cached roster from another version", "requested", version, "version", latest, "err", err)
	return Result{Champions: cached, Version: latest, Cached: true}, nil
}

// Package ddragon loads the champion roster from Riot's Data Dragon CDN.
package ddragon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/verte-zerg/arenatrack/internal/model"
	"github.com/verte-zerg/arenatrack/internal/roster"
)

// ErrRosterUnavailable reports a network, HTTP or decoding failure while fetching the roster.
var ErrRosterUnavailable = errors.New("roster unavailable")

const (
	// DefaultBaseURL is the public Data Dragon endpoint.
	DefaultBaseURL = "https://ddragon.leagueoflegends.com"
	// DefaultLocale selects champion names in English.
	DefaultLocale = "en_US"

	requestTimeout = 30 * time.Second
)

// Provider returns the roster for a Data Dragon version.
type Provider interface {
	Roster(ctx context.Context, version string) ([]model.Champion, error)
}

// Client talks to Data Dragon.
type Client struct {
	baseURL string
	locale  string
	http    *http.Client
}

// NewClient builds a client; empty arguments fall back to the public defaults.
func NewClient(baseURL, locale string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if locale == "" {
		locale = DefaultLocale
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		locale:  locale,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type championsResponse struct {
	Version string                     `json:"version"`
	Data    map[string]championPayload `json:"data"`
}

type championPayload struct {
	ID   string   `json:"id"`
	Key  string   `json:"key"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// LatestVersion returns the newest published version.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := c.getJSON(ctx, c.baseURL+"/api/versions.json", &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 || versions[0] == "" {
		return "", fmt.Errorf("no versions available")
	}
	return versions[0], nil
}

// ResolveVersion returns hint when set, otherwise the latest version, falling
// back to model.DefaultVersion when the version list cannot be fetched.
func (c *Client) ResolveVersion(ctx context.Context, hint string) string {
	if hint != "" {
		return hint
	}
	version, err := c.LatestVersion(ctx)
	if err != nil {
		slog.Warn("failed to load latest version, using fallback", "fallback", model.DefaultVersion, "err", err)
		return model.DefaultVersion
	}
	return version
}

// Roster fetches and validates the champion list for version, sorted by name.
// Every failure wraps ErrRosterUnavailable.
func (c *Client) Roster(ctx context.Context, version string) ([]model.Champion, error) {
	if version == "" {
		return nil, fmt.Errorf("%w: version is required", ErrRosterUnavailable)
	}
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.baseURL, version, c.locale)
	var payload championsResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterUnavailable, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: empty champion data for %s", ErrRosterUnavailable, version)
	}
	champions := make([]model.Champion, 0, len(payload.Data))
	for _, p := range payload.Data {
		champ := model.Champion{ID: p.ID, Name: p.Name, Roles: p.Tags, Key: p.Key}
		if champ.Roles == nil {
			champ.Roles = []string{}
		}
		if !roster.Valid(champ) {
			slog.Debug("skipping invalid champion record", "id", p.ID)
			continue
		}
		champions = append(champions, champ)
	}
	sort.Slice(champions, func(i, j int) bool {
		if champions[i].Name == champions[j].Name {
			return champions[i].ID < champions[j].ID
		}
		return champions[i].Name < champions[j].Name
	})
	return champions, nil
}

// ImageURL returns the square portrait URL for a champion.
func (c *Client) ImageURL(version, id string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", c.baseURL, version, id)
}

// SplashURL returns the default splash art URL for a champion.
func (c *Client) SplashURL(id string) string {
	return fmt.Sprintf("%s/cdn/img/champion/splash/%s_0.jpg", c.baseURL, id)
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status for %s: %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

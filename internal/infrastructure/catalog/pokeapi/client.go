// Package pokeapi implements ports.CatalogClient against the PokeAPI REST service.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

const (
	// DefaultBaseURL is the public PokeAPI endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 10 * time.Second
	// DefaultCacheTTL is the freshness window of cached responses.
	DefaultCacheTTL = time.Hour

	artworkKey   = "official-artwork"
	languageEN   = "en"
	maxBodyBytes = 4 << 20
)

var errNotFound = errors.New("not found")

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
	Burst             int
	CacheTTL          time.Duration
	HTTPClient        *http.Client // overrides Timeout when set
}

// Client fetches catalog data over HTTP with a read-through response cache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   ports.ResponseCache
	ttl     time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
	maxBody int64
}

var _ ports.CatalogClient = (*Client)(nil)

// NewClient creates a new PokeAPI client. cache may be nil to disable caching.
func NewClient(opts Options, cache ports.ResponseCache, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		cache:   cache,
		ttl:     opts.CacheTTL,
		limiter: limiter,
		logger:  logger,
		maxBody: maxBodyBytes,
	}
}

// FetchIndex fetches one page of the entity index.
func (c *Client) FetchIndex(ctx context.Context, limit, offset int) ([]entities.IndexEntry, error) {
	u := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)

	var payload indexPayload
	if err := c.getJSON(ctx, u, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, &entities.FetchError{URL: u, StatusCode: http.StatusNotFound}
		}
		return nil, err
	}

	index := make([]entities.IndexEntry, 0, len(payload.Results))
	for _, r := range payload.Results {
		id, err := idFromURL(r.URL)
		if err != nil {
			c.logger.Warn("skipping index entry", zap.String("name", r.Name), zap.Error(err))
			continue
		}
		index = append(index, entities.IndexEntry{ID: id, RawName: r.Name, DetailURL: r.URL})
	}
	return index, nil
}

// FetchTypes fetches the type tags of the entity at detailURL, in slot order.
func (c *Client) FetchTypes(ctx context.Context, detailURL string) ([]string, error) {
	var payload typesPayload
	if err := c.getJSON(ctx, detailURL, &payload); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, &entities.FetchError{URL: detailURL, StatusCode: http.StatusNotFound}
		}
		return nil, err
	}
	return typeNames(payload.Types), nil
}

// FetchDetail fetches the full record for an id or name, including its
// English description. Returns nil if the entity does not exist.
func (c *Client) FetchDetail(ctx context.Context, identifier string) (*entities.EntityDetail, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, nil
	}

	u := c.baseURL + "/pokemon/" + url.PathEscape(identifier)

	var p pokemonPayload
	if err := c.getJSON(ctx, u, &p); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}

	description, err := c.fetchDescription(ctx, p.Species.URL)
	if err != nil {
		return nil, err
	}

	detail := &entities.EntityDetail{
		ID:          p.ID,
		Name:        entities.Capitalize(p.Name),
		ImageURL:    p.Sprites.Other[artworkKey].FrontDefault,
		Types:       typeNames(p.Types),
		Stats:       make([]entities.Stat, 0, len(p.Stats)),
		Height:      p.Height,
		Weight:      p.Weight,
		Description: description,
	}
	if detail.ImageURL == "" {
		detail.ImageURL = p.Sprites.FrontDefault
	}
	for _, s := range p.Stats {
		detail.Stats = append(detail.Stats, entities.Stat{Name: entities.StatName(s.Stat.Name), BaseStat: s.BaseStat})
	}

	return detail, nil
}

func (c *Client) fetchDescription(ctx context.Context, speciesURL string) (string, error) {
	if speciesURL == "" {
		return entities.DefaultDescription, nil
	}

	var species speciesPayload
	if err := c.getJSON(ctx, speciesURL, &species); err != nil {
		if errors.Is(err, errNotFound) {
			return "", &entities.FetchError{URL: speciesURL, StatusCode: http.StatusNotFound}
		}
		return "", err
	}

	for _, e := range species.FlavorTextEntries {
		if e.Language.Name == languageEN {
			return cleanFlavorText(e.FlavorText), nil
		}
	}
	return entities.DefaultDescription, nil
}

// getJSON fetches u and decodes the body into v. A network body is cached
// only once it decodes.
func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	body, cached, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &entities.FetchError{URL: u, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if c.cache != nil && !cached {
		if err := c.cache.Put(ctx, u, body); err != nil {
			c.logger.Warn("cache write failed", zap.String("url", u), zap.Error(err))
		}
	}
	return nil
}

// get returns the body of u from the cache or the network, and whether it
// came from the cache. A 404 yields errNotFound; any other failure is a
// *entities.FetchError.
func (c *Client) get(ctx context.Context, u string) ([]byte, bool, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, u, c.ttl)
		switch {
		case err != nil:
			c.logger.Warn("cache read failed", zap.String("url", u), zap.Error(err))
		case ok:
			return body, true, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, false, &entities.FetchError{URL: u, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, &entities.FetchError{URL: u, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, false, &entities.FetchError{URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, &entities.FetchError{URL: u, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, false, &entities.FetchError{URL: u, Err: fmt.Errorf("reading body: %w", err)}
	}
	if int64(len(body)) > c.maxBody {
		return nil, false, &entities.FetchError{URL: u, Err: fmt.Errorf("response exceeds %d bytes", c.maxBody)}
	}

	c.logger.Debug("fetched", zap.String("url", u), zap.Int("bytes", len(body)))
	return body, false, nil
}

// idFromURL extracts the numeric id from a resource URL such as
// https://pokeapi.co/api/v2/pokemon/25/.
func idFromURL(u string) (int, error) {
	trimmed := strings.TrimRight(u, "/")
	seg := trimmed[strings.LastIndex(trimmed, "/")+1:]
	id, err := strconv.Atoi(seg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("no id in resource url %q", u)
	}
	return id, nil
}

func typeNames(slots []typeSlot) []string {
	sorted := slices.Clone(slots)
	slices.SortStableFunc(sorted, func(a, b typeSlot) int { return a.Slot - b.Slot })

	names := make([]string, 0, len(sorted))
	for _, s := range sorted {
		names = append(names, s.Type.Name)
	}
	return names
}

// cleanFlavorText replaces the form feeds and newlines embedded in provider text with spaces.
func cleanFlavorText(s string) string {
	return strings.NewReplacer("\f", " ", "\n", " ").Replace(s)
}

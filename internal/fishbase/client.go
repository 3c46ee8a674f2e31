// Package fishbase is a thin client for the external rfishbase lookup
// service. Calls carry a fixed wall-clock timeout and fail closed; there are
// no retries.
package fishbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"divelog/internal/cache"
	apperrors "divelog/internal/errors"
	"divelog/internal/logutil"
)

const lookupCacheTTL = time.Hour

// Fish is one normalized lookup result.
type Fish struct {
	ScientificName string  `json:"scientific_name"`
	CommonName     *string `json:"common_name"`
	Image          *string `json:"image"`
}

// speciesRow mirrors the relevant columns of the upstream data frame.
type speciesRow struct {
	Genus            string `json:"Genus"`
	Species          string `json:"Species"`
	FBname           string `json:"FBname"`
	ComName          string `json:"ComName"`
	PicPreferredName string `json:"PicPreferredName"`
}

// Client queries the rfishbase service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Client
}

// New builds a Client with the given base URL and request timeout.
func New(baseURL string, timeout time.Duration, cache *cache.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
	}
}

// Search looks up species by name. Responses are cached; upstream failures of
// any kind surface as a gateway error.
func (c *Client) Search(ctx context.Context, query string) ([]Fish, error) {
	key := "fishbase:search:" + strings.ToLower(query)
	if data, _ := c.cache.Get(ctx, key); data != nil {
		var cached []Fish
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	reqURL := fmt.Sprintf("%s/species?name=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log := logutil.GetOrDefault(ctx)
		log.Warn().Err(err).Str("query", query).Msg("fishbase request failed")
		return nil, apperrors.ErrLookupUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log := logutil.GetOrDefault(ctx)
		log.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("fishbase returned non-200")
		return nil, apperrors.ErrLookupUnavailable
	}

	var rows []speciesRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, apperrors.ErrLookupUnavailable
	}

	fishes := make([]Fish, 0, len(rows))
	for _, row := range rows {
		fishes = append(fishes, row.normalize())
	}

	if payload, err := json.Marshal(fishes); err == nil {
		_ = c.cache.Set(ctx, key, payload, lookupCacheTTL)
	}
	return fishes, nil
}

// Details returns the upstream detail record for a spec code, passed through
// verbatim. Upstream answers non-200 for unknown codes, so that case is a
// not-found rather than a gateway failure.
func (c *Client) Details(ctx context.Context, specCode int) (json.RawMessage, error) {
	key := fmt.Sprintf("fishbase:details:%d", specCode)
	if data, _ := c.cache.Get(ctx, key); data != nil {
		return json.RawMessage(data), nil
	}

	reqURL := fmt.Sprintf("%s/species/details?specCode=%d", c.baseURL, specCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log := logutil.GetOrDefault(ctx)
		log.Warn().Err(err).Int("spec_code", specCode).Msg("fishbase request failed")
		return nil, apperrors.ErrLookupUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrFishNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(body) {
		return nil, apperrors.ErrLookupUnavailable
	}

	_ = c.cache.Set(ctx, key, body, lookupCacheTTL)
	return json.RawMessage(body), nil
}

func (r speciesRow) normalize() Fish {
	fish := Fish{
		ScientificName: strings.TrimSpace(r.Genus + " " + r.Species),
	}
	if r.FBname != "" {
		common := r.FBname
		fish.CommonName = &common
	} else if r.ComName != "" {
		common := r.ComName
		fish.CommonName = &common
	}
	if r.PicPreferredName != "" {
		image := r.PicPreferredName
		fish.Image = &image
	}
	return fish
}

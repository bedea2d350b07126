// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNoDataProvider is returned when Recommend is called before
// SetDataProvider.
var ErrNoDataProvider = errors.New("data provider not set")

// Engine builds profiles, finds similar users, scores candidates and
// diversifies the ranked list. It is safe for concurrent use; all
// per-request state is private to the request.
type Engine struct {
	config *Config
	logger zerolog.Logger

	rerankers []Reranker
	rrMu      sync.RWMutex

	noise   NoiseSource
	noiseMu sync.RWMutex

	now func() time.Time

	requestCount atomic.Int64
	classicCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64

	// results is nil unless Config.Cache.Enabled or SetResultStore.
	results ResultStore

	dataProvider DataProvider
}

// Metrics contains engine counters for observability.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	ClassicCount int64 `json:"classic_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	ErrorCount   int64 `json:"error_count"`
}

// NewEngine creates a new recommendation engine with the overlap diversity
// filter installed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		rerankers: []Reranker{NewOverlapFilter()},
		noise:     newLockedSource(seed),
		now:       time.Now,
	}

	if cfg.Cache.Enabled {
		e.results = NewMemoryStore(cfg.Cache.TTL)
	}

	return e, nil
}

// SetDataProvider sets the data provider used for every request.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetResultStore replaces the result cache. A nil store disables caching.
// Like SetDataProvider it must be called before the engine serves requests.
func (e *Engine) SetResultStore(store ResultStore) {
	e.results = store
}

// SetNoiseSource replaces the random source behind the noise term.
// Tests use ConstantNoise to make scores reproducible.
func (e *Engine) SetNoiseSource(src NoiseSource) {
	e.noiseMu.Lock()
	defer e.noiseMu.Unlock()
	e.noise = src
}

func (e *Engine) noiseSource() NoiseSource {
	e.noiseMu.RLock()
	defer e.noiseMu.RUnlock()
	return e.noise
}

// RegisterReranker appends a reranker after the diversity filter.
func (e *Engine) RegisterReranker(rr Reranker) {
	e.rrMu.Lock()
	defer e.rrMu.Unlock()

	e.rerankers = append(e.rerankers, rr)
	e.logger.Info().
		Str("reranker", rr.Name()).
		Msg("registered reranker")
}

// Recommend generates smart recommendations for a user.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req, ModeSmart)
	logger.Debug().Msg("processing recommendation request")

	if e.dataProvider == nil {
		e.errorCount.Add(1)
		return nil, ErrNoDataProvider
	}

	if resp := e.tryGetCachedResponse(ctx, req, start, logger); resp != nil {
		return resp, nil
	}

	profile, err := e.buildProfile(ctx, req.UserID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("build profile: %w", err)
	}

	similar, err := e.FindSimilarUsers(ctx, profile)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("find similar users: %w", err)
	}

	candidates, err := e.getCandidates(ctx, req.UserID, profile)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	if len(candidates) == 0 {
		logger.Debug().Msg("no candidates available")
		resp := e.emptyResponse(req, ModeSmart, start)
		resp.Metadata.SimilarUsers = len(similar)
		resp.Metadata.ActivityScore = profile.ActivityScore
		return resp, nil
	}

	scored := e.scoreCandidates(candidates, profile, similar)
	sortByScore(scored)
	scoredCount := len(scored)

	scored = e.applyRerankers(ctx, scored, e.config.DiversityCap)
	if len(scored) > e.config.MaxResults {
		scored = scored[:e.config.MaxResults]
	}

	resp := &Response{
		Items:           scored,
		TotalCandidates: len(candidates),
		Metadata:        e.buildResponseMetadata(req, ModeSmart, start),
	}
	resp.Metadata.SimilarUsers = len(similar)
	resp.Metadata.Scored = scoredCount
	resp.Metadata.ActivityScore = profile.ActivityScore
	e.cacheResponse(ctx, req.UserID, ModeSmart, resp)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("scored", scoredCount).
		Int("similar_users", len(similar)).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// RecommendIDs returns the ordered recipe identifiers recommended for a user.
func (e *Engine) RecommendIDs(ctx context.Context, userID int) ([]int, error) {
	resp, err := e.Recommend(ctx, Request{UserID: userID})
	if err != nil {
		return nil, err
	}
	return resp.RecipeIDs(), nil
}

// prepareRequest generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = "rec-" + uuid.NewString()
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request, mode Mode) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int("user_id", req.UserID).
		Str("mode", string(mode)).
		Logger()
}

// getCandidates loads the candidate pool and drops anything the user
// authored, already liked, or that is not published.
func (e *Engine) getCandidates(ctx context.Context, userID int, profile *UserProfile) ([]Recipe, error) {
	candidates, err := e.dataProvider.CandidateRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked := make(map[int]struct{}, len(profile.LikedRecipeIDs))
	for _, id := range profile.LikedRecipeIDs {
		liked[id] = struct{}{}
	}

	filtered := make([]Recipe, 0, len(candidates))
	for i := range candidates {
		r := &candidates[i]
		if !r.Published || r.AuthorID == userID {
			continue
		}
		if _, ok := liked[r.ID]; ok {
			continue
		}
		filtered = append(filtered, *r)
	}
	return filtered, nil
}

// scoreCandidates scores every candidate and keeps those with a positive
// score.
func (e *Engine) scoreCandidates(candidates []Recipe, profile *UserProfile, similar []SimilarUser) []ScoredCandidate {
	now := e.now()
	src := e.noiseSource()

	scored := make([]ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		c := ScoreCandidate(candidates[i], profile, similar, now, src)
		if c.Score > 0 {
			scored = append(scored, c)
		}
	}
	return scored
}

// sortByScore orders candidates by descending score, then ascending ID.
func sortByScore(items []ScoredCandidate) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Recipe.ID < items[j].Recipe.ID
	})
}

// applyRerankers applies the registered rerankers in order.
func (e *Engine) applyRerankers(ctx context.Context, items []ScoredCandidate, k int) []ScoredCandidate {
	e.rrMu.RLock()
	rerankers := e.rerankers
	e.rrMu.RUnlock()

	for _, rr := range rerankers {
		items = rr.Rerank(ctx, items, k)
	}
	return items
}

// buildResponseMetadata constructs response metadata.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, mode Mode, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		RequestID: req.RequestID,
		UserID:    req.UserID,
		Mode:      mode,
		LatencyMS: time.Since(start).Milliseconds(),
		Timestamp: e.now(),
	}
}

// emptyResponse returns a response with no items.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, mode Mode, start time.Time) *Response {
	return &Response{
		Items:    []ScoredCandidate{},
		Metadata: e.buildResponseMetadata(req, mode, start),
	}
}

// InvalidateUser drops any cached results for the user. Write paths that
// change the user's likes, searches or preferences must call it.
func (e *Engine) InvalidateUser(ctx context.Context, userID int) {
	if e.results == nil {
		return
	}
	if n := e.results.DeletePrefix(ctx, userCachePrefix(userID)); n > 0 {
		e.logger.Debug().Int("user_id", userID).Int("entries", n).Msg("invalidated cached recommendations")
	}
}

// PurgeExpired removes expired cache entries and returns how many were
// removed. It is a no-op when caching is disabled.
func (e *Engine) PurgeExpired() int {
	if e.results == nil {
		return 0
	}
	return e.results.Purge()
}

// CacheEnabled reports whether results are cached.
func (e *Engine) CacheEnabled() bool {
	return e.results != nil
}

func userCachePrefix(userID int) string {
	return fmt.Sprintf("user:%d:", userID)
}

func cacheKey(userID int, mode Mode) string {
	return userCachePrefix(userID) + string(mode)
}

// loadCached decodes the cached value for (userID, mode) into dst.
func (e *Engine) loadCached(ctx context.Context, userID int, mode Mode, dst any) bool {
	data, ok := e.results.Get(ctx, cacheKey(userID, mode))
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		e.logger.Warn().Err(err).Int("user_id", userID).Str("mode", string(mode)).Msg("discarding undecodable cache entry")
		return false
	}
	return true
}

// tryGetCachedResponse returns the cached smart response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(ctx context.Context, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.results == nil || req.SkipCache {
		return nil
	}

	var resp Response
	if !e.loadCached(ctx, req.UserID, ModeSmart, &resp) {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	if resp.Items == nil {
		resp.Items = []ScoredCandidate{}
	}
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return &resp
}

// cacheResponse encodes and stores v when caching is enabled.
func (e *Engine) cacheResponse(ctx context.Context, userID int, mode Mode, v any) {
	if e.results == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		e.logger.Warn().Err(err).Int("user_id", userID).Str("mode", string(mode)).Msg("failed to encode response for cache")
		return
	}
	e.results.Set(ctx, cacheKey(userID, mode), data)
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		ClassicCount: e.classicCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

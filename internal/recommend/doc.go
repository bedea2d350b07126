// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

// Package recommend implements the hybrid recipe recommendation engine.
//
// # Pipeline
//
// A smart recommendation request runs these steps in order:
//
//  1. Profile: count tags, ingredients, time buckets and difficulties over
//     the user's liked recipes, collect recent search terms, and compute an
//     activity score (BuildProfile).
//  2. Neighbors: take up to 10 users who share liked recipes, score each by
//     0.6*tag overlap + 0.4*ingredient overlap, and keep the best 5 above
//     0.3 (FindSimilarUsers, OverlapSimilarity).
//  3. Scoring: add tag, ingredient, collaborative, popularity, freshness,
//     noise and time/difficulty affinity terms (ScoreCandidate).
//  4. Ranking: keep positive scores, sort descending, run the overlap
//     diversity filter with a working cap of 15, and return 12
//     (OverlapFilter).
//
// RecommendClassic provides the older rule-based recommendations built
// from liked tags, recent searches, saved preferences and popularity.
//
// # Determinism
//
// The noise term draws from a NoiseSource. Config.Seed selects a seeded
// source; zero seeds from the clock. Tests install ConstantNoise through
// SetNoiseSource so every other term can be asserted exactly.
//
// # Caching
//
// Results are recomputed on every request unless Config.Cache.Enabled is
// set. With caching on, callers must call InvalidateUser whenever a user's
// likes, searches or preferences change; the TTL bounds staleness caused by
// other users' activity. Cached responses are JSON-encoded into a
// ResultStore: NewMemoryStore keeps them in the process, NewRedisStore
// shares them (and their invalidation) between replicas.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetDataProvider(db)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{UserID: userID})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Only the noise source and the
// optional result cache are shared between requests, and both are
// synchronized.
package recommend

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// JanitorTask is one periodic sweep. Sweep returns how many entries it
// removed; tasks without a count return 0.
type JanitorTask struct {
	Name  string
	Sweep func(ctx context.Context) (int, error)
}

// JanitorConfig controls the sweep schedule.
type JanitorConfig struct {
	// Interval between sweeps. Default: 5m.
	Interval time.Duration

	// TaskTimeout bounds a single task. Default: 30s.
	TaskTimeout time.Duration

	// SweepOnStartup runs every task once before the first tick.
	SweepOnStartup bool
}

// JanitorService runs background sweeps under suture supervision.
type JanitorService struct {
	tasks  []JanitorTask
	config JanitorConfig
	logger zerolog.Logger
	name   string
}

// NewJanitorService creates a janitor for tasks.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewJanitorService(tasks []JanitorTask, cfg JanitorConfig, logger zerolog.Logger) *JanitorService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = 30 * time.Second
	}
	return &JanitorService{
		tasks:  tasks,
		config: cfg,
		logger: logger.With().Str("service", "janitor").Logger(),
		name:   "janitor-service",
	}
}

// Serve implements suture.Service. It only returns when ctx is canceled.
func (s *JanitorService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("tasks", len(s.tasks)).
		Dur("interval", s.config.Interval).
		Msg("janitor starting")

	if s.config.SweepOnStartup {
		s.sweep(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("janitor shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs every task once. A failing task does not stop the others.
func (s *JanitorService) sweep(ctx context.Context) {
	start := time.Now()
	total := 0
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			return
		}
		n, err := s.runTask(ctx, task)
		if err != nil {
			s.logger.Warn().Err(err).Str("task", task.Name).Msg("janitor task failed")
			continue
		}
		if n > 0 {
			s.logger.Debug().Str("task", task.Name).Int("removed", n).Msg("janitor task removed entries")
		}
		total += n
	}
	s.logger.Debug().Int("removed", total).Dur("duration", time.Since(start)).Msg("janitor sweep complete")
}

func (s *JanitorService) runTask(ctx context.Context, task JanitorTask) (int, error) {
	taskCtx, cancel := context.WithTimeout(ctx, s.config.TaskTimeout)
	defer cancel()
	return task.Sweep(taskCtx)
}

// String returns the service name for logging.
func (s *JanitorService) String() string {
	return s.name
}

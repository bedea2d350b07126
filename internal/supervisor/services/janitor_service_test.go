// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func countingTask(name string, removed int, err error, calls *atomic.Int32) JanitorTask {
	return JanitorTask{
		Name: name,
		Sweep: func(context.Context) (int, error) {
			calls.Add(1)
			return removed, err
		},
	}
}

func TestNewJanitorService_Defaults(t *testing.T) {
	svc := NewJanitorService(nil, JanitorConfig{}, zerolog.Nop())
	if svc.config.Interval != 5*time.Minute {
		t.Errorf("Interval = %v, want 5m", svc.config.Interval)
	}
	if svc.config.TaskTimeout != 30*time.Second {
		t.Errorf("TaskTimeout = %v, want 30s", svc.config.TaskTimeout)
	}
	if svc.String() != "janitor-service" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestJanitorService_SweepOnStartup(t *testing.T) {
	var calls atomic.Int32
	svc := NewJanitorService(
		[]JanitorTask{countingTask("cache", 3, nil, &calls)},
		JanitorConfig{Interval: time.Hour, SweepOnStartup: true},
		zerolog.Nop(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("task calls = %d, want 1", got)
	}
}

func TestJanitorService_NoStartupSweep(t *testing.T) {
	var calls atomic.Int32
	svc := NewJanitorService(
		[]JanitorTask{countingTask("cache", 0, nil, &calls)},
		JanitorConfig{Interval: time.Hour},
		zerolog.Nop(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := calls.Load(); got != 0 {
		t.Errorf("task calls = %d, want 0", got)
	}
}

func TestJanitorService_RunsOnInterval(t *testing.T) {
	var calls atomic.Int32
	svc := NewJanitorService(
		[]JanitorTask{countingTask("limiter", 1, nil, &calls)},
		JanitorConfig{Interval: 20 * time.Millisecond},
		zerolog.Nop(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := calls.Load(); got < 2 {
		t.Errorf("task calls = %d, want at least 2", got)
	}
}

func TestJanitorService_FailingTaskDoesNotStopOthers(t *testing.T) {
	var failing, healthy atomic.Int32
	svc := NewJanitorService(
		[]JanitorTask{
			countingTask("checkpoint", 0, errors.New("disk full"), &failing),
			countingTask("cache", 2, nil, &healthy),
		},
		JanitorConfig{Interval: time.Hour, SweepOnStartup: true},
		zerolog.Nop(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if failing.Load() != 1 || healthy.Load() != 1 {
		t.Errorf("calls failing=%d healthy=%d, want 1 and 1", failing.Load(), healthy.Load())
	}
}

func TestJanitorService_TaskTimeout(t *testing.T) {
	var deadlineSeen atomic.Bool
	slow := JanitorTask{
		Name: "slow",
		Sweep: func(ctx context.Context) (int, error) {
			<-ctx.Done()
			deadlineSeen.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
			return 0, ctx.Err()
		},
	}
	svc := NewJanitorService([]JanitorTask{slow},
		JanitorConfig{Interval: time.Hour, TaskTimeout: 10 * time.Millisecond, SweepOnStartup: true},
		zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if !deadlineSeen.Load() {
		t.Error("slow task did not see its own deadline")
	}
}

// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCheckpointInterval is used when no interval is configured.
const DefaultCheckpointInterval = 5 * time.Minute

// checkpointTimeout bounds a single checkpoint.
const checkpointTimeout = time.Minute

// Checkpointer flushes the store's write-ahead log into the database file.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the embedded database on a fixed interval so
// imports and seeds are persisted without waiting for shutdown. A failed
// checkpoint is logged and retried on the next tick.
type CheckpointService struct {
	store    Checkpointer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCheckpointService creates the service; a non-positive interval uses
// DefaultCheckpointInterval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(store Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "checkpoint").Logger(),
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("checkpoint service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.checkpoint(ctx)
		}
	}
}

func (s *CheckpointService) checkpoint(ctx context.Context) {
	cpCtx, cancel := context.WithTimeout(ctx, checkpointTimeout)
	defer cancel()

	start := time.Now()
	if err := s.store.Checkpoint(cpCtx); err != nil {
		s.logger.Warn().Err(err).Msg("checkpoint failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("checkpoint complete")
}

// String names the service in supervisor logs.
func (s *CheckpointService) String() string {
	return s.name
}

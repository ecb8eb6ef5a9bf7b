// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"io"

	"github.com/rs/zerolog"
)

// closeWithLog closes a resource and logs a failure without returning it.
func closeWithLog(closer io.Closer, logger zerolog.Logger, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Str("type", resourceType).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource on an error path where a Close error is not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// rollbackQuietly rolls back tx; after a successful Commit this is a no-op.
func rollbackQuietly(tx interface{ Rollback() error }) {
	_ = tx.Rollback()
}

// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package logging provides the zerolog-based global logger used across Ojakgyo.

The logger is configured once from main via Init and read everywhere else through
the package-level helpers:

	logging.Init(logging.Config{Level: "info", Format: "json"})
	logging.Info().Str("district", "강남구").Msg("catalog loaded")

Request-scoped logging picks up the request and correlation IDs placed in the
context by the HTTP middleware:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("weather lookup degraded")

Components that need their own logger receive a zerolog.Logger by value and
derive a child with a component field (see WithComponent).

SlogHandler bridges log/slog consumers (the suture supervisor's event hook) into
the same zerolog output.
*/
package logging

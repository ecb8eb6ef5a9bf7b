// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package supervisor runs the long-lived services of the server under a
suture v4 supervisor tree.

	ojakgyo (root)
	├── data-layer
	│   └── duckdb-checkpoint
	└── api-layer
	    └── http-server

A service that returns an error or panics is restarted with backoff; after
FailureThreshold failures within the decay window the supervisor pauses for
FailureBackoff. Supervisor events are logged through log/slog via
sutureslog, and cmd/server passes a slog logger backed by zerolog so the
events share the application log stream.

Example:

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err := tree.Serve(ctx)
*/
package supervisor

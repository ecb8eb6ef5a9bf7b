// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

/*
Package testinfra starts throwaway service containers for integration tests.

Everything here is behind the integration build tag:

	go test -tags integration ./internal/database/...

Tests skip when Docker is not reachable. OJAKGYO_TEST_POSTGRES_IMAGE runs
them against another PostgreSQL image.

	pg := testinfra.StartPostgres(t)
	src, err := database.NewPostgresSource(ctx, pg.DSN, logger)
*/
package testinfra

// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

// Command ojakgyo is the command-line client of the recommendation engine.
//
//	ojakgyo seed --per-district 12
//	ojakgyo import --dir ./data
//	ojakgyo course --district 강남구 --min 20000 --max 40000
//	ojakgyo weather 마포구
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/ojakgyo/internal/models"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}

func TestDB_ImportCSV(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	dir := t.TempDir()

	// Extra columns are ignored, missing ones load as NULL and thousands
	// separators are stripped.
	writeFile(t, dir, "restaurant.csv", `name,address,category,price,score,review,extra
순대국밥,서울 강남구 역삼동 1,국밥류,"12,000",4.5,"1,200",x
파스타,서울 마포구 합정동 2,양식,not-a-number,4.1,30,y
`)
	writeFile(t, dir, "score.csv", "station,star\n강남역,4.5\n")

	results, err := db.ImportCSV(ctx, dir)
	if err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("ImportCSV() = %+v, want 2 results", results)
	}
	if results[0].Collection != models.CollectionRestaurant || results[0].Rows != 2 {
		t.Errorf("results[0] = %+v, want restaurant with 2 rows", results[0])
	}

	rows, err := db.Rows(ctx, models.CollectionRestaurant)
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	byName := make(map[string]models.Place)
	for _, r := range rows {
		p, err := models.FromRow(models.KindRestaurant, r)
		if err != nil {
			t.Fatalf("FromRow() error = %v", err)
		}
		byName[p.Name] = p
	}

	soup := byName["순대국밥"]
	if soup.Price == nil || *soup.Price != 12000 {
		t.Errorf("순대국밥 price = %v, want 12000", soup.Price)
	}
	if soup.Reviews == nil || *soup.Reviews != 1200 {
		t.Errorf("순대국밥 reviews = %v, want 1200", soup.Reviews)
	}
	if soup.Latitude != nil {
		t.Errorf("missing latitude column should load as NULL, got %v", *soup.Latitude)
	}
	if pasta := byName["파스타"]; pasta.Price != nil {
		t.Errorf("unparseable price should load as NULL, got %v", *pasta.Price)
	}
}

func TestDB_ImportCSV_ReplacesTable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	dir := t.TempDir()

	insert(t, db, models.CollectionCafe,
		[]any{"old", "서울 중구", "카페", 4.0, int64(1), nil, nil, nil})
	writeFile(t, dir, "cafe.csv", "name,score\nnew1,4.2\nnew2,3.9\n")

	if _, err := db.ImportCSV(ctx, dir); err != nil {
		t.Fatalf("ImportCSV() error = %v", err)
	}
	n, err := db.Count(ctx, models.CollectionCafe)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Count(cafe) = %d, want 2", n)
	}
}

func TestDB_ImportCSV_BadDirectory(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "file.csv")
	writeFile(t, dir, "file.csv", "a\n")

	tests := []struct {
		name string
		dir  string
	}{
		{"missing", filepath.Join(dir, "nope")},
		{"not a directory", file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.ImportCSV(context.Background(), tt.dir); err == nil {
				t.Errorf("ImportCSV(%s) should fail", tt.dir)
			}
		})
	}
}

func TestCastExpr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		col  column
		want string
	}{
		{column{"price", typeBigint}, `CAST(TRUNC(TRY_CAST(NULLIF(TRIM(REPLACE("price", ',', '')), '') AS DOUBLE)) AS BIGINT)`},
		{column{"score", typeDouble}, `TRY_CAST(NULLIF(TRIM(REPLACE("score", ',', '')), '') AS DOUBLE)`},
		{column{"datetime", typeTimestamp}, `TRY_CAST("datetime" AS TIMESTAMP)`},
		{column{"name", typeText}, `NULLIF(TRIM("name"), '')`},
	}
	for _, tt := range tests {
		if got := castExpr(tt.col); got != tt.want {
			t.Errorf("castExpr(%s) = %s, want %s", tt.col.name, got, tt.want)
		}
	}
}

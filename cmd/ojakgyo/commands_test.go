// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/ojakgyo/internal/config"
)

// run executes the CLI against an in-memory DuckDB.
func run(t *testing.T, env map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("DUCKDB_MAX_MEMORY", "512MB")
	t.Setenv("DUCKDB_THREADS", "2")
	t.Setenv("LOG_LEVEL", "error")
	for k, v := range env {
		t.Setenv(k, v)
	}

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var seeded = map[string]string{"SEED_MOCK_DATA": "true", "SEED_PER_DISTRICT": "2"}

func TestSeedCmd(t *testing.T) {
	out, err := run(t, nil, "", "seed", "--per-district", "2", "--seed", "7")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}

	var stats map[string]int
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	for _, collection := range []string{"restaurant", "enjoy", "cafe"} {
		if stats[collection] != 50 {
			t.Errorf("%s = %d, want 50", collection, stats[collection])
		}
	}
}

func TestImportCmd(t *testing.T) {
	dir := t.TempDir()
	csv := "name,address,category,score,review,latitude,longitude,station\n" +
		"카페 오월,서울특별시 종로구 율곡로 10,카페,4.4,120,37.57,126.98,안국역\n"
	if err := os.WriteFile(filepath.Join(dir, "cafe.csv"), []byte(csv), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, nil, "", "import", "--dir", dir)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}

	var results []struct {
		Collection string `json:"collection"`
		Rows       int64  `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(results) != 1 || results[0].Collection != "cafe" || results[0].Rows != 1 {
		t.Errorf("results = %+v", results)
	}
}

func TestBootstrapCmds_RequireDuckDB(t *testing.T) {
	env := map[string]string{"DB_DRIVER": "postgres", "POSTGRES_DSN": "postgres://localhost/ojakgyo"}
	for _, args := range [][]string{{"seed"}, {"import", "--dir", t.TempDir()}} {
		if _, err := run(t, env, "", args...); err == nil || !strings.Contains(err.Error(), "duckdb") {
			t.Errorf("%v error = %v, want duckdb driver error", args, err)
		}
	}
}

func TestCourseCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "default budget", args: []string{"course", "--district", "강남구"}},
		{name: "explicit budget", args: []string{"course", "--district", "마포구", "--min", "10000", "--max", "30000"}},
		{name: "unknown district", args: []string{"course", "--district", "강남"}, wantErr: "Seoul districts"},
		{name: "missing district", args: []string{"course"}, wantErr: "required"},
		{name: "budget step", args: []string{"course", "--district", "강남구", "--min", "12000", "--max", "20000"}, wantErr: "multiple of 5000"},
		{name: "budget order", args: []string{"course", "--district", "강남구", "--min", "30000", "--max", "10000"}, wantErr: "max_budget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, seeded, "", tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("course error = %v", err)
			}

			var course struct {
				District    string            `json:"district"`
				Restaurants []json.RawMessage `json:"restaurants"`
				WeatherInfo struct {
					Recommendation string `json:"recommendation"`
				} `json:"weather_info"`
			}
			if err := json.Unmarshal([]byte(out), &course); err != nil {
				t.Fatalf("decode %q: %v", out, err)
			}
			if course.District != tt.args[2] {
				t.Errorf("district = %q, want %q", course.District, tt.args[2])
			}
		})
	}
}

func TestRouteCmd(t *testing.T) {
	t.Run("complete selection", func(t *testing.T) {
		body := `{
			"restaurant": {"name": "식당", "latitude": 37.50, "longitude": 127.03},
			"attraction": {"name": "공원", "latitude": 37.51, "longitude": 127.04},
			"cafe":       {"name": "카페", "latitude": 37.52, "longitude": 127.05}
		}`
		out, err := run(t, seeded, body, "route")
		if err != nil {
			t.Fatalf("route error = %v", err)
		}
		var result struct {
			Route []struct {
				Name string `json:"name"`
			} `json:"route"`
		}
		if err := json.Unmarshal([]byte(out), &result); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if len(result.Route) != 3 || result.Route[0].Name != "식당" {
			t.Errorf("route = %+v", result.Route)
		}
	})

	t.Run("incomplete selection", func(t *testing.T) {
		_, err := run(t, seeded, `{"restaurant": {"name": "식당"}}`, "route", "-")
		if err == nil || !strings.Contains(err.Error(), "모두 선택") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		if _, err := run(t, seeded, "{", "route"); err == nil {
			t.Error("malformed body accepted")
		}
	})
}

func TestDistrictCmds(t *testing.T) {
	for _, cmd := range []string{"weather", "stations"} {
		t.Run(cmd, func(t *testing.T) {
			out, err := run(t, seeded, "", cmd, "용산구")
			if err != nil {
				t.Fatalf("%s error = %v", cmd, err)
			}
			if !json.Valid([]byte(out)) {
				t.Errorf("output is not JSON: %q", out)
			}

			if _, err := run(t, seeded, "", cmd, "Yongsan"); err == nil {
				t.Error("unknown district accepted")
			}
		})
	}
}

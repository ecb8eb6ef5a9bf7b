// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ojakgyo/internal/app"
	"github.com/tomtom215/ojakgyo/internal/geo"
	"github.com/tomtom215/ojakgyo/internal/recommend"
	"github.com/tomtom215/ojakgyo/internal/validation"
)

func (c *cli) importCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace DuckDB tables from restaurant.csv, enjoy.csv, cafe.csv, spot.csv and score.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.openDuckDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			results, err := db.ImportCSV(cmd.Context(), dir)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the CSV files")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func (c *cli) seedCmd() *cobra.Command {
	var (
		perDistrict int
		seed        int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill empty DuckDB tables with generated places",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := c.openDuckDB()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			stats, err := db.SeedMockData(cmd.Context(), perDistrict, seed)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().IntVar(&perDistrict, "per-district", 12, "places per district and category")
	cmd.Flags().Int64Var(&seed, "seed", app.DefaultSeed, "random seed")
	return cmd
}

// courseOptions mirrors the recommend request body of the HTTP API.
type courseOptions struct {
	District string `json:"district" validate:"required,seoul_district"`
	Station  string `json:"station,omitempty" validate:"omitempty,max=100"`
	Category string `json:"food_category,omitempty" validate:"omitempty,max=50"`
	validation.Budget
}

func (o *courseOptions) request() recommend.CourseRequest {
	req := recommend.CourseRequest{
		District:     strings.TrimSpace(o.District),
		Station:      strings.TrimSpace(o.Station),
		FoodCategory: strings.TrimSpace(o.Category),
	}
	switch {
	case o.MinBudget != nil && o.MaxBudget != nil:
		req.Budget = recommend.ExplicitBudget(*o.MinBudget, *o.MaxBudget)
	case o.BudgetRange != nil:
		req.Budget = recommend.RangeBudget(*o.BudgetRange)
	default:
		req.Budget = recommend.RangeBudget(2)
	}
	return req
}

func (c *cli) courseCmd() *cobra.Command {
	var (
		opts        courseOptions
		minB, maxB  int64
		budgetRange int
	)
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Recommend a date course for a district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("min") {
				opts.MinBudget = &minB
			}
			if flags.Changed("max") {
				opts.MaxBudget = &maxB
			}
			if flags.Changed("range") {
				opts.BudgetRange = &budgetRange
			}
			if verr := validation.ValidateStruct(&opts); verr != nil {
				return verr
			}

			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			course := a.Engine.CreateDateCourse(cmd.Context(), opts.request())
			if err := writeJSON(cmd.OutOrStdout(), course); err != nil {
				return err
			}
			if course.Error != "" {
				return errors.New(course.Error)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.District, "district", "", "Seoul district, e.g. 강남구")
	f.StringVar(&opts.Station, "station", "", "subway station to search around")
	f.StringVar(&opts.Category, "category", "", "food category (default: any)")
	f.Int64Var(&minB, "min", 0, "minimum budget per person in won")
	f.Int64Var(&maxB, "max", 0, "maximum budget per person in won")
	f.IntVar(&budgetRange, "range", 2, "budget code 1-4, used without --min and --max")
	return cmd
}

func (c *cli) routeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route [file]",
		Short: "Order a restaurant, attraction and café into the shortest route",
		Long: `route reads a JSON object {"restaurant": ..., "attraction": ..., "cafe": ...}
from file, or from stdin when file is omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			var req recommend.RouteRequest
			if err := json.NewDecoder(io.LimitReader(in, 1<<20)).Decode(&req); err != nil {
				return fmt.Errorf("decode route request: %w", err)
			}

			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result := a.Engine.RecommendOptimizedRoute(cmd.Context(), req)
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if result.Error != "" {
				return errors.New(result.Error)
			}
			return nil
		},
	}
	return cmd
}

func (c *cli) weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <district>",
		Short: "Show the weather advisory of a district",
		Args:  districtArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return writeJSON(cmd.OutOrStdout(), a.Engine.WeatherRecommendation(cmd.Context(), args[0]))
		},
	}
}

func (c *cli) stationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stations <district>",
		Short: "List the stations of a district by score",
		Args:  districtArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			stations, err := a.Engine.Stations(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stations)
		},
	}
}

// districtArg requires exactly one argument naming a Seoul district.
func districtArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if !geo.IsDistrict(args[0]) {
		return fmt.Errorf("%q is not a Seoul district", args[0])
	}
	return nil
}

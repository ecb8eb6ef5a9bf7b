// Ojakgyo - Seoul Date Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ojakgyo

package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/ojakgyo/internal/metrics"
)

// ImportResult reports the rows loaded per collection.
type ImportResult struct {
	Collection string `json:"collection"`
	File       string `json:"file"`
	Rows       int64  `json:"rows"`
}

// ImportCSV replaces each collection that has a <collection>.csv file in dir.
// Columns are matched by header name; unknown CSV columns are ignored and
// missing ones load as NULL. Numeric cells may carry thousands separators.
// A file that fails to load leaves its table unchanged.
func (db *DB) ImportCSV(ctx context.Context, dir string) ([]ImportResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("import directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("import directory %s is not a directory", dir)
	}

	var results []ImportResult
	for _, t := range tables {
		path := filepath.Join(dir, t.name+".csv")
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		n, err := db.importTable(ctx, t, path)
		if err != nil {
			return results, fmt.Errorf("failed to import %s: %w", path, err)
		}
		db.logger.Info().Str("collection", t.name).Str("file", path).Int64("rows", n).Msg("Imported CSV")
		results = append(results, ImportResult{Collection: t.name, File: path, Rows: n})
	}
	return results, nil
}

func (db *DB) importTable(ctx context.Context, t table, path string) (n int64, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery(driverDuckDB, "import_"+t.name, time.Since(start), err)
	}()

	source := fmt.Sprintf("read_csv_auto(%s, header = true, all_varchar = true)", quoteLiteral(path))

	header, err := db.csvColumns(ctx, source)
	if err != nil {
		return 0, err
	}

	selects := make([]string, len(t.columns))
	for i, c := range t.columns {
		if !header[c.name] {
			selects[i] = "NULL"
			continue
		}
		selects[i] = castExpr(c)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(t.name)); err != nil {
		return 0, fmt.Errorf("clear %s: %w", t.name, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		quoteIdent(t.name), t.columnList(), strings.Join(selects, ", "), source)
	res, err := tx.ExecContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.name, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	// The rows are committed; a driver without RowsAffected reports zero.
	if n, err = res.RowsAffected(); err != nil {
		return 0, nil
	}
	return n, nil
}

// csvColumns returns the header names of a CSV source.
func (db *DB) csvColumns(ctx context.Context, source string) (map[string]bool, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT * FROM "+source+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	defer closeWithLog(rows, db.logger, "rows")

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]bool, len(cols))
	for _, c := range cols {
		header[c] = true
	}
	return header, nil
}

// castExpr converts a VARCHAR CSV cell into the column type. Unparseable
// cells become NULL.
func castExpr(c column) string {
	ident := quoteIdent(c.name)
	switch c.typ {
	case typeDouble, typeBigint:
		cleaned := fmt.Sprintf("NULLIF(TRIM(REPLACE(%s, ',', '')), '')", ident)
		if c.typ == typeBigint {
			// 12000.0 is a valid price cell.
			return fmt.Sprintf("CAST(TRUNC(TRY_CAST(%s AS DOUBLE)) AS BIGINT)", cleaned)
		}
		return fmt.Sprintf("TRY_CAST(%s AS DOUBLE)", cleaned)
	case typeTimestamp:
		return fmt.Sprintf("TRY_CAST(%s AS TIMESTAMP)", ident)
	default:
		return fmt.Sprintf("NULLIF(TRIM(%s), '')", ident)
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

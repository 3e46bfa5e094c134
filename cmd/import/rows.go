package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts written by the legacy SQLite table and by common exporters.
var layouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

type row struct {
	userID int64
	start  time.Time
}

type importer interface {
	Import(ctx context.Context, userID int64, start time.Time) (bool, error)
}

type result struct {
	imported int
	existing int
	errors   int
}

// readRows parses user_id,trial_start[,...] records. A non-numeric first
// row is treated as a header.
func readRows(r io.Reader, loc *time.Location) ([]row, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var (
		rows    []row
		skipped []string
	)
	for i, record := range records {
		if len(record) < 2 {
			skipped = append(skipped, fmt.Sprintf("row %d: expected at least 2 columns", i+1))
			continue
		}

		userID, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil || userID <= 0 {
			if i == 0 {
				continue
			}
			skipped = append(skipped, fmt.Sprintf("row %d: invalid user_id %q", i+1, record[0]))
			continue
		}

		start, err := parseTimestamp(record[1], loc)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		rows = append(rows, row{userID: userID, start: start})
	}

	return rows, skipped, nil
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty trial_start")
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse trial_start %q", s)
}

func importRows(ctx context.Context, svc importer, rows []row) result {
	var res result
	for _, r := range rows {
		created, err := svc.Import(ctx, r.userID, r.start)
		switch {
		case err != nil:
			fmt.Printf("  ERROR user %d: %v\n", r.userID, err)
			res.errors++
		case created:
			res.imported++
		default:
			res.existing++
		}
	}
	return res
}

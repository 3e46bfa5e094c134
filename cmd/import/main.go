package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"histobot/internal/infra/database"
	"histobot/internal/infra/migrations"
	"histobot/internal/storage"
	"histobot/internal/stories/trials"
)

func main() {
	driver := flag.String("driver", database.DriverSQLite, "database driver: sqlite3 or pgx")
	dsn := flag.String("db", "./data/histobot.db", "database DSN")
	csvPath := flag.String("csv", "./trial_users.csv", "CSV export of the legacy trial_users table")
	location := flag.String("tz", "Local", "time zone of timestamps without an offset")
	dryRun := flag.Bool("dry-run", false, "show what would be imported without writing to DB")
	flag.Parse()

	loc, err := time.LoadLocation(*location)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", *location, err)
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *csvPath, err)
	}
	defer file.Close()

	rows, skipped, err := readRows(file, loc)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *csvPath, err)
	}
	for _, s := range skipped {
		fmt.Printf("  SKIP %s\n", s)
	}

	if *dryRun {
		for _, r := range rows {
			fmt.Printf("  DRY: user=%d, start=%s\n", r.userID, r.start.UTC().Format(time.RFC3339))
		}
		fmt.Printf("\nParsed: %d, Skipped: %d\n", len(rows), len(skipped))
		fmt.Println("\n(DRY RUN - nothing was written to database)")
		return
	}

	ctx := context.Background()
	db, err := database.New(ctx, database.WithDriver(*driver), database.WithDSN(*dsn))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db.DB.DB, db.Driver()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	service := trials.NewService(storage.New(db.DB, db.Placeholder()), time.Now)
	res := importRows(ctx, service, rows)

	fmt.Printf("\n=== TOTAL ===\n")
	fmt.Printf("Imported: %d\n", res.imported)
	fmt.Printf("Existing: %d\n", res.existing)
	fmt.Printf("Skipped: %d\n", len(skipped))
	fmt.Printf("Errors: %d\n", res.errors)
}

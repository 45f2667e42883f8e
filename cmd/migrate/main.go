package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/migrate"
)

// migrateConfig only needs the data service; the gateway key pair is not
// required to run migrations.
type migrateConfig struct {
	Log         config.Log
	DataService config.DataService `envPrefix:"DATA_SERVICE_"`
}

func main() {
	file := flag.String("file", "", "path to the SQL file to apply")
	transactional := flag.Bool("transactional", false, "abort on first failing statement instead of continuing")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline for the run")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: migrate -file <schema.sql> [-transactional]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &migrateConfig{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("storefront-migrate", cfg.Log.Level)

	sqlText, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read SQL file")
	}

	stmts := migrate.SplitStatements(string(sqlText))
	if len(stmts) == 0 {
		log.Warn().Str("file", *file).Msg("no statements found")
		return
	}

	mode := migrate.ModeBestEffort
	if *transactional {
		mode = migrate.ModeTransactional
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	runner := migrate.NewRunner(client.NewDataClient(&cfg.DataService), log)
	report, err := runner.Apply(ctx, stmts, mode)
	if err != nil {
		log.Fatal().Err(err).Msg("migration aborted")
	}

	for _, res := range report.Results {
		if res.Err != nil {
			log.Error().Err(res.Err).Int("statement", res.Index+1).Msg("failed")
		}
	}
	log.Info().
		Int("total", len(report.Results)).
		Int("failed", report.Failed).
		Msg("migration finished")

	if !report.Ok() {
		os.Exit(1)
	}
}

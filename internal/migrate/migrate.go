package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"storefront-backend/internal/client"
)

// Mode is the explicit transactional boundary choice for a batch of
// statements. Best-effort applies every statement and collects failures;
// transactional wraps the batch and aborts on the first failure.
type Mode int

const (
	ModeBestEffort Mode = iota
	ModeTransactional
)

// StatementResult records the outcome of one statement.
type StatementResult struct {
	Index     int
	Statement string
	Err       error
}

// Report is the outcome of one Apply run.
type Report struct {
	Results []StatementResult
	Failed  int
}

func (r *Report) Ok() bool { return r.Failed == 0 }

type Runner struct {
	data client.DataClient
	log  zerolog.Logger
}

func NewRunner(data client.DataClient, log zerolog.Logger) *Runner {
	return &Runner{
		data: data,
		log:  log,
	}
}

// Apply executes statements sequentially through the data service's raw-SQL
// entry point. In best-effort mode a failing statement is logged and the run
// continues; a partial migration is possible and the report says exactly
// which statements failed.
func (r *Runner) Apply(ctx context.Context, stmts []string, mode Mode) (*Report, error) {
	if mode == ModeTransactional {
		return r.applyTransactional(ctx, stmts)
	}
	return r.applyBestEffort(ctx, stmts), nil
}

func (r *Runner) applyBestEffort(ctx context.Context, stmts []string) *Report {
	report := &Report{}
	for i, stmt := range stmts {
		err := r.data.ExecSQL(ctx, stmt)
		if err != nil {
			report.Failed++
			r.log.Error().
				Err(err).
				Int("statement", i+1).
				Msg("statement failed, continuing")
		} else {
			r.log.Info().
				Int("statement", i+1).
				Msg("statement applied")
		}
		report.Results = append(report.Results, StatementResult{
			Index:     i,
			Statement: stmt,
			Err:       err,
		})
	}
	return report
}

func (r *Runner) applyTransactional(ctx context.Context, stmts []string) (*Report, error) {
	batch := "BEGIN;\n" + strings.Join(stmts, ";\n") + ";\nCOMMIT;"
	if err := r.data.ExecSQL(ctx, batch); err != nil {
		return nil, fmt.Errorf("transactional migration: %w", err)
	}

	report := &Report{}
	for i, stmt := range stmts {
		report.Results = append(report.Results, StatementResult{Index: i, Statement: stmt})
	}
	return report, nil
}

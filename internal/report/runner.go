package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/restoreport/pkg/adapter"
)

// Querier executes a SQL statement that returns rows. adapter.Adapter
// implementations satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string) (*adapter.Rows, error)
}

// Runner executes the reports sequentially and hands each result to a
// Renderer.
type Runner struct {
	querier  Querier
	renderer Renderer
	logger   *slog.Logger
	reports  []Report
}

// NewRunner creates a runner for the fixed report set.
func NewRunner(q Querier, r Renderer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		querier:  q,
		renderer: r,
		logger:   logger,
		reports:  All(),
	}
}

// Run executes every report in order. The first failing report stops the
// run; reports rendered before it stay rendered.
func (r *Runner) Run(ctx context.Context) error {
	for i := range r.reports {
		rep := &r.reports[i]

		res, err := r.collect(ctx, rep)
		if err != nil {
			r.logger.Debug("report failed", slog.String("report", string(rep.ID)), slog.String("error", err.Error()))
			return &QueryError{Report: rep.ID, Err: err}
		}

		r.logger.Debug("report completed", slog.String("report", string(rep.ID)), slog.Int("rows", len(res.Rows)))

		if err := r.renderer.Report(res); err != nil {
			return fmt.Errorf("failed to render report %s: %w", rep.ID, err)
		}
	}
	return nil
}

// collect runs one report and reads all of its rows. The result set is
// closed before collect returns.
func (r *Runner) collect(ctx context.Context, rep *Report) (*Result, error) {
	r.logger.Debug("running report", slog.String("report", string(rep.ID)))

	rows, err := r.querier.Query(ctx, rep.SQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	res := &Result{Report: rep}
	for rows.Next() {
		row, err := rep.scan(rows.Rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return res, nil
}

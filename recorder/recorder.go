// Package recorder persists report runs for later analysis.
package recorder

import (
	"context"
	"time"

	"github.com/etnz/risk"
	"github.com/google/uuid"
)

// Run describes a single report run.
type Run struct {
	ID                 uuid.UUID
	At                 time.Time
	Source             string // price file the report was computed from
	Confidence         float64
	TradingDaysPerYear int
	Warnings           int
}

// NewRun returns the description of a new run for a report computed from 'source'.
func NewRun(source string, r *risk.Report) Run {
	return Run{
		ID:                 uuid.New(),
		At:                 time.Now().UTC(),
		Source:             source,
		Confidence:         r.Confidence,
		TradingDaysPerYear: r.TradingDaysPerYear,
		Warnings:           len(r.Warnings),
	}
}

// Recorder persists report runs.
type Recorder interface {
	RecordRun(ctx context.Context, run Run, rows []risk.RiskMetrics) error
	Close() error
}

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(context.Context, Run, []risk.RiskMetrics) error { return nil }
func (n *NoopRecorder) Close() error                                             { return nil }

// Open returns a SQLite recorder for 'path', or a no-op recorder if path is empty.
func Open(path string) (Recorder, error) {
	if path == "" {
		return NewNoopRecorder(), nil
	}
	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

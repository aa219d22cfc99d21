package recorder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/risk"
	"github.com/google/go-cmp/cmp"
	"github.com/guregu/null/v6"
)

func TestSQLiteRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("NewSQLiteRecorder() error = %v", err)
	}
	defer rec.Close()

	report := &risk.Report{
		Confidence:         0.99,
		TradingDaysPerYear: 252,
		Rows: []risk.RiskMetrics{
			{Ticker: "A", SampleSize: 3, AnnualisedVolatility: null.FloatFrom(0.38), VaRConfidence: 0.99, HistoricalVaR: null.FloatFrom(0.012)},
			{Ticker: "B", SampleSize: 0, VaRConfidence: 0.99},
		},
	}
	run := NewRun("prices.csv", report)
	ctx := context.Background()
	if err := rec.RecordRun(ctx, run, report.Rows); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	var source string
	var confidence float64
	if err := rec.db.QueryRow(`SELECT source, confidence FROM runs WHERE id = ?`, run.ID.String()).Scan(&source, &confidence); err != nil {
		t.Fatalf("cannot read run back: %v", err)
	}
	if source != "prices.csv" || confidence != 0.99 {
		t.Errorf("run = %q, %v want prices.csv, 0.99", source, confidence)
	}

	rows, err := rec.db.Query(`SELECT ticker, sample_size, annualised_volatility, var_confidence, historical_var
		FROM metrics WHERE run_id = ? ORDER BY ticker`, run.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	var got []risk.RiskMetrics
	for rows.Next() {
		var m risk.RiskMetrics
		if err := rows.Scan(&m.Ticker, &m.SampleSize, &m.AnnualisedVolatility, &m.VaRConfidence, &m.HistoricalVaR); err != nil {
			t.Fatal(err)
		}
		got = append(got, m)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(report.Rows, got); diff != "" {
		t.Errorf("recorded metrics mismatch (-want +got):\n%s", diff)
	}

	// A second run with the same tickers is a distinct record.
	if err := rec.RecordRun(ctx, NewRun("prices.csv", report), report.Rows); err != nil {
		t.Fatalf("second RecordRun() error = %v", err)
	}
	var n int
	if err := rec.db.QueryRow(`SELECT COUNT(*) FROM metrics`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("metrics count = %d want 4", n)
	}
}

func TestOpenNoop(t *testing.T) {
	rec, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if _, ok := rec.(*NoopRecorder); !ok {
		t.Errorf("Open(\"\") = %T want *NoopRecorder", rec)
	}
	if err := rec.RecordRun(context.Background(), Run{}, nil); err != nil {
		t.Errorf("NoopRecorder.RecordRun() error = %v", err)
	}
}

func TestHead(t *testing.T) {
	testCases := []struct {
		stmt, want string
	}{
		{"VACUUM", "VACUUM"},
		{"", ""},
		{"CREATE TABLE IF NOT EXISTS runs (id TEXT PRIMARY KEY)", "CREATE TABLE IF NOT EXISTS runs (id TEXT"},
	}
	for _, tc := range testCases {
		if got := head(tc.stmt); got != tc.want {
			t.Errorf("head(%q) = %q want %q", tc.stmt, got, tc.want)
		}
	}
}

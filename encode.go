package risk

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/guregu/null/v6"
	"github.com/klauspost/compress/zstd"
)

// NA is written in place of undefined metrics.
const NA = "NA"

// ReportHeader is the header row of the CSV report.
var ReportHeader = []string{"Ticker", "SampleSize", "AnnualisedVolatility", "VaRConfidence", "HistoricalVaR"}

// Format is a report output format.
type Format int

const (
	CSV Format = iota
	JSONL
	Markdown
)

func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case JSONL:
		return "jsonl"
	case Markdown:
		return "md"
	default:
		panic(fmt.Sprintf("unknown format %d", f))
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return CSV, nil
	case "jsonl", "json":
		return JSONL, nil
	case "md", "markdown":
		return Markdown, nil
	default:
		return CSV, fmt.Errorf("unknown format %q want one of csv, jsonl, md", s)
	}
}

// FormatOf infers the format from a file name extension, ignoring a ".zst" suffix.
// It returns false if the extension is not a known format.
func FormatOf(path string) (Format, bool) {
	ext := filepath.Ext(strings.TrimSuffix(path, ".zst"))
	if ext == "" {
		return CSV, false
	}
	f, err := ParseFormat(ext[1:])
	return f, err == nil
}

// formatFloat formats a metric with the fixed report precision.
func formatFloat(v null.Float) string {
	if !v.Valid {
		return NA
	}
	return strconv.FormatFloat(v.ValueOrZero(), 'f', 6, 64)
}

// EncodeCSV writes the rows as a CSV report, one row per ticker.
//
// Metrics are written with 6 decimal places, undefined ones as NA.
func EncodeCSV(w io.Writer, rows []RiskMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReportHeader); err != nil {
		return fmt.Errorf("cannot write report header: %w", err)
	}
	for _, m := range rows {
		record := []string{
			m.Ticker,
			strconv.Itoa(m.SampleSize),
			formatFloat(m.AnnualisedVolatility),
			strconv.FormatFloat(m.VaRConfidence, 'f', -1, 64),
			formatFloat(m.HistoricalVaR),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write report row for %q: %w", m.Ticker, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeJSONL writes the rows as JSON lines, one object per ticker. Undefined metrics are null.
func EncodeJSONL(w io.Writer, rows []RiskMetrics) error {
	enc := json.NewEncoder(w)
	for _, m := range rows {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("cannot write report row for %q: %w", m.Ticker, err)
		}
	}
	return nil
}

// CreateReport creates a report file for writing.
//
// "-" stands for the standard output. Files with a ".zst" suffix are compressed on the fly.
func CreateReport(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create %q: %w", path, err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot compress %q: %w", path, err)
	}
	return &zstdWriter{Encoder: enc, f: f}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

type zstdWriter struct {
	*zstd.Encoder
	f *os.File
}

func (w *zstdWriter) Close() error {
	if err := w.Encoder.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

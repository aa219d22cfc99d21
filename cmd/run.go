package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/etnz/risk"
	"github.com/etnz/risk/recorder"
	"github.com/etnz/risk/renderer"
)

// runFlags holds the flags shared by the commands that compute a report.
type runFlags struct {
	prices      string
	output      string
	format      string
	confidence  float64
	tradingDays int
	workers     int
	strict      bool
	period      string
	from        string
	to          string
	sqlite      string
}

func (r *runFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.prices, "prices", "", "CSV file of daily prices with columns Date, Ticker, Close ('-' for stdin, '.zst' files are decompressed)")
	f.StringVar(&r.output, "o", "-", "report file ('-' for stdout, '.zst' files are compressed)")
	f.StringVar(&r.format, "format", "", "report format (csv, jsonl, md). Defaults to the output extension, or md on a terminal and csv otherwise")
	f.Float64Var(&r.confidence, "c", risk.DefaultConfidence, "VaR confidence level in (0,1)")
	f.IntVar(&r.tradingDays, "trading-days", risk.TradingDaysPerYear, "trading days per year used to annualise volatility")
	f.IntVar(&r.workers, "workers", 1, "number of tickers processed concurrently")
	f.BoolVar(&r.strict, "strict", false, "abort on the first malformed price record")
	f.StringVar(&r.period, "period", "", "lookback period ending on each ticker's latest price (week, month, quarter, year, or a count and unit like 90d, 6m, 3y)")
	f.StringVar(&r.from, "from", "", "ignore prices before this date")
	f.StringVar(&r.to, "to", "", "ignore prices after this date")
	f.StringVar(&r.sqlite, "sqlite", "", "record the run into this SQLite database")
}

// config loads the configuration file and environment, then applies the flags explicitly set on f.
func (r *runFlags) config(f *flag.FlagSet) (risk.Config, error) {
	cfg, err := risk.LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "c":
			cfg.Confidence = r.confidence
		case "trading-days":
			cfg.TradingDaysPerYear = r.tradingDays
		case "workers":
			cfg.Workers = r.workers
		case "strict":
			cfg.Strict = r.strict
		case "period":
			cfg.Period = r.period
		case "from":
			cfg.From = r.from
		case "to":
			cfg.To = r.to
		case "sqlite":
			cfg.Recorder.SQLitePath = r.sqlite
		}
	})
	return cfg, cfg.Validate()
}

// outputFormat returns the format to write the report in.
func (r *runFlags) outputFormat() (risk.Format, error) {
	if r.format != "" {
		return risk.ParseFormat(r.format)
	}
	if r.output == "-" {
		if interactive() {
			return risk.Markdown, nil
		}
		return risk.CSV, nil
	}
	if f, ok := risk.FormatOf(r.output); ok {
		return f, nil
	}
	return risk.CSV, nil
}

// run computes the report once: read the prices, compute, write and record.
func (r *runFlags) run(ctx context.Context, cfg risk.Config, rec recorder.Recorder) error {
	format, err := r.outputFormat()
	if err != nil {
		return err
	}

	start := time.Now()
	records, err := risk.ReadPrices(r.prices)
	if err != nil {
		return err
	}
	debugf("read %d price records from %s", len(records), r.prices)

	report, err := risk.NewReport(ctx, records, cfg)
	if err != nil {
		return fmt.Errorf("cannot compute report: %w", err)
	}

	for _, w := range report.Warnings {
		var perr *risk.ParseError
		if cfg.Strict && errors.As(w, &perr) {
			return fmt.Errorf("strict mode: malformed record: %w", w)
		}
		log.Printf("[WARN] %v", w)
	}
	debugf("computed %d rows at %v confidence in %v", len(report.Rows), cfg.Confidence, time.Since(start))

	if err := r.write(report, format); err != nil {
		return err
	}

	if err := rec.RecordRun(ctx, recorder.NewRun(r.prices, report), report.Rows); err != nil {
		return fmt.Errorf("cannot record run: %w", err)
	}
	return nil
}

// write writes the report to the output in the given format.
func (r *runFlags) write(report *risk.Report, format risk.Format) error {
	if r.output == "-" && format == risk.Markdown {
		printMarkdown(renderer.ReportMarkdown(report))
		return nil
	}

	w, err := risk.CreateReport(r.output)
	if err != nil {
		return err
	}
	switch format {
	case risk.CSV:
		err = risk.EncodeCSV(w, report.Rows)
	case risk.JSONL:
		err = risk.EncodeJSONL(w, report.Rows)
	case risk.Markdown:
		_, err = io.Copy(w, strings.NewReader(renderer.ReportMarkdown(report)))
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("cannot write report %q: %w", r.output, err)
	}
	if r.output != "-" {
		fmt.Printf("Risk report saved to %s\n", r.output)
	}
	return nil
}

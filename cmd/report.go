package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/risk/recorder"
	"github.com/google/subcommands"
)

// reportCmd computes the risk report once.
type reportCmd struct {
	runFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute volatility and historical VaR per ticker" }
func (*reportCmd) Usage() string {
	return `rsk report -prices <file> [-o <file>] [-format csv|jsonl|md] [-c <confidence>]

  Reads daily closing prices and reports, for each ticker, the number of daily
  log returns, their annualised volatility and the historical Value at Risk.
  Undefined metrics are reported as NA.
`
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.prices == "" {
		fmt.Fprintln(os.Stderr, "Error: -prices is required")
		return subcommands.ExitUsageError
	}
	cfg, err := c.config(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	rec, err := recorder.Open(cfg.Recorder.SQLitePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening recorder: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	if err := c.run(ctx, cfg, rec); err != nil {
		fmt.Fprintf(os.Stderr, "Error computing report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

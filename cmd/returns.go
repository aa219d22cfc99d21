package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/risk"
	"github.com/etnz/risk/renderer"
	"github.com/google/subcommands"
)

// returnsCmd shows the daily log returns of a single ticker.
type returnsCmd struct {
	prices string
	ticker string
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display the daily log returns of a ticker" }
func (*returnsCmd) Usage() string {
	return `rsk returns -prices <file> -t <ticker>

  Displays each close of the ticker with the log return from the previous close.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prices, "prices", "", "CSV file of daily prices with columns Date, Ticker, Close ('-' for stdin)")
	f.StringVar(&c.ticker, "t", "", "ticker to display")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.prices == "" || c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -prices and -t are required")
		return subcommands.ExitUsageError
	}

	records, err := risk.ReadPrices(c.prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading prices: %v\n", err)
		return subcommands.ExitFailure
	}
	u, errs := risk.BuildSeries(records)
	for _, err := range errs {
		log.Printf("[WARN] %v", err)
	}

	s := u.Series(c.ticker)
	if s == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown ticker %q\n", c.ticker)
		return subcommands.ExitFailure
	}
	r, err := risk.LogReturns(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReturnsMarkdown(s, r))
	return subcommands.ExitSuccess
}

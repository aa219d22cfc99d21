package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/risk"
	"github.com/etnz/risk/recorder"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

// scheduleCmd recomputes the report on a cron schedule.
type scheduleCmd struct {
	runFlags
	spec string
	now  bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "recompute the report on a cron schedule" }
func (*scheduleCmd) Usage() string {
	return `rsk schedule -cron <spec> -prices <file> -o <file> [...]

  Recomputes the report each time the cron spec fires, until interrupted.
  The spec has a leading seconds field, e.g. "0 30 18 * * 1-5" runs at 18:30 on weekdays.
  A run still in progress when the spec fires again is skipped.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	c.runFlags.SetFlags(f)
	f.StringVar(&c.spec, "cron", "0 0 18 * * 1-5", "cron spec with seconds")
	f.BoolVar(&c.now, "now", false, "also compute the report immediately")
}

// scheduler builds the cron scheduler running job on spec.
func scheduler(spec string, job func()) (*cron.Cron, error) {
	sched := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := sched.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return sched, nil
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := c.job(ctx, cfg, rec)
	sched, err := scheduler(c.spec, job)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.now {
		job()
	}
	sched.Start()
	log.Printf("[INFO] scheduler started with %q", c.spec)

	<-ctx.Done()
	<-sched.Stop().Done()
	log.Println("[INFO] scheduler stopped")
	return subcommands.ExitSuccess
}

// job returns the scheduled task. Failures are logged and do not stop the scheduler.
func (c *scheduleCmd) job(ctx context.Context, cfg risk.Config, rec recorder.Recorder) func() {
	return func() {
		log.Println("[INFO] computing report")
		if err := c.run(ctx, cfg, rec); err != nil {
			log.Printf("[ERROR] scheduled report: %v", err)
		}
	}
}

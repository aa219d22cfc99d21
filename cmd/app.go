// Package cmd implements the rsk command line application.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "rsk.yaml", "Path to the YAML configuration file. A missing file is ignored.")

// Verbose enables detailed logging.
var Verbose = flag.Bool("v", false, "verbose logging")

// Commands lists the rsk subcommands.
var Commands = []subcommands.Command{
	&reportCmd{},
	&returnsCmd{},
	&scheduleCmd{},
	&topicCmd{},
}

// IsCommand returns true if name is a builtin subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// SetupLogging configures the standard logger. It must be called after flags are parsed.
func SetupLogging() {
	log.SetOutput(os.Stderr)
	if *Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		return
	}
	log.SetFlags(0)
}

// debugf logs only in verbose mode.
func debugf(format string, args ...any) {
	if *Verbose {
		log.Printf("[INFO] "+format, args...)
	}
}

// interactive returns true if the standard output is a terminal.
var interactive = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

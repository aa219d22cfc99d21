// Command rsk computes per ticker risk metrics from daily closing prices.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/risk/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests and exits, if any.
	cmd.Completion(flag.CommandLine).Complete("rsk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "risk")
	}

	flag.Parse()
	cmd.SetupLogging()

	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

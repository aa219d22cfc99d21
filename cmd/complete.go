package cmd

import (
	"flag"
	"io"

	"github.com/etnz/risk/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors for flags whose values can be guessed. Other flags accept anything.
var predictors = map[string]complete.Predictor{
	"prices": predict.Files("*.csv*"),
	"o":      predict.Files("*"),
	"config": predict.Files("*.yaml"),
	"sqlite": predict.Files("*.db"),
	"format": predict.Set{"csv", "jsonl", "md"},
	"period": predict.Set{"week", "month", "quarter", "year", "3y"},
	"c":      predict.Set{"0.9", "0.95", "0.99"},
}

// predictFlags returns the completion of every flag defined on f.
func predictFlags(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := predictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

// Completion describes the rsk command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Flags: predictFlags(global),
		Sub:   make(map[string]*complete.Command),
	}
	for _, c := range Commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		f.SetOutput(io.Discard)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: predictFlags(f)}
	}
	if topics, err := docs.AllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}

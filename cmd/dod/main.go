package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a training session (default)"`
	Simulate SimulateCmd      `cmd:"" help:"Deal many games and report least-suit statistics"`
	Ver      VersionCmd       `cmd:"version" help:"Print the version"`
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Printf("dod %s\n", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dod"),
		kong.Description("Deduce or Die deduction trainer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

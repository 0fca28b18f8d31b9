package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Run      RunCmd           `cmd:"" default:"withargs" help:"Run the tournament clock"`
	Schedule ScheduleCmd      `cmd:"" help:"Print the configured blind schedule"`
	Init     InitCmd          `cmd:"" help:"Write a config file with the default structure"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerclock"),
		kong.Description("Poker tournament clock"),
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

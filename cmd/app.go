package cmd

import "github.com/urfave/cli/v2"

// NewApp assembles the command line application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pmevo-compat"
	app.Usage = "PMEvo instruction mapping and throughput evaluation"
	app.Description = "Maps instructions named after another convention onto PMEvo port mappings and evaluates their throughput"
	app.Flags = []cli.Flag{LogLevelFlag}
	app.Before = SetupLogging
	app.Commands = []*cli.Command{
		MapCommand,
		CyclesCommand,
		CanonCommand,
	}
	return app
}

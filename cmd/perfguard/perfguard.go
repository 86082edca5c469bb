package main

import (
	"os"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/operations"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func main() {
	// commands that return a cli.ExitError exit with its code inside
	// Run; every other error is fatal here.
	app := buildApp()
	if err := app.Run(os.Args); err != nil {
		grip.EmergencyFatal(err)
	}
}

func buildApp() *cli.App {
	app := cli.NewApp()

	app.Name = "perfguard"
	app.Usage = "detect performance regressions against versioned baselines"
	app.Version = perfguard.BuildRevision

	app.Commands = []cli.Command{
		operations.Model(),
		operations.Sample(),
	}

	// These are global options. Use this to configure logging or
	// other options independent from specific sub commands.
	app.Flags = operations.GlobalFlags()

	app.Before = func(c *cli.Context) error {
		return errors.WithStack(loggingSetup(app.Name, c.String("level")))
	}

	return app
}

// logging setup is separate to make it unit testable
func loggingSetup(name, logLevel string) error {
	sender := grip.GetSender()
	sender.SetName(name)

	lvl := sender.Level()
	lvl.Threshold = level.FromString(logLevel)
	return errors.WithStack(sender.SetLevel(lvl))
}

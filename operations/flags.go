package operations

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

////////////////////////////////////////////////////////////////////////
//
// Flag Name Constants

const (
	levelFlagName  = "level"
	configFlagName = "config"
	sigmaFlagName  = "sigma"

	versionFlagName   = "version"
	projectsFlagName  = "projects"
	baselinesFlagName = "baselines"
	outFlagName       = "out"
	tmpFlagName       = "tmp"
)

////////////////////////////////////////////////////////////////////////
//
// Utility Functions

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func mergeFlags(in ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}

	for idx := range in {
		out = append(out, in[idx]...)
	}

	return out
}

////////////////////////////////////////////////////////////////////////
//
// Flag Groups

// GlobalFlags returns the application level options shared by every
// sub-command.
func GlobalFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  levelFlagName,
			Value: "info",
			Usage: "Specify lowest visible loglevel as string: 'emergency|alert|critical|error|warning|notice|info|debug'",
		},
		cli.StringFlag{
			Name:   configFlagName,
			Usage:  "path to a YAML configuration file",
			EnvVar: "PERFGUARD_CONFIG",
		},
		cli.Float64Flag{
			Name:  sigmaFlagName,
			Usage: "number of standard deviations above the baseline mean that counts as a regression",
		},
	)
}

func addProjectsFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(projectsFlagName, "p"),
		Usage: "directory containing one sub-directory per project to measure",
	})
}

func addBaselinesFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(baselinesFlagName, "b"),
		Usage: "directory holding the versioned baseline files",
	})
}

func addTmpFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(tmpFlagName, "t"),
		Usage: "staging directory for benchmark reports, cleared before every run",
	})
}

func modelFlags() []cli.Flag {
	return mergeFlags(
		[]cli.Flag{
			cli.StringFlag{
				Name:  versionFlagName,
				Usage: "version of the baseline to create, formatted as 'major.minor.patch'",
			},
		},
		addProjectsFlag(),
		addBaselinesFlag(),
		addTmpFlag(),
	)
}

func sampleFlags() []cli.Flag {
	return mergeFlags(
		addProjectsFlag(),
		addBaselinesFlag(),
		[]cli.Flag{
			cli.StringFlag{
				Name:  joinFlagNames(outFlagName, "o"),
				Usage: "directory to write the final calculations to",
			},
		},
		addTmpFlag(),
	)
}

// setFlagsOrPositionals fills each named flag that was not given on the
// command line from the positional arguments, in order.
func setFlagsOrPositionals(names ...string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		args := c.Args()
		next := 0
		for _, name := range names {
			if c.String(name) != "" {
				continue
			}
			if next >= len(args) {
				return errors.Errorf("must specify '--%s' or a positional argument for it", name)
			}

			if err := c.Set(name, args[next]); err != nil {
				return errors.Wrapf(err, "problem setting '%s'", name)
			}
			next++
		}

		if next != len(args) {
			return errors.Errorf("unexpected positional arguments: %s", strings.Join(args[next:], " "))
		}

		return nil
	}
}

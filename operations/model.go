package operations

import (
	"context"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/bench"
	"github.com/evergreen-ci/perfguard/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Model returns the entry point for the ./perfguard model sub-command,
// which measures every project repeatedly and stores the result as a new
// baseline version.
func Model() cli.Command {
	return cli.Command{
		Name:      "model",
		Usage:     "measure the projects and save the results as a new baseline",
		ArgsUsage: "<version> <projects-dir> <baselines-dir> <tmp-dir>",
		Flags:     modelFlags(),
		Before: sequenceBeforeFuncs(
			setFlagsOrPositionals(versionFlagName, projectsFlagName, baselinesFlagName, tmpFlagName),
			mergeBeforeFuncs(
				requireDirectory(projectsFlagName),
				requireStringFlag(baselinesFlagName),
				requireStringFlag(tmpFlagName),
			),
		),
		Action: func(c *cli.Context) error {
			version, err := model.ParseVersion(c.String(versionFlagName))
			if err != nil {
				return err
			}

			conf, err := loadConfiguration(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			return runModel(ctx, modelOptions{
				conf:         conf,
				runner:       bench.NewHyperfineRunner(conf),
				version:      version,
				projectsDir:  c.String(projectsFlagName),
				baselinesDir: c.String(baselinesFlagName),
				stagingDir:   c.String(tmpFlagName),
			})
		},
	}
}

type modelOptions struct {
	conf         *perfguard.Configuration
	runner       bench.Runner
	version      model.Version
	projectsDir  string
	baselinesDir string
	stagingDir   string
}

func runModel(ctx context.Context, opts modelOptions) error {
	store, err := model.NewBaselineStore(opts.baselinesDir)
	if err != nil {
		return errors.WithStack(err)
	}

	baseline, err := bench.NewCollector(opts.conf, opts.runner, opts.stagingDir).Model(ctx, opts.version, opts.projectsDir)
	if err != nil {
		return err
	}

	return store.Save(ctx, baseline)
}

package operations

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/bench"
	"github.com/evergreen-ci/perfguard/model"
	"github.com/evergreen-ci/perfguard/perf"
	"github.com/evergreen-ci/perfguard/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Sample returns the entry point for the ./perfguard sample sub-command,
// which measures every project once and compares the results with the
// current baseline.
func Sample() cli.Command {
	return cli.Command{
		Name:      "sample",
		Usage:     "measure the projects and check the samples against the latest baseline",
		ArgsUsage: "<projects-dir> <baselines-dir> <out-dir>",
		Flags:     sampleFlags(),
		Before: sequenceBeforeFuncs(
			setFlagsOrPositionals(projectsFlagName, baselinesFlagName, outFlagName),
			mergeBeforeFuncs(
				requireDirectory(projectsFlagName),
				requireStringFlag(baselinesFlagName),
				requireDirectory(outFlagName),
			),
		),
		Action: func(c *cli.Context) error {
			conf, err := loadConfiguration(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			staging := c.String(tmpFlagName)
			if staging == "" {
				staging = c.String(outFlagName)
			}

			return runSample(ctx, sampleOptions{
				conf:         conf,
				runner:       bench.NewHyperfineRunner(conf),
				projectsDir:  c.String(projectsFlagName),
				baselinesDir: c.String(baselinesFlagName),
				outDir:       c.String(outFlagName),
				stagingDir:   staging,
				stdout:       os.Stdout,
				now:          time.Now,
			})
		},
	}
}

type sampleOptions struct {
	conf         *perfguard.Configuration
	runner       bench.Runner
	projectsDir  string
	baselinesDir string
	outDir       string
	stagingDir   string
	stdout       io.Writer
	now          func() time.Time
}

// runSample returns an exit error with status 1 when any metric regressed.
func runSample(ctx context.Context, opts sampleOptions) error {
	store, err := model.NewBaselineStore(opts.baselinesDir)
	if err != nil {
		return errors.WithStack(err)
	}

	baseline, err := store.Current(ctx)
	if err != nil {
		return err
	}

	samples, err := bench.NewCollector(opts.conf, opts.runner, opts.stagingDir).Sample(ctx, opts.projectsDir)
	if err != nil {
		return err
	}

	for _, metric := range perf.UnmatchedMetrics(samples, baseline) {
		grip.Warning(message.Fields{
			"message":  "baseline metric has no sample",
			"metric":   metric.String(),
			"baseline": baseline.Version.String(),
		})
	}

	calcs := perf.NewSigmaDetector(opts.conf.Sigma).Detect(samples, baseline)
	if err = printCalculations(opts.stdout, "All Calculations", calcs); err != nil {
		return err
	}

	fn := calculationsFilename(opts.outDir, calcs, opts.now())
	if err = util.WriteJSON(fn, calcs); err != nil {
		return perfguard.NewIOError(perfguard.WriteErr, fn, errors.Cause(err))
	}
	grip.Info(message.Fields{
		"message":      "wrote calculations",
		"path":         fn,
		"calculations": len(calcs),
	})

	regressions := perf.Regressions(calcs)
	if len(regressions) == 0 {
		_, err = fmt.Fprintln(opts.stdout, "congrats! no regressions :)")
		return errors.WithStack(err)
	}

	if err = printCalculations(opts.stdout, "Regressions Found", regressions); err != nil {
		return err
	}

	return cli.NewExitError(fmt.Sprintf("%d of %d metrics regressed", len(regressions), len(calcs)), 1)
}

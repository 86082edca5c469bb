package bench

import (
	"context"
	"path/filepath"
	"time"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/model"
	"github.com/evergreen-ci/perfguard/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Collector measures every catalog command in every project, one
// invocation at a time. The staging directory belongs to a single pass: it
// is cleared first and only written by the invocations of that pass.
type Collector struct {
	Conf       *perfguard.Configuration
	Runner     Runner
	StagingDir string

	now func() time.Time
}

// NewCollector returns a collector that stages hyperfine reports in
// stagingDir.
func NewCollector(conf *perfguard.Configuration, runner Runner, stagingDir string) *Collector {
	return &Collector{
		Conf:       conf,
		Runner:     runner,
		StagingDir: stagingDir,
		now:        time.Now,
	}
}

// Sample runs every scenario once and returns one sample per metric. All
// samples of the pass share the timestamp at which the pass started.
func (c *Collector) Sample(ctx context.Context, projectsDir string) ([]model.Sample, error) {
	if err := c.recreateStagingDir(); err != nil {
		return nil, err
	}

	ts := c.now().UTC()
	if err := c.runAll(ctx, projectsDir, c.Conf.SampleRuns); err != nil {
		return nil, err
	}

	reports, err := model.ReadJSONDir[model.Measurements](ctx, c.StagingDir)
	if err != nil {
		return nil, err
	}

	samples := make([]model.Sample, 0, len(reports))
	for _, report := range reports {
		metric, err := model.ParseMetricFilename(report.Path)
		if err != nil {
			return nil, err
		}

		measurement, err := report.Value.Only(report.Path)
		if err != nil {
			return nil, err
		}

		sample, err := model.NewSample(metric, ts, measurement)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	grip.Info(message.Fields{
		"message": "collected samples",
		"samples": len(samples),
		"staging": c.StagingDir,
		"ts":      ts,
	})

	return samples, nil
}

// Model measures every scenario with the configured number of runs and
// builds the baseline of version from the reports.
func (c *Collector) Model(ctx context.Context, version model.Version, projectsDir string) (model.Baseline, error) {
	if err := c.recreateStagingDir(); err != nil {
		return model.Baseline{}, err
	}

	if err := c.runAll(ctx, projectsDir, c.Conf.ModelRuns); err != nil {
		return model.Baseline{}, err
	}

	reports, err := model.ReadJSONDir[model.Measurements](ctx, c.StagingDir)
	if err != nil {
		return model.Baseline{}, err
	}

	return model.NewBaseline(version, c.now().UTC(), reports)
}

func (c *Collector) recreateStagingDir() error {
	if c.StagingDir == "" {
		return &perfguard.CannotRecreateTempDirError{Err: errors.New("no staging directory specified")}
	}
	if err := util.RecreateDir(c.StagingDir); err != nil {
		return &perfguard.CannotRecreateTempDirError{Path: c.StagingDir, Err: errors.Cause(err)}
	}
	return nil
}

// runAll invokes the runner for each scenario in turn and stops at the
// first failure.
func (c *Collector) runAll(ctx context.Context, projectsDir string, runs int) error {
	scenarios, err := FindScenarios(projectsDir, c.Conf.Catalog)
	if err != nil {
		return err
	}

	// hyperfine runs inside each project directory
	staging, err := filepath.Abs(c.StagingDir)
	if err != nil {
		return perfguard.NewIOError(perfguard.ReadErr, c.StagingDir, err)
	}

	for _, s := range scenarios {
		inv := Invocation{
			Dir:        s.Dir,
			Command:    s.Command.Command,
			Prepare:    s.Command.Prepare,
			Runs:       runs,
			Warmup:     c.Conf.Warmup,
			ExportPath: filepath.Join(staging, s.Metric.Filename()),
			ShowOutput: c.Conf.ShowOutput,
		}

		grip.Info(message.Fields{
			"message": "measuring metric",
			"metric":  s.Metric.Name,
			"project": s.Metric.ProjectName,
			"runs":    runs,
		})

		if err = c.Runner.Run(ctx, inv); err != nil {
			grip.Error(message.WrapError(err, message.Fields{
				"message": "benchmark invocation failed",
				"metric":  s.Metric.String(),
				"dir":     s.Dir,
			}))
			return err
		}
	}

	return nil
}

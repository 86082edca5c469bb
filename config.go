package perfguard

import (
	"strings"

	"github.com/evergreen-ci/perfguard/util"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// Configuration holds the settings of the model and sample workflows. It is
// passed explicitly to every component that needs it.
type Configuration struct {
	Sigma           float64            `yaml:"sigma"`
	ModelRuns       int                `yaml:"model_runs"`
	SampleRuns      int                `yaml:"sample_runs"`
	Warmup          int                `yaml:"warmup"`
	HyperfineBinary string             `yaml:"hyperfine"`
	ShowOutput      bool               `yaml:"show_output"`
	Catalog         []BenchmarkCommand `yaml:"metrics"`
}

// DefaultConfiguration returns a valid configuration measuring the default
// catalog.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Sigma:           DefaultSigma,
		ModelRuns:       DefaultModelRuns,
		SampleRuns:      DefaultSampleRuns,
		Warmup:          DefaultWarmupRuns,
		HyperfineBinary: DefaultHyperfineBinary,
		ShowOutput:      true,
		Catalog:         DefaultCatalog(),
	}
}

// LoadConfiguration reads a YAML configuration file. An empty path returns
// the default configuration.
func LoadConfiguration(path string) (*Configuration, error) {
	if path == "" {
		return DefaultConfiguration(), nil
	}
	if !utility.FileExists(path) {
		return nil, errors.Errorf("configuration file '%s' does not exist", path)
	}

	conf := &Configuration{ShowOutput: true}
	if err := util.ReadFileYAML(path, conf); err != nil {
		return nil, errors.Wrap(err, "problem reading configuration")
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in '%s'", path)
	}

	return conf, nil
}

// Validate checks the configuration and fills unset values with their
// defaults.
func (c *Configuration) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.Sigma == 0 {
		c.Sigma = DefaultSigma
	}
	if c.ModelRuns == 0 {
		c.ModelRuns = DefaultModelRuns
	}
	if c.SampleRuns == 0 {
		c.SampleRuns = DefaultSampleRuns
	}
	if c.HyperfineBinary == "" {
		c.HyperfineBinary = DefaultHyperfineBinary
	}
	if len(c.Catalog) == 0 {
		c.Catalog = DefaultCatalog()
	}

	catcher.NewWhen(c.Sigma < 0, "sigma must not be negative")
	catcher.NewWhen(c.ModelRuns < 2, "a baseline requires at least two measured runs")
	catcher.NewWhen(c.SampleRuns != 1, "samples are built from exactly one measured run")
	catcher.NewWhen(c.Warmup < 0, "warmup runs must not be negative")

	names := []string{}
	for _, cmd := range c.Catalog {
		switch {
		case cmd.Name == "":
			catcher.New("metric name must not be empty")
		case strings.Contains(cmd.Name, MetricSeparator):
			catcher.Errorf("metric name '%s' must not contain '%s'", cmd.Name, MetricSeparator)
		case utility.StringSliceContains(names, cmd.Name):
			catcher.Errorf("metric '%s' is defined more than once", cmd.Name)
		}
		catcher.NewWhen(cmd.Command == "", "metric '"+cmd.Name+"' must specify a command")
		names = append(names, cmd.Name)
	}

	return catcher.Resolve()
}

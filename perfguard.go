/*
Package perfguard holds the application level constants, configuration and
error types shared by the perfguard performance regression runner.
*/
package perfguard

// BuildRevision stores the commit in the git repository at build time and is
// specified with -ldflags at build time.
var BuildRevision = ""

const (
	// DefaultSigma is the multiplier applied to a baseline's standard
	// deviation when deriving the regression threshold.
	DefaultSigma = 3.0

	// DefaultModelRuns is the number of measured runs used to build a
	// baseline for a release.
	DefaultModelRuns = 20

	// DefaultSampleRuns is the number of measured runs taken for the
	// current working tree. Samples are built from exactly one run.
	DefaultSampleRuns = 1

	DefaultWarmupRuns      = 1
	DefaultHyperfineBinary = "hyperfine"

	// MetricSeparator joins a metric name and its project name in the
	// canonical text form of a metric.
	MetricSeparator = "___"

	// CalculationsFilePrefix names the output of the sample workflow,
	// which is suffixed with the unix timestamp of the pass.
	CalculationsFilePrefix = "final_calculations_"
)

// BenchmarkCommand defines a command that we want to measure with hyperfine
// in every project.
type BenchmarkCommand struct {
	Name    string `json:"name" yaml:"name"`
	Prepare string `json:"prepare" yaml:"prepare"`
	Command string `json:"command" yaml:"command"`
}

// DefaultCatalog returns the metrics measured when no configuration file
// provides a catalog.
func DefaultCatalog() []BenchmarkCommand {
	return []BenchmarkCommand{
		{
			Name:    "parse",
			Prepare: "rm -rf target/",
			Command: "dbt parse --no-version-check --profiles-dir ../../project_config/",
		},
	}
}

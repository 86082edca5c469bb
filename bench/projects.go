package bench

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Scenario is one catalog command to run in one project.
type Scenario struct {
	Dir     string
	Metric  model.Metric
	Command perfguard.BenchmarkCommand
}

// FindScenarios pairs every project directory directly below projectsDir
// with every command of the catalog. Entries that are not directories, and
// directories whose name starts with an underscore, are skipped.
func FindScenarios(projectsDir string, catalog []perfguard.BenchmarkCommand) ([]Scenario, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, perfguard.NewIOError(perfguard.ReadErr, projectsDir, err)
	}

	scenarios := []Scenario{}
	for _, entry := range entries {
		path := filepath.Join(projectsDir, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			return nil, perfguard.NewIOError(perfguard.ReadErr, path, err)
		}
		if !info.IsDir() {
			continue
		}

		projectName := entry.Name()
		switch {
		case projectName == "":
			return nil, perfguard.NewIOError(perfguard.MissingFilenameErr, path, nil)
		case !utf8.ValidString(projectName):
			return nil, perfguard.NewIOError(perfguard.FilenameNotUnicodeErr, path, nil)
		case strings.HasPrefix(projectName, "_"):
			// such as __pycache__; the metric name would not parse back
			grip.Warning(message.Fields{
				"message": "skipping directory that cannot name a project",
				"dir":     path,
			})
			continue
		}

		for _, cmd := range catalog {
			metric := model.Metric{Name: cmd.Name, ProjectName: projectName}
			if err := metric.Validate(); err != nil {
				return nil, errors.Wrapf(err, "project '%s' cannot be benchmarked", path)
			}

			scenarios = append(scenarios, Scenario{
				Dir:     path,
				Metric:  metric,
				Command: cmd,
			})
		}
	}

	return scenarios, nil
}

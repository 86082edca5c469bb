package model

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/evergreen-ci/perfguard"
	"github.com/pkg/errors"
)

const reportExtension = ".json"

// Metric identifies one benchmarked scenario: a named command measured in a
// specific project. Metrics compare structurally and are used as map keys
// to join baseline models with samples.
type Metric struct {
	Name        string `json:"name"`
	ProjectName string `json:"project_name"`
}

// ParseMetric parses the canonical "name___project" form. The text must not
// carry a file extension.
func ParseMetric(s string) (Metric, error) {
	parts := strings.Split(s, perfguard.MetricSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Metric{}, &perfguard.MetricParseError{Input: s}
	}

	return Metric{Name: parts[0], ProjectName: parts[1]}, nil
}

// ParseMetricFilename recovers the metric encoded in the file name of a
// staged hyperfine report.
func ParseMetricFilename(path string) (Metric, error) {
	base := filepath.Base(path)
	if path == "" || base == "." || base == string(filepath.Separator) {
		return Metric{}, perfguard.NewIOError(perfguard.MissingFilenameErr, path, nil)
	}
	if !utf8.ValidString(base) {
		return Metric{}, perfguard.NewIOError(perfguard.FilenameNotUnicodeErr, path, nil)
	}

	return ParseMetric(strings.TrimSuffix(base, filepath.Ext(base)))
}

func (m Metric) String() string { return m.Name + perfguard.MetricSeparator + m.ProjectName }

// Filename is the name of the hyperfine report recorded for this metric.
func (m Metric) Filename() string { return m.String() + reportExtension }

// Validate checks that the canonical text form of m parses back to m.
func (m Metric) Validate() error {
	switch {
	case m.Name == "" || m.ProjectName == "":
		return errors.Errorf("metric '%s' must have a name and a project name", m.String())
	case strings.Contains(m.Name, perfguard.MetricSeparator), strings.Contains(m.ProjectName, perfguard.MetricSeparator):
		return errors.Errorf("metric '%s' must not contain '%s'", m.String(), perfguard.MetricSeparator)
	case strings.HasSuffix(m.Name, "_"), strings.HasPrefix(m.ProjectName, "_"):
		return errors.Errorf("metric '%s' is ambiguous around the separator", m.String())
	}
	return nil
}

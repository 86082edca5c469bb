package model

import (
	"encoding/json"
	"time"

	"github.com/evergreen-ci/perfguard"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// MetricModel is the statistical model of one metric within a baseline.
type MetricModel struct {
	Metric      Metric      `json:"metric"`
	Timestamp   time.Time   `json:"ts"`
	Measurement Measurement `json:"measurement"`
}

// UnmarshalJSON requires the metric, the timestamp and a measurement with a
// known standard deviation.
func (m *MetricModel) UnmarshalJSON(data []byte) error {
	doc, err := requireFields(data, "baseline model", "metric", "ts", "measurement")
	if err != nil {
		return err
	}
	if isNull(doc["metric"]) || isNull(doc["ts"]) {
		return errors.New("baseline model must not have a null metric or timestamp")
	}

	measurement, err := requireFields(doc["measurement"], "baseline measurement", "stddev")
	if err != nil {
		return err
	}
	if isNull(measurement["stddev"]) {
		return errors.New("baseline measurement must have a standard deviation")
	}

	type metricModel MetricModel
	out := metricModel{}
	if err = json.Unmarshal(data, &out); err != nil {
		return errors.WithStack(err)
	}

	*m = MetricModel(out)
	return nil
}

// Baseline is the statistical profile of a released version. Baselines are
// written once by the model workflow and only read afterwards.
type Baseline struct {
	Version Version       `json:"version"`
	Models  []MetricModel `json:"models"`
}

// UnmarshalJSON requires the document to carry both a version and a list
// of models.
func (b *Baseline) UnmarshalJSON(data []byte) error {
	doc := struct {
		Version *Version       `json:"version"`
		Models  *[]MetricModel `json:"models"`
	}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Version == nil {
		return errors.New("baseline is missing field 'version'")
	}
	if doc.Models == nil {
		return errors.New("baseline is missing field 'models'")
	}

	b.Version = *doc.Version
	b.Models = *doc.Models
	return nil
}

// Validate checks that the metrics of the models are valid and unique.
func (b *Baseline) Validate() error {
	catcher := grip.NewBasicCatcher()
	seen := make(map[Metric]struct{}, len(b.Models))

	for _, model := range b.Models {
		catcher.Add(model.Metric.Validate())
		if _, ok := seen[model.Metric]; ok {
			catcher.Errorf("baseline %s has more than one model for metric '%s'", b.Version, model.Metric)
		}
		seen[model.Metric] = struct{}{}
	}

	return catcher.Resolve()
}

// NewBaseline builds the baseline of version from staged hyperfine reports,
// recovering each metric from its report's file name. Every model shares
// the timestamp ts.
func NewBaseline(version Version, ts time.Time, reports []JSONFile[Measurements]) (Baseline, error) {
	baseline := Baseline{
		Version: version,
		Models:  make([]MetricModel, 0, len(reports)),
	}

	for _, report := range reports {
		metric, err := ParseMetricFilename(report.Path)
		if err != nil {
			return Baseline{}, errors.WithStack(err)
		}

		measurement, err := report.Value.Only(report.Path)
		if err != nil {
			return Baseline{}, errors.WithStack(err)
		}

		baseline.Models = append(baseline.Models, MetricModel{
			Metric:      metric,
			Timestamp:   ts,
			Measurement: measurement,
		})
	}

	if err := baseline.Validate(); err != nil {
		return Baseline{}, errors.Wrapf(err, "invalid baseline for version %s", version)
	}

	return baseline, nil
}

// SelectCurrent returns the baseline with the greatest version.
func SelectCurrent(baselines []Baseline) (Baseline, error) {
	if len(baselines) == 0 {
		return Baseline{}, &perfguard.NoBaselinesFoundError{}
	}

	versions := make([]Version, len(baselines))
	for idx, b := range baselines {
		versions[idx] = b.Version
	}

	latest, err := MaxVersion(versions)
	if err != nil {
		return Baseline{}, errors.WithStack(err)
	}

	for _, b := range baselines {
		if b.Version == latest {
			return b, nil
		}
	}

	return Baseline{}, errors.Errorf("no baseline has version %s", latest)
}

package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/evergreen-ci/perfguard"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// Measurement is one element of the "results" array of a hyperfine JSON
// report. All durations are in seconds.
type Measurement struct {
	Command string    `json:"command"`
	Mean    float64   `json:"mean"`
	StdDev  float64   `json:"stddev"`
	Median  float64   `json:"median"`
	User    float64   `json:"user"`
	System  float64   `json:"system"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Times   []float64 `json:"times"`
}

var measurementFields = []string{"command", "mean", "stddev", "median", "user", "system", "min", "max", "times"}

// UnmarshalJSON requires every field of a hyperfine result. Only stddev may
// be null, which is how hyperfine reports a single run.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	doc, err := requireFields(data, "measurement", measurementFields...)
	if err != nil {
		return err
	}

	catcher := grip.NewBasicCatcher()
	for _, field := range measurementFields {
		if field != "stddev" && isNull(doc[field]) {
			catcher.Errorf("measurement field '%s' must not be null", field)
		}
	}
	if catcher.HasErrors() {
		return catcher.Resolve()
	}

	type measurement Measurement
	out := measurement{}
	if err = json.Unmarshal(data, &out); err != nil {
		return errors.WithStack(err)
	}

	*m = Measurement(out)
	return nil
}

// Measurements is the full hyperfine JSON report.
type Measurements struct {
	Results []Measurement `json:"results"`
}

// Only returns the single result of a report produced by one hyperfine
// invocation of one command. source names the report in the error.
func (m Measurements) Only(source string) (Measurement, error) {
	if len(m.Results) != 1 {
		return Measurement{}, &perfguard.MeasurementArityError{Source: source, Field: "results", Count: len(m.Results)}
	}
	return m.Results[0], nil
}

// Sample is a single freshly observed value for one metric.
type Sample struct {
	Metric    Metric    `json:"metric"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"ts"`
}

// NewSample builds a sample from a measurement of exactly one run, whose
// only time is the observed value.
func NewSample(metric Metric, ts time.Time, measurement Measurement) (Sample, error) {
	if len(measurement.Times) != 1 {
		return Sample{}, &perfguard.MeasurementArityError{Source: metric.String(), Field: "times", Count: len(measurement.Times)}
	}

	return Sample{
		Metric:    metric,
		Value:     measurement.Times[0],
		Timestamp: ts,
	}, nil
}

// requireFields decodes the JSON object in data and checks that each of
// fields is present.
func requireFields(data []byte, kind string, fields ...string) (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WithStack(err)
	}

	catcher := grip.NewBasicCatcher()
	for _, field := range fields {
		if _, ok := doc[field]; !ok {
			catcher.Errorf("%s is missing field '%s'", kind, field)
		}
	}

	return doc, catcher.Resolve()
}

func isNull(raw json.RawMessage) bool { return bytes.Equal(bytes.TrimSpace(raw), []byte("null")) }

package perf

import (
	"time"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/model"
)

type sigmaDetector struct {
	sigma float64
	info  AlgorithmInfo
}

// NewSigmaDetector flags a sample as a regression when its value is
// strictly greater than mean + sigma * stddev of its baseline model. A
// non-positive sigma uses the default of three.
func NewSigmaDetector(sigma float64) Detector {
	if sigma <= 0 {
		sigma = perfguard.DefaultSigma
	}

	return &sigmaDetector{
		sigma: sigma,
		info: AlgorithmInfo{
			Name:    "sigma_threshold",
			Version: 1,
			Options: []AlgorithmOption{
				{
					Name:  "sigma",
					Value: sigma,
				},
			},
		},
	}
}

func (d *sigmaDetector) Detect(samples []model.Sample, baseline model.Baseline) []model.Calculation {
	return CalculateRegressions(samples, baseline, d.sigma)
}

// Info reports the algorithm configuration of the detector.
func (d *sigmaDetector) Info() AlgorithmInfo { return d.info }

type observation struct {
	value float64
	ts    time.Time
}

func indexSamples(samples []model.Sample) map[model.Metric]observation {
	out := make(map[model.Metric]observation, len(samples))
	for _, s := range samples {
		out[s.Metric] = observation{value: s.Value, ts: s.Timestamp}
	}
	return out
}

// CalculateRegressions joins samples with the models of baseline by metric
// and compares each pair against the sigma threshold. Baseline metrics
// without a sample and samples without a model produce no calculation.
// Calculations follow the order of the baseline's models.
func CalculateRegressions(samples []model.Sample, baseline model.Baseline, sigma float64) []model.Calculation {
	observed := indexSamples(samples)
	calcs := []model.Calculation{}

	for _, m := range baseline.Models {
		obs, ok := observed[m.Metric]
		if !ok {
			continue
		}

		threshold := m.Measurement.Mean + sigma*m.Measurement.StdDev
		calcs = append(calcs, model.Calculation{
			Version:    baseline.Version,
			Metric:     m.Metric,
			Regression: obs.value > threshold,
			Timestamp:  obs.ts,
			Sigma:      sigma,
			Mean:       m.Measurement.Mean,
			StdDev:     m.Measurement.StdDev,
			Threshold:  threshold,
		})
	}

	return calcs
}

// UnmatchedMetrics returns the baseline metrics that have no sample. These
// are not compared at all.
func UnmatchedMetrics(samples []model.Sample, baseline model.Baseline) []model.Metric {
	observed := indexSamples(samples)
	out := []model.Metric{}

	for _, m := range baseline.Models {
		if _, ok := observed[m.Metric]; !ok {
			out = append(out, m.Metric)
		}
	}

	return out
}

// Regressions filters calcs down to the regressed metrics.
func Regressions(calcs []model.Calculation) []model.Calculation {
	out := []model.Calculation{}
	for _, c := range calcs {
		if c.Regression {
			out = append(out, c)
		}
	}
	return out
}

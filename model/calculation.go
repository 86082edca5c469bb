package model

import "time"

// Calculation is the result of comparing one sample with the baseline
// model of its metric. It records the baseline version and sigma used so
// that it can be audited on its own.
type Calculation struct {
	Version    Version   `json:"version"`
	Metric     Metric    `json:"metric"`
	Regression bool      `json:"regression"`
	Timestamp  time.Time `json:"ts"`
	Sigma      float64   `json:"sigma"`
	Mean       float64   `json:"mean"`
	StdDev     float64   `json:"stddev"`
	Threshold  float64   `json:"threshold"`
}

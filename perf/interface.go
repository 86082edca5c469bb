package perf

import "github.com/evergreen-ci/perfguard/model"

// Detector types compare current samples with a baseline and produce one
// calculation per metric present in both.
type Detector interface {
	Detect([]model.Sample, model.Baseline) []model.Calculation
	Info() AlgorithmInfo
}

// AlgorithmInfo describes the configuration of a detector.
type AlgorithmInfo struct {
	Name    string
	Version int
	Options []AlgorithmOption
}

type AlgorithmOption struct {
	Name  string
	Value interface{}
}

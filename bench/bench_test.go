package bench

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/model"
	"github.com/stretchr/testify/require"
)

// fakeRunner writes a hyperfine shaped report for every invocation instead
// of running anything.
type fakeRunner struct {
	invocations []Invocation
	times       func(Invocation) []float64
	means       map[string]float64
	failAt      int
	err         error
}

func (r *fakeRunner) Run(_ context.Context, inv Invocation) error {
	r.invocations = append(r.invocations, inv)
	if r.err != nil && len(r.invocations) == r.failAt {
		return r.err
	}

	times := make([]float64, inv.Runs)
	for idx := range times {
		times[idx] = 1.0 + float64(idx)/100
	}
	if r.times != nil {
		times = r.times(inv)
	}

	mean := 1.0
	if m, ok := r.means[filepath.Base(inv.Dir)]; ok {
		mean = m
	}

	report := model.Measurements{Results: []model.Measurement{{
		Command: inv.Command,
		Mean:    mean,
		StdDev:  0.1,
		Median:  mean,
		Min:     mean,
		Max:     mean,
		Times:   times,
	}}}

	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return os.WriteFile(inv.ExportPath, data, 0644)
}

func makeProjects(t *testing.T, names ...string) string {
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}
	return dir
}

func testConf() *perfguard.Configuration {
	conf := perfguard.DefaultConfiguration()
	conf.ShowOutput = false
	return conf
}

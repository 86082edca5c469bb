package model

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/evergreen-ci/perfguard"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBaselineFile(t *testing.T, dir, name string, b Baseline) {
	data, err := json.Marshal(b)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
}

func TestReadJSONDir(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("MissingDirectory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		_, err := ReadJSONDir[Measurements](ctx, dir)
		require.Error(t, err)

		ioErr, ok := err.(*perfguard.IOError)
		require.True(t, ok)
		assert.Equal(t, perfguard.ReadErr, ioErr.Kind)
		assert.Equal(t, dir, ioErr.Path)
	})
	t.Run("SkipsNonJSONAndNested", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "parse___a.json"), []byte(`{"results": []}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not json"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "parse___b.json"), []byte("{"), 0644))

		files, err := ReadJSONDir[Measurements](ctx, dir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, filepath.Join(dir, "parse___a.json"), files[0].Path)
	})
	t.Run("BadJSON", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"results": []}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"results": `), 0644))

		_, err := ReadJSONDir[Measurements](ctx, dir)
		require.Error(t, err)

		jsonErr, ok := err.(*perfguard.BadJSONError)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "b.json"), jsonErr.Path)
		assert.Error(t, jsonErr.Err)
	})
	t.Run("EmptyDirectory", func(t *testing.T) {
		files, err := ReadJSONDir[Measurements](ctx, t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestBaselineStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("LoadAll", func(t *testing.T) {
		dir := t.TempDir()
		writeBaselineFile(t, dir, "1.0.0.json", testBaseline(Version{Major: 1}))
		writeBaselineFile(t, dir, "0.21.1.json", testBaseline(Version{Minor: 21, Patch: 1}))

		store, err := NewBaselineStore(dir)
		require.NoError(t, err)
		baselines, err := store.LoadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, baselines, 2)
	})
	t.Run("CurrentIsGreatestVersion", func(t *testing.T) {
		dir := t.TempDir()
		writeBaselineFile(t, dir, "a.json", testBaseline(Version{Major: 1, Minor: 9}))
		writeBaselineFile(t, dir, "b.json", testBaseline(Version{Major: 1, Minor: 10}))
		writeBaselineFile(t, dir, "c.json", testBaseline(Version{Major: 1, Minor: 2, Patch: 7}))

		store, err := NewBaselineStore(dir)
		require.NoError(t, err)
		current, err := store.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, Version{Major: 1, Minor: 10}, current.Version)
	})
	t.Run("NoBaselines", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewBaselineStore(dir)
		require.NoError(t, err)

		_, err = store.Current(ctx)
		require.Error(t, err)
		noBaselines, ok := err.(*perfguard.NoBaselinesFoundError)
		require.True(t, ok)
		assert.Equal(t, dir, noBaselines.Dir)
	})
	t.Run("FailsFastOnInvalidFile", func(t *testing.T) {
		dir := t.TempDir()
		writeBaselineFile(t, dir, "1.0.0.json", testBaseline(Version{Major: 1}))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"version": "1.1"}`), 0644))

		store, err := NewBaselineStore(dir)
		require.NoError(t, err)
		_, err = store.LoadAll(ctx)
		require.Error(t, err)

		jsonErr, ok := err.(*perfguard.BadJSONError)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "broken.json"), jsonErr.Path)
	})
	t.Run("RejectsIncompleteModels", func(t *testing.T) {
		for name, doc := range map[string]string{
			"OnlyMetric":         `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"}}]}`,
			"NoMeasurement":      `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"},"ts":"2021-06-01T12:00:00Z"}]}`,
			"NullTimestamp":      `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"},"ts":null,"measurement":{"command":"c","mean":1,"stddev":0.1,"median":1,"user":1,"system":0,"min":1,"max":1,"times":[1,1]}}]}`,
			"NoMeanOrStdDev":     `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"},"ts":"2021-06-01T12:00:00Z","measurement":{"command":"c","median":1,"user":1,"system":0,"min":1,"max":1,"times":[1,1]}}]}`,
			"NullStdDev":         `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"},"ts":"2021-06-01T12:00:00Z","measurement":{"command":"c","mean":1,"stddev":null,"median":1,"user":1,"system":0,"min":1,"max":1,"times":[1,1]}}]}`,
			"NoTimes":            `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"},"ts":"2021-06-01T12:00:00Z","measurement":{"command":"c","mean":1,"stddev":0.1,"median":1,"user":1,"system":0,"min":1,"max":1}}]}`,
			"NullMeasurementKey": `{"version":"1.0.0","models":[{"metric":{"name":"parse","project_name":"p"},"ts":"2021-06-01T12:00:00Z","measurement":null}]}`,
		} {
			t.Run(name, func(t *testing.T) {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, "1.0.0.json"), []byte(doc), 0644))

				store, err := NewBaselineStore(dir)
				require.NoError(t, err)
				_, err = store.Current(ctx)
				require.Error(t, err)

				jsonErr, ok := err.(*perfguard.BadJSONError)
				require.True(t, ok, "%T: %v", err, err)
				assert.Equal(t, filepath.Join(dir, "1.0.0.json"), jsonErr.Path)
			})
		}
	})
	t.Run("RejectsDuplicateMetrics", func(t *testing.T) {
		dir := t.TempDir()
		baseline := testBaseline(Version{Major: 1})
		baseline.Models = append(baseline.Models, baseline.Models[1])
		writeBaselineFile(t, dir, "1.0.0.json", baseline)

		store, err := NewBaselineStore(dir)
		require.NoError(t, err)
		_, err = store.LoadAll(ctx)
		require.Error(t, err)
		_, ok := err.(*perfguard.BadJSONError)
		assert.True(t, ok)
	})
	t.Run("SaveThenLoad", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "baselines")
		store, err := NewBaselineStore(dir)
		require.NoError(t, err)

		baseline := testBaseline(Version{Major: 1, Minor: 1})
		require.NoError(t, store.Save(ctx, baseline))
		assert.FileExists(t, filepath.Join(dir, "1.1.0.json"))

		current, err := store.Current(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(baseline, current); diff != "" {
			t.Errorf("baseline mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("SaveExistingVersion", func(t *testing.T) {
		store, err := NewBaselineStore(t.TempDir())
		require.NoError(t, err)

		baseline := testBaseline(Version{Major: 2})
		require.NoError(t, store.Save(ctx, baseline))
		err = store.Save(ctx, baseline)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
	t.Run("SaveInvalid", func(t *testing.T) {
		store, err := NewBaselineStore(t.TempDir())
		require.NoError(t, err)

		baseline := testBaseline(Version{Major: 2})
		baseline.Models[0].Metric.ProjectName = ""
		assert.Error(t, store.Save(ctx, baseline))
	})
}

package model

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/evergreen-ci/pail"
	"github.com/evergreen-ci/perfguard"
	"github.com/pkg/errors"
)

// JSONFile pairs the decoded contents of a JSON file with its path.
type JSONFile[T any] struct {
	Path  string
	Value T
}

func newLocalBucket(dir string) (pail.Bucket, error) {
	bucket, err := pail.NewLocalBucket(pail.LocalOptions{Path: dir})
	if err != nil {
		return nil, perfguard.NewIOError(perfguard.ReadErr, dir, err)
	}
	return bucket, nil
}

// ReadJSONDir decodes every JSON file directly inside dir. The first file
// that cannot be read or decoded aborts the whole read.
func ReadJSONDir[T any](ctx context.Context, dir string) ([]JSONFile[T], error) {
	bucket, err := newLocalBucket(dir)
	if err != nil {
		return nil, err
	}
	return readJSONBucket[T](ctx, bucket, dir)
}

func readJSONBucket[T any](ctx context.Context, bucket pail.Bucket, dir string) ([]JSONFile[T], error) {
	keys, err := listJSONKeys(ctx, bucket, dir)
	if err != nil {
		return nil, err
	}

	out := make([]JSONFile[T], 0, len(keys))
	for _, key := range keys {
		path := filepath.Join(dir, key)

		data, err := readKey(ctx, bucket, key)
		if err != nil {
			return nil, perfguard.NewIOError(perfguard.BadFileContentsErr, path, err)
		}

		var value T
		if err = json.Unmarshal(data, &value); err != nil {
			return nil, &perfguard.BadJSONError{Path: path, Err: err}
		}

		out = append(out, JSONFile[T]{Path: path, Value: value})
	}

	return out, nil
}

// listJSONKeys returns the sorted keys of the top level JSON files in the
// bucket.
func listJSONKeys(ctx context.Context, bucket pail.Bucket, dir string) ([]string, error) {
	if err := bucket.Check(ctx); err != nil {
		return nil, perfguard.NewIOError(perfguard.ReadErr, dir, err)
	}

	iter, err := bucket.List(ctx, "")
	if err != nil {
		return nil, perfguard.NewIOError(perfguard.ReadErr, dir, err)
	}

	keys := []string{}
	for iter.Next(ctx) {
		key := iter.Item().Name()
		if filepath.IsAbs(key) {
			if rel, err := filepath.Rel(dir, key); err == nil {
				key = rel
			}
		}

		if filepath.Dir(key) != "." || !strings.HasSuffix(key, reportExtension) {
			continue
		}
		keys = append(keys, key)
	}
	if err = iter.Err(); err != nil {
		return nil, perfguard.NewIOError(perfguard.ReadErr, dir, err)
	}

	sort.Strings(keys)
	return keys, nil
}

func readKey(ctx context.Context, bucket pail.Bucket, key string) ([]byte, error) {
	r, err := bucket.Get(ctx, key)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	return data, errors.WithStack(err)
}

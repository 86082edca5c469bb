package model

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/evergreen-ci/pail"
	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// BaselineStore holds the baselines of every released version in a
// directory, one JSON file per version.
type BaselineStore struct {
	Dir string
}

// NewBaselineStore returns a store rooted at dir. The directory is not
// required to exist until the store is read.
func NewBaselineStore(dir string) (*BaselineStore, error) {
	if dir == "" {
		return nil, errors.New("baseline store requires a directory")
	}

	return &BaselineStore{Dir: dir}, nil
}

// bucket opens the local pail bucket backing the store.
func (s *BaselineStore) bucket() (pail.Bucket, error) { return newLocalBucket(s.Dir) }

// LoadAll reads every baseline in the store, failing on the first file that
// is unreadable or is not a valid baseline.
func (s *BaselineStore) LoadAll(ctx context.Context) ([]Baseline, error) {
	bucket, err := s.bucket()
	if err != nil {
		return nil, err
	}

	files, err := readJSONBucket[Baseline](ctx, bucket, s.Dir)
	if err != nil {
		return nil, err
	}

	baselines := make([]Baseline, 0, len(files))
	for _, file := range files {
		if err = file.Value.Validate(); err != nil {
			return nil, &perfguard.BadJSONError{Path: file.Path, Err: err}
		}
		baselines = append(baselines, file.Value)
	}

	grip.Debug(message.Fields{
		"message":   "loaded baselines",
		"dir":       s.Dir,
		"baselines": len(baselines),
	})

	return baselines, nil
}

// Current loads every baseline and returns the one with the greatest
// version.
func (s *BaselineStore) Current(ctx context.Context) (Baseline, error) {
	baselines, err := s.LoadAll(ctx)
	if err != nil {
		return Baseline{}, err
	}

	current, err := SelectCurrent(baselines)
	if err != nil {
		if _, ok := err.(*perfguard.NoBaselinesFoundError); ok {
			return Baseline{}, &perfguard.NoBaselinesFoundError{Dir: s.Dir}
		}
		return Baseline{}, err
	}

	grip.Info(message.Fields{
		"message": "selected current baseline",
		"dir":     s.Dir,
		"version": current.Version.String(),
		"models":  len(current.Models),
	})

	return current, nil
}

// Key is the name of the file holding the baseline of version.
func (s *BaselineStore) Key(version Version) string { return version.String() + reportExtension }

// Save writes a new baseline. Baselines are immutable, so saving a version
// that is already stored is an error.
func (s *BaselineStore) Save(ctx context.Context, baseline Baseline) error {
	if err := baseline.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save invalid baseline")
	}

	key := s.Key(baseline.Version)
	path := filepath.Join(s.Dir, key)
	if utility.FileExists(path) {
		return errors.Errorf("baseline for version %s already exists at '%s'", baseline.Version, path)
	}

	data, err := json.MarshalIndent(baseline, "", "   ")
	if err != nil {
		return &perfguard.SerializationError{Err: err}
	}

	if err = os.MkdirAll(s.Dir, 0755); err != nil {
		return perfguard.NewIOError(perfguard.WriteErr, s.Dir, err)
	}
	bucket, err := s.bucket()
	if err != nil {
		return perfguard.NewIOError(perfguard.WriteErr, s.Dir, errors.Cause(err))
	}
	if err = bucket.Put(ctx, key, bytes.NewReader(data)); err != nil {
		return perfguard.NewIOError(perfguard.WriteErr, path, err)
	}

	grip.Info(message.Fields{
		"message": "saved baseline",
		"path":    path,
		"version": baseline.Version.String(),
		"models":  len(baseline.Models),
	})

	return nil
}

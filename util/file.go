package util

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ReadFileYAML decodes the YAML (or JSON) document at path into target.
func ReadFileYAML(path string, target interface{}) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.Errorf("file %s does not exist", path)
	}

	yamlData, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "invalid file: %s", path)
	}

	if err := yaml.UnmarshalStrict(yamlData, target); err != nil {
		return errors.Wrapf(err, "problem parsing yaml/json from file %s", path)
	}

	return nil
}

// RecreateDir removes dir and everything below it, then creates it again
// empty. A directory that does not exist yet is simply created.
func RecreateDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(os.MkdirAll(dir, 0755))
}

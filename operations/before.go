package operations

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// this file contains validator functions passed to command and
// subcommand functions to check the contents of flags.

func requireStringFlag(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.String(name) == "" {
			return errors.Errorf("flag '--%s' was not specified", name)
		}
		return nil
	}
}

func requireDirectory(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return errors.Errorf("directory '%s' does not exist", path)
		}
		if err != nil {
			return errors.Wrapf(err, "problem reading metadata for '%s'", path)
		}
		if !info.IsDir() {
			return errors.Errorf("'%s' is not a directory", path)
		}

		return nil
	}
}

// sequenceBeforeFuncs runs ops in order and stops at the first failure,
// for validators that depend on flags set by an earlier op.
func sequenceBeforeFuncs(ops ...cli.BeforeFunc) cli.BeforeFunc {
	return func(c *cli.Context) error {
		for _, op := range ops {
			if err := op(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func mergeBeforeFuncs(ops ...cli.BeforeFunc) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}

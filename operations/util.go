package operations

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/evergreen-ci/perfguard"
	"github.com/evergreen-ci/perfguard/model"
	"github.com/evergreen-ci/perfguard/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// loadConfiguration reads the configuration named by the global flags and
// applies the sigma override.
func loadConfiguration(c *cli.Context) (*perfguard.Configuration, error) {
	conf, err := perfguard.LoadConfiguration(c.GlobalString(configFlagName))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if c.GlobalIsSet(sigmaFlagName) {
		conf.Sigma = c.GlobalFloat64(sigmaFlagName)
		if err = conf.Validate(); err != nil {
			return nil, errors.Wrap(err, "invalid sigma override")
		}
	}

	return conf, nil
}

// calculationsFilename names the output file after the timestamp of the
// first calculation, or now when there are none.
func calculationsFilename(outDir string, calcs []model.Calculation, now time.Time) string {
	ts := now
	if len(calcs) > 0 {
		ts = calcs[0].Timestamp
	}

	return filepath.Join(outDir, fmt.Sprintf("%s%d.json", perfguard.CalculationsFilePrefix, ts.Unix()))
}

func printCalculations(w io.Writer, header string, calcs []model.Calculation) error {
	if _, err := fmt.Fprintf(w, ":: %s ::\n\n", header); err != nil {
		return errors.WithStack(err)
	}

	for _, calc := range calcs {
		if err := util.PrintJSON(w, calc); err != nil {
			return err
		}
	}

	return nil
}

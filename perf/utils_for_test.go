package perf

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/evergreen-ci/perfguard/model"
	"github.com/pkg/errors"
)

// regressionFixture is a recorded sample pass together with the baseline
// it was checked against and the metrics expected to regress.
type regressionFixture struct {
	Sigma       float64        `json:"sigma"`
	Baseline    model.Baseline `json:"baseline"`
	Samples     []model.Sample `json:"samples"`
	Regressions []model.Metric `json:"regressions"`
}

func loadFixture(testName string, fixture interface{}) error {
	parts := strings.Split(testName, "/")
	testName = parts[len(parts)-1]

	data, err := os.ReadFile(fmt.Sprintf("testdata/%s.json", testName))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrapf(json.Unmarshal(data, fixture), "problem decoding fixture '%s'", testName)
}

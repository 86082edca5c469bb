package bench

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/evergreen-ci/perfguard"
	"github.com/mongodb/jasper"
	"github.com/mongodb/jasper/options"
)

// Invocation describes a single run of the benchmarking tool for one
// command in one project directory.
type Invocation struct {
	Dir        string
	Command    string
	Prepare    string
	Runs       int
	Warmup     int
	ExportPath string
	ShowOutput bool
}

// Args returns the hyperfine command line for the invocation, starting
// with binary.
func (inv Invocation) Args(binary string) []string {
	args := []string{
		binary,
		// warms filesystem caches by running the command first without counting it.
		"--warmup", strconv.Itoa(inv.Warmup),
		"--min-runs", strconv.Itoa(inv.Runs),
		"--max-runs", strconv.Itoa(inv.Runs),
	}
	if inv.Prepare != "" {
		args = append(args, "--prepare", inv.Prepare)
	}
	args = append(args, inv.Command, "--export-json", inv.ExportPath)
	if inv.ShowOutput {
		args = append(args, "--show-output")
	}
	return args
}

// Runner executes benchmark invocations. Implementations must block until
// the report has been written to the invocation's export path.
type Runner interface {
	Run(context.Context, Invocation) error
}

// HyperfineRunner runs hyperfine as a child process managed by jasper.
type HyperfineRunner struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

// NewHyperfineRunner returns a runner for the binary configured in conf
// that forwards the child's output to this process.
func NewHyperfineRunner(conf *perfguard.Configuration) *HyperfineRunner {
	return &HyperfineRunner{
		Binary: conf.HyperfineBinary,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts hyperfine in the invocation's directory and waits for it. A
// process that cannot be started is a CommandError, a failing one a
// NonZeroExitCodeError.
func (r *HyperfineRunner) Run(ctx context.Context, inv Invocation) error {
	binary := r.Binary
	if binary == "" {
		binary = perfguard.DefaultHyperfineBinary
	}

	opts := &options.Create{
		Args:             inv.Args(binary),
		WorkingDirectory: inv.Dir,
		Output: options.Output{
			Output: r.Stdout,
			Error:  r.Stderr,
		},
	}

	proc, err := jasper.NewProcess(ctx, opts)
	if err != nil {
		return &perfguard.CommandError{Err: err}
	}

	code, err := proc.Wait(ctx)
	if code != 0 {
		return &perfguard.NonZeroExitCodeError{Code: code}
	}
	if err != nil {
		return &perfguard.CommandError{Err: err}
	}

	return nil
}

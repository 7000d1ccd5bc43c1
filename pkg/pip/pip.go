// Package pip wraps the external pip download command.
//
// The wrapped tool does all the real work; this package's contract with
// it is deliberately thin: which of the two command names (pip, pip3) is
// callable, and the exit code of each invocation. Output is captured for
// debug logging only.
package pip

import (
	"context"
	"os/exec"
	"regexp"

	"github.com/matzehuels/wheelhouse/pkg/errors"
)

// CommandNames are the download command names tried in order.
var CommandNames = []string{"pip", "pip3"}

// Runner executes an external command and returns its combined output.
// The production implementation shells out; tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec with context cancellation.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Command is a resolved pip executable.
type Command struct {
	Name          string // "pip" or "pip3"
	Version       string // pip's own version, e.g. "24.0"
	PythonVersion string // interpreter version pip runs under, e.g. "3.11"

	runner Runner
}

// versionRE matches pip's --version banner:
// "pip 24.0 from /usr/lib/python3/dist-packages/pip (python 3.11)"
var versionRE = regexp.MustCompile(`^pip (\S+).*\(python (\d+\.\d+)\)`)

// Resolve finds a usable pip command by probing each candidate name with
// --version. The first name that runs successfully wins. If none is
// callable, a PIP_NOT_FOUND error is returned; this is the one hard
// startup dependency of the download flow.
func Resolve(ctx context.Context) (*Command, error) {
	return resolve(ctx, execRunner{})
}

func resolve(ctx context.Context, r Runner) (*Command, error) {
	for _, name := range CommandNames {
		out, err := r.Run(ctx, name, "--version")
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		cmd := &Command{Name: name, runner: r}
		if m := versionRE.FindSubmatch(out); m != nil {
			cmd.Version = string(m[1])
			cmd.PythonVersion = string(m[2])
		}
		return cmd, nil
	}
	return nil, errors.New(errors.ErrCodePipNotFound, "neither pip nor pip3 was found on this system")
}

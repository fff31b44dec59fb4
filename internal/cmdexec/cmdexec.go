package cmdexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrUnsupportedOS is returned by callers that have no command to run on the
// current platform. The runner itself is platform-agnostic: picking the right
// command (xdg-open vs open vs explorer) is the caller's job.
var ErrUnsupportedOS = errors.New("unsupported OS")

// Runner abstracts the external commands the app shells out to: desktop
// notifications and file-browser reveal.
type Runner interface {
	Exists(name string) bool
	Run(ctx context.Context, name string, args ...string) error
}

type defaultRunner struct{}

func (defaultRunner) Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (defaultRunner) Run(ctx context.Context, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("command %s not found", name)
	}
	return exec.CommandContext(ctx, name, args...).Run()
}

var runner Runner = defaultRunner{}

// SetRunner swaps the active runner. Returns a restore func.
func SetRunner(r Runner) (restore func()) {
	prev := runner
	runner = r
	return func() { runner = prev }
}

func Exists(name string) bool {
	return runner.Exists(name)
}

func Run(ctx context.Context, name string, args ...string) error {
	return runner.Run(ctx, name, args...)
}

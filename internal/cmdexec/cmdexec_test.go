package cmdexec

import (
	"context"
	"errors"
	"testing"
)

func TestRunMissingCommand(t *testing.T) {
	err := Run(context.Background(), "definitely-not-a-real-command-xyzzy")
	if err == nil {
		t.Fatalf("expected an error for a missing command")
	}
	// The runner must not second-guess the platform: a missing command is a
	// lookup failure on every OS, never an unsupported-OS verdict.
	if errors.Is(err, ErrUnsupportedOS) {
		t.Fatalf("missing command reported as unsupported OS: %v", err)
	}
}

func TestExistsMissingCommand(t *testing.T) {
	if Exists("definitely-not-a-real-command-xyzzy") {
		t.Fatalf("expected a missing command to not exist")
	}
}

type stubRunner struct{ ran bool }

func (s *stubRunner) Exists(string) bool { return true }

func (s *stubRunner) Run(context.Context, string, ...string) error {
	s.ran = true
	return nil
}

func TestSetRunnerRestores(t *testing.T) {
	stub := &stubRunner{}
	restore := SetRunner(stub)

	if err := Run(context.Background(), "anything"); err != nil {
		t.Fatalf("stub run failed: %v", err)
	}
	if !stub.ran {
		t.Fatalf("swap did not take effect")
	}

	restore()
	if Exists("definitely-not-a-real-command-xyzzy") {
		t.Fatalf("restore did not reinstate the default runner")
	}
}

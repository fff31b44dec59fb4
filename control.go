package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"memtrack/internal/cmdexec"
)

var (
	ErrProcessNotFound  = errors.New("process not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyExited    = errors.New("process already exited")
	ErrPathNotFound     = errors.New("path not found")
)

// managedProcess is the slice of the process API the controller needs.
type managedProcess interface {
	IsRunning(ctx context.Context) (bool, error)
	Terminate(ctx context.Context) error
}

type gopsProcess struct {
	p *process.Process
}

func (g gopsProcess) IsRunning(ctx context.Context) (bool, error) {
	return g.p.IsRunningWithContext(ctx)
}

func (g gopsProcess) Terminate(ctx context.Context) error {
	return g.p.TerminateWithContext(ctx)
}

func findSystemProcess(ctx context.Context, pid int32) (managedProcess, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
	}
	return gopsProcess{p: p}, nil
}

// ProcessController handles the two imperative operations the presentation
// layer can request: terminate a process and reveal its executable in the
// file browser. Both run independently of the refresh cycle.
type ProcessController struct {
	find        func(ctx context.Context, pid int32) (managedProcess, error)
	waitTimeout time.Duration
	pollEvery   time.Duration
}

func NewProcessController() *ProcessController {
	return &ProcessController{
		find:        findSystemProcess,
		waitTimeout: 3 * time.Second,
		pollEvery:   100 * time.Millisecond,
	}
}

// Terminate sends a graceful terminate and waits up to waitTimeout for the
// process to exit.
func (c *ProcessController) Terminate(ctx context.Context, pid int32) error {
	p, err := c.find(ctx, pid)
	if err != nil {
		return err
	}

	if running, err := p.IsRunning(ctx); err == nil && !running {
		return fmt.Errorf("pid %d: %w", pid, ErrAlreadyExited)
	}

	if err := p.Terminate(ctx); err != nil {
		switch {
		case errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM):
			return fmt.Errorf("terminate pid %d: %w", pid, ErrPermissionDenied)
		case errors.Is(err, process.ErrorProcessNotRunning):
			return fmt.Errorf("pid %d: %w", pid, ErrAlreadyExited)
		default:
			return fmt.Errorf("terminate pid %d: %w", pid, err)
		}
	}

	deadline := time.Now().Add(c.waitTimeout)
	for time.Now().Before(deadline) {
		if running, err := p.IsRunning(ctx); err != nil || !running {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollEvery):
		}
	}
	return fmt.Errorf("pid %d did not exit within %s", pid, c.waitTimeout)
}

// RevealInFileBrowser opens the directory containing exePath in the
// platform's file browser.
func (c *ProcessController) RevealInFileBrowser(ctx context.Context, exePath string) error {
	if exePath == "" {
		return fmt.Errorf("no executable path: %w", ErrPathNotFound)
	}
	if _, err := os.Stat(exePath); err != nil {
		return fmt.Errorf("%s: %w", exePath, ErrPathNotFound)
	}

	dir := filepath.Dir(exePath)
	switch runtime.GOOS {
	case "linux":
		return cmdexec.Run(ctx, "xdg-open", dir)
	case "darwin":
		return cmdexec.Run(ctx, "open", dir)
	case "windows":
		return cmdexec.Run(ctx, "explorer", "/select,", exePath)
	default:
		return cmdexec.ErrUnsupportedOS
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"memtrack/internal/model"
)

// Sampler takes one point-in-time snapshot of all running processes.
type Sampler interface {
	Sample(ctx context.Context) (Snapshot, error)
}

// systemSampler reads the live process table via gopsutil.
type systemSampler struct{}

func NewSystemSampler() Sampler {
	return systemSampler{}
}

// Sample lists every running process and the total system memory. Individual
// processes that disappear or deny access mid-listing are skipped; only a
// failure of the listing itself or of the memory read fails the snapshot.
func (systemSampler) Sample(ctx context.Context) (Snapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read virtual memory: %w", err)
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list processes: %w", err)
	}

	samples := make([]model.ProcessSample, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		memInfo, err := p.MemoryInfoWithContext(ctx)
		if err != nil || memInfo == nil {
			continue
		}

		// Best-effort fields: inaccessible exe/owner/start time is not an error.
		exePath, _ := p.ExeWithContext(ctx)
		owner, _ := p.UsernameWithContext(ctx)
		var startedAt time.Time
		if ct, err := p.CreateTimeWithContext(ctx); err == nil && ct > 0 {
			startedAt = time.UnixMilli(ct)
		}

		samples = append(samples, model.ProcessSample{
			PID:           p.Pid,
			Name:          name,
			ExePath:       exePath,
			ResidentBytes: memInfo.RSS,
			Owner:         owner,
			StartedAt:     startedAt,
		})
	}

	return Snapshot{
		CapturedAt:       time.Now(),
		TotalSystemBytes: vm.Total,
		Samples:          samples,
	}, nil
}

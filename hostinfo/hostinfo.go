// Copyright (c) 2024-2026 Carsen Klock under MIT License

// Package hostinfo supplements platform.SocInfo with the OS/uptime/load
// facts system_profiler's SPSoftwareDataType carries but the SoC probe
// itself doesn't parse.
package hostinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
)

// Snapshot is a point-in-time OS/uptime/load reading.
type Snapshot struct {
	OSVersion    string
	KernelVersion string
	Uptime       time.Duration
	Load1        float64
	Load5        float64
	Load15       float64
}

// Read gathers a Snapshot via gopsutil's host and load packages.
func Read(ctx context.Context) (Snapshot, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		OSVersion:     info.PlatformVersion,
		KernelVersion: info.KernelVersion,
		Uptime:        time.Duration(info.Uptime) * time.Second,
		Load1:         avg.Load1,
		Load5:         avg.Load5,
		Load15:        avg.Load15,
	}, nil
}

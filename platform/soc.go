// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package platform

import (
	"context"

	"github.com/context-labs/socsensor/cfref"
	"github.com/context-labs/socsensor/ioregistry"
)

// SocInfo is the static description of the host's Apple Silicon SoC: what
// chip it is, how it's packaged, and each core domain's DVFS table.
type SocInfo struct {
	MacModel  string
	ChipName  string
	MemoryGB  uint8
	ECPUCores uint8
	PCPUCores uint8
	GPUCores  uint8

	ECPUFreqsMHz []uint32
	PCPUFreqsMHz []uint32
	GPUFreqsMHz  []uint32
}

const (
	pmgrServiceClass  = "AppleARMIODevice"
	pmgrEntryName     = "pmgr"
	ecpuVoltageStates = "voltage-states1-sram"
	pcpuVoltageStates = "voltage-states5-sram"
	gpuVoltageStates  = "voltage-states9"
)

// Probe runs system_profiler and walks the IOKit registry's pmgr entry to
// build a full SocInfo. It fails if either the chip/core-count fields
// aren't present in system_profiler's output, or the pmgr entry carries no
// CPU frequency tables -- a SocInfo with empty ECPUFreqsMHz/PCPUFreqsMHz
// isn't trustworthy enough to hand back.
func Probe(ctx context.Context) (*SocInfo, error) {
	parsed, err := runSystemProfiler(ctx)
	if err != nil {
		return nil, err
	}

	chipName, macModel, memoryGB, ecpuCores, pcpuCores, err := parsed.hardwareFields()
	if err != nil {
		return nil, err
	}

	info := &SocInfo{
		ChipName:  chipName,
		MacModel:  macModel,
		MemoryGB:  memoryGB,
		ECPUCores: ecpuCores,
		PCPUCores: pcpuCores,
		GPUCores:  parsed.gpuCoreCount(),
	}

	if err := fillFrequencyTables(info); err != nil {
		return nil, err
	}

	if len(info.ECPUFreqsMHz) == 0 || len(info.PCPUFreqsMHz) == 0 {
		return nil, ErrSocInfoIncomplete
	}

	return info, nil
}

// fillFrequencyTables walks the AppleARMIODevice registry class looking
// for the "pmgr" entry and decodes its three DVFS tables into info.
// The two CPU tables are read from the "voltage-states*-sram" keys rather
// than the non-sram keys powermetrics also exposes: the non-sram variants
// read back as all zero on every chip generation this has been checked
// against. The GPU table is read from the plain "voltage-states9" key.
func fillFrequencyTables(info *SocInfo) error {
	it, err := ioregistry.New(pmgrServiceClass)
	if err != nil {
		return err
	}
	defer it.Close()

	for {
		entryID, name, ok := it.Next()
		if !ok {
			break
		}
		if name != pmgrEntryName {
			ioregistry.ReleaseEntry(entryID)
			continue
		}

		props, perr := ioregistry.Properties(entryID)
		ioregistry.ReleaseEntry(entryID)
		if perr != nil {
			return perr
		}

		info.ECPUFreqsMHz = pmgrFrequencyTable(props, ecpuVoltageStates)
		info.PCPUFreqsMHz = pmgrFrequencyTable(props, pcpuVoltageStates)
		info.GPUFreqsMHz = pmgrFrequencyTable(props, gpuVoltageStates)
		cfref.Release(props)
		break
	}

	return nil
}

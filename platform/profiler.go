// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package platform probes the host's static SoC description: chip name,
// memory size, core counts, and each core domain's DVFS frequency table.
package platform

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
)

// profilerOutput mirrors the narrow slice of `system_profiler -json` this
// package actually reads. A hand-rolled map walk (as a generic JSON client
// would do) gives up Go's static field typing for no benefit here: the
// three data types queried are fixed and known ahead of time.
type profilerOutput struct {
	SPHardwareDataType []struct {
		ChipType         string `json:"chip_type"`
		MachineModel     string `json:"machine_model"`
		PhysicalMemory   string `json:"physical_memory"`
		NumberProcessors string `json:"number_processors"`
	} `json:"SPHardwareDataType"`
	SPDisplaysDataType []struct {
		SPPCICores string `json:"sppci_cores"`
	} `json:"SPDisplaysDataType"`
}

// runSystemProfiler invokes system_profiler for the hardware and displays
// data types and parses its JSON output.
func runSystemProfiler(ctx context.Context) (*profilerOutput, error) {
	cmd := exec.CommandContext(ctx, "system_profiler", "SPHardwareDataType", "SPDisplaysDataType", "SPSoftwareDataType", "-json")
	out, err := cmd.Output()
	if err != nil {
		return nil, &SystemProfilerError{Err: err}
	}

	var parsed profilerOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, &SystemProfilerError{Err: err}
	}
	return &parsed, nil
}

// hardwareFields extracts the chip name, machine model, memory in GB, and
// (ecpu, pcpu) core counts from the parsed SPHardwareDataType entry.
func (p *profilerOutput) hardwareFields() (chipName, macModel string, memoryGB uint8, ecpuCores, pcpuCores uint8, err error) {
	if len(p.SPHardwareDataType) == 0 {
		return "", "", 0, 0, 0, ErrSocInfoIncomplete
	}
	hw := p.SPHardwareDataType[0]

	chipName = hw.ChipType
	macModel = hw.MachineModel

	memStr := strings.TrimSuffix(hw.PhysicalMemory, " GB")
	mem, perr := strconv.ParseUint(memStr, 10, 8)
	if perr != nil {
		return "", "", 0, 0, 0, &SystemProfilerError{Err: perr}
	}

	coreStr := strings.TrimPrefix(hw.NumberProcessors, "proc ")
	parts := strings.Split(coreStr, ":")
	if len(parts) != 3 {
		return "", "", 0, 0, 0, ErrSocInfoIncomplete
	}
	pcpu, perr := strconv.ParseUint(parts[1], 10, 8)
	if perr != nil {
		return "", "", 0, 0, 0, &SystemProfilerError{Err: perr}
	}
	ecpu, perr := strconv.ParseUint(parts[2], 10, 8)
	if perr != nil {
		return "", "", 0, 0, 0, &SystemProfilerError{Err: perr}
	}

	return chipName, macModel, uint8(mem), uint8(ecpu), uint8(pcpu), nil
}

// gpuCoreCount extracts the reported GPU core count from
// SPDisplaysDataType, defaulting to 0 when the field is absent (integrated
// displays on some chip families don't report it).
func (p *profilerOutput) gpuCoreCount() uint8 {
	if len(p.SPDisplaysDataType) == 0 {
		return 0
	}
	n, err := strconv.ParseUint(p.SPDisplaysDataType[0].SPPCICores, 10, 8)
	if err != nil {
		return 0
	}
	return uint8(n)
}

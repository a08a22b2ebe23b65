// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHardwareFieldsParsesMemoryAndCores(t *testing.T) {
	p := &profilerOutput{}
	p.SPHardwareDataType = append(p.SPHardwareDataType, struct {
		ChipType         string `json:"chip_type"`
		MachineModel     string `json:"machine_model"`
		PhysicalMemory   string `json:"physical_memory"`
		NumberProcessors string `json:"number_processors"`
	}{
		ChipType:         "Apple M3 Max",
		MachineModel:     "Mac15,9",
		PhysicalMemory:   "36 GB",
		NumberProcessors: "proc 16:12:4",
	})

	chip, model, mem, ecpu, pcpu, err := p.hardwareFields()
	require.NoError(t, err)
	require.Equal(t, "Apple M3 Max", chip)
	require.Equal(t, "Mac15,9", model)
	require.EqualValues(t, 36, mem)
	require.EqualValues(t, 4, ecpu)
	require.EqualValues(t, 12, pcpu)
}

func TestHardwareFieldsRejectsMalformedCoreString(t *testing.T) {
	p := &profilerOutput{}
	p.SPHardwareDataType = append(p.SPHardwareDataType, struct {
		ChipType         string `json:"chip_type"`
		MachineModel     string `json:"machine_model"`
		PhysicalMemory   string `json:"physical_memory"`
		NumberProcessors string `json:"number_processors"`
	}{
		ChipType:         "Apple M3 Max",
		MachineModel:     "Mac15,9",
		PhysicalMemory:   "36 GB",
		NumberProcessors: "proc 16",
	})

	if _, _, _, _, _, err := p.hardwareFields(); err != ErrSocInfoIncomplete {
		t.Errorf("hardwareFields() error = %v, want ErrSocInfoIncomplete", err)
	}
}

func TestGpuCoreCountDefaultsToZero(t *testing.T) {
	p := &profilerOutput{}
	if got := p.gpuCoreCount(); got != 0 {
		t.Errorf("gpuCoreCount() = %d, want 0 for empty SPDisplaysDataType", got)
	}
}

func TestDvfsDecodeParsesLittleEndianPairs(t *testing.T) {
	// One record: freq = 1_000_000_000 Hz (1000 MHz), volt = 900 mV.
	blob := []byte{
		0x00, 0xCA, 0x9A, 0x3B, // 1_000_000_000 little-endian
		0x84, 0x03, 0x00, 0x00, // 900 little-endian
	}
	freqs := dvfsDecode(blob)
	if len(freqs) != 1 || freqs[0] != 1000 {
		t.Errorf("dvfsDecode() = %v, want [1000]", freqs)
	}
}

func TestDvfsDecodeEmptyBlob(t *testing.T) {
	if got := dvfsDecode(nil); got != nil {
		t.Errorf("dvfsDecode(nil) = %v, want nil", got)
	}
}

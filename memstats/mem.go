// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package memstats samples host memory and swap usage the same way the
// SoC probe's companion metrics do: a kernel call for the live VM
// counters, a sysctl for the static totals.
package memstats

/*
#include <mach/mach.h>
#include <mach/mach_host.h>
#include <mach/vm_statistics.h>
#include <unistd.h>
*/
import "C"

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ErrHostStatistics is returned when host_statistics64 reports a nonzero
// kern_return_t.
var ErrHostStatistics = errors.New("memstats: host_statistics64 failed")

// Memory is a point-in-time RAM usage snapshot, in bytes.
type Memory struct {
	UsedBytes  uint64
	TotalBytes uint64
}

// Swap is a point-in-time swap usage snapshot, in bytes.
type Swap struct {
	UsedBytes  uint64
	TotalBytes uint64
}

// ReadMemory reports used and total RAM. Used RAM is computed from the
// kernel's live VM page counters -- active + inactive + wire +
// speculative + compressor, less purgeable and external pages, the same
// accounting macOS's own Activity Monitor uses for "Memory Used" -- each
// multiplied by the host's page size to turn page counts into bytes.
func ReadMemory() (Memory, error) {
	total, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return Memory{}, err
	}

	var stats C.vm_statistics64_data_t
	count := C.mach_msg_type_number_t(C.HOST_VM_INFO64_COUNT)
	rc := C.host_statistics64(
		C.host_t(C.mach_host_self()),
		C.HOST_VM_INFO64,
		C.host_info64_t(unsafe.Pointer(&stats)),
		&count,
	)
	if rc != C.KERN_SUCCESS {
		return Memory{}, ErrHostStatistics
	}

	pageSize := uint64(C.sysconf(C._SC_PAGESIZE))

	used := (uint64(stats.active_count) +
		uint64(stats.inactive_count) +
		uint64(stats.wire_count) +
		uint64(stats.speculative_count) +
		uint64(stats.compressor_page_count) -
		uint64(stats.purgeable_count) -
		uint64(stats.external_page_count)) * pageSize

	return Memory{UsedBytes: used, TotalBytes: total}, nil
}

// ReadSwap reports used and total swap, read from the kernel's
// "vm.swapusage" sysctl.
func ReadSwap() (Swap, error) {
	raw, err := unix.SysctlRaw("vm.swapusage")
	if err != nil {
		return Swap{}, err
	}
	if len(raw) < 24 {
		return Swap{}, errors.New("memstats: vm.swapusage sysctl returned a short buffer")
	}

	total := leUint64(raw[0:8])
	used := leUint64(raw[16:24])

	return Swap{UsedBytes: used, TotalBytes: total}, nil
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = (v << 8) | uint64(b[i])
	}
	return v
}

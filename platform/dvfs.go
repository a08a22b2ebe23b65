// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package platform

import "github.com/context-labs/socsensor/cfref"

// dvfsDecode decodes one "voltage-states*" property blob: a packed
// array of little-endian (frequency Hz uint32, voltage mV uint32) pairs.
// Only the frequency half is useful to the rest of this package, converted
// to MHz; the voltage half isn't returned since nothing here consumes it
// yet, but the shape is kept symmetric with the original blob layout for
// anyone reading this next to powermetrics' own output.
func dvfsDecode(blob []byte) []uint32 {
	n := len(blob) / 8
	if n == 0 {
		return nil
	}

	freqsMHz := make([]uint32, n)
	for i := 0; i < n; i++ {
		rec := blob[i*8 : i*8+8]
		freqHz := uint32(rec[0]) | uint32(rec[1])<<8 | uint32(rec[2])<<16 | uint32(rec[3])<<24
		freqsMHz[i] = freqHz / 1_000_000
	}
	return freqsMHz
}

// pmgrFrequencyTable reads one DVFS frequency table (in MHz) out of the
// pmgr device tree entry's CFData property named key.
func pmgrFrequencyTable(props cfref.Ref, key string) []uint32 {
	blobRef, ok := cfref.DictGet(props, key)
	if !ok {
		return nil
	}
	return dvfsDecode(cfref.DataBytes(blobRef))
}

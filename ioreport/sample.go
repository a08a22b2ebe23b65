// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreFoundation -lIOReport
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

extern int64_t IOReportSimpleGetIntegerValue(CFDictionaryRef item, int32_t idx);
extern CFStringRef IOReportChannelGetGroup(CFDictionaryRef item);
extern CFStringRef IOReportChannelGetSubGroup(CFDictionaryRef item);
extern CFStringRef IOReportChannelGetChannelName(CFDictionaryRef item);
extern CFStringRef IOReportChannelGetUnitLabel(CFDictionaryRef item);
extern int32_t IOReportStateGetCount(CFDictionaryRef item);
extern CFStringRef IOReportStateGetNameForIndex(CFDictionaryRef item, int32_t idx);
extern int64_t IOReportStateGetResidency(CFDictionaryRef item, int32_t idx);
*/
import "C"

import (
	"strings"
	"unsafe"

	"github.com/context-labs/socsensor/cfref"
)

// Item is one entry of a delta sample: a single channel's group/subgroup/
// channel identity, its unit label, and a payload borrowed from the
// SampleRecord that produced it. payload must not be used after the
// SampleRecord is released.
type Item struct {
	Group, Subgroup, Channel, Unit string
	payload                        cfref.Ref
}

// SampleRecord is a lazy, finite, single-pass view over one delta sample's
// "IOReportChannels" array. It owns the underlying delta dictionary and
// releases it once on Close (or when iteration exhausts it); it is not
// restartable.
type SampleRecord struct {
	delta  cfref.Ref
	items  cfref.Ref // borrowed from delta, the "IOReportChannels" array
	cursor int
	count  int
	closed bool
}

func newSampleRecord(delta cfref.Ref) *SampleRecord {
	sr := &SampleRecord{delta: delta}
	if delta == nil {
		return sr
	}
	if items, ok := cfref.DictGet(delta, channelsKey); ok {
		sr.items = items
		sr.count = cfref.ArrayCount(items)
	}
	return sr
}

// Next advances the cursor and returns the next Item, or ok=false once the
// record is exhausted (at which point the delta dictionary is released
// automatically).
func (sr *SampleRecord) Next() (Item, bool) {
	if sr.closed || sr.items == nil || sr.cursor >= sr.count {
		sr.Close()
		return Item{}, false
	}

	entry := cfref.ArrayValueAt(sr.items, sr.cursor)
	sr.cursor++

	item := Item{
		Group:    accessorString(func() C.CFStringRef { return C.IOReportChannelGetGroup(C.CFDictionaryRef(entry)) }),
		Subgroup: accessorString(func() C.CFStringRef { return C.IOReportChannelGetSubGroup(C.CFDictionaryRef(entry)) }),
		Channel:  accessorString(func() C.CFStringRef { return C.IOReportChannelGetChannelName(C.CFDictionaryRef(entry)) }),
		Unit:     strings.TrimSpace(accessorString(func() C.CFStringRef { return C.IOReportChannelGetUnitLabel(C.CFDictionaryRef(entry)) })),
		payload:  entry,
	}

	return item, true
}

// Close releases the owned delta dictionary. Safe to call more than once,
// and called automatically once iteration is exhausted.
func (sr *SampleRecord) Close() error {
	if sr.closed {
		return nil
	}
	sr.closed = true
	cfref.Release(sr.delta)
	sr.delta = nil
	sr.items = nil
	return nil
}

func accessorString(get func() C.CFStringRef) string {
	ref := get()
	if ref == nil {
		return ""
	}
	s, err := cfref.ToUTF8(cfref.Ref(unsafe.Pointer(ref)))
	if err != nil {
		return ""
	}
	return s
}

// SimpleInteger reads item's first (and, for a simple counter channel,
// only) integer slot.
func (item Item) SimpleInteger() int64 {
	return int64(C.IOReportSimpleGetIntegerValue(C.CFDictionaryRef(item.payload), 0))
}

// Residency is one named state and the cumulative time (kernel-defined
// units) the channel spent in it.
type Residency struct {
	State     string
	Residency int64
}

// Residencies decodes item as a state-residency table: one (state name,
// residency) pair per state the channel tracks.
func (item Item) Residencies() []Residency {
	n := int(C.IOReportStateGetCount(C.CFDictionaryRef(item.payload)))
	if n <= 0 {
		return nil
	}

	out := make([]Residency, n)
	for i := 0; i < n; i++ {
		idx := C.int32_t(i)
		name := accessorString(func() C.CFStringRef {
			return C.IOReportStateGetNameForIndex(C.CFDictionaryRef(item.payload), idx)
		})
		out[i] = Residency{
			State:     name,
			Residency: int64(C.IOReportStateGetResidency(C.CFDictionaryRef(item.payload), idx)),
		}
	}
	return out
}

// energyDivisor maps an IOReport energy unit label to the divisor that
// turns its raw counter (in that unit, per elapsed second) into watts.
var energyDivisor = map[string]float64{
	"mJ": 1e3,
	"uJ": 1e6,
	"nJ": 1e9,
}

// DecodeWatts converts item -- a simple integer energy counter -- into
// watts, given the elapsed duration in milliseconds the counter accumulated
// over. elapsedMs must come from the same interval item's delta spans.
func (item Item) DecodeWatts(elapsedMs int64) (float64, error) {
	divisor, ok := energyDivisor[item.Unit]
	if !ok {
		return 0, ErrUnknownEnergyUnit
	}

	raw := float64(item.SimpleInteger())
	perSecond := raw / (float64(elapsedMs) / 1000.0)
	return perSecond / divisor, nil
}

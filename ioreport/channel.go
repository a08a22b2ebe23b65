// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit -lIOReport
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

extern CFMutableDictionaryRef IOReportCopyAllChannels(uint64_t a, uint64_t b);
extern CFMutableDictionaryRef IOReportCopyChannelsInGroup(CFStringRef group, CFStringRef subgroup, uint64_t a, uint64_t b, uint64_t c);
extern void IOReportMergeChannels(CFDictionaryRef into, CFDictionaryRef from, CFTypeRef unused);
*/
import "C"

import (
	"unsafe"

	"github.com/context-labs/socsensor/cfref"
)

// ChannelSelector names one group (and, optionally, subgroup) of IOReport
// channels to subscribe to. A zero-value Subgroup means "no subgroup" --
// the same as passing None to IOReportCopyChannelsInGroup.
type ChannelSelector struct {
	Group    string
	Subgroup string
}

const channelsKey = "IOReportChannels"

// buildDescriptor negotiates the channel descriptor for selectors. An empty
// selector list copies the global all-channels dictionary; a non-empty list
// copies and merges each selector's group, then takes a mutable copy of the
// merged result so the engine owns a modifiable handle. The caller owns the
// returned Ref and must release it exactly once.
func buildDescriptor(selectors []ChannelSelector) (cfref.Ref, error) {
	if len(selectors) == 0 {
		all := C.IOReportCopyAllChannels(0, 0)
		if all == nil {
			return nil, ErrChannelLookupFailed
		}
		ref := cfref.Ref(unsafe.Pointer(all))
		if !hasChannelsKey(ref) {
			cfref.Release(ref)
			return nil, ErrChannelLookupFailed
		}
		return ref, nil
	}

	var merged C.CFMutableDictionaryRef
	for i, sel := range selectors {
		groupCF := cfref.NewString(sel.Group)
		var subgroupRef C.CFStringRef
		var subgroupCF *cfref.String
		if sel.Subgroup != "" {
			subgroupCF = cfref.NewString(sel.Subgroup)
			subgroupRef = C.CFStringRef(subgroupCF.Ref())
		}

		chans := C.IOReportCopyChannelsInGroup(C.CFStringRef(groupCF.Ref()), subgroupRef, 0, 0, 0)
		groupCF.Close()
		if subgroupCF != nil {
			subgroupCF.Close()
		}
		if chans == nil {
			continue
		}

		if merged == nil {
			merged = chans
			continue
		}

		C.IOReportMergeChannels(C.CFDictionaryRef(merged), C.CFDictionaryRef(chans), nil)
		C.CFRelease(C.CFTypeRef(chans))
	}

	if merged == nil {
		return nil, ErrChannelLookupFailed
	}

	final := C.CFDictionaryCreateMutableCopy(C.kCFAllocatorDefault, 0, C.CFDictionaryRef(merged))
	C.CFRelease(C.CFTypeRef(merged))

	ref := cfref.Ref(unsafe.Pointer(final))
	if !hasChannelsKey(ref) {
		cfref.Release(ref)
		return nil, ErrChannelLookupFailed
	}
	return ref, nil
}

func hasChannelsKey(dict cfref.Ref) bool {
	_, ok := cfref.DictGet(dict, channelsKey)
	return ok
}

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit -lIOReport
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

typedef struct IOReportSubscriptionRef_ *IOReportSubscriptionRef;

extern IOReportSubscriptionRef IOReportCreateSubscription(const void *a, CFMutableDictionaryRef channels, CFMutableDictionaryRef *subbed, uint64_t channelID, CFTypeRef b);
extern CFDictionaryRef IOReportCreateSamples(IOReportSubscriptionRef sub, CFMutableDictionaryRef channels, CFTypeRef unused);
extern CFDictionaryRef IOReportCreateSamplesDelta(CFDictionaryRef a, CFDictionaryRef b, CFTypeRef unused);
*/
import "C"

import (
	"context"
	"time"
	"unsafe"

	"github.com/context-labs/socsensor/cfref"
)

// clampCount bounds a requested sample count to the [1, 32] range Samples
// honors per its contract.
const (
	minSampleCount = 1
	maxSampleCount = 32
)

// rawSample is a cumulative counter snapshot captured at a point in time.
// Not meaningful on its own -- only the element-wise difference between two
// raw samples from the same subscription (a delta sample) is.
type rawSample struct {
	ref cfref.Ref
	at  time.Time
}

func (r *rawSample) release() {
	if r != nil {
		cfref.Release(r.ref)
	}
}

// Engine negotiates a channel descriptor with the kernel, opens one
// subscription against it, and produces delta-sample iterators at whatever
// cadence the caller asks for.
//
// Engine is not safe for concurrent use: the carried "previous sample"
// cursor used by Samples is mutated on every call, and the subscription
// handle it holds is not guarded by a mutex. Run one Engine per goroutine
// that wants independent sampling.
type Engine struct {
	descriptor   cfref.Ref
	subscription C.IOReportSubscriptionRef
	prev         *rawSample
}

// New negotiates a channel descriptor for selectors and opens a subscription
// against it.
func New(selectors []ChannelSelector) (*Engine, error) {
	descriptor, err := buildDescriptor(selectors)
	if err != nil {
		return nil, err
	}

	var subbed C.CFMutableDictionaryRef
	sub := C.IOReportCreateSubscription(nil, C.CFMutableDictionaryRef(descriptor), &subbed, 0, nil)
	if sub == nil {
		cfref.Release(descriptor)
		return nil, ErrSubscriptionFailed
	}
	if subbed != nil {
		// IOReportCreateSubscription may hand back a possibly-narrowed
		// channel set via subbed; the descriptor we already own remains the
		// canonical one used for CreateSamples, per the channel/subscription
		// pairing in IOReportCopy*'s documented usage.
		C.CFRelease(C.CFTypeRef(subbed))
	}

	return &Engine{descriptor: descriptor, subscription: sub}, nil
}

// Close tears the engine down: the carried previous snapshot (if any), then
// the subscription, then the channel descriptor -- in that order, matching
// the resource-acquisition order reversed.
func (e *Engine) Close() error {
	if e.prev != nil {
		e.prev.release()
		e.prev = nil
	}
	if e.subscription != nil {
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(e.subscription)))
		e.subscription = nil
	}
	if e.descriptor != nil {
		cfref.Release(e.descriptor)
		e.descriptor = nil
	}
	return nil
}

func (e *Engine) capture() cfref.Ref {
	raw := C.IOReportCreateSamples(e.subscription, C.CFMutableDictionaryRef(e.descriptor), nil)
	return cfref.Ref(unsafe.Pointer(raw))
}

func delta(newer, older cfref.Ref) cfref.Ref {
	d := C.IOReportCreateSamplesDelta(C.CFDictionaryRef(older), C.CFDictionaryRef(newer), nil)
	return cfref.Ref(unsafe.Pointer(d))
}

// Sample captures two raw snapshots duration apart (sleeping the calling
// goroutine for duration in between) and returns a SampleRecord over their
// delta. It does not carry state across calls -- see Samples for continuous
// monitoring, which avoids the dead-time this incurs between successive
// calls.
func (e *Engine) Sample(ctx context.Context, duration time.Duration) (*SampleRecord, error) {
	s1 := e.capture()
	defer cfref.Release(s1)

	select {
	case <-time.After(duration):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s2 := e.capture()
	defer cfref.Release(s2)

	d := delta(s2, s1)
	return newSampleRecord(d), nil
}

// TimedSample pairs a SampleRecord with the elapsed wall-clock milliseconds
// over which the underlying delta accumulated.
type TimedSample struct {
	Record    *SampleRecord
	ElapsedMs int64
}

// Samples produces a continuous stream of delta samples across count steps
// spanning roughly total wall-clock time. count is clamped to [1, 32].
//
// A "previous raw sample" cursor is carried across calls on the same Engine
// so consecutive calls produce contiguous intervals: the end-time of record
// k is the start-time of record k+1, with no gap and no overlap, including
// across Samples calls (not just within one).
func (e *Engine) Samples(ctx context.Context, total time.Duration, count int) ([]TimedSample, error) {
	count = clampCount(count)
	step := total / time.Duration(count)

	if e.prev == nil {
		e.prev = &rawSample{ref: e.capture(), at: nowMonotonic()}
	}

	out := make([]TimedSample, 0, count)
	for i := 0; i < count; i++ {
		select {
		case <-time.After(step):
		case <-ctx.Done():
			return out, ctx.Err()
		}

		next := &rawSample{ref: e.capture(), at: nowMonotonic()}

		d := delta(next.ref, e.prev.ref)
		elapsed := next.at.Sub(e.prev.at).Milliseconds()
		if elapsed < 1 {
			elapsed = 1
		}

		e.prev.release()
		e.prev = next

		out = append(out, TimedSample{Record: newSampleRecord(d), ElapsedMs: elapsed})
	}

	return out, nil
}

func clampCount(n int) int {
	if n < minSampleCount {
		return minSampleCount
	}
	if n > maxSampleCount {
		return maxSampleCount
	}
	return n
}

// nowMonotonic is a seam over time.Now so tests can't observe wall-clock
// jumps; kept as a var rather than a direct time.Now call so a future fake
// clock doesn't require touching call sites.
var nowMonotonic = time.Now

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package hidtemp reads instantaneous temperature readings from Apple-vendor
// HID temperature sensor services.
package hidtemp

/*
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit
#include <CoreFoundation/CoreFoundation.h>

typedef void *IOHIDEventSystemClientRef;
typedef void *IOHIDServiceClientRef;
typedef void *IOHIDEventRef;

extern IOHIDEventSystemClientRef IOHIDEventSystemClientCreate(CFAllocatorRef allocator);
extern int IOHIDEventSystemClientSetMatching(IOHIDEventSystemClientRef client, CFDictionaryRef matching);
extern CFArrayRef IOHIDEventSystemClientCopyServices(IOHIDEventSystemClientRef client);
extern CFStringRef IOHIDServiceClientCopyProperty(IOHIDServiceClientRef service, CFStringRef key);
extern IOHIDEventRef IOHIDServiceClientCopyEvent(IOHIDServiceClientRef service, int64_t eventType, int32_t options, int64_t timeout);
extern double IOHIDEventGetFloatValue(IOHIDEventRef event, int32_t field);

static IOHIDServiceClientRef socsensor_service_at(CFArrayRef services, CFIndex idx) {
	return (IOHIDServiceClientRef)CFArrayGetValueAtIndex(services, idx);
}
*/
import "C"

import (
	"sort"
	"unsafe"

	"github.com/context-labs/socsensor/cfref"
)

const (
	kHIDPageAppleVendor             = 0xff00
	kHIDUsageAppleVendorTemperature = 0x0005
	kIOHIDEventTypeTemperature int64 = 15
)

// Reading is one sensor's instantaneous temperature.
type Reading struct {
	ProductName string
	Celsius     float32
}

// Scanner matches Apple-vendor temperature HID services and pulls their
// instantaneous float readings. The match dictionary is built once and
// owned for the Scanner's lifetime.
type Scanner struct {
	match cfref.Ref
}

// New builds the two-key HID match dictionary (PrimaryUsagePage =
// AppleVendor, PrimaryUsage = AppleVendor temperature sensor).
func New() *Scanner {
	pageKey := cfref.NewString("PrimaryUsagePage")
	usageKey := cfref.NewString("PrimaryUsage")
	defer pageKey.Close()
	defer usageKey.Close()

	pageVal := cfref.NewNumber(kHIDPageAppleVendor)
	usageVal := cfref.NewNumber(kHIDUsageAppleVendorTemperature)
	defer pageVal.Close()
	defer usageVal.Close()

	keys := []unsafe.Pointer{unsafe.Pointer(pageKey.Ref()), unsafe.Pointer(usageKey.Ref())}
	vals := []unsafe.Pointer{unsafe.Pointer(pageVal.Ref()), unsafe.Pointer(usageVal.Ref())}

	dict := C.CFDictionaryCreate(
		C.kCFAllocatorDefault,
		&keys[0],
		&vals[0],
		C.CFIndex(len(keys)),
		&C.kCFTypeDictionaryKeyCallBacks,
		&C.kCFTypeDictionaryValueCallBacks,
	)

	return &Scanner{match: cfref.Ref(unsafe.Pointer(dict))}
}

// Close releases the match dictionary.
func (s *Scanner) Close() error {
	if s.match != nil {
		cfref.Release(s.match)
		s.match = nil
	}
	return nil
}

// ReadAll creates an HID event-system client, attaches the match
// dictionary, and pulls a temperature reading from every matching service.
// A null client, null services array, null per-service property, or null
// per-service event causes that one service (or the whole scan, for the
// first two) to be skipped rather than failing the call. The result is
// sorted by ProductName ascending.
func (s *Scanner) ReadAll() []Reading {
	system := C.IOHIDEventSystemClientCreate(C.kCFAllocatorDefault)
	if system == nil {
		return nil
	}
	defer C.CFRelease(C.CFTypeRef(system))

	C.IOHIDEventSystemClientSetMatching(system, C.CFDictionaryRef(s.match))

	services := C.IOHIDEventSystemClientCopyServices(system)
	if services == nil {
		return nil
	}
	defer C.CFRelease(C.CFTypeRef(services))

	n := int(C.CFArrayGetCount(services))
	out := make([]Reading, 0, n)

	for i := 0; i < n; i++ {
		svc := C.socsensor_service_at(services, C.CFIndex(i))
		if svc == nil {
			continue
		}

		nameKey := cfref.NewString("Product")
		nameRef := C.IOHIDServiceClientCopyProperty(svc, C.CFStringRef(nameKey.Ref()))
		nameKey.Close()
		if nameRef == nil {
			continue
		}
		name, err := cfref.ToUTF8(cfref.Ref(unsafe.Pointer(nameRef)))
		C.CFRelease(C.CFTypeRef(nameRef))
		if err != nil {
			continue
		}

		event := C.IOHIDServiceClientCopyEvent(svc, C.int64_t(kIOHIDEventTypeTemperature), 0, 0)
		if event == nil {
			continue
		}
		celsius := C.IOHIDEventGetFloatValue(event, C.int32_t(kIOHIDEventTypeTemperature<<16))
		C.CFRelease(C.CFTypeRef(event))

		out = append(out, Reading{ProductName: name, Celsius: float32(celsius)})
	}

	sortReadings(out)
	return out
}

func sortReadings(readings []Reading) {
	sort.SliceStable(readings, func(i, j int) bool { return readings[i].ProductName < readings[j].ProductName })
}

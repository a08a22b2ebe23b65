// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package ioregistry enumerates IOKit registry entries matching a service
// class name.
package ioregistry

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/IOKitLib.h>
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/context-labs/socsensor/cfref"
)

// ErrNotFound is returned by New when the initial matching call finds no
// services of the requested class.
var ErrNotFound = errors.New("ioregistry: service class not found")

// ServiceIterator walks the IOKit registry entries matching a service class
// name, yielding (entry id, registry name) pairs. Entry ids handed back to
// the caller are not released by the iterator -- whoever consumes an entry
// id owns it and must IOObjectRelease it when done (see ReleaseEntry).
type ServiceIterator struct {
	existing C.io_iterator_t
}

// New builds the matching dictionary for serviceClass and obtains an
// iterator over every currently registered service of that class.
func New(serviceClass string) (*ServiceIterator, error) {
	cname := C.CString(serviceClass)
	defer C.free(unsafe.Pointer(cname))

	matching := C.IOServiceMatching(cname)
	var existing C.io_iterator_t
	if rc := C.IOServiceGetMatchingServices(C.kIOMainPortDefault, matching, &existing); rc != 0 {
		return nil, fmt.Errorf("%w: %s (status %d)", ErrNotFound, serviceClass, int32(rc))
	}

	return &ServiceIterator{existing: existing}, nil
}

// Close releases the iterator handle itself. It does not release any entry
// id previously yielded by Next.
func (it *ServiceIterator) Close() error {
	if it.existing != 0 {
		C.IOObjectRelease(it.existing)
		it.existing = 0
	}
	return nil
}

// Next pulls the next (entry id, registry name) pair, or ok=false once the
// iterator is exhausted.
func (it *ServiceIterator) Next() (entryID uint32, name string, ok bool) {
	next := C.IOIteratorNext(it.existing)
	if next == 0 {
		return 0, "", false
	}

	var buf [128]C.char // 128 is the size IORegistryEntryGetName's documentation requires
	if C.IORegistryEntryGetName(next, &buf[0]) != 0 {
		return 0, "", false
	}

	return uint32(next), C.GoString(&buf[0]), true
}

// ReleaseEntry releases an entry id previously yielded by Next. The iterator
// does not do this automatically since callers may want to hold entries
// past the iterator's own lifetime (for example, to read their properties).
func ReleaseEntry(entryID uint32) {
	if entryID != 0 {
		C.IOObjectRelease(C.io_object_t(entryID))
	}
}

// Properties returns the registry properties dictionary for entryID as a
// cfref.Ref the caller owns and must release. Declared here (rather than in
// cfref) because it is an IOKit call, not a CoreFoundation one.
func Properties(entryID uint32) (cfref.Ref, error) {
	var props C.CFMutableDictionaryRef
	if rc := C.IORegistryEntryCreateCFProperties(C.io_registry_entry_t(entryID), &props, C.kCFAllocatorDefault, 0); rc != 0 {
		return nil, fmt.Errorf("ioregistry: IORegistryEntryCreateCFProperties failed for entry %d (status %d)", entryID, int32(rc))
	}
	return cfref.Ref(unsafe.Pointer(props)), nil
}

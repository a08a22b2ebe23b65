// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package cfref wraps the handful of CoreFoundation primitives every other
// package in this module needs in order to talk to IOKit, IOReport and the
// HID event system without leaking reference counts.
//
// Every CoreFoundation object obtained from a function whose name contains
// Create or Copy is a +1 reference: something in this package, or a caller
// holding a Ref returned from here, owns exactly one release of it. Getters
// return borrowed references and must never be released.
package cfref

/*
#cgo LDFLAGS: -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

// ErrStringConversion is returned by ToUTF8 when CFStringGetCString reports
// a conversion failure (the string isn't representable in the requested
// encoding, or doesn't fit the scratch buffer).
var ErrStringConversion = errors.New("cfref: CFString to UTF-8 conversion failed")

// Ref is an untyped, non-owning view of a CoreFoundation object. Callers are
// responsible for knowing, from context, whether a given Ref they hold is a
// +1 reference they must Release, or a borrowed one they must not.
type Ref unsafe.Pointer

// Release drops exactly one reference on ref. Safe to call with a nil ref,
// which makes it safe to defer unconditionally after a possibly-failed
// acquisition.
func Release(ref Ref) {
	if ref == nil {
		return
	}
	C.CFRelease(C.CFTypeRef(ref))
}

// Retain bumps the reference count and returns ref back for chaining.
func Retain(ref Ref) Ref {
	if ref == nil {
		return nil
	}
	return Ref(C.CFRetain(C.CFTypeRef(ref)))
}

// String is an owned CFStringRef together with the byte buffer backing it.
type String struct {
	ref  C.CFStringRef
	cstr unsafe.Pointer
}

// NewString builds a CFStringRef over a private copy of s's bytes using the
// no-copy constructor with a null contents-deallocator: CoreFoundation is
// told never to free the buffer, and this String frees it itself in Close.
//
// Do not swap this for CFStringCreateWithCString or a "convenient" helper
// built on it -- those mis-encode or truncate strings longer than a handful
// of bytes, which is exactly the trap this constructor exists to avoid.
func NewString(s string) *String {
	n := len(s)
	var buf unsafe.Pointer
	if n > 0 {
		buf = C.CBytes([]byte(s))
	}
	ref := C.CFStringCreateWithBytesNoCopy(
		C.kCFAllocatorDefault,
		(*C.UInt8)(buf),
		C.CFIndex(n),
		C.kCFStringEncodingUTF8,
		0,
		C.kCFAllocatorNull,
	)
	return &String{ref: ref, cstr: buf}
}

// Ref returns the borrowed view of the string for passing into other CF
// calls. It remains valid only until Close.
func (s *String) Ref() Ref { return Ref(s.ref) }

// Close releases the CFStringRef and frees its backing buffer. Safe to call
// more than once.
func (s *String) Close() error {
	if s.ref != nil {
		C.CFRelease(C.CFTypeRef(s.ref))
		s.ref = nil
	}
	if s.cstr != nil {
		C.free(s.cstr)
		s.cstr = nil
	}
	return nil
}

// ToUTF8 fills a 128-byte stack buffer (the size IOKit and CoreFoundation
// string accessors in this codebase are documented to respect) and returns
// its NUL-terminated prefix as a Go string.
func ToUTF8(ref Ref) (string, error) {
	if ref == nil {
		return "", nil
	}
	var buf [128]C.char
	ok := C.CFStringGetCString(C.CFStringRef(ref), &buf[0], C.CFIndex(len(buf)), C.kCFStringEncodingUTF8)
	if ok == 0 {
		return "", ErrStringConversion
	}
	return C.GoString(&buf[0]), nil
}

// Number is an owned CFNumberRef over a 32-bit signed integer.
type Number struct {
	ref C.CFNumberRef
}

// NewNumber wraps v as a CFNumberRef (kCFNumberSInt32Type).
func NewNumber(v int32) *Number {
	cv := C.int32_t(v)
	ref := C.CFNumberCreate(C.kCFAllocatorDefault, C.kCFNumberSInt32Type, unsafe.Pointer(&cv))
	return &Number{ref: ref}
}

// Ref returns the borrowed view of the number.
func (n *Number) Ref() Ref { return Ref(n.ref) }

// Close releases the CFNumberRef. Safe to call more than once.
func (n *Number) Close() error {
	if n.ref != nil {
		C.CFRelease(C.CFTypeRef(n.ref))
		n.ref = nil
	}
	return nil
}

// DictGet looks up key in dict, building and releasing a temporary CFString
// key. The returned Ref is borrowed from dict: it must not be released, and
// is only valid as long as dict is alive.
func DictGet(dict Ref, key string) (Ref, bool) {
	k := NewString(key)
	defer k.Close()

	val := C.CFDictionaryGetValue(C.CFDictionaryRef(dict), unsafe.Pointer(k.Ref()))
	if val == nil {
		return nil, false
	}
	return Ref(val), true
}

// DictKeys bulk-reads every key in dict and converts it to a Go string.
func DictKeys(dict Ref) []string {
	count := int(C.CFDictionaryGetCount(C.CFDictionaryRef(dict)))
	if count == 0 {
		return nil
	}

	keys := make([]unsafe.Pointer, count)
	vals := make([]unsafe.Pointer, count)
	C.CFDictionaryGetKeysAndValues(C.CFDictionaryRef(dict), &keys[0], &vals[0])

	out := make([]string, count)
	for i, k := range keys {
		out[i], _ = ToUTF8(Ref(k))
	}
	return out
}

// MutableCopy takes a mutable copy of dict so the caller owns a modifiable
// handle; the copy is a +1 reference the caller must Release.
func MutableCopy(dict Ref) Ref {
	return Ref(C.CFDictionaryCreateMutableCopy(C.kCFAllocatorDefault, 0, C.CFDictionaryRef(dict)))
}

// ArrayCount returns the number of elements in a CFArrayRef.
func ArrayCount(arr Ref) int {
	return int(C.CFArrayGetCount(C.CFArrayRef(arr)))
}

// ArrayValueAt returns the borrowed element at index i of a CFArrayRef.
func ArrayValueAt(arr Ref, i int) Ref {
	return Ref(C.CFArrayGetValueAtIndex(C.CFArrayRef(arr), C.CFIndex(i)))
}

// DataBytes copies the full contents of a CFDataRef into a Go byte slice.
func DataBytes(data Ref) []byte {
	n := int(C.CFDataGetLength(C.CFDataRef(data)))
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	C.CFDataGetBytes(C.CFDataRef(data), C.CFRange{location: 0, length: C.CFIndex(n)}, (*C.UInt8)(unsafe.Pointer(&out[0])))
	return out
}

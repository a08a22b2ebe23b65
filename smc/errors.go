// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package smc

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when a caller passes a key that is not exactly
// four bytes -- the SMC's FourCC key encoding has no other representation.
var ErrInvalidKey = errors.New("smc: key must be exactly 4 bytes")

// ErrUnavailable is returned by Monitor.SMCKey when its SMC subsystem
// was disabled or failed to open.
var ErrUnavailable = errors.New("smc: client unavailable")

// ErrKeyNotFound is returned when the SMC itself reports result code 132
// (key not present) for an otherwise well-formed request.
var ErrKeyNotFound = errors.New("smc: key not found")

// SMCOpenError wraps a nonzero IOServiceOpen status, carrying the kernel
// return code for Error() and matching any other SMCOpenError via Is,
// regardless of code.
type SMCOpenError int32

func (e SMCOpenError) Error() string {
	return fmt.Sprintf("smc: IOServiceOpen failed with status %d", int32(e))
}

// Is implements errors.Is support for SMCOpenError.
func (e SMCOpenError) Is(target error) bool {
	_, ok := target.(SMCOpenError)
	return ok
}

// SMCTransportError wraps a nonzero IOConnectCallStructMethod status -- a
// failure of the kernel call itself, distinct from an SMC-level error
// reported inside a well-formed reply (see SMCProtocolError).
type SMCTransportError int32

func (e SMCTransportError) Error() string {
	return fmt.Sprintf("smc: IOConnectCallStructMethod failed with status %d", int32(e))
}

// Is implements errors.Is support for SMCTransportError.
func (e SMCTransportError) Is(target error) bool {
	_, ok := target.(SMCTransportError)
	return ok
}

// SMCProtocolError wraps a nonzero, non-"key not found" SMC result code
// returned inside an otherwise successful IOConnectCallStructMethod reply.
type SMCProtocolError uint8

func (e SMCProtocolError) Error() string {
	return fmt.Sprintf("smc: SMC error, result code %d", uint8(e))
}

// Is implements errors.Is support for SMCProtocolError.
func (e SMCProtocolError) Is(target error) bool {
	_, ok := target.(SMCProtocolError)
	return ok
}

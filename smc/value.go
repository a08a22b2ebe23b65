// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package smc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ErrUnsupportedType is returned by the typed decode helpers when a
// SensorVal's Unit tag isn't one they know how to interpret.
var ErrUnsupportedType = fmt.Errorf("smc: unsupported value type")

// Float64 decodes v's payload according to its FourCC type tag: IEEE-754
// "flt " values decode directly; "fpXY" fixed-point values (the SMC's
// fp1f/fp4c/fp5b/... family used for voltages and currents) decode as a
// big-endian unsigned integer divided by 2^Y, where Y is the hex digit in
// the tag's fourth character.
func (v SensorVal) Float64() (float64, error) {
	switch {
	case v.Unit == "flt " && len(v.Payload) >= 4:
		bits := binary.BigEndian.Uint32(v.Payload)
		return float64(math.Float32frombits(bits)), nil

	case len(v.Unit) == 4 && v.Unit[0] == 'f' && v.Unit[1] == 'p' && len(v.Payload) >= 2:
		fracBits, err := fixedPointFracBits(v.Unit)
		if err != nil {
			return 0, err
		}
		raw := binary.BigEndian.Uint16(v.Payload)
		return float64(raw) / float64(uint32(1)<<fracBits), nil

	case v.Unit == "ui8 " && len(v.Payload) >= 1:
		return float64(v.Payload[0]), nil

	case v.Unit == "ui16" && len(v.Payload) >= 2:
		return float64(binary.BigEndian.Uint16(v.Payload)), nil

	case v.Unit == "ui32" && len(v.Payload) >= 4:
		return float64(binary.BigEndian.Uint32(v.Payload)), nil

	case v.Unit == "si8 " && len(v.Payload) >= 1:
		return float64(int8(v.Payload[0])), nil

	case v.Unit == "si16" && len(v.Payload) >= 2:
		return float64(int16(binary.BigEndian.Uint16(v.Payload))), nil

	default:
		return 0, ErrUnsupportedType
	}
}

// fixedPointFracBits reads the fractional-bit count out of an "fpXY" type
// tag, where the two hex digits XY give the (integer bits, fractional
// bits) split of a 16-bit fixed-point value.
func fixedPointFracBits(tag string) (uint, error) {
	hex := "0123456789abcdef"
	idx := func(c byte) (uint, bool) {
		for i := 0; i < len(hex); i++ {
			if hex[i] == c {
				return uint(i), true
			}
		}
		return 0, false
	}

	frac, ok := idx(tag[3])
	if !ok {
		return 0, ErrUnsupportedType
	}
	return frac, nil
}

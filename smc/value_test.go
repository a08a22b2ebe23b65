// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package smc

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFloat64DecodesIEEEFloat(t *testing.T) {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, math.Float32bits(42.5))

	v := SensorVal{Unit: "flt ", Payload: payload}
	got, err := v.Float64()
	if err != nil {
		t.Fatalf("Float64() error: %v", err)
	}
	if got != 42.5 {
		t.Errorf("Float64() = %v, want 42.5", got)
	}
}

func TestFloat64DecodesFixedPoint(t *testing.T) {
	payload := make([]byte, 2)
	binary.BigEndian.PutUint16(payload, 1<<12) // 1.0 in fp4.12

	v := SensorVal{Unit: "fp4c", Payload: payload}
	got, err := v.Float64()
	if err != nil {
		t.Fatalf("Float64() error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("Float64() = %v, want 1.0", got)
	}
}

func TestFloat64DecodesUnsigned8(t *testing.T) {
	v := SensorVal{Unit: "ui8 ", Payload: []byte{200}}
	got, err := v.Float64()
	if err != nil {
		t.Fatalf("Float64() error: %v", err)
	}
	if got != 200 {
		t.Errorf("Float64() = %v, want 200", got)
	}
}

func TestFloat64RejectsUnknownType(t *testing.T) {
	v := SensorVal{Unit: "xyz ", Payload: []byte{1, 2, 3, 4}}
	if _, err := v.Float64(); err != ErrUnsupportedType {
		t.Errorf("Float64() error = %v, want ErrUnsupportedType", err)
	}
}

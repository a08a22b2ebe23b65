// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

import "testing"

func TestDecodeWattsUnknownUnit(t *testing.T) {
	item := Item{Unit: "bogus"}
	if _, err := item.DecodeWatts(1000); err != ErrUnknownEnergyUnit {
		t.Errorf("DecodeWatts() error = %v, want ErrUnknownEnergyUnit", err)
	}
}

func TestEnergyDivisorTable(t *testing.T) {
	want := map[string]float64{"mJ": 1e3, "uJ": 1e6, "nJ": 1e9}
	for unit, divisor := range want {
		if got := energyDivisor[unit]; got != divisor {
			t.Errorf("energyDivisor[%q] = %v, want %v", unit, got, divisor)
		}
	}
}

func TestSampleRecordOverNilDelta(t *testing.T) {
	sr := newSampleRecord(nil)
	if _, ok := sr.Next(); ok {
		t.Error("Next() on a nil-delta record returned ok=true")
	}
	if err := sr.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

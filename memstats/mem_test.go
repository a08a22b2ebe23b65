// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package memstats

import "testing"

func TestLeUint64(t *testing.T) {
	b := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if got := leUint64(b); got != 1 {
		t.Errorf("leUint64(%v) = %d, want 1", b, got)
	}

	b = []byte{0x00, 0xCA, 0x9A, 0x3B, 0x00, 0x00, 0x00, 0x00}
	if got := leUint64(b); got != 1_000_000_000 {
		t.Errorf("leUint64(%v) = %d, want 1000000000", b, got)
	}
}

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package smc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFourCCRoundTrip(t *testing.T) {
	cases := []string{"#KEY", "TC0P", "PC0C", "VP0R"}
	for _, key := range cases {
		encoded := fourCCEncode(key)
		decoded := fourCCDecode(encoded)
		require.Equal(t, key, decoded, "fourCCEncode/Decode(%q) round-tripped to %q", key, decoded)
	}
}

func TestFourCCEncodeIsBigEndian(t *testing.T) {
	got := fourCCEncode("TC0P")
	want := uint32('T')<<24 | uint32('C')<<16 | uint32('0')<<8 | uint32('P')
	require.Equal(t, want, got)
}

func TestKeyInfoTypeFourCC(t *testing.T) {
	ki := KeyInfo{DataType: fourCCEncode("flt ")}
	require.Equal(t, "flt ", ki.TypeFourCC())
}

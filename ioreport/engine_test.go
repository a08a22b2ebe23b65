// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

import "testing"

func TestClampCount(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{-5, minSampleCount},
		{0, minSampleCount},
		{1, 1},
		{16, 16},
		{32, 32},
		{33, maxSampleCount},
		{1000, maxSampleCount},
	}
	for _, c := range cases {
		if got := clampCount(c.in); got != c.want {
			t.Errorf("clampCount(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package socsensor

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.SampleInterval <= 0 {
		t.Errorf("SampleInterval = %v, want positive", cfg.SampleInterval)
	}
	if cfg.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", cfg.SampleCount)
	}
}

func TestLoadConfigFallsBackWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")
	cfg := LoadConfig()
	want := defaultConfig()
	if cfg.SampleInterval != want.SampleInterval || cfg.SampleCount != want.SampleCount {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

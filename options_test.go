// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package socsensor

import (
	"testing"
	"time"
)

func TestNewBuilderDefaults(t *testing.T) {
	b := newBuilder()
	if b.sampleEvery != time.Second {
		t.Errorf("sampleEvery = %v, want 1s", b.sampleEvery)
	}
	if b.sampleCount != 1 {
		t.Errorf("sampleCount = %d, want 1", b.sampleCount)
	}
	if !b.withHID || !b.withSMC || !b.withPlatform {
		t.Error("all subsystems should default to enabled")
	}
}

func TestWithoutOptionsDisableSubsystems(t *testing.T) {
	b := newBuilder()
	WithoutHID()(b)
	WithoutSMC()(b)
	WithoutPlatformProbe()(b)

	if b.withHID || b.withSMC || b.withPlatform {
		t.Error("Without* options should disable their subsystem")
	}
}

func TestWithSampleIntervalAndCount(t *testing.T) {
	b := newBuilder()
	WithSampleInterval(5 * time.Second)(b)
	WithSampleCount(8)(b)

	if b.sampleEvery != 5*time.Second {
		t.Errorf("sampleEvery = %v, want 5s", b.sampleEvery)
	}
	if b.sampleCount != 8 {
		t.Errorf("sampleCount = %d, want 8", b.sampleCount)
	}
}

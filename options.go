// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package socsensor

import (
	"log"
	"os"
	"time"

	"github.com/context-labs/socsensor/diag"
	"github.com/context-labs/socsensor/ioreport"
)

// monitorBuilder enables piecewise construction of a Monitor. Implements
// the functional options pattern.
type monitorBuilder struct {
	selectors    []ioreport.ChannelSelector
	sampleEvery  time.Duration
	sampleCount  int
	logger       *log.Logger
	collectors   *diag.Collectors
	withHID      bool
	withSMC      bool
	withPlatform bool
}

// Option configures a Monitor at construction time.
type Option func(*monitorBuilder)

// WithChannels restricts the IOReport engine to the given selectors
// instead of subscribing to every channel the kernel exposes.
func WithChannels(selectors ...ioreport.ChannelSelector) Option {
	return func(b *monitorBuilder) {
		b.selectors = selectors
	}
}

// WithSampleInterval records a sample interval on the Monitor. Sample and
// Samples take their duration from the caller and do not read this value.
func WithSampleInterval(d time.Duration) Option {
	return func(b *monitorBuilder) {
		b.sampleEvery = d
	}
}

// WithSampleCount sets how many delta samples each Samples call should
// produce, clamped by the ioreport engine to its own [1, 32] bound.
func WithSampleCount(n int) Option {
	return func(b *monitorBuilder) {
		b.sampleCount = n
	}
}

// WithLogger overrides the Monitor's logger. The default writes to
// os.Stderr with no prefix or flags, matching this codebase's plain
// diagnostic-line convention.
func WithLogger(l *log.Logger) Option {
	return func(b *monitorBuilder) {
		b.logger = l
	}
}

// WithDiagnostics attaches a Prometheus collector set the Monitor will
// update as it samples. Without this option, diagnostics are a no-op.
func WithDiagnostics(c *diag.Collectors) Option {
	return func(b *monitorBuilder) {
		b.collectors = c
	}
}

// WithoutHID disables the HID temperature scanner subsystem.
func WithoutHID() Option {
	return func(b *monitorBuilder) {
		b.withHID = false
	}
}

// WithoutSMC disables the SMC client subsystem.
func WithoutSMC() Option {
	return func(b *monitorBuilder) {
		b.withSMC = false
	}
}

// WithoutPlatformProbe disables the one-shot SoC inventory probe.
func WithoutPlatformProbe() Option {
	return func(b *monitorBuilder) {
		b.withPlatform = false
	}
}

func newBuilder() *monitorBuilder {
	return &monitorBuilder{
		sampleEvery:  time.Second,
		sampleCount:  1,
		logger:       log.New(os.Stderr, "", 0),
		withHID:      true,
		withSMC:      true,
		withPlatform: true,
	}
}

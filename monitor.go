// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package socsensor is the facade wiring the IOReport sampling engine, the
// HID temperature scanner, the SMC client, and the platform inventory
// probe into one Apple Silicon telemetry source.
package socsensor

import (
	"context"
	"log"
	"time"

	"github.com/context-labs/socsensor/diag"
	"github.com/context-labs/socsensor/hidtemp"
	"github.com/context-labs/socsensor/ioreport"
	"github.com/context-labs/socsensor/platform"
	"github.com/context-labs/socsensor/smc"
)

// Monitor owns one instance of every telemetry subsystem this module
// provides. It is not safe for concurrent use -- the same restriction
// ioreport.Engine carries applies transitively, since Monitor serializes
// all sampling through one Engine.
type Monitor struct {
	engine   *ioreport.Engine
	hid      *hidtemp.Scanner
	smcConn  *smc.Client
	soc      *platform.SocInfo
	log      *log.Logger
	diag     *diag.Collectors
	interval time.Duration
	count    int
}

// New builds a Monitor. The IOReport engine is always constructed; the HID
// scanner, SMC client, and platform probe are constructed unless disabled
// via WithoutHID/WithoutSMC/WithoutPlatformProbe. The returned Monitor
// owns every subsystem it built and must be Closed.
func New(ctx context.Context, opts ...Option) (*Monitor, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	engine, err := ioreport.New(b.selectors)
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		engine:   engine,
		log:      b.logger,
		diag:     b.collectors,
		interval: b.sampleEvery,
		count:    b.sampleCount,
	}

	if b.withHID {
		m.hid = hidtemp.New()
	}

	if b.withSMC {
		client, err := smc.Open()
		if err != nil {
			m.log.Printf("socsensor: SMC client unavailable: %v", err)
		} else {
			if m.diag != nil {
				client.OnCacheHit = m.diag.SMCCacheHits.Inc
				client.OnCacheMiss = m.diag.SMCCacheMiss.Inc
			}
			m.smcConn = client
		}
	}

	if b.withPlatform {
		soc, err := platform.Probe(ctx)
		if err != nil {
			m.log.Printf("socsensor: platform probe failed: %v", err)
		} else {
			m.soc = soc
		}
	}

	return m, nil
}

// Close tears down every subsystem the Monitor owns.
func (m *Monitor) Close() error {
	if m.hid != nil {
		m.hid.Close()
	}
	if m.smcConn != nil {
		m.smcConn.Close()
	}
	return m.engine.Close()
}

// Sample captures one delta sample over duration.
func (m *Monitor) Sample(ctx context.Context, duration time.Duration) (*ioreport.SampleRecord, error) {
	start := time.Now()
	rec, err := m.engine.Sample(ctx, duration)
	if m.diag != nil {
		m.diag.ObserveSample(start)
	}
	return rec, err
}

// Samples produces a continuous stream of delta samples across total,
// using the Monitor's configured sample count.
func (m *Monitor) Samples(ctx context.Context, total time.Duration) ([]ioreport.TimedSample, error) {
	start := time.Now()
	out, err := m.engine.Samples(ctx, total, m.count)
	if m.diag != nil {
		m.diag.ObserveSample(start)
	}
	return out, err
}

// Temperatures returns the current HID temperature readings, or nil if the
// HID subsystem was disabled or unavailable.
func (m *Monitor) Temperatures() []hidtemp.Reading {
	if m.hid == nil {
		return nil
	}
	return m.hid.ReadAll()
}

// SMCKey reads one SMC key's current value. Returns an error if the SMC
// subsystem was disabled or could not be opened.
func (m *Monitor) SMCKey(key string) (smc.SensorVal, error) {
	if m.smcConn == nil {
		return smc.SensorVal{}, smc.ErrUnavailable
	}
	return m.smcConn.Read(key)
}

// SocInfo returns the static SoC inventory snapshot taken at construction
// time, or nil if the platform probe was disabled or failed.
func (m *Monitor) SocInfo() *platform.SocInfo {
	return m.soc
}

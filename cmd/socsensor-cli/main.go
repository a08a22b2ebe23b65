// Copyright (c) 2024-2026 Carsen Klock under MIT License
// socsensor-cli is a headless Apple Silicon telemetry reader: it samples
// the SoC engine and HID temperatures on a fixed interval and
// writes each reading as one JSON line, optionally also exposing the
// module's own diagnostics on a Prometheus endpoint.

//go:build darwin

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/context-labs/socsensor"
	"github.com/context-labs/socsensor/diag"
	"github.com/context-labs/socsensor/hidtemp"
	"github.com/context-labs/socsensor/ioreport"
)

var stderrLogger = log.New(os.Stderr, "", 0)

func main() {
	interval := flag.Duration("interval", time.Second, "sample interval")
	count := flag.Int("count", 0, "number of samples to emit (0 = run until interrupted)")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus diagnostics on this address (e.g. :9090)")
	flag.Parse()

	collectors := diag.NewCollectors()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors)

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, registry)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon, err := socsensor.New(ctx,
		socsensor.WithSampleInterval(*interval),
		socsensor.WithDiagnostics(collectors),
	)
	if err != nil {
		stderrLogger.Fatalf("socsensor-cli: failed to start monitor: %v", err)
	}
	defer mon.Close()

	if soc := mon.SocInfo(); soc != nil {
		stderrLogger.Printf("%s (%s): %d E-cores, %d P-cores, %d GPU cores, %d GB RAM",
			soc.ChipName, soc.MacModel, soc.ECPUCores, soc.PCPUCores, soc.GPUCores, soc.MemoryGB)
	}

	run(ctx, mon, *interval, *count)
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		stderrLogger.Printf("socsensor-cli: metrics server error: %v", err)
	}
}

// reading is one emitted JSON line: a timestamp, every IOReport channel in
// that interval's delta sample, and the current HID temperatures.
type reading struct {
	Timestamp    time.Time         `json:"timestamp"`
	ElapsedMs    int64             `json:"elapsed_ms"`
	Channels     []channelReading  `json:"channels"`
	Temperatures []hidtemp.Reading `json:"temperatures,omitempty"`
}

type channelReading struct {
	Group    string `json:"group"`
	Subgroup string `json:"subgroup"`
	Channel  string `json:"channel"`
	Unit     string `json:"unit,omitempty"`
}

func run(ctx context.Context, mon *socsensor.Monitor, interval time.Duration, count int) {
	encoder := json.NewEncoder(os.Stdout)

	emitted := 0
	for {
		if ctx.Err() != nil {
			return
		}

		rec, err := mon.Sample(ctx, interval)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			stderrLogger.Printf("socsensor-cli: sample error: %v", err)
			continue
		}

		out := reading{
			Timestamp:    time.Now(),
			ElapsedMs:    interval.Milliseconds(),
			Temperatures: mon.Temperatures(),
		}
		drainChannels(rec, &out)

		if err := encoder.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "socsensor-cli: failed to encode reading: %v\n", err)
		}

		emitted++
		if count > 0 && emitted >= count {
			return
		}
	}
}

func drainChannels(rec *ioreport.SampleRecord, out *reading) {
	for {
		item, ok := rec.Next()
		if !ok {
			return
		}
		out.Channels = append(out.Channels, channelReading{
			Group:    item.Group,
			Subgroup: item.Subgroup,
			Channel:  item.Channel,
			Unit:     item.Unit,
		})
	}
}

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package hidtemp

import "testing"

func TestReadingsSortedByProductName(t *testing.T) {
	readings := []Reading{
		{ProductName: "PMU tdie1", Celsius: 42.5},
		{ProductName: "CPU die", Celsius: 55.0},
		{ProductName: "GPU die", Celsius: 48.1},
	}

	sortReadings(readings)

	for i := 1; i < len(readings); i++ {
		if readings[i-1].ProductName > readings[i].ProductName {
			t.Fatalf("readings not sorted: %q before %q", readings[i-1].ProductName, readings[i].ProductName)
		}
	}
}

func TestNewScannerBuildsNonNilMatchDict(t *testing.T) {
	s := New()
	defer s.Close()

	if s.match == nil {
		t.Fatal("New() produced a nil match dictionary")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	s := New()
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioregistry

import "testing"

func TestNewUnknownServiceClassReturnsErrNotFound(t *testing.T) {
	_, err := New("ThisServiceClassDoesNotExist12345")
	if err == nil {
		t.Fatal("New() with a bogus service class returned no error")
	}
}

func TestReleaseEntryZeroIsSafe(t *testing.T) {
	ReleaseEntry(0)
}

func TestCloseIsIdempotent(t *testing.T) {
	it, err := New("IOPlatformExpertDevice")
	if err != nil {
		t.Skipf("IOPlatformExpertDevice not available in this environment: %v", err)
	}
	if err := it.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := it.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

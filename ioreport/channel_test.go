// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

import (
	"testing"

	"github.com/context-labs/socsensor/cfref"
)

func TestBuildDescriptorEmptySelectorsUsesAllChannels(t *testing.T) {
	ref, err := buildDescriptor(nil)
	if err != nil {
		t.Fatalf("buildDescriptor(nil) error: %v", err)
	}
	defer cfref.Release(ref)

	if ref == nil {
		t.Fatal("buildDescriptor(nil) returned a nil descriptor with no error")
	}
}

func TestBuildDescriptorUnknownGroupFails(t *testing.T) {
	_, err := buildDescriptor([]ChannelSelector{{Group: "ThisGroupDoesNotExist12345"}})
	if err != ErrChannelLookupFailed {
		t.Errorf("buildDescriptor() error = %v, want ErrChannelLookupFailed", err)
	}
}

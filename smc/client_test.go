// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package smc

import "testing"

func TestKeyInfoRejectsWrongLengthKey(t *testing.T) {
	c := &Client{keys: make(map[uint32]KeyInfo)}

	if _, err := c.KeyInfo("TC0"); err != ErrInvalidKey {
		t.Errorf("KeyInfo(short key) error = %v, want ErrInvalidKey", err)
	}
	if _, err := c.KeyInfo("TC0PP"); err != ErrInvalidKey {
		t.Errorf("KeyInfo(long key) error = %v, want ErrInvalidKey", err)
	}
}

func TestReadRejectsWrongLengthKey(t *testing.T) {
	c := &Client{keys: make(map[uint32]KeyInfo)}

	if _, err := c.Read("bad"); err != ErrInvalidKey {
		t.Errorf("Read(short key) error = %v, want ErrInvalidKey", err)
	}
}

func TestKeyInfoCachesResult(t *testing.T) {
	c := &Client{keys: make(map[uint32]KeyInfo)}
	want := KeyInfo{DataSize: 4, DataType: fourCCEncode("flt "), DataAttributes: 0}
	c.keys[fourCCEncode("TC0P")] = want

	got, err := c.KeyInfo("TC0P")
	if err != nil {
		t.Fatalf("KeyInfo() error: %v", err)
	}
	if got != want {
		t.Errorf("KeyInfo() = %+v, want %+v (cache was not consulted)", got, want)
	}
}

func TestKeyInfoCacheHitCallsHook(t *testing.T) {
	c := &Client{keys: make(map[uint32]KeyInfo)}
	c.keys[fourCCEncode("TC0P")] = KeyInfo{DataSize: 4}

	hits := 0
	c.OnCacheHit = func() { hits++ }
	c.OnCacheMiss = func() { t.Error("OnCacheMiss should not fire on a cache hit") }

	if _, err := c.KeyInfo("TC0P"); err != nil {
		t.Fatalf("KeyInfo() error: %v", err)
	}
	if hits != 1 {
		t.Errorf("OnCacheHit called %d times, want 1", hits)
	}
}

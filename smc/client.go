// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

// Package smc talks to Apple's System Management Controller over its
// private IOKit user-client protocol: list keys, read a key's type and
// size, and read its raw value.
package smc

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/IOKitLib.h>
#include <mach/mach.h>

typedef struct {
	uint8_t  major;
	uint8_t  minor;
	uint8_t  build;
	uint8_t  reserved;
	uint16_t release;
} smc_vers_t;

typedef struct {
	uint16_t version;
	uint16_t length;
	uint32_t cpu_p_limit;
	uint32_t gpu_p_limit;
	uint32_t mem_p_limit;
} smc_plimit_t;

typedef struct {
	uint32_t data_size;
	uint32_t data_type;
	uint8_t  data_attributes;
} smc_key_info_t;

typedef struct {
	uint32_t       key;
	smc_vers_t     vers;
	smc_plimit_t   p_limit_data;
	smc_key_info_t key_info;
	uint8_t        result;
	uint8_t        status;
	uint8_t        data8;
	uint32_t       data32;
	uint8_t        bytes[32];
} smc_key_data_t;
*/
import "C"

import (
	"unsafe"

	"github.com/context-labs/socsensor/ioregistry"
)

// endpointService is the AppleSMC registry child whose user client speaks
// the key-data protocol.
const endpointService = "AppleSMCKeysEndpoint"

// SensorVal is one key's raw reading: the key's own name, its FourCC type
// tag, and the payload bytes the SMC returned for it, still in whatever
// encoding that type implies (flt, fp1f, ui8, si16, ...). Decoding a
// particular type is the caller's concern -- see SensorVal.Float64 in
// value.go.
type SensorVal struct {
	Name    string
	Unit    string
	Payload []byte
}

// Client is a single open connection to the SMC user client. It caches key
// metadata (KeyInfo) across calls since a key's type and size never change
// for the lifetime of a boot.
//
// Client is not safe for concurrent use: the key-info cache is a plain map
// and the connection is not guarded by a mutex.
type Client struct {
	conn C.io_connect_t
	keys map[uint32]KeyInfo

	// OnCacheHit and OnCacheMiss, if set, are called from KeyInfo on every
	// cache lookup. Left nil by Open; a caller wanting cache-rate
	// instrumentation (see package diag) sets them after construction.
	OnCacheHit  func()
	OnCacheMiss func()
}

// Open finds the AppleSMC service's key-data endpoint and opens a
// connection to it.
func Open() (*Client, error) {
	it, err := ioregistry.New("AppleSMC")
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var conn C.io_connect_t
	for {
		entryID, name, ok := it.Next()
		if !ok {
			break
		}
		if name != endpointService {
			ioregistry.ReleaseEntry(entryID)
			continue
		}

		rc := C.IOServiceOpen(C.io_service_t(entryID), C.mach_task_self(), 0, &conn)
		ioregistry.ReleaseEntry(entryID)
		if rc != 0 {
			return nil, SMCOpenError(rc)
		}
		break
	}

	return &Client{conn: conn, keys: make(map[uint32]KeyInfo)}, nil
}

// Close closes the SMC connection.
func (c *Client) Close() error {
	if c.conn != 0 {
		C.IOServiceClose(c.conn)
		c.conn = 0
	}
	return nil
}

// call issues one IOConnectCallStructMethod round trip and translates the
// SMC's embedded result code into a Go error.
func (c *Client) call(input C.smc_key_data_t) (C.smc_key_data_t, error) {
	var output C.smc_key_data_t
	outputSize := C.size_t(unsafe.Sizeof(output))

	rc := C.IOConnectCallStructMethod(
		c.conn,
		C.uint32_t(smcSelectorCallStruct),
		unsafe.Pointer(&input),
		C.size_t(unsafe.Sizeof(input)),
		unsafe.Pointer(&output),
		&outputSize,
	)
	if rc != 0 {
		return output, SMCTransportError(rc)
	}
	if output.result == smcResultKeyNotFound {
		return output, ErrKeyNotFound
	}
	if output.result != 0 {
		return output, SMCProtocolError(output.result)
	}

	return output, nil
}

// KeyAt returns the FourCC name of the key at index (0-based, as reported
// by the "#KEY" count) -- used to enumerate every key the SMC exposes.
func (c *Client) KeyAt(index uint32) (string, error) {
	input := C.smc_key_data_t{data8: C.uint8_t(smcCmdReadKeyByIdx), data32: C.uint32_t(index)}
	output, err := c.call(input)
	if err != nil {
		return "", err
	}
	return fourCCDecode(uint32(output.key)), nil
}

// KeyInfo returns key's type and size, consulting (and populating) the
// per-Client key-info cache first.
func (c *Client) KeyInfo(key string) (KeyInfo, error) {
	if len(key) != 4 {
		return KeyInfo{}, ErrInvalidKey
	}
	encoded := fourCCEncode(key)

	if ki, ok := c.keys[encoded]; ok {
		if c.OnCacheHit != nil {
			c.OnCacheHit()
		}
		return ki, nil
	}
	if c.OnCacheMiss != nil {
		c.OnCacheMiss()
	}

	input := C.smc_key_data_t{data8: C.uint8_t(smcCmdReadKeyInfo), key: C.uint32_t(encoded)}
	output, err := c.call(input)
	if err != nil {
		return KeyInfo{}, err
	}

	ki := KeyInfo{
		DataSize:       uint32(output.key_info.data_size),
		DataType:       uint32(output.key_info.data_type),
		DataAttributes: uint8(output.key_info.data_attributes),
	}
	c.keys[encoded] = ki
	return ki, nil
}

// Read returns key's current raw value.
func (c *Client) Read(key string) (SensorVal, error) {
	if len(key) != 4 {
		return SensorVal{}, ErrInvalidKey
	}

	ki, err := c.KeyInfo(key)
	if err != nil {
		return SensorVal{}, err
	}

	input := C.smc_key_data_t{
		data8: C.uint8_t(smcCmdReadKeyValue),
		key:   C.uint32_t(fourCCEncode(key)),
		key_info: C.smc_key_info_t{
			data_size:       C.uint32_t(ki.DataSize),
			data_type:       C.uint32_t(ki.DataType),
			data_attributes: C.uint8_t(ki.DataAttributes),
		},
	}
	output, err := c.call(input)
	if err != nil {
		return SensorVal{}, err
	}

	n := ki.DataSize
	if n > uint32(len(output.bytes)) {
		n = uint32(len(output.bytes))
	}
	data := make([]byte, n)
	for i := uint32(0); i < n; i++ {
		data[i] = byte(output.bytes[i])
	}

	return SensorVal{Name: key, Unit: ki.TypeFourCC(), Payload: data}, nil
}

// ListKeys enumerates every key the SMC currently exposes, reading "#KEY"
// for the total count and then each key's FourCC name in turn. A key whose
// value can't be read (for example because it requires elevated privilege)
// is silently skipped rather than failing the whole scan, matching how
// read_all_keys behaves against a live SMC.
func (c *Client) ListKeys() ([]string, error) {
	countVal, err := c.Read("#KEY")
	if err != nil {
		return nil, err
	}
	if len(countVal.Payload) < 4 {
		return nil, ErrInvalidKey
	}
	count := uint32(countVal.Payload[0])<<24 | uint32(countVal.Payload[1])<<16 | uint32(countVal.Payload[2])<<8 | uint32(countVal.Payload[3])

	keys := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		key, err := c.KeyAt(i)
		if err != nil {
			return nil, err
		}
		if _, err := c.Read(key); err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Copyright (c) 2024-2026 Carsen Klock under MIT License

//go:build darwin

package ioreport

import "errors"

// ErrChannelLookupFailed is returned when the merged channel dictionary
// built from the requested selectors lacks an "IOReportChannels" entry.
var ErrChannelLookupFailed = errors.New("ioreport: merged channel dictionary has no IOReportChannels key")

// ErrSubscriptionFailed is returned when IOReportCreateSubscription returns
// a null subscription.
var ErrSubscriptionFailed = errors.New("ioreport: IOReportCreateSubscription returned null")

// ErrUnknownEnergyUnit is returned by DecodeWatts when a channel's unit
// label isn't one of mJ, uJ or nJ.
var ErrUnknownEnergyUnit = errors.New("ioreport: unit label is not a known energy unit")

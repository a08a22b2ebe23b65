// Copyright (c) 2024-2026 Carsen Klock under MIT License

package diag

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsRecordIncrements(t *testing.T) {
	c := NewCollectors()
	c.RefAcquired.Inc()
	c.SMCCacheHits.Inc()
	c.ObserveSample(time.Now().Add(-10 * time.Millisecond))

	if got := testutil.ToFloat64(c.RefAcquired); got != 1 {
		t.Errorf("RefAcquired = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.SMCCacheHits); got != 1 {
		t.Errorf("SMCCacheHits = %v, want 1", got)
	}
}

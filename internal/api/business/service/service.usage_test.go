// Package businesssvc - Test kỳ tính usage.
package businesssvc

import (
	"testing"
	"time"
)

func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	if got := CurrentPeriod(now); got != "2026-03" {
		t.Errorf("CurrentPeriod phải ra 2026-03, nhận được %s", got)
	}
}

func TestCurrentPeriod_UsesUTC(t *testing.T) {
	// 01:00 ngày 1/4 giờ Việt Nam vẫn là 31/3 theo UTC
	hcm := time.FixedZone("ICT", 7*3600)
	now := time.Date(2026, 4, 1, 1, 0, 0, 0, hcm)
	if got := CurrentPeriod(now); got != "2026-03" {
		t.Errorf("kỳ tính usage phải theo UTC, nhận được %s", got)
	}
}

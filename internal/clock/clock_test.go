package clock

import (
	"testing"
	"time"
)

func TestNow_IsUTCPlus8(t *testing.T) {
	_, offset := Now().Zone()
	if offset != 8*60*60 {
		t.Fatalf("expected offset +8h, got %ds", offset)
	}
}

func TestFixed_ConvertsToLocation(t *testing.T) {
	// 2025-05-31 22:30 UTC is already June 1st in Beijing.
	c := Fixed{T: time.Date(2025, 5, 31, 22, 30, 0, 0, time.UTC)}
	got := c.Now()
	if got.Format("2006-01") != "2025-06" {
		t.Errorf("expected period 2025-06, got %s", got.Format("2006-01"))
	}
	if got.Format("15:04") != "06:30" {
		t.Errorf("expected 06:30, got %s", got.Format("15:04"))
	}
}

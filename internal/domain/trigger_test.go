package domain

import (
	"testing"
	"time"
)

// helper: build a time in given tz and return its UTC
func mustLocalUTC(t *testing.T, tz string, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	lt := time.Date(y, m, d, hh, mm, 0, 0, loc)
	return lt.UTC()
}

func TestTriggerAt_MorningMinute(t *testing.T) {
	// 2024-01-01 06:00 PT
	nowUTC := mustLocalUTC(t, "America/Los_Angeles", 2024, time.January, 1, 6, 0)

	mode, key, ok, err := TriggerAt(nowUTC, "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected trigger match at 06:00")
	}
	if mode != ModePreview {
		t.Fatalf("want %s, got %s", ModePreview, mode)
	}
	if key != "Mon Jan 01 2024-06:00" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestTriggerAt_EveningMinute(t *testing.T) {
	nowUTC := mustLocalUTC(t, "Asia/Kolkata", 2024, time.January, 1, 22, 0)

	mode, key, ok, err := TriggerAt(nowUTC, "Asia/Kolkata")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || mode != ModeSummary {
		t.Fatalf("want summary trigger, got ok=%v mode=%s", ok, mode)
	}
	if key != "Mon Jan 01 2024-22:00" {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestTriggerAt_SameInstantDifferentZones(t *testing.T) {
	// 06:00 in Los Angeles is 09:00 in New York: only the PT user fires.
	nowUTC := mustLocalUTC(t, "America/Los_Angeles", 2024, time.January, 1, 6, 0)

	if _, _, ok, _ := TriggerAt(nowUTC, "America/Los_Angeles"); !ok {
		t.Fatal("PT user should fire at this instant")
	}
	if _, _, ok, _ := TriggerAt(nowUTC, "America/New_York"); ok {
		t.Fatal("ET user must not fire at this instant")
	}
}

func TestTriggerAt_OffMinute(t *testing.T) {
	nowUTC := mustLocalUTC(t, "America/Los_Angeles", 2024, time.January, 1, 6, 1)

	_, _, ok, err := TriggerAt(nowUTC, "America/Los_Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("06:01 must not match a trigger")
	}
}

func TestTriggerAt_InvalidZone(t *testing.T) {
	_, _, ok, err := TriggerAt(time.Now(), "Not/AZone")
	if err == nil {
		t.Fatal("expected error for invalid zone")
	}
	if ok {
		t.Fatal("invalid zone must not match a trigger")
	}
}

func TestValidateTZ(t *testing.T) {
	if _, err := ValidateTZ("Europe/London"); err != nil {
		t.Fatalf("valid zone rejected: %v", err)
	}
	if _, err := ValidateTZ("Mars/Olympus"); err == nil {
		t.Fatal("invalid zone accepted")
	}
}

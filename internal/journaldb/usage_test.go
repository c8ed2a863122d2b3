// Copyright (c) InnerVoice (dev@innervoice.app)
// SPDX-License-Identifier: BUSL-1.1

package journaldb

import (
	"testing"
	"time"
)

func TestMonthStart(t *testing.T) {
	got := monthStart(time.Date(2026, 8, 29, 15, 42, 7, 123, time.UTC))
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMonthStartNormalizesZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-09-01 03:00 JST is still 2026-08 in UTC.
	got := monthStart(time.Date(2026, 9, 1, 3, 0, 0, 0, tokyo))
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMonthStartKeysDistinctMonths(t *testing.T) {
	aug1 := monthStart(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))
	aug2 := monthStart(time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC))
	sep := monthStart(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	if aug1.Format(usageDocFormat) != aug2.Format(usageDocFormat) {
		t.Error("same month produced different usage keys")
	}
	if aug1.Format(usageDocFormat) == sep.Format(usageDocFormat) {
		t.Error("different months produced the same usage key")
	}
	if key := aug1.Format(usageDocFormat); key != "2026-08" {
		t.Errorf("got key %q, want 2026-08", key)
	}
}

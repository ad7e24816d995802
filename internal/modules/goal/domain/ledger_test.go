package domain_test

import (
	"testing"
	"time"

	"tsundoku/internal/modules/goal/domain"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEligibleForBackfill(t *testing.T) {
	t.Parallel()
	if !domain.EligibleForBackfill(domain.VolumeState{ID: "v1", Completed: true}) {
		t.Fatalf("explicit completion flag should qualify")
	}
	if !domain.EligibleForBackfill(domain.VolumeState{ID: "v2", PageCount: 300, CurrentPage: 300}) {
		t.Fatalf("page position at total should qualify")
	}
	if domain.EligibleForBackfill(domain.VolumeState{ID: "v3", PageCount: 300, CurrentPage: 299}) {
		t.Fatalf("unfinished volume should not qualify")
	}
	if domain.EligibleForBackfill(domain.VolumeState{ID: "v4", PageCount: 0, CurrentPage: 120}) {
		t.Fatalf("unknown page total should not qualify")
	}
}

func TestBackfillLedgerIsIdempotent(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	lastUpdate := time.Date(2024, time.February, 20, 8, 0, 0, 0, time.UTC)
	volumes := []domain.VolumeState{
		{ID: "v1", Completed: true, LastProgressUpdate: timePtr(lastUpdate)},
		{ID: "v2", PageCount: 200, CurrentPage: 200},
		{ID: "v3", PageCount: 200, CurrentPage: 50, LastProgressUpdate: timePtr(lastUpdate)},
	}

	merged, added := domain.BackfillLedger(domain.Ledger{}, volumes, now)
	if len(added) != 2 {
		t.Fatalf("added %d entries, want 2", len(added))
	}
	if got := merged["v1"]; !got.Equal(lastUpdate) {
		t.Fatalf("v1 should take its last progress update, got %v", got)
	}
	if got := merged["v2"]; !got.Equal(now) {
		t.Fatalf("v2 has no progress update and should take now, got %v", got)
	}
	if _, ok := merged["v3"]; ok {
		t.Fatalf("in-progress volume should not be backfilled")
	}

	again, added := domain.BackfillLedger(merged, volumes, now.Add(time.Hour))
	if len(added) != 0 {
		t.Fatalf("second run added %d entries, want 0", len(added))
	}
	if len(again) != len(merged) {
		t.Fatalf("second run changed ledger size")
	}
	for id, at := range merged {
		if !again[id].Equal(at) {
			t.Fatalf("second run moved %s from %v to %v", id, at, again[id])
		}
	}
}

func TestBackfillLedgerNeverTouchesExistingEntries(t *testing.T) {
	t.Parallel()
	original := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	ledger := domain.Ledger{"v1": original}
	volumes := []domain.VolumeState{
		{ID: "v1", Completed: true, LastProgressUpdate: timePtr(later)},
	}
	merged, added := domain.BackfillLedger(ledger, volumes, later)
	if len(added) != 0 {
		t.Fatalf("existing entry should not be re-added")
	}
	if !merged["v1"].Equal(original) {
		t.Fatalf("existing timestamp moved to %v", merged["v1"])
	}
	if !ledger["v1"].Equal(original) {
		t.Fatalf("input ledger mutated")
	}
}

func TestLedgerFromVolumes(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
	ledger := domain.LedgerFromVolumes([]domain.VolumeState{
		{ID: "v1", CompletedAt: timePtr(at)},
		{ID: "v2"},
	})
	if len(ledger) != 1 {
		t.Fatalf("ledger size %d, want 1", len(ledger))
	}
	if !ledger["v1"].Equal(at) {
		t.Fatalf("v1 timestamp %v", ledger["v1"])
	}
}

func TestMergeCompletionsEarliestWins(t *testing.T) {
	t.Parallel()
	january := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	february := time.Date(2024, time.February, 2, 10, 0, 0, 0, time.UTC)
	ledger := domain.Ledger{"v1": february, "v2": january}

	merged, changed := domain.MergeCompletions(ledger, map[string]string{
		"v1": january.Format(time.RFC3339),
		"v2": february.Format(time.RFC3339),
		"v3": "not-a-timestamp",
		"v4": january.Format(time.RFC3339),
	})

	if !merged["v1"].Equal(january) {
		t.Fatalf("v1 should adopt the earlier remote time, got %v", merged["v1"])
	}
	if !merged["v2"].Equal(january) {
		t.Fatalf("v2 should keep the earlier local time, got %v", merged["v2"])
	}
	if _, ok := merged["v3"]; ok {
		t.Fatalf("unparseable remote timestamp should be skipped")
	}
	if !merged["v4"].Equal(january) {
		t.Fatalf("new remote completion should be inserted")
	}
	if len(changed) != 2 {
		t.Fatalf("changed %d entries, want 2", len(changed))
	}
	if !ledger["v1"].Equal(february) {
		t.Fatalf("input ledger mutated")
	}
}

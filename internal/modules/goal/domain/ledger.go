package domain

import "time"

// Ledger maps a volume id to the timestamp it was first observed complete.
// Entries are write-once under backfill; only sync merge may replace one,
// and then only with an earlier timestamp.
type Ledger map[string]time.Time

// VolumeState is the engine's view of one item in the external reading log
// and catalog.
type VolumeState struct {
	ID                 string
	Title              string
	PageCount          int
	CurrentPage        int
	Completed          bool
	CompletedAt        *time.Time
	LastProgressUpdate *time.Time
}

// EligibleForBackfill reports whether a volume counts as completed: either
// the log flags it complete, or its page position reached a known total.
func EligibleForBackfill(v VolumeState) bool {
	return v.Completed || (v.PageCount > 0 && v.CurrentPage >= v.PageCount)
}

// LedgerFromVolumes derives the ledger from the completed_at fields already
// recorded in the reading log.
func LedgerFromVolumes(volumes []VolumeState) Ledger {
	ledger := Ledger{}
	for _, v := range volumes {
		if v.CompletedAt != nil {
			ledger[v.ID] = *v.CompletedAt
		}
	}
	return ledger
}

// BackfillLedger inserts a completion timestamp for every volume that is
// not yet in the ledger but tests complete. The timestamp is the volume's
// last progress update, or now when absent. Existing entries are never
// touched, so a rerun with unchanged inputs adds nothing.
func BackfillLedger(ledger Ledger, volumes []VolumeState, now time.Time) (Ledger, map[string]time.Time) {
	added := map[string]time.Time{}
	merged := make(Ledger, len(ledger)+len(added))
	for id, at := range ledger {
		merged[id] = at
	}
	for _, v := range volumes {
		if _, ok := merged[v.ID]; ok {
			continue
		}
		if !EligibleForBackfill(v) {
			continue
		}
		at := now
		if v.LastProgressUpdate != nil {
			at = *v.LastProgressUpdate
		}
		merged[v.ID] = at
		added[v.ID] = at
	}
	return merged, added
}

// MergeCompletions reconciles remotely observed completion timestamps into
// the ledger, earliest-wins per volume: a completion is attributed to the
// earliest time it was ever observed across devices. Unparseable incoming
// timestamps lose to any valid local entry.
func MergeCompletions(ledger Ledger, incoming map[string]string) (Ledger, map[string]time.Time) {
	changed := map[string]time.Time{}
	merged := make(Ledger, len(ledger))
	for id, at := range ledger {
		merged[id] = at
	}
	for id, raw := range incoming {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		local, ok := merged[id]
		if !ok || at.Before(local) {
			merged[id] = at
			changed[id] = at
		}
	}
	return merged, changed
}

package domain

import "time"

// Snapshot freezes which volumes counted as completed within a now-closed
// period. Snapshots are immutable once created; the finalizer never
// overwrites an existing key.
type Snapshot struct {
	GoalType  string               `json:"goal_type"`
	PeriodKey string               `json:"period_key"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	ClosedAt  time.Time            `json:"closed_at"`
	Completed map[string]time.Time `json:"completed"`
}

// SnapshotKey builds the storage key "{goalType}:{periodKey}". Custom goals
// pass their own id as both qualifier and key.
func SnapshotKey(goalType, periodKey string) string {
	return goalType + ":" + periodKey
}

// BuildSnapshot filters the ledger to completions inside [start, end) and
// stamps the close time. Pure; inserting it is the finalizer's job.
func BuildSnapshot(goalType, periodKey string, start, end, now time.Time, ledger Ledger) Snapshot {
	completed := map[string]time.Time{}
	for id, at := range ledger {
		if !at.Before(start) && at.Before(end) {
			completed[id] = at
		}
	}
	return Snapshot{
		GoalType:  goalType,
		PeriodKey: periodKey,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.AddDate(0, 0, -1).Format("2006-01-02"),
		ClosedAt:  now,
		Completed: completed,
	}
}

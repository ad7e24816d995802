package dto

import "time"

type SetTargetInput struct {
	GoalType      string
	PeriodKey     string
	TargetVolumes int
}

type SelectInput struct {
	GoalType  string
	PeriodKey string
	CustomID  string
}

type CreateCustomGoalInput struct {
	Name          string
	TargetVolumes int
	StartDate     string
	EndDate       string
}

type UpdateCustomGoalInput struct {
	ID            string
	Name          string
	TargetVolumes int
	StartDate     string
	EndDate       string
	Enabled       bool
}

type TargetOutput struct {
	GoalType      string
	PeriodKey     string
	TargetVolumes int
}

type CustomGoalOutput struct {
	ID            string
	Name          string
	TargetVolumes int
	StartDate     string
	EndDate       string
	Enabled       bool
}

type GoalsOutput struct {
	Targets     []TargetOutput
	CustomGoals []CustomGoalOutput
	Active      SelectInput
}

type PeriodOutput struct {
	GoalType  string
	PeriodKey string
	Label     string
	Start     time.Time
	End       time.Time
}

type ReportOutput struct {
	GoalType                string
	PeriodKey               string
	Label                   string
	TargetVolumes           int
	CompletedVolumes        int
	InProgressVolumes       int
	PartialProgress         float64
	TotalProgress           float64
	ProgressPercent         float64
	ExpectedProgressPercent float64
	DaysRemaining           int
	PagesPerDayForGoal      int
	Status                  string
	Closed                  bool
	FromSnapshot            bool
}

type DeadlineOutput struct {
	VolumeID      string
	Deadline      string
	DaysRemaining int
	PagesLeft     int
	PagesPerDay   int
}

// SyncState is the exportable view of every goal-side dataset with its
// last-updated marker.
type SyncState struct {
	Settings             SettingsPayload
	GoalsData            GoalsDataPayload
	Snapshots            SnapshotsPayload
	Completions          map[string]time.Time
	CompletionsUpdatedAt time.Time
}

type SettingsPayload struct {
	Raw       []byte
	UpdatedAt time.Time
}

type GoalsDataPayload struct {
	Raw       []byte
	UpdatedAt time.Time
}

type SnapshotsPayload struct {
	Raw       []byte
	UpdatedAt time.Time
}

package service_test

import (
	"testing"
	"time"

	"tsundoku/internal/modules/goal/domain"
	"tsundoku/internal/modules/goal/service"
)

func TestProgressReportForExplicitTarget(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc := service.NewProgressService(fakeClock{now: now})

	doneAt := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)
	report := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeMonth, PeriodKey: "2024-06"},
		domain.GoalsData{Targets: []domain.Target{{GoalType: domain.GoalTypeMonth, PeriodKey: "2024-06", TargetVolumes: 4}}},
		domain.DefaultSettings(),
		[]domain.VolumeState{{ID: "v1", Completed: true}},
		domain.Ledger{"v1": doneAt},
		nil,
	)

	if report.TargetVolumes != 4 || report.CompletedVolumes != 1 {
		t.Fatalf("report %+v", report)
	}
	if report.Label != "June 2024" {
		t.Fatalf("label %q", report.Label)
	}
}

func TestProgressReportYearFallsBackToAnnualSettings(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc := service.NewProgressService(fakeClock{now: now})
	settings := domain.Settings{AnnualGoals: []domain.AnnualGoal{{Year: 2024, TargetVolumes: 30}}}

	report := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeYear, PeriodKey: "2024"},
		domain.GoalsData{}, settings, nil, domain.Ledger{}, nil,
	)
	if report.TargetVolumes != 30 {
		t.Fatalf("annual fallback target %d, want 30", report.TargetVolumes)
	}

	// A year never configured anywhere reports a zero target rather than
	// inventing one.
	unset := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeYear, PeriodKey: "2023"},
		domain.GoalsData{}, settings, nil, domain.Ledger{}, nil,
	)
	if unset.TargetVolumes != 0 {
		t.Fatalf("unconfigured year target %d, want 0", unset.TargetVolumes)
	}
}

func TestProgressReportCustomSelection(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc := service.NewProgressService(fakeClock{now: now})
	data := domain.GoalsData{CustomGoals: []domain.CustomGoal{{
		ID: "g1", Name: "Sprint", TargetVolumes: 2,
		StartDate: "2024-06-10", EndDate: "2024-06-20", Enabled: true,
	}}}

	doneAt := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	report := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeCustom, CustomID: "g1"},
		data, domain.DefaultSettings(),
		[]domain.VolumeState{{ID: "v1", Completed: true}},
		domain.Ledger{"v1": doneAt},
		nil,
	)
	if report.Label != "Sprint" || report.TargetVolumes != 2 || report.CompletedVolumes != 1 {
		t.Fatalf("report %+v", report)
	}

	missing := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeCustom, CustomID: "ghost"},
		data, domain.DefaultSettings(), nil, domain.Ledger{}, nil,
	)
	if missing.Label != "Unknown period" {
		t.Fatalf("missing custom goal should degrade, got %+v", missing)
	}
}

func TestProgressReportPrefersSnapshotForClosedPeriod(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	svc := service.NewProgressService(fakeClock{now: now})

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	inWindow := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	snapshot := domain.BuildSnapshot("month", "2024-01", start, end, now, domain.Ledger{"v1": inWindow})

	report := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeMonth, PeriodKey: "2024-01"},
		domain.GoalsData{Targets: []domain.Target{{GoalType: domain.GoalTypeMonth, PeriodKey: "2024-01", TargetVolumes: 4}}},
		domain.DefaultSettings(),
		[]domain.VolumeState{{ID: "v1", Completed: true}, {ID: "v2", Completed: true}},
		domain.Ledger{"v1": inWindow, "v2": inWindow.AddDate(0, 0, 3)},
		map[string]domain.Snapshot{"month:2024-01": snapshot},
	)
	if !report.FromSnapshot || report.CompletedVolumes != 1 {
		t.Fatalf("report %+v", report)
	}
}

func TestProgressReportUnresolvableSelection(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc := service.NewProgressService(fakeClock{now: now})

	report := svc.Report(
		domain.Selection{GoalType: domain.GoalTypeMonth, PeriodKey: "garbage"},
		domain.GoalsData{}, domain.DefaultSettings(), nil, domain.Ledger{}, nil,
	)
	if report.Label != "Unknown period" || report.Status != domain.StatusOnTrack {
		t.Fatalf("report %+v", report)
	}
}

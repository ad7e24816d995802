package domain

import (
	"math"
	"time"
)

type Status string

const (
	StatusAhead     Status = "ahead"
	StatusOnTrack   Status = "on-track"
	StatusBehind    Status = "behind"
	StatusFarBehind Status = "far-behind"
)

// FallbackPagesPerVolume estimates unread volume length when no in-progress
// volume supplies a page count.
const FallbackPagesPerVolume = 200

// Report is the derived progress view for one period. Pure value, never
// persisted.
type Report struct {
	GoalType                GoalType
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
	Status                  Status
	Closed                  bool
	FromSnapshot            bool
}

// ZeroReport is the degenerate report for an unresolvable selection.
func ZeroReport(goalType GoalType) Report {
	return Report{GoalType: goalType, Label: "Unknown period", Status: StatusOnTrack}
}

// ProgressInput gathers everything the calculator reads. Snapshot is nil
// unless a frozen snapshot exists for the period.
type ProgressInput struct {
	Period   Period
	Target   int
	Volumes  []VolumeState
	Ledger   Ledger
	Snapshot *Snapshot
	Now      time.Time
}

// ComputeProgress derives the live progress report. A closed period with a
// snapshot counts exclusively from the frozen set, so later ledger changes
// never move a closed period's numbers.
func ComputeProgress(in ProgressInput) Report {
	report := Report{
		GoalType:      in.Period.GoalType,
		PeriodKey:     in.Period.PeriodKey,
		Label:         in.Period.Label,
		TargetVolumes: in.Target,
		Closed:        !in.Period.End.After(in.Now),
	}

	var remainingPages int
	if report.Closed && in.Snapshot != nil {
		report.FromSnapshot = true
		report.CompletedVolumes = len(in.Snapshot.Completed)
	} else {
		for _, v := range in.Volumes {
			at, done := in.Ledger[v.ID]
			if done && !at.Before(in.Period.Start) && at.Before(in.Period.End) {
				report.CompletedVolumes++
				continue
			}
			if v.CurrentPage > 1 && v.PageCount > 0 && v.LastProgressUpdate != nil &&
				!v.LastProgressUpdate.Before(in.Period.Start) && v.LastProgressUpdate.Before(in.Period.End) {
				report.InProgressVolumes++
				report.PartialProgress += float64(v.CurrentPage) / float64(v.PageCount)
				remainingPages += v.PageCount - v.CurrentPage
			}
		}
	}

	report.TotalProgress = float64(report.CompletedVolumes) + report.PartialProgress
	if in.Target > 0 {
		report.ProgressPercent = report.TotalProgress / float64(in.Target) * 100
	}

	total := in.Period.End.Sub(in.Period.Start)
	if total > 0 {
		elapsed := in.Now.Sub(in.Period.Start)
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > total {
			elapsed = total
		}
		report.ExpectedProgressPercent = float64(elapsed) / float64(total) * 100
	}

	report.DaysRemaining = in.Period.DaysRemaining(in.Now)

	remainingVolumes := float64(in.Target) - report.TotalProgress
	if remainingVolumes < 0 {
		remainingVolumes = 0
	}
	avgPages := float64(FallbackPagesPerVolume)
	if report.InProgressVolumes > 0 {
		avgPages = float64(remainingPages) / float64(report.InProgressVolumes)
	}
	if report.DaysRemaining > 0 {
		report.PagesPerDayForGoal = int(math.Ceil(remainingVolumes * avgPages / float64(report.DaysRemaining)))
	}

	report.Status = classify(report.ProgressPercent, report.ExpectedProgressPercent, report.TotalProgress)
	return report
}

func classify(progressPct, expectedPct, totalProgress float64) Status {
	var ratio float64
	switch {
	case expectedPct > 0:
		ratio = progressPct / expectedPct
	case totalProgress > 0:
		ratio = 2
	default:
		ratio = 1
	}
	switch {
	case ratio >= 1.1:
		return StatusAhead
	case ratio >= 0.9:
		return StatusOnTrack
	case ratio >= 0.5:
		return StatusBehind
	default:
		return StatusFarBehind
	}
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

const DefaultAnnualTarget = 52

// Target is the desired volume count for one non-custom period. Unique per
// (goal type, period key); re-setting an existing key only changes
// TargetVolumes.
type Target struct {
	GoalType      GoalType  `json:"goal_type"`
	PeriodKey     string    `json:"period_key"`
	TargetVolumes int       `json:"target_volumes"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomGoal covers an arbitrary date range; StartDate and EndDate are
// local dates, both inclusive.
type CustomGoal struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TargetVolumes int       `json:"target_volumes"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Enabled       bool      `json:"enabled"`
	CreatedAt     time.Time `json:"created_at"`
}

func (g CustomGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if g.TargetVolumes <= 0 {
		return fmt.Errorf("target volumes must be positive")
	}
	start, ok := ParseLocalDate(g.StartDate, time.UTC)
	if !ok {
		return fmt.Errorf("start date must be YYYY-MM-DD")
	}
	end, ok := ParseLocalDate(g.EndDate, time.UTC)
	if !ok {
		return fmt.Errorf("end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fmt.Errorf("end date is before start date")
	}
	return nil
}

// GoalsData is the single aggregate holding targets, custom goals, and the
// active selection, so one persist captures a consistent view.
type GoalsData struct {
	Targets         []Target     `json:"targets"`
	CustomGoals     []CustomGoal `json:"custom_goals"`
	ActiveSelection Selection    `json:"active_selection"`
}

// DefaultGoalsData seeds a year target of 52 volumes for the current year
// and selects it.
func DefaultGoalsData(now time.Time) GoalsData {
	yearKey := CurrentPeriodKey(GoalTypeYear, now)
	return GoalsData{
		Targets: []Target{{
			GoalType:      GoalTypeYear,
			PeriodKey:     yearKey,
			TargetVolumes: DefaultAnnualTarget,
			CreatedAt:     now,
		}},
		CustomGoals:     []CustomGoal{},
		ActiveSelection: Selection{GoalType: GoalTypeYear, PeriodKey: yearKey},
	}
}

// FindTarget returns the target for (goalType, periodKey), if any.
func (d GoalsData) FindTarget(goalType GoalType, periodKey string) (Target, bool) {
	for _, target := range d.Targets {
		if target.GoalType == goalType && target.PeriodKey == periodKey {
			return target, true
		}
	}
	return Target{}, false
}

// FindCustomGoal returns the custom goal with the given id, if any.
func (d GoalsData) FindCustomGoal(id string) (CustomGoal, bool) {
	for _, goal := range d.CustomGoals {
		if goal.ID == id {
			return goal, true
		}
	}
	return CustomGoal{}, false
}

type AnnualGoal struct {
	Year          int `json:"year"`
	TargetVolumes int `json:"target_volumes"`
}

// Settings carries annual volume goals and per-volume deadlines.
type Settings struct {
	AnnualGoals     []AnnualGoal      `json:"annual_goals"`
	VolumeDeadlines map[string]string `json:"volume_deadlines"`
}

func DefaultSettings() Settings {
	return Settings{
		AnnualGoals:     []AnnualGoal{},
		VolumeDeadlines: map[string]string{},
	}
}

// AnnualTarget returns the configured target for a year, falling back to
// 52 volumes.
func (s Settings) AnnualTarget(year int) int {
	for _, goal := range s.AnnualGoals {
		if goal.Year == year {
			return goal.TargetVolumes
		}
	}
	return DefaultAnnualTarget
}

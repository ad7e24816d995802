package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type GoalType string

const (
	GoalTypeYear   GoalType = "year"
	GoalTypeSeason GoalType = "season"
	GoalTypeMonth  GoalType = "month"
	GoalTypeToday  GoalType = "today"
	GoalTypeCustom GoalType = "custom"
)

func (g GoalType) Validate() error {
	switch g {
	case GoalTypeYear, GoalTypeSeason, GoalTypeMonth, GoalTypeToday, GoalTypeCustom:
		return nil
	default:
		return fmt.Errorf("unsupported goal type %q", string(g))
	}
}

var seasonNames = [4]string{"Winter", "Spring", "Summer", "Autumn"}

// Selection names the period whose progress is currently surfaced. Exactly
// one of PeriodKey (non-custom) or CustomID (custom) is meaningful.
type Selection struct {
	GoalType  GoalType `json:"goal_type"`
	PeriodKey string   `json:"period_key,omitempty"`
	CustomID  string   `json:"custom_id,omitempty"`
}

// Period is a resolved half-open interval [Start, End). It is never
// persisted; it is recomputed from a selection on demand.
type Period struct {
	GoalType  GoalType
	PeriodKey string
	Label     string
	Start     time.Time
	End       time.Time
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseLocalDate parses a YYYY-MM-DD date in the given location.
func ParseLocalDate(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ResolvePeriod turns a (goal type, period key) pair into a concrete
// interval. Malformed keys (non-numeric year, unknown season name, month
// outside 1-12, incomplete date) resolve to ok=false.
func ResolvePeriod(goalType GoalType, periodKey string, loc *time.Location) (Period, bool) {
	switch goalType {
	case GoalTypeYear:
		year, err := strconv.Atoi(periodKey)
		if err != nil || year <= 0 {
			return Period{}, false
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return Period{
			GoalType:  goalType,
			PeriodKey: periodKey,
			Label:     periodKey,
			Start:     start,
			End:       start.AddDate(1, 0, 0),
		}, true
	case GoalTypeSeason:
		yearStr, name, found := strings.Cut(periodKey, "-")
		if !found {
			return Period{}, false
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil || year <= 0 {
			return Period{}, false
		}
		idx := -1
		for i, candidate := range seasonNames {
			if candidate == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Period{}, false
		}
		start := time.Date(year, time.Month(idx*3+1), 1, 0, 0, 0, 0, loc)
		return Period{
			GoalType:  goalType,
			PeriodKey: periodKey,
			Label:     fmt.Sprintf("%s %d", name, year),
			Start:     start,
			End:       start.AddDate(0, 3, 0),
		}, true
	case GoalTypeMonth:
		yearStr, monthStr, found := strings.Cut(periodKey, "-")
		if !found {
			return Period{}, false
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil || year <= 0 {
			return Period{}, false
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return Period{}, false
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		return Period{
			GoalType:  goalType,
			PeriodKey: periodKey,
			Label:     start.Format("January 2006"),
			Start:     start,
			End:       start.AddDate(0, 1, 0),
		}, true
	case GoalTypeToday:
		day, ok := ParseLocalDate(periodKey, loc)
		if !ok {
			return Period{}, false
		}
		return Period{
			GoalType:  goalType,
			PeriodKey: periodKey,
			Label:     periodKey,
			Start:     day,
			End:       day.AddDate(0, 0, 1),
		}, true
	default:
		return Period{}, false
	}
}

// ResolveCustomPeriod resolves a custom goal's own date range; the end date
// is inclusive, so End is endDate + 1 day.
func ResolveCustomPeriod(goal CustomGoal, loc *time.Location) (Period, bool) {
	start, ok := ParseLocalDate(goal.StartDate, loc)
	if !ok {
		return Period{}, false
	}
	end, ok := ParseLocalDate(goal.EndDate, loc)
	if !ok {
		return Period{}, false
	}
	return Period{
		GoalType:  GoalTypeCustom,
		PeriodKey: goal.ID,
		Label:     goal.Name,
		Start:     start,
		End:       end.AddDate(0, 0, 1),
	}, true
}

// CurrentPeriodKey computes today's key for a goal type.
func CurrentPeriodKey(goalType GoalType, now time.Time) string {
	switch goalType {
	case GoalTypeYear:
		return fmt.Sprintf("%04d", now.Year())
	case GoalTypeSeason:
		return fmt.Sprintf("%04d-%s", now.Year(), seasonNames[(int(now.Month())-1)/3])
	case GoalTypeMonth:
		return now.Format("2006-01")
	case GoalTypeToday:
		return now.Format("2006-01-02")
	default:
		return ""
	}
}

// RecentPeriods returns the n most recent periods for a goal type, newest
// first, walking backward from the present period by calendar steps.
func RecentPeriods(goalType GoalType, n int, now time.Time) []Period {
	out := make([]Period, 0, n)
	loc := now.Location()
	for i := 0; i < n; i++ {
		var key string
		switch goalType {
		case GoalTypeYear:
			key = fmt.Sprintf("%04d", now.Year()-i)
		case GoalTypeSeason:
			offset := (int(now.Month())-1)/3 - i
			season := ((offset % 4) + 4) % 4
			yearDelta := offset / 4
			if offset < 0 && offset%4 != 0 {
				yearDelta--
			}
			key = fmt.Sprintf("%04d-%s", now.Year()+yearDelta, seasonNames[season])
		case GoalTypeMonth:
			total := now.Year()*12 + int(now.Month()) - 1 - i
			key = fmt.Sprintf("%04d-%02d", total/12, total%12+1)
		case GoalTypeToday:
			key = midnight(now).AddDate(0, 0, -i).Format("2006-01-02")
		default:
			return out
		}
		period, ok := ResolvePeriod(goalType, key, loc)
		if !ok {
			continue
		}
		out = append(out, period)
	}
	return out
}

// DaysRemaining counts days from now to the deadline date at local-midnight
// granularity, inclusive of both endpoints, floored at 0.
func DaysRemaining(now, deadline time.Time) int {
	end := midnight(deadline).AddDate(0, 0, 1)
	return daysUntil(now, end)
}

// DaysRemaining counts days left before the period's exclusive end.
func (p Period) DaysRemaining(now time.Time) int {
	return daysUntil(now, p.End)
}

func daysUntil(now, end time.Time) int {
	diff := end.Sub(midnight(now))
	days := int(math.Round(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

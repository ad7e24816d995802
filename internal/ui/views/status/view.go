package status

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "tsundoku/internal/modules/goal/dto"
	"tsundoku/internal/ui/theme"
)

// Port is the minimal interface this view needs from the goal use-case.
type Port interface {
	StatusFor(ctx context.Context, goalType, periodKey, customID string) (goaldto.ReportOutput, error)
	RecentPeriods(ctx context.Context, goalType string, n int) ([]goaldto.PeriodOutput, error)
}

const periodWindow = 24

type reportMsg struct {
	report goaldto.ReportOutput
	err    error
}

type periodsMsg struct {
	periods []goaldto.PeriodOutput
	err     error
}

// Model shows one period's progress report and navigates recent periods
// with the arrow keys; y/s/m/d switch the goal type.
type Model struct {
	port     Port
	goalType string
	periods  []goaldto.PeriodOutput
	index    int
	report   goaldto.ReportOutput
	err      error
	width    int
}

func New(port Port) Model {
	return Model{port: port, goalType: "year"}
}

func (m Model) Init() tea.Cmd {
	return m.loadPeriods()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.index < len(m.periods)-1 {
				m.index++
				return m, m.loadReport()
			}
		case "right", "l":
			if m.index > 0 {
				m.index--
				return m, m.loadReport()
			}
		case "y":
			return m.switchType("year")
		case "s":
			return m.switchType("season")
		case "m":
			return m.switchType("month")
		case "d":
			return m.switchType("today")
		}

	case periodsMsg:
		m.err = msg.err
		m.periods = msg.periods
		m.index = 0
		if msg.err == nil && len(m.periods) > 0 {
			return m, m.loadReport()
		}

	case reportMsg:
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Pane.Render(theme.FarBehind.Render("Error: " + m.err.Error()))
	}
	report := m.report

	var b strings.Builder
	b.WriteString(theme.Title.Render(report.Label))
	b.WriteString("  ")
	b.WriteString(theme.StatusStyle(report.Status).Render(report.Status))
	if report.FromSnapshot {
		b.WriteString(theme.Muted.Render("  (frozen)"))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %d/%d volumes (%.1f with partial credit)\n",
		theme.Muted.Render("completed"), report.CompletedVolumes, report.TargetVolumes, report.TotalProgress))
	b.WriteString(fmt.Sprintf("%s %.1f%% of target, %.1f%% of period elapsed\n",
		theme.Muted.Render("progress "), report.ProgressPercent, report.ExpectedProgressPercent))
	b.WriteString(fmt.Sprintf("%s %d in progress, %d days left",
		theme.Muted.Render("pace     "), report.InProgressVolumes, report.DaysRemaining))
	if report.PagesPerDayForGoal > 0 {
		b.WriteString(fmt.Sprintf(", %d pages/day to hit the goal", report.PagesPerDayForGoal))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Muted.Render("←/→ periods · y/s/m/d goal type · q quit"))

	pane := theme.Pane.Render(b.String())
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, pane)
	}
	return pane
}

func (m Model) switchType(goalType string) (tea.Model, tea.Cmd) {
	m.goalType = goalType
	m.index = 0
	return m, m.loadPeriods()
}

func (m Model) loadPeriods() tea.Cmd {
	port, goalType := m.port, m.goalType
	return func() tea.Msg {
		periods, err := port.RecentPeriods(context.Background(), goalType, periodWindow)
		return periodsMsg{periods: periods, err: err}
	}
}

func (m Model) loadReport() tea.Cmd {
	if m.index >= len(m.periods) {
		return nil
	}
	port := m.port
	period := m.periods[m.index]
	return func() tea.Msg {
		report, err := port.StatusFor(context.Background(), period.GoalType, period.PeriodKey, "")
		return reportMsg{report: report, err: err}
	}
}

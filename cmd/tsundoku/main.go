package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tsundoku/internal/bootstrap"
	goaldto "tsundoku/internal/modules/goal/dto"
	"tsundoku/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "tsundoku",
		Short:         "Reading goal tracker for your volume vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault path")

	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newVolumeCmd(&vaultPath))
	root.AddCommand(newGoalCmd(&vaultPath))
	root.AddCommand(newDeadlineCmd(&vaultPath))
	root.AddCommand(newSyncCmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (*bootstrap.App, error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse goal progress interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newVolumeCmd(vaultPath *string) *cobra.Command {
	volume := &cobra.Command{Use: "volume", Short: "Manage the volume vault"}

	var series, filePath string
	var pages int

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Register a volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.AddVolume(context.Background(), args[0], series, filePath, pages)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s) pages=%d\n", out.Title, out.ID, out.PageCount)
			return nil
		},
	}
	addCmd.Flags().StringVar(&series, "series", "", "series name (optional)")
	addCmd.Flags().StringVar(&filePath, "file", "", "backing file; PDFs supply the page count")
	addCmd.Flags().IntVar(&pages, "pages", 0, "page count (overrides file detection)")

	var page int
	progressCmd := &cobra.Command{
		Use:   "progress <volume-id>",
		Short: "Record the current page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.UpdateProgress(context.Background(), args[0], page)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s at page %d/%d\n", out.Title, out.CurrentPage, out.PageCount)
			return nil
		},
	}
	progressCmd.Flags().IntVar(&page, "page", 0, "current page")
	_ = progressCmd.MarkFlagRequired("page")

	doneCmd := &cobra.Command{
		Use:   "done <volume-id>",
		Short: "Mark a volume completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.CatalogCLI.MarkCompleted(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %s\n", out.Title)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List volumes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			volumes, err := app.CatalogCLI.ListVolumes(context.Background())
			if err != nil {
				return err
			}
			for _, v := range volumes {
				state := fmt.Sprintf("%d/%d", v.CurrentPage, v.PageCount)
				if v.Completed {
					state = "done"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-40s %s\n", v.ID, v.Title, state)
			}
			return nil
		},
	}

	reindexCmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the volume read model from the vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.CatalogCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindexed")
			return nil
		},
	}

	volume.AddCommand(addCmd, progressCmd, doneCmd, listCmd, reindexCmd)
	return volume
}

func newGoalCmd(vaultPath *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage reading goals"}

	var goalType, periodKey string
	var target int

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Set a period target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.SetTarget(context.Background(), goalType, periodKey, target); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target %s %s = %d volumes\n", goalType, periodKey, target)
			return nil
		},
	}
	setCmd.Flags().StringVar(&goalType, "type", "year", "goal type: year|season|month|today")
	setCmd.Flags().StringVar(&periodKey, "period", "", "period key, e.g. 2026, 2026-Winter, 2026-03, 2026-03-05")
	setCmd.Flags().IntVar(&target, "volumes", 0, "target volume count")
	_ = setCmd.MarkFlagRequired("period")
	_ = setCmd.MarkFlagRequired("volumes")

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a period target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.RemoveTarget(context.Background(), goalType, periodKey); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed target %s %s\n", goalType, periodKey)
			return nil
		},
	}
	removeCmd.Flags().StringVar(&goalType, "type", "year", "goal type: year|season|month|today")
	removeCmd.Flags().StringVar(&periodKey, "period", "", "period key")
	_ = removeCmd.MarkFlagRequired("period")

	var customID string
	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Choose which period's progress is surfaced",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.Select(context.Background(), goalType, periodKey, customID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "selection updated")
			return nil
		},
	}
	selectCmd.Flags().StringVar(&goalType, "type", "year", "goal type: year|season|month|today|custom")
	selectCmd.Flags().StringVar(&periodKey, "period", "", "period key (defaults to the current period)")
	selectCmd.Flags().StringVar(&customID, "custom-id", "", "custom goal id (with --type custom)")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report progress for the active selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			report, err := app.GoalCLI.Status(context.Background())
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}

	goal.AddCommand(setCmd, removeCmd, selectCmd, statusCmd)
	goal.AddCommand(newCustomGoalCmd(vaultPath))
	goal.AddCommand(newGoalListCmd(vaultPath))
	goal.AddCommand(newGoalSweepCmd(vaultPath))
	goal.AddCommand(newAnnualCmd(vaultPath))
	return goal
}

func newCustomGoalCmd(vaultPath *string) *cobra.Command {
	custom := &cobra.Command{Use: "custom", Short: "Manage custom date-range goals"}

	var name, startDate, endDate string
	var target int

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a custom goal and make it active",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.CreateCustomGoal(context.Background(), name, target, startDate, endDate)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) %s..%s target=%d\n", out.Name, out.ID, out.StartDate, out.EndDate, out.TargetVolumes)
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "goal name")
	createCmd.Flags().IntVar(&target, "volumes", 0, "target volume count")
	createCmd.Flags().StringVar(&startDate, "start", "", "start date YYYY-MM-DD (inclusive)")
	createCmd.Flags().StringVar(&endDate, "end", "", "end date YYYY-MM-DD (inclusive)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("volumes")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")

	removeCmd := &cobra.Command{
		Use:   "remove <goal-id>",
		Short: "Remove a custom goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.RemoveCustomGoal(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}

	custom.AddCommand(createCmd, removeCmd)
	return custom
}

func newGoalListCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List targets and custom goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			goals, err := app.GoalCLI.ListGoals(context.Background())
			if err != nil {
				return err
			}
			for _, t := range goals.Targets {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target  %-7s %-12s %d volumes\n", t.GoalType, t.PeriodKey, t.TargetVolumes)
			}
			for _, g := range goals.CustomGoals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "custom  %s  %s..%s %d volumes (%s)\n", g.ID, g.StartDate, g.EndDate, g.TargetVolumes, g.Name)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active  %s %s%s\n", goals.Active.GoalType, goals.Active.PeriodKey, goals.Active.CustomID)
			return nil
		},
	}
}

func newGoalSweepCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Backfill completions and freeze closed periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			backfilled, err := app.GoalCLI.Backfill(context.Background())
			if err != nil {
				return err
			}
			frozen, err := app.GoalCLI.FinalizeClosedSnapshots(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "backfilled %d completions, froze %d periods\n", backfilled, frozen)
			return nil
		},
	}
}

func newAnnualCmd(vaultPath *string) *cobra.Command {
	var year, target int
	annual := &cobra.Command{
		Use:   "annual",
		Short: "Set the annual volume goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.SetAnnualGoal(context.Background(), year, target); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "annual goal %d = %d volumes\n", year, target)
			return nil
		},
	}
	annual.Flags().IntVar(&year, "year", 0, "calendar year")
	annual.Flags().IntVar(&target, "volumes", 0, "target volume count")
	_ = annual.MarkFlagRequired("year")
	_ = annual.MarkFlagRequired("volumes")
	return annual
}

func newDeadlineCmd(vaultPath *string) *cobra.Command {
	deadline := &cobra.Command{Use: "deadline", Short: "Per-volume reading deadlines"}

	var date string
	setCmd := &cobra.Command{
		Use:   "set <volume-id>",
		Short: "Set a volume's deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.SetVolumeDeadline(context.Background(), args[0], date); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deadline %s = %s\n", args[0], date)
			return nil
		},
	}
	setCmd.Flags().StringVar(&date, "date", "", "deadline YYYY-MM-DD")
	_ = setCmd.MarkFlagRequired("date")

	removeCmd := &cobra.Command{
		Use:   "remove <volume-id>",
		Short: "Remove a volume's deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.GoalCLI.RemoveVolumeDeadline(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "removed")
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <volume-id>",
		Short: "Show the pace needed to meet a volume's deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.DeadlineReport(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deadline %s: %d pages left, %d days, %d pages/day\n",
				out.Deadline, out.PagesLeft, out.DaysRemaining, out.PagesPerDay)
			return nil
		},
	}

	deadline.AddCommand(setCmd, removeCmd, showCmd)
	return deadline
}

func newSyncCmd(vaultPath *string) *cobra.Command {
	sync := &cobra.Command{Use: "sync", Short: "Exchange state with another device"}

	importCmd := &cobra.Command{
		Use:   "import <payload.json>",
		Short: "Merge a payload file into local state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.SyncCLI.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(),
				"settings=%v goals=%v snapshots=%v completions=%d\n",
				out.SettingsApplied, out.GoalsDataApplied, out.SnapshotsApplied, out.CompletionsMerged)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <payload.json>",
		Short: "Write local state to a payload file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.SyncCLI.Export(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
			return nil
		},
	}

	sync.AddCommand(importCmd, exportCmd)
	return sync
}

func printReport(cmd *cobra.Command, report goaldto.ReportOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s\n", report.Label)
	_, _ = fmt.Fprintf(out, "  volumes: %d/%d done", report.CompletedVolumes, report.TargetVolumes)
	if report.InProgressVolumes > 0 {
		_, _ = fmt.Fprintf(out, " (+%d in progress, %.1f partial)", report.InProgressVolumes, report.PartialProgress)
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "  progress: %.1f%% (expected %.1f%%) status=%s\n",
		report.ProgressPercent, report.ExpectedProgressPercent, report.Status)
	if report.Closed {
		_, _ = fmt.Fprintln(out, "  period closed")
		return
	}
	_, _ = fmt.Fprintf(out, "  %d days remaining, %d pages/day to hit the goal\n",
		report.DaysRemaining, report.PagesPerDayForGoal)
}

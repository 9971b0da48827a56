package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/taskflow/internal/dates"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/repository"
	"github.com/templui/taskflow/internal/service"
)

func GoalsCmd(env *Env) *cobra.Command {
	goalsCmd := &cobra.Command{
		Use:   "goals",
		Short: "Inspect and record goal progress for a user",
	}

	goalsCmd.AddCommand(dueCmd(env))
	goalsCmd.AddCommand(logCmd(env))
	goalsCmd.AddCommand(remindCmd(env))

	return goalsCmd
}

func dueCmd(env *Env) *cobra.Command {
	var userRef, date, sortBy string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List the goals scheduled on a day with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			day, err := parseDay(env, date)
			if err != nil {
				return err
			}
			user, err := env.user(ctx, userRef)
			if err != nil {
				return err
			}
			goals, err := env.goalService()
			if err != nil {
				return err
			}

			due, err := goals.DueGoals(ctx, user.ID, day, sortBy)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(due)
			}
			return printDue(cmd.OutOrStdout(), due)
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user id or email")
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&sortBy, "sort", repository.GoalSortCreated, "order by created, time or title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func logCmd(env *Env) *cobra.Command {
	var userRef, goalID, date string
	var delta, steps int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record progress for a goal on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var change service.ProgressChange
			if cmd.Flags().Changed("delta") {
				change.Delta = &delta
			}
			if cmd.Flags().Changed("steps") {
				change.Steps = &steps
			}

			day, err := parseDay(env, date)
			if err != nil {
				return err
			}
			user, err := env.user(ctx, userRef)
			if err != nil {
				return err
			}
			goals, err := env.goalService()
			if err != nil {
				return err
			}

			log, err := goals.ApplyProgress(ctx, user.ID, goalID, day, change)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %d\n", log.GoalID, log.Date, log.CompletedSteps)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user id or email")
	cmd.Flags().StringVar(&goalID, "goal", "", "goal id")
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&delta, "delta", 0, "steps to add (may be negative)")
	cmd.Flags().IntVar(&steps, "steps", 0, "absolute completed steps")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("goal")
	cmd.MarkFlagsMutuallyExclusive("delta", "steps")
	cmd.MarkFlagsOneRequired("delta", "steps")

	return cmd
}

func remindCmd(env *Env) *cobra.Command {
	var userRef, date string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Email a user the summary of a day's goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if env.Email == nil {
				return errors.New("email is not configured")
			}

			day, err := parseDay(env, date)
			if err != nil {
				return err
			}
			user, err := env.user(ctx, userRef)
			if err != nil {
				return err
			}
			goals, err := env.goalService()
			if err != nil {
				return err
			}

			due, err := goals.DueGoals(ctx, user.ID, day, repository.GoalSortTime)
			if err != nil {
				return err
			}

			err = env.Email.SendDailySummary(ctx, user.Email, user.Name, dates.Key(day), due)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sent %d goals to %s\n", len(due), user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user id or email")
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func parseDay(env *Env, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return dates.Today(env.Location), nil
	}
	day, err := dates.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", raw, err)
	}
	return day, nil
}

func printDue(w io.Writer, due []*model.DueGoal) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tTIME\tPROGRESS")
	for _, goal := range due {
		at := "-"
		if goal.Time != nil {
			at = *goal.Time
		}
		progress := strconv.Itoa(goal.CompletedSteps) + "/" + strconv.Itoa(goal.TotalSteps)
		if goal.IsComplete() {
			progress += " done"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", goal.ID, goal.Title, goal.Type, at, progress)
	}
	return tw.Flush()
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
	"rollmatch/internal/person"
	"rollmatch/internal/reconcile"
)

func newRosterCommand(ctx *commandContext) *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the enrolled roster",
	}

	rosterCmd.AddCommand(newRosterImportCommand(ctx))
	rosterCmd.AddCommand(newRosterListCommand(ctx))
	rosterCmd.AddCommand(newRosterAddCommand(ctx))
	rosterCmd.AddCommand(newRosterDeactivateCommand(ctx))

	return rosterCmd
}

func newRosterImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv>",
		Short: "Load a roster export into the enrolled roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(func(cfg *config.Config, store *enrollment.Store, pipeline *reconcile.Pipeline) error {
				result, err := pipeline.ImportRoster(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, rowErr := range result.RowErrors {
					printStatus(out, statusError, "error: %v", rowErr)
				}
				if len(result.RowErrors) > 0 {
					printStatus(out, statusError, "import blocked: fix %d row error(s) and retry", len(result.RowErrors))
					return nil
				}
				for _, warning := range result.Warnings {
					printStatus(out, statusWarn, "warning: %s", warning)
				}
				printStatus(out, statusOK, "roster import complete: %d added, %d skipped", result.Added, result.Skipped)
				return nil
			})
		},
	}
}

func newRosterListCommand(ctx *commandContext) *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrolled people",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(func(cfg *config.Config, store *enrollment.Store, pipeline *reconcile.Pipeline) error {
				people, err := store.ListPeople(cmd.Context(), includeInactive)
				if err != nil {
					return err
				}
				if len(people) == 0 {
					printStatus(cmd.OutOrStdout(), statusInfo, "roster is empty")
					return nil
				}

				rows := make([][]string, 0, len(people))
				for _, p := range people {
					status := "active"
					if !p.Active {
						status = "inactive"
					}
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						person.DisplayName(p.Name),
						p.Email,
						status,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]column{
						{title: "ID", numeric: true},
						{title: "Name"},
						{title: "Email"},
						{title: "Status"},
					},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "Include deactivated people")
	return cmd
}

func newRosterAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <email>",
		Short: "Enroll a single person",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(func(cfg *config.Config, store *enrollment.Store, pipeline *reconcile.Pipeline) error {
				added, err := store.AddPerson(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), statusOK, "enrolled %s <%s> as #%d",
					person.DisplayName(added.Name), added.Email, added.ID)
				return nil
			})
		},
	}
}

func newRosterDeactivateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Exclude a person from matching and assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid person id %q", args[0])
			}
			return ctx.withPipeline(func(cfg *config.Config, store *enrollment.Store, pipeline *reconcile.Pipeline) error {
				if err := store.SetActive(cmd.Context(), id, false); err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), statusOK, "deactivated person #%d", id)
				return nil
			})
		},
	}
}

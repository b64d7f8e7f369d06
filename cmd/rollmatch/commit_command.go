package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rollmatch/internal/assign"
	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
	"rollmatch/internal/person"
	"rollmatch/internal/reconcile"
)

func newCommitCommand(ctx *commandContext) *cobra.Command {
	var assignFlags []string
	var verifiedBy string
	var writeTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "commit <csv>",
		Short: "Finalize assignments for an export and record attendance",
		Long: `Runs the matching pipeline, auto-assigns exact and high-confidence
matches, applies any explicit --assign overrides, and records attendance for
every resolved person. Unresolved records are reported and left for a later
run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selections, err := parseAssignFlags(assignFlags)
			if err != nil {
				return err
			}

			return ctx.withPipeline(func(cfg *config.Config, store *enrollment.Store, pipeline *reconcile.Pipeline) error {
				result, err := pipeline.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, rowErr := range result.RowErrors {
					printStatus(out, statusError, "error: %v", rowErr)
				}
				if result.Blocked() {
					return fmt.Errorf("commit blocked: %d row error(s) pending correction", len(result.RowErrors))
				}
				for _, warning := range result.Warnings {
					printStatus(out, statusWarn, "warning: %s", warning)
				}

				// The write is bounded so a slow database cannot hold the
				// review open; nothing is retried on timeout.
				writeCtx, cancel := context.WithTimeout(cmd.Context(), writeTimeout)
				defer cancel()

				committed, err := pipeline.Commit(writeCtx, args[0], result, selections, verifiedBy)
				if err != nil {
					return err
				}

				printStatus(out, statusOK, "session %s: recorded %d attendance entries",
					committed.SessionID, committed.Written)
				for _, resolution := range committed.Resolved {
					printStatus(out, statusInfo, "  %s -> person #%d",
						person.DisplayName(resolution.Record.Name), resolution.PersonID)
				}
				if len(committed.Unresolved) > 0 {
					printStatus(out, statusWarn, "%d record(s) unresolved:", len(committed.Unresolved))
					for _, key := range committed.Unresolved {
						printStatus(out, statusWarn, "  %s", key)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&assignFlags, "assign", nil,
		"Explicit assignment as record-key=person-id; repeatable, applied in order "+
			"so the last claim on a person wins. Use person-id 0 to clear.")
	cmd.Flags().StringVar(&verifiedBy, "verified-by", "", "Reviewer identifier recorded on each entry")
	cmd.Flags().DurationVar(&writeTimeout, "timeout", 30*time.Second, "Database write timeout")
	return cmd
}

// parseAssignFlags preserves flag order: two flags claiming the same person
// must resolve the same way every run, with the later flag winning.
func parseAssignFlags(flags []string) ([]assign.Selection, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	selections := make([]assign.Selection, 0, len(flags))
	for _, flag := range flags {
		key, value, found := strings.Cut(flag, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --assign %q: expected record-key=person-id", flag)
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --assign %q: person id must be numeric", flag)
		}
		selections = append(selections, assign.Selection{Key: key, PersonID: id})
	}
	return selections, nil
}

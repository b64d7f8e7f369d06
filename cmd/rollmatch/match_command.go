package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rollmatch/internal/config"
	"rollmatch/internal/enrollment"
	"rollmatch/internal/match"
	"rollmatch/internal/person"
	"rollmatch/internal/reconcile"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match <csv>",
		Short: "Match an attendance export against the roster and show suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(func(cfg *config.Config, store *enrollment.Store, pipeline *reconcile.Pipeline) error {
				result, err := pipeline.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if jsonOutput {
					return emitJSON(cmd.OutOrStdout(), buildRunView(result))
				}
				renderRunResult(cmd, result)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable output")
	return cmd
}

func renderRunResult(cmd *cobra.Command, result *reconcile.RunResult) {
	out := cmd.OutOrStdout()

	for _, rowErr := range result.RowErrors {
		printStatus(out, statusError, "error: %v", rowErr)
	}
	if result.Blocked() {
		printStatus(out, statusError, "import blocked: fix %d row error(s) and retry", len(result.RowErrors))
		return
	}
	for _, warning := range result.Warnings {
		printStatus(out, statusWarn, "warning: %s", warning)
	}

	if len(result.Suggestions) == 0 {
		printStatus(out, statusInfo, "no records to match")
		return
	}

	rows := make([][]string, 0, len(result.Suggestions))
	for _, suggestion := range result.Suggestions {
		rows = append(rows, suggestionRow(suggestion))
	}
	fmt.Fprintln(out, renderTable(
		[]column{
			{title: "Record"},
			{title: "Email"},
			{title: "Confidence"},
			{title: "Suggested"},
			{title: "Score", numeric: true},
			{title: "Reasons"},
		},
		rows,
	))

	summary := result.Summary
	fmt.Fprintln(out, renderTable(
		[]column{
			{title: "Exact", numeric: true},
			{title: "High", numeric: true},
			{title: "Medium", numeric: true},
			{title: "Low", numeric: true},
			{title: "None", numeric: true},
			{title: "Match rate", numeric: true},
		},
		[][]string{{
			strconv.Itoa(summary.Exact),
			strconv.Itoa(summary.High),
			strconv.Itoa(summary.Medium),
			strconv.Itoa(summary.Low),
			strconv.Itoa(summary.None),
			fmt.Sprintf("%d%%", summary.MatchRate),
		}},
	))
}

func suggestionRow(suggestion match.Suggestion) []string {
	record := suggestion.Record
	name := person.DisplayName(record.Name)

	switch {
	case suggestion.Exact != nil:
		return []string{name, record.Email, string(suggestion.Tier),
			fmt.Sprintf("%s <%s>", person.DisplayName(suggestion.Exact.Name), suggestion.Exact.Email),
			"100", "Exact email match"}
	case len(suggestion.Candidates) > 0:
		top := suggestion.Candidates[0]
		return []string{name, record.Email, string(suggestion.Tier),
			fmt.Sprintf("%s <%s>", person.DisplayName(top.Person.Name), top.Person.Email),
			strconv.Itoa(top.Score), strings.Join(top.Reasons, "; ")}
	default:
		return []string{name, record.Email, string(suggestion.Tier), "-", "-", "no match"}
	}
}

// emitJSON writes v as indented JSON with a trailing newline.
func emitJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

type candidateView struct {
	PersonID int64    `json:"person_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
}

type suggestionView struct {
	Key        string          `json:"key"`
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Tier       string          `json:"confidence"`
	Exact      *candidateView  `json:"exact_match,omitempty"`
	Candidates []candidateView `json:"candidates,omitempty"`
}

type runView struct {
	Suggestions []suggestionView `json:"suggestions"`
	Summary     match.Summary    `json:"summary"`
	Warnings    []string         `json:"warnings,omitempty"`
	RowErrors   []string         `json:"row_errors,omitempty"`
	Dropped     int              `json:"dropped"`
}

func buildRunView(result *reconcile.RunResult) runView {
	view := runView{
		Summary: result.Summary,
		Dropped: result.Dropped,
	}
	view.Warnings = append(view.Warnings, result.Warnings...)
	for _, rowErr := range result.RowErrors {
		view.RowErrors = append(view.RowErrors, rowErr.Error())
	}
	for _, suggestion := range result.Suggestions {
		sv := suggestionView{
			Key:   suggestion.Record.Key(),
			Name:  suggestion.Record.Name,
			Email: suggestion.Record.Email,
			Tier:  string(suggestion.Tier),
		}
		if suggestion.Exact != nil {
			sv.Exact = &candidateView{
				PersonID: suggestion.Exact.ID,
				Name:     suggestion.Exact.Name,
				Email:    suggestion.Exact.Email,
				Score:    100,
			}
		}
		for _, candidate := range suggestion.Candidates {
			sv.Candidates = append(sv.Candidates, candidateView{
				PersonID: candidate.Person.ID,
				Name:     candidate.Person.Name,
				Email:    candidate.Person.Email,
				Score:    candidate.Score,
				Reasons:  candidate.Reasons,
			})
		}
		view.Suggestions = append(view.Suggestions, sv)
	}
	return view
}

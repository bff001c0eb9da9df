package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sublate/internal/subtitle"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath     string
		mediaDuration time.Duration
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a subtitle file for timing and content problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := loadCues(inputPath)
			if err != nil {
				return err
			}

			issues := subtitle.Validate(cues, mediaDuration)

			if jsonOutput {
				if err := writeJSON(cmd, map[string]any{
					"cues":   len(cues),
					"issues": issues,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				if len(issues) == 0 {
					fmt.Fprintf(out, "%d cues, no issues found\n", len(cues))
					return nil
				}
				rows := make([][]string, 0, len(issues))
				for _, issue := range issues {
					cueRef := ""
					if issue.CueIndex > 0 {
						cueRef = strconv.Itoa(issue.CueIndex)
					}
					rows = append(rows, []string{issue.Severity, cueRef, issue.Message})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Severity", "Cue", "Issue"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
			}

			if subtitle.HasErrors(issues) {
				return fmt.Errorf("%s has validation errors", inputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().DurationVar(&mediaDuration, "media-duration", 0, "Media duration used to flag cues past the end")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit issues as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

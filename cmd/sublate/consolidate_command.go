package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sublate/internal/subtitle"
)

func newConsolidateCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		maxGapMs   int
		maxDurMs   int
		maxChars   int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge fragmented ASR cues into sentence-level cues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := loadCues(inputPath)
			if err != nil {
				return err
			}

			opts := ctx.consolidateOptions()
			if cmd.Flags().Changed("max-gap-ms") {
				opts.MaxGap = time.Duration(maxGapMs) * time.Millisecond
			}
			if cmd.Flags().Changed("max-duration-ms") {
				opts.MaxDuration = time.Duration(maxDurMs) * time.Millisecond
			}
			if cmd.Flags().Changed("max-chars") {
				opts.MaxChars = maxChars
			}

			merged := subtitle.Consolidate(cues, opts)

			target := outputPath
			if target == "" {
				target = derivedOutputPath(inputPath, "consolidated")
			}
			if err := writeSRT(target, merged, false); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"output":      target,
					"cues_before": len(cues),
					"cues_after":  len(merged),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Consolidated %d cues into %d, wrote %s\n", len(cues), len(merged), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output SRT path (default: <input>_consolidated.srt)")
	cmd.Flags().IntVar(&maxGapMs, "max-gap-ms", 0, "Largest silence between merged cues in milliseconds")
	cmd.Flags().IntVar(&maxDurMs, "max-duration-ms", 0, "Longest merged cue in milliseconds")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Longest merged cue text in characters")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit a JSON summary")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

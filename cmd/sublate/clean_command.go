package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sublate/internal/subtitle"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath     string
		outputPath    string
		filterASR     bool
		mediaDuration time.Duration
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove advertisement cues and ASR artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			cues, err := loadCues(inputPath)
			if err != nil {
				return err
			}

			cleaned, stats := subtitle.Clean(cues)

			removedASR := 0
			if filterASR {
				result := subtitle.FilterHallucinations(cleaned, mediaDuration)
				cleaned = result.Cues
				removedASR = len(result.Removals)
				for _, removal := range result.Removals {
					logger.Debug("removed hallucinated cue",
						"cue_index", removal.Cue.Index,
						"cue_text", removal.Cue.Text,
						"reason", removal.Reason,
					)
				}
			}

			target := outputPath
			if target == "" {
				target = derivedOutputPath(inputPath, "clean")
			}
			if err := writeSRT(target, cleaned, false); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"output":              target,
					"removed_ads":         stats.RemovedCues,
					"removed_asr":         removedASR,
					"remaining":           len(cleaned),
					"asr_filter_applied":  filterASR,
					"media_duration_used": mediaDuration.String(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d ad cue(s)", stats.RemovedCues)
			if filterASR {
				fmt.Fprintf(cmd.OutOrStdout(), " and %d ASR artifact(s)", removedASR)
			}
			fmt.Fprintf(cmd.OutOrStdout(), ", wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output SRT path (default: <input>_clean.srt)")
	cmd.Flags().BoolVar(&filterASR, "asr", false, "Also filter transcription hallucinations")
	cmd.Flags().DurationVar(&mediaDuration, "media-duration", 0, "Media duration, enables the trailing hallucination sweep (e.g. 1h30m)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit a JSON summary")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

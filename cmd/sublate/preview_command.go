package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sublate/internal/format"
	"sublate/internal/subtitle"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		at         time.Duration
		step       time.Duration
		from       time.Duration
		until      time.Duration
		translated bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the progressive-reveal timeline of a subtitle file",
		Long: `Preview samples the reveal renderer at fixed intervals and prints which cue
is visible at each instant, including grace-period holds between cues. With
--at a single instant is rendered instead of a timeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := loadCues(inputPath)
			if err != nil {
				return err
			}
			if !translated {
				// Preview original text only.
				for i := range cues {
					cues[i].Translated = ""
				}
			}

			renderer := subtitle.NewRenderer(cues, ctx.revealOptions())

			type sample struct {
				At      string `json:"at"`
				Cue     int    `json:"cue,omitempty"`
				Grace   bool   `json:"grace,omitempty"`
				Visible string `json:"visible"`
			}

			sampleAt := func(instant time.Duration) sample {
				frame := renderer.FrameAt(instant)
				s := sample{At: format.FormatClock(instant)}
				if frame.Cue != nil {
					s.Cue = frame.Cue.Index
					s.Grace = frame.Grace
					s.Visible = frame.Visible
				}
				return s
			}

			if cmd.Flags().Changed("at") {
				s := sampleAt(at)
				if jsonOutput {
					return writeJSON(cmd, s)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  cue=%d grace=%v  %q\n", s.At, s.Cue, s.Grace, s.Visible)
				return nil
			}

			start, end := subtitle.Bounds(cues)
			if cmd.Flags().Changed("from") {
				start = from
			}
			if cmd.Flags().Changed("until") {
				end = until
			}
			if step <= 0 {
				step = 500 * time.Millisecond
			}

			var samples []sample
			for instant := start; instant <= end; instant += step {
				samples = append(samples, sampleAt(instant))
			}

			if jsonOutput {
				return writeJSON(cmd, samples)
			}

			rows := make([][]string, 0, len(samples))
			for _, s := range samples {
				cueRef, graceMark := "", ""
				if s.Cue > 0 {
					cueRef = fmt.Sprintf("%d", s.Cue)
				}
				if s.Grace {
					graceMark = "grace"
				}
				rows = append(rows, []string{s.At, cueRef, graceMark, s.Visible})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Time", "Cue", "", "Visible text"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().DurationVar(&at, "at", 0, "Render a single playback instant (e.g. 1m23.5s)")
	cmd.Flags().DurationVar(&step, "step", 500*time.Millisecond, "Sampling interval for the timeline")
	cmd.Flags().DurationVar(&from, "from", 0, "Timeline start")
	cmd.Flags().DurationVar(&until, "until", 0, "Timeline end")
	cmd.Flags().BoolVar(&translated, "translated", false, "Prefer translated text when present")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit samples as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

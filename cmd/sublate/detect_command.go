package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sublate/internal/language"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the language of a subtitle file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cues, err := loadCues(inputPath)
			if err != nil {
				return err
			}

			var b strings.Builder
			for _, cue := range cues {
				b.WriteString(cue.Text)
				b.WriteString("\n")
			}
			detection := language.Detect(b.String())

			if jsonOutput {
				return writeJSON(cmd, struct {
					Code       string  `json:"code"`
					Name       string  `json:"name"`
					Confidence float64 `json:"confidence"`
				}{detection.Code, detection.Name, detection.Confidence})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), confidence %.2f\n",
				detection.Name, detection.Code, detection.Confidence)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit detection as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

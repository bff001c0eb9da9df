package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sublate/internal/subtitle"
)

// shouldColorize reports whether the writer is an interactive terminal.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(file.Fd())
}

// loadCues imports a subtitle file and returns its cues.
func loadCues(path string) ([]subtitle.Cue, error) {
	cues, err := subtitle.ImportFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return cues, nil
}

// writeSRT writes cues to path as SRT.
func writeSRT(path string, cues []subtitle.Cue, useTranslated bool) error {
	content := subtitle.GenerateSRT(cues, useTranslated)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// derivedOutputPath appends a suffix to the input file's stem, keeping the
// .srt extension for generated output.
func derivedOutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return stem + "_" + suffix + ".srt"
}

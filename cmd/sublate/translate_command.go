package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/spf13/cobra"

	"sublate/internal/events"
	"sublate/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath   string
		outputPath  string
		targetLang  string
		model       string
		batchSize   int
		contextSize int
		workers     int
		noCache     bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate a subtitle file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := translate.Options{
				TargetLanguage:   cfg.Translate.TargetLanguage,
				Model:            cfg.Translate.Model,
				BatchSize:        cfg.Translate.BatchSize,
				ContextSize:      cfg.Translate.ContextSize,
				Workers:          cfg.Translate.Workers,
				SkipSameLanguage: cfg.Translate.SkipSameLang,
			}
			if targetLang != "" {
				opts.TargetLanguage = targetLang
			}
			if model != "" {
				opts.Model = model
			}
			if cmd.Flags().Changed("batch-size") {
				opts.BatchSize = batchSize
			}
			if cmd.Flags().Changed("context-size") {
				opts.ContextSize = contextSize
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			cues, err := loadCues(inputPath)
			if err != nil {
				return err
			}

			sess, err := ctx.loadSession()
			if err != nil {
				return err
			}
			token, err := sess.AccessToken()
			if err != nil {
				return err
			}

			provider, err := translate.NewCodex(translate.CodexConfig{
				AccessToken: token,
				AccountID:   sess.AccountID(),
				Model:       opts.Model,
				HTTPClient:  &http.Client{Timeout: time.Duration(cfg.Translate.TimeoutSeconds) * time.Second},
			})
			if err != nil {
				return err
			}

			var store interface{ Close() error }
			svcCfg := translate.ServiceConfig{
				Provider: provider,
				Policy:   ctx.retryPolicy(logger),
				Logger:   logger,
			}
			if !noCache {
				cacheStore, cacheErr := ctx.openCache()
				if cacheErr != nil {
					return cacheErr
				}
				if cacheStore != nil {
					svcCfg.Cache = cacheStore
					store = cacheStore
				}
			}
			if store != nil {
				defer store.Close()
			}

			limiter, err := ctx.newLimiter()
			if err != nil {
				return err
			}
			svcCfg.Limiter = limiter

			emitter := events.NewEmitter()
			defer emitter.Close()
			svcCfg.Emitter = emitter

			svc, err := translate.NewService(svcCfg)
			if err != nil {
				return err
			}

			stopProgress := func() {}
			if !jsonOutput && shouldColorize(cmd.ErrOrStderr()) {
				stopProgress = watchProgress(emitter, cmd)
			}

			doc, stats, err := svc.Translate(cmd.Context(), cues, opts)
			stopProgress()
			if err != nil {
				return err
			}

			target := outputPath
			if target == "" {
				target = derivedOutputPath(inputPath, "translated")
			}
			if err := writeSRT(target, doc, true); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"output": target,
					"stats":  stats,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Cues", strconv.Itoa(stats.TotalCues)},
					{"Translated", strconv.Itoa(stats.Translated)},
					{"Cache hits", strconv.Itoa(stats.CacheHits)},
					{"Failed", strconv.Itoa(stats.FailedCues)},
					{"Batches", strconv.Itoa(stats.Batches)},
					{"Elapsed", stats.Elapsed.Round(100 * time.Millisecond).String()},
				},
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Wrote %s\n", target)
			if stats.FailedCues > 0 {
				fmt.Fprintf(out, "%d cue(s) failed and kept original text\n", stats.FailedCues)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output SRT path (default: <input>_translated.srt)")
	cmd.Flags().StringVarP(&targetLang, "target-lang", "l", "", "Target language code")
	cmd.Flags().StringVar(&model, "model", "", "Model override")
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "Cues per batch")
	cmd.Flags().IntVar(&contextSize, "context-size", 0, "Context cues before/after each batch")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent batch workers")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the translation cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit stats as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// watchProgress renders a progress bar fed by the job's progress events. The
// returned function stops the watcher and waits for a final render.
func watchProgress(emitter *events.Emitter, cmd *cobra.Command) func() {
	ch := emitter.Subscribe(events.TopicProgress)

	pw := progress.NewWriter()
	pw.SetOutputWriter(cmd.ErrOrStderr())
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	go pw.Render()

	done := make(chan struct{})
	var once sync.Once
	go func() {
		var tracker *progress.Tracker
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				pe, valid := ev.Payload.(translate.ProgressEvent)
				if !valid {
					continue
				}
				if tracker == nil {
					tracker = &progress.Tracker{Message: "Translating", Total: int64(pe.Total)}
					pw.AppendTracker(tracker)
				}
				tracker.SetValue(int64(pe.Completed))
			case <-done:
				if tracker != nil && !tracker.IsDone() {
					tracker.MarkAsDone()
				}
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(done)
			emitter.Unsubscribe(ch)
			pw.Stop()
			for pw.IsRenderInProgress() {
				time.Sleep(10 * time.Millisecond)
			}
		})
	}
}

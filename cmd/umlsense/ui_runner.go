package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"umlsense/internal/diagnose"
	"umlsense/internal/source"
	"umlsense/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []diagnose.FileResult
	err     error
}

type dirRun func(ctx context.Context, progress func(diagnose.Event)) (*source.FileSet, []diagnose.FileResult, error)

// runDiagnoseWithUI runs fn in the background and renders its progress
// events until fn returns. Quitting the UI cancels the run.
func runDiagnoseWithUI(ctx context.Context, title string, files []string, fn dirRun) (*source.FileSet, []diagnose.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan diagnose.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		fs, results, err := fn(ctx, func(ev diagnose.Event) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог завершиться раньше (Ctrl+C)
	cancel()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"vecsmith/internal/driver"
	"vecsmith/internal/ui"
)

type batchOutcome struct {
	result driver.BatchResult
	err    error
}

func runBatchWithUI(ctx context.Context, title string, req driver.BatchRequest) (driver.BatchResult, error) {
	seeds, err := driver.Seeds(req.Options.Seed, req.Count)
	if err != nil {
		return driver.BatchResult{}, err
	}
	names := make([]string, len(seeds))
	for i, seed := range seeds {
		names[i] = filepath.Join(req.OutDir, driver.FileName(seed))
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)
	sinkCtx, stopSink := context.WithCancel(ctx)
	defer stopSink()

	go func() {
		reqCopy := req
		reqCopy.Sink = driver.NewChannelSink(sinkCtx, events)
		res, err := driver.Batch(ctx, reqCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// The UI may have quit early; unblock pending sends.
	stopSink()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"enumkit/internal/driver"
	"enumkit/internal/ui"
)

type generateOutcome struct {
	result *driver.Result
	err    error
}

// runWithUI runs the driver in the background while a Bubble Tea program
// renders its events.
func runWithUI(ctx context.Context, title string, opts driver.Options) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	keys := make([]string, len(opts.Targets))
	for i, t := range opts.Targets {
		keys[i] = t.Key()
	}

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Generate(ctx, opts)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, keys, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// the program only returns early on ctrl-c
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waxlang/waxc/internal/diagnostics"
	"github.com/waxlang/waxc/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-run check whenever the file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	logger, shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
		ServiceName:  "waxc-watch",
		TraceEnabled: flagTrace,
		Verbose:      flagVerbose,
	})
	if err != nil {
		return err
	}
	defer shutdown(cmd.Context())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	recheck := func() {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		if _, err := runPipeline(cmd.Context(), logger, string(src)); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), diagnostics.Render(err))
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
	}

	recheck()

	// fsnotify's event loop runs on its own goroutine; rechecks run on
	// the calling goroutine, serialized by reading one event at a time
	// off the channel, so the lexer/parser/checker core never observes
	// concurrent calls.
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				recheck()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(werr))
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		}
	}
}

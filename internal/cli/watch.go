package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Output   string
	Strict   bool
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-convert a design file whenever it changes",
		Long: `Re-convert a design file whenever it changes.

Watches the file's directory (editors typically replace files rather than
write in place) and re-runs the conversion after changes settle. A failed
conversion is logged and watching continues.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (required)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat duplicate node GUIDs as errors")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 200*time.Millisecond, "wait for changes to settle before converting")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runWatch(opts *WatchOptions, input string, cmd *cobra.Command) error {
	logger := NewLogger(cmd.ErrOrStderr(), opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving input path", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapExitError(ExitCommandError, "creating watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return WrapExitError(ExitCommandError, "watching directory", err)
	}

	convert := func() {
		out, err := convertFile(opts.RootOptions, abs, opts.Strict, formatter)
		if err != nil {
			logger.Warn().Err(err).Str("file", input).Msg("conversion failed, still watching")
			return
		}
		if err := writeFileAtomic(opts.Output, out); err != nil {
			logger.Warn().Err(err).Str("output", opts.Output).Msg("write failed, still watching")
			return
		}
		logger.Info().Str("file", input).Str("output", opts.Output).Int("bytes", len(out)).Msg("converted")
	}

	// Initial conversion so --output exists before the first change.
	convert()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("file", input).Msg("watching")
	return watchLoop(ctx, watcher, abs, opts.Debounce, convert, logger)
}

// watchLoop dispatches fsnotify events for path until ctx is done. Bursts
// of events within the debounce window collapse into one conversion.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, convert func(), logger zerolog.Logger) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	pending := make(chan struct{}, 1)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			select {
			case pending <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-pending:
			convert()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("op", event.Op.String()).Msg("file changed")
			schedule()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/bin"
	"github.com/Iron-Ham/bin/future"
	"github.com/Iron-Ham/bin/internal/config"
	"github.com/Iron-Ham/bin/internal/logging"
	"github.com/Iron-Ham/bin/signal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	eventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch paths and report filesystem events until interrupted",
	Long: `Watch the given paths (or the configured defaults) and print filesystem
events until interrupted.

Every resource the command holds is registered in one Bin:

  - the fsnotify watcher (closed on disposal)
  - the stats ticker (stopped on disposal)
  - the event signal connections (disconnected on disposal)
  - the pump goroutine's cancel func (invoked on disposal)
  - the initial scan future (cancelled on disposal if still pending)

On interrupt the Bin is destroyed and everything above is released at once.`,
	Args: cobra.ArbitraryArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Watch.Paths
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	b := bin.New(bin.WithLogger(logger.Slog()))
	defer b.Destroy()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// The watcher is Close()-shaped: the Bin disposes it on Destroy.
	if err := b.Set("watcher", watcher); err != nil {
		watcher.Close()
		return err
	}

	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	events := signal.New()
	conn := events.Connect(func(v any) {
		ev, ok := v.(fsnotify.Event)
		if !ok {
			return
		}
		fmt.Printf("%s %s\n", eventStyle.Render(ev.Op.String()), ev.Name)
	})
	if _, err := b.Add(conn); err != nil {
		return err
	}

	ctx, cancel := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pumpCtx, stopPump := context.WithCancel(ctx)
	if err := b.Set("pump", stopPump); err != nil {
		return err
	}
	go pump(pumpCtx, watcher, events, logger)

	ticker := time.NewTicker(cfg.Watch.StatsInterval())
	if _, err := b.Add(ticker); err != nil {
		return err
	}
	statsDone := make(chan struct{})
	go func() {
		defer close(statsDone)
		for {
			select {
			case <-ticker.C:
				fmt.Println(mutedStyle.Render(b.String()))
			case <-pumpCtx.Done():
				return
			}
		}
	}()

	// Count the watched entries in the background; the Bin cancels the scan
	// if it is interrupted before settling.
	scan := future.Go(func() (any, error) {
		return countEntries(paths)
	})
	if _, err := b.AddPromise(scan); err != nil {
		return err
	}
	scan.Finally(func() {
		if n, err := scan.Result(); err == nil {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("watching %v entries under %d paths", n, len(paths))))
		}
	})

	fmt.Println(titleStyle.Render("binwatch"), mutedStyle.Render(fmt.Sprintf("watching %v", paths)))
	logger.Info("watch started", "paths", paths)

	<-ctx.Done()
	// The deferred Destroy tears the Bin down on the owner goroutine; the
	// stats reader must be gone first.
	<-statsDone
	fmt.Println(mutedStyle.Render("interrupted, releasing resources"))
	logger.Info("watch stopped")
	return nil
}

// pump forwards watcher events and errors into the signal until cancelled.
func pump(ctx context.Context, watcher *fsnotify.Watcher, events *signal.Signal, logger *logging.Logger) {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			events.Emit(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Println(errStyle.Render("watch error: " + err.Error()))
			logger.Warn("watch error", "error", err.Error())
		case <-ctx.Done():
			return
		}
	}
}

// countEntries walks the given paths and counts filesystem entries.
func countEntries(paths []string) (int, error) {
	total := 0
	for _, p := range paths {
		err := filepath.WalkDir(p, func(string, os.DirEntry, error) error {
			total++
			return nil
		})
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/meschsystems/jyro/pipeline"
	"github.com/meschsystems/jyro/value"
)

var (
	runInputPath string
	runWatch     bool
)

var runCmd = &cobra.Command{
	Use:   "run <script.jyro>",
	Short: "Compile and execute a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInputPath, "input", "", "path to a JSON file supplying the input value (default: an empty object)")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "recompile and rerun whenever the script file changes")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]

	driver, err := pipeline.New(pipeline.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("jyro: %w", err)
	}

	if !runWatch {
		return runOnce(cmd.Context(), driver, path)
	}
	return runWatched(cmd.Context(), driver, path)
}

func runOnce(ctx context.Context, driver *pipeline.Driver, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jyro: reading %s: %w", path, err)
	}

	input, err := loadRunInput()
	if err != nil {
		return err
	}

	program, diags, err := driver.Compile(ctx, string(source))
	if err != nil {
		return fmt.Errorf("jyro: %w", err)
	}
	if len(diags) > 0 {
		printDiagnostics(os.Stderr, diags, color)
	}
	if diags.HasErrors() {
		return fmt.Errorf("jyro: %s failed to compile", path)
	}

	rc := driver.NewExecutionContext(ctx)
	defer rc.Close()

	outcome, rerr := driver.Execute(ctx, program, input, rc)
	if rerr != nil {
		fmt.Fprintln(os.Stderr, colorize(color, styles.Error, rerr.Error()))
		return fmt.Errorf("jyro: %s failed to execute", path)
	}

	resultJSON, err := value.ToJSON(outcome.Result)
	if err != nil {
		return fmt.Errorf("jyro: encoding result: %w", err)
	}
	fmt.Println(string(resultJSON))
	if outcome.HasCompletionMessage {
		fmt.Fprintln(os.Stderr, colorize(color, styles.Bold, outcome.CompletionMessage))
	}
	return nil
}

func loadRunInput() (value.Value, error) {
	if runInputPath == "" {
		return value.NewObject(), nil
	}
	data, err := os.ReadFile(runInputPath)
	if err != nil {
		return nil, fmt.Errorf("jyro: reading %s: %w", runInputPath, err)
	}
	v, err := value.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("jyro: parsing %s: %w", runInputPath, err)
	}
	return v, nil
}

// runWatched re-runs runOnce every time path's containing directory
// reports a write to path, debouncing bursts of editor saves into a
// single rerun. Grounded on the teacher's graph.FileWatcher: a
// fsnotify.Watcher on the containing directory plus a short debounce
// timer, rather than one watch per file (fsnotify does not support
// watching a single file's renames-on-save reliably across editors).
func runWatched(ctx context.Context, driver *pipeline.Driver, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("jyro: starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("jyro: watching %s: %w", dir, err)
	}

	if err := runOnce(ctx, driver, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	const debounce = 150 * time.Millisecond
	var timer *time.Timer
	rerun := func() {
		if err := runOnce(ctx, driver, path); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rerun)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads an options file, and the template file it references,
// whenever either changes on disk.
type Watcher struct {
	path     string
	onChange func(Options)
	logger   *slog.Logger
	lookup   func(string) (string, bool)
}

// NewWatcher creates a Watcher for the options file at path. onChange receives
// every successfully reloaded Options with environment overrides applied.
func NewWatcher(path string, onChange func(Options), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger,
		lookup:   os.LookupEnv,
	}
}

// Load reads the options file and applies environment overrides.
func (w *Watcher) Load() (Options, error) {
	opts, err := LoadOptions(w.path)
	if err != nil {
		return opts, err
	}
	if err := opts.ApplyEnv(w.lookup); err != nil {
		return opts, err
	}
	return opts, nil
}

// Run watches until ctx is cancelled. Reload failures are logged and the
// previous options stay in effect.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories; editors often replace files rather than write them.
	tracked := map[string]bool{w.path: true}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.trackTemplate(watcher, tracked)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !tracked[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			opts, err := w.Load()
			if err != nil {
				w.logger.Warn("failed to reload maintenance options",
					slog.String("path", w.path),
					slog.Any("error", err))
				continue
			}
			w.logger.Debug("maintenance options reloaded",
				slog.String("trigger", event.Name))
			w.trackTemplate(watcher, tracked)
			if w.onChange != nil {
				w.onChange(opts)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("options watcher error", slog.Any("error", err))
		}
	}
}

// trackTemplate adds the options file's template_file, if any, to tracked.
func (w *Watcher) trackTemplate(watcher *fsnotify.Watcher, tracked map[string]bool) {
	opts := DefaultOptions()
	raw, err := LoadOptions(w.path)
	if err == nil {
		opts = raw
	}
	tmplPath := opts.templatePath(w.path)
	if tmplPath == "" {
		return
	}
	tmplPath = filepath.Clean(tmplPath)
	if tracked[tmplPath] {
		return
	}
	tracked[tmplPath] = true

	dir := filepath.Dir(tmplPath)
	if dir == filepath.Dir(w.path) {
		return
	}
	if err := watcher.Add(dir); err != nil {
		w.logger.Warn("failed to watch template directory",
			slog.String("dir", dir),
			slog.Any("error", err))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdrender/internal/hints"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// watchOps are the operations that trigger a rebuild.
const watchOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// watch renders path, then renders it again after every change until ctx
// is done. Render errors after the first are logged, not returned.
func (j *job) watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadMarkdown, path, err)
	}

	if err := j.render(ctx, abs); err != nil {
		if exitCodeFor(err) == ExitIO {
			return err
		}
		j.log.FileError(abs, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors that save by rename replace the file's
	// inode and a file watch would go quiet.
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	j.log.Info("watching", "path", abs)
	if hint := hints.ForWatch(); hint != "" {
		j.log.Warn(strings.TrimSpace(hint))
	}

	return watchLoop(ctx, watcher.Events, watcher.Errors, abs, watchDebounce,
		func(ev fsnotify.Event) {
			j.log.WatchEvent(ev.Name, ev.Op.String())
			if err := j.render(ctx, abs); err != nil && !errors.Is(err, context.Canceled) {
				j.log.FileError(abs, err)
			}
		},
		func(err error) {
			j.log.Error("watch error", "error", err)
		},
	)
}

// watchLoop calls onChange once per burst of events on target, after
// debounce of quiet. It returns when ctx is done or a channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	target string,
	debounce time.Duration,
	onChange func(fsnotify.Event),
	onError func(error),
) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
		last  fsnotify.Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&watchOps == 0 {
				continue
			}
			last = ev
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange(last)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}

package modules

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long Watch waits after the last change before importing,
// so that editors writing several files trigger one import.
const settle = 100 * time.Millisecond

// Watch imports dir like ImportAll, reports the result to onChange, and
// imports again whenever a source file in one of the program's packages is
// created, written, removed or renamed. Directories that become reachable
// are watched as they appear. Watch blocks until ctx is done.
func (i *FsImporter) Watch(ctx context.Context, dir string, onChange func(*Program, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool)
	track := func(prog *Program) {
		if prog == nil {
			return
		}
		dirs := []string{prog.Root}
		for d := range prog.Packages {
			dirs = append(dirs, d)
		}
		for _, d := range dirs {
			if watched[d] {
				continue
			}
			if err := w.Add(d); err != nil {
				i.logger.Warn("cannot watch directory", slog.String("dir", d), slog.Any("error", err))
				continue
			}
			watched[d] = true
		}
	}

	reimport := func() {
		prog, err := i.ImportAll(ctx, dir)
		if ctx.Err() != nil {
			return
		}
		track(prog)
		onChange(prog, err)
	}

	reimport()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !i.relevant(ev) {
				continue
			}
			i.logger.Debug("source changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			fire = time.After(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			i.logger.Warn("watch error", slog.Any("error", err))
		case <-fire:
			fire = nil
			reimport()
		}
	}
}

func (i *FsImporter) relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), i.cfg.Source.Extension) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

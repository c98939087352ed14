package previewconfig

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle coalesces the burst of events an editor produces for one save.
const settle = 100 * time.Millisecond

// Watch reloads path whenever it changes and sends the valid result on the returned channel.
// The parent directory is watched so that editors replacing the file by rename are seen.
// Files that fail to load are reported to onErr (if non-nil) and not sent. Each reload re-reads
// .env, so its edits apply with the next change to path. The channel is closed when ctx is done.
func Watch(ctx context.Context, path string, onErr func(error)) (<-chan Prefs, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}
	report := func(err error) {
		if onErr != nil && err != nil {
			onErr(err)
		}
	}

	out := make(chan Prefs, 1)
	go func() {
		defer close(out)
		defer w.Close()

		name := filepath.Clean(path)
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					pending = time.After(settle)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				report(err)
			case <-pending:
				pending = nil
				p, err := Load(path)
				if err != nil {
					report(err)
					continue
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

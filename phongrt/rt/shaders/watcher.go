package shaders

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to .wgsl files in a shader directory. It never
// blocks: the render loop calls Poll once per frame.
type Watcher struct {
	dir string
	fsw *fsnotify.Watcher
}

func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("shader watcher: watch %s: %w", dir, err)
	}
	return &Watcher{dir: dir, fsw: fsw}, nil
}

func (w *Watcher) Dir() string { return w.dir }

// Poll drains pending events. changed is true if any shader file was written,
// created, renamed or removed since the last call.
func (w *Watcher) Poll() (changed bool, err error) {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return changed, err
			}
			if filepath.Ext(ev.Name) != ".wgsl" {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				changed = true
			}
		case e, ok := <-w.fsw.Errors:
			if !ok {
				return changed, err
			}
			if e != nil {
				err = e
			}
		default:
			return changed, err
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

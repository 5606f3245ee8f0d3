package live

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to one file.
type Watcher interface {
	// Events receives a value for every change to the file.
	Events() <-chan struct{}
	// Errors receives watch failures.
	Errors() <-chan error
	Close() error
}

// fileWatcher watches the directory of a file and reports events for its
// base name only, so rename-over-target saves are seen.
type fileWatcher struct {
	w      *fsnotify.Watcher
	base   string
	events chan struct{}
	errs   chan error
	done   chan struct{}
}

// WatchFile starts watching path.
func WatchFile(path string) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	fw := &fileWatcher{
		w:      w,
		base:   filepath.Base(abs),
		events: make(chan struct{}, 1),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func (fw *fileWatcher) loop() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != fw.base || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case fw.events <- struct{}{}:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.errs <- err:
			default:
			}
		}
	}
}

func (fw *fileWatcher) Events() <-chan struct{} { return fw.events }
func (fw *fileWatcher) Errors() <-chan error    { return fw.errs }

func (fw *fileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}

package demo

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// shaderWatcher flags shader source changes. The flag is consumed on the
// render thread, which owns the GL context.
type shaderWatcher struct {
	watcher *fsnotify.Watcher
	dirty   atomic.Bool
	done    chan struct{}
	once    sync.Once
	err     error
}

func watchShaders(dir string) (*shaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	sw := &shaderWatcher{watcher: w, done: make(chan struct{})}
	go sw.loop()
	return sw, nil
}

func (sw *shaderWatcher) loop() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				sw.dirty.Store(true)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

// Changed reports whether a shader file changed since the last call.
func (sw *shaderWatcher) Changed() bool {
	return sw.dirty.Swap(false)
}

// Close stops watching and waits for the event loop to exit. Safe to call more than once.
func (sw *shaderWatcher) Close() error {
	sw.once.Do(func() {
		sw.err = sw.watcher.Close()
		<-sw.done
	})
	return sw.err
}

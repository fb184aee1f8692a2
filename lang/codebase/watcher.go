package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("ilc.watch")

// FileWatcher polls the codebase root and re-checks files whose
// modification time moved forward.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	doneCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnChange is called after a new or modified file was checked.
	OnChange func(*FileInfo)
	// OnRemove is called after a file disappeared from disk.
	OnRemove func(path string)
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	w.doneCh = make(chan struct{})
	go w.run()
}

// Stop ends polling and waits for a scan in progress to finish, so no
// callback runs after Stop returns.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
	if w.doneCh != nil {
		<-w.doneCh
	}
}

func (w *FileWatcher) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan performs one polling pass synchronously.
func (w *FileWatcher) Scan() {
	currentFiles := make(map[string]bool)
	root := w.codebase.RootDir()

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.codebase.IsSource(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return nil
		}
		w.modTimes[path] = info.ModTime()
		file, err := w.codebase.ScanFile(path)
		if err != nil {
			watchLog.Warningf("read %s: %s", path, err)
			return nil
		}
		watchLog.Debugf("checked %s", path)
		if w.OnChange != nil {
			w.OnChange(file)
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			watchLog.Debugf("removed %s", path)
			if w.OnRemove != nil {
				w.OnRemove(path)
			}
		}
	}
}

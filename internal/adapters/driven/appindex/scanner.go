// Package appindex discovers installed applications by scanning the
// configured launcher directories (start menu, desktop, custom folders)
// and watches them for changes.
package appindex

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driven.AppIndex = (*Scanner)(nil)

// watchSettle coalesces bursts of filesystem events (an installer
// touching dozens of files) into one invalidation signal.
const watchSettle = 2 * time.Second

// Scanner is a directory-walking implementation of driven.AppIndex.
type Scanner struct {
	dirs []string

	mu      sync.RWMutex
	apps    []domain.AppEntry
	scanned bool

	changed chan struct{}
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// NewScanner creates a scanner over the given directories. Directories
// that do not exist are skipped at scan time, not treated as errors: a
// machine without a public desktop folder is normal.
func NewScanner(dirs []string) *Scanner {
	return &Scanner{
		dirs:    dirs,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Scan returns all known application entries, scanning on first use.
func (s *Scanner) Scan(ctx context.Context) ([]domain.AppEntry, error) {
	s.mu.RLock()
	if s.scanned {
		apps := s.apps
		s.mu.RUnlock()
		return apps, nil
	}
	s.mu.RUnlock()

	if err := s.Rescan(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apps, nil
}

// Rescan rebuilds the catalogue from disk.
func (s *Scanner) Rescan(ctx context.Context) error {
	var apps []domain.AppEntry
	for _, dir := range s.dirs {
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := scanDir(dir)
		if err != nil {
			// One unreadable directory does not fail the catalogue.
			logger.Warn("app scan: %s: %v", dir, err)
			continue
		}
		apps = append(apps, entries...)
	}

	s.mu.Lock()
	s.apps = apps
	s.scanned = true
	s.mu.Unlock()

	logger.Debug("app scan: %d entries from %d dirs", len(apps), len(s.dirs))
	return nil
}

// Invalidated returns the change-notification channel. The first call
// starts the filesystem watcher.
func (s *Scanner) Invalidated() <-chan struct{} {
	s.once.Do(s.startWatch)
	return s.changed
}

// Close stops the watcher.
func (s *Scanner) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// startWatch begins watching the scan directories for changes.
func (s *Scanner) startWatch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("app watch: %v", err)
		return
	}
	s.watcher = watcher

	watching := 0
	for _, dir := range s.dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Debug("app watch: %s: %v", dir, err)
			continue
		}
		watching++
	}
	logger.Debug("app watch: %d of %d dirs", watching, len(s.dirs))

	go s.watchLoop()
}

// watchLoop coalesces watcher events into invalidation signals.
func (s *Scanner) watchLoop() {
	var settle *time.Timer
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-s.done:
			return
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Debug("app watch: %v", err)
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if settle != nil {
				settle.Stop()
			}
			settle = time.AfterFunc(watchSettle, s.signal)
		}
	}
}

// signal notifies listeners that the catalogue is stale. Non-blocking:
// a pending signal already covers the change.
func (s *Scanner) signal() {
	s.mu.Lock()
	s.scanned = false
	s.mu.Unlock()

	select {
	case s.changed <- struct{}{}:
	default:
	}
}

// relevant filters watcher noise down to events that can change the
// catalogue: launchable files appearing, disappearing, or being renamed.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return domain.HasLaunchSuffix(domain.NormalizePath(event.Name))
}

// scanDir walks one directory collecting launchable entries.
func scanDir(dir string) ([]domain.AppEntry, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}

	var apps []domain.AppEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable subtrees, keep walking.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !domain.HasLaunchSuffix(domain.NormalizePath(d.Name())) {
			return nil
		}
		apps = append(apps, domain.AppEntry{
			Name: strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Path: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return apps, nil
}

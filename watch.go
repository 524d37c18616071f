package msgtrans

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for a burst of edits to settle.
const DefaultDebounce = 300 * time.Millisecond

// WatchDirs returns the directories a watch over cfg needs: every package
// directory under Root and, when set, every directory under TranslationRoot.
func WatchDirs(cfg Config) ([]string, error) {
	dirs, err := packageDirs(cfg.Root)
	if err != nil {
		return nil, err
	}
	if cfg.TranslationRoot != "" {
		err := filepath.WalkDir(cfg.TranslationRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	sort.Strings(dirs)
	out := dirs[:0]
	for i, d := range dirs {
		if i > 0 && d == dirs[i-1] {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// watchRelevant reports whether a change to name can alter generated output.
// Generated code and skeleton files are ignored so a pass never retriggers itself.
func watchRelevant(name string) bool {
	base := filepath.Base(name)
	switch {
	case strings.HasSuffix(base, GeneratedSuffix):
		return false
	case strings.HasSuffix(base, PropertiesExt):
		return true
	case strings.HasSuffix(base, "_gen.go"), strings.HasSuffix(base, "_test.go"):
		return false
	case strings.HasSuffix(base, ".go"):
		return true
	case base == ConfigFileName:
		return true
	}
	return false
}

// Watch watches dirs for changes to message interfaces and translation files.
// After a burst of changes has been quiet for debounce, onChange is called
// with the changed paths. Directories created under a watched directory are
// added to the watch. Watch returns when ctx is done.
//
// If ready is non-nil, a value is sent after the watcher is fully set up,
// allowing callers to synchronize without time.Sleep.
func Watch(ctx context.Context, dirs []string, debounce time.Duration, onChange func(changed []string), ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	if ready != nil {
		ready <- struct{}{}
	}

	pending := map[string]struct{}{}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !watchRelevant(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			clear(pending)
			onChange(changed)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			LogWarn("watch: %v", werr)
		}
	}
}

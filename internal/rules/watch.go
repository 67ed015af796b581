package rules

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/PhucNguyen204/answerclass/pkg/classifier"
)

// ReloadDebounce gom các event liên tiếp (editor thường ghi nhiều lần).
var ReloadDebounce = 150 * time.Millisecond

// Watch compiles the rule sets under root and hands the classifier to
// onReload once the watches are in place, then again after every change
// to a YAML file or subdirectory in the tree. If the first load fails,
// Watch returns that error without calling onReload. A later reload that
// fails is logged and the previous classifier stays in use. Watch returns
// nil when ctx is done.
func Watch(ctx context.Context, root string, log *zap.Logger, onReload func(*classifier.Classifier), opts ...classifier.Option) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dirs := make(map[string]struct{})
	if err := addTree(w, root, dirs); err != nil {
		return err
	}

	reload := func() error {
		sets, _, _, err := LoadDir(root, log)
		if err != nil {
			return err
		}
		c, err := classifier.Compile(sets, opts...)
		if err != nil {
			return err
		}
		onReload(c)
		return nil
	}
	if err := reload(); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := addTree(w, ev.Name, dirs); err != nil {
						log.Warn("watch new dir", zap.String("path", ev.Name), zap.Error(err))
					}
					pending = time.After(ReloadDebounce)
					continue
				}
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				// dir bị xoá/đổi tên: không có event riêng cho từng file bên trong
				if forgetTree(w, ev.Name, dirs) || filepath.Ext(ev.Name) == "" {
					log.Debug("rule dir changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
					pending = time.After(ReloadDebounce)
					continue
				}
			}
			if !isYAML(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				log.Debug("rule file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				pending = time.After(ReloadDebounce)
			}

		case <-pending:
			pending = nil
			if err := reload(); err != nil {
				log.Error("reload rules", zap.Error(err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

func addTree(w *fsnotify.Watcher, root string, dirs map[string]struct{}) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return err
		}
		dirs[p] = struct{}{}
		return nil
	})
}

// forgetTree drops the watches on dir and everything below it. It reports
// whether dir was a watched directory.
func forgetTree(w *fsnotify.Watcher, dir string, dirs map[string]struct{}) bool {
	if _, ok := dirs[dir]; !ok {
		return false
	}
	prefix := dir + string(filepath.Separator)
	for p := range dirs {
		if p == dir || strings.HasPrefix(p, prefix) {
			_ = w.Remove(p) // có thể đã bị gỡ khi dir biến mất
			delete(dirs, p)
		}
	}
	return true
}

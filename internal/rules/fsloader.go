package rules

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/PhucNguyen204/answerclass/pkg/strrule"
)

func isYAML(p string) bool {
	l := strings.ToLower(p)
	return strings.HasSuffix(l, ".yml") || strings.HasSuffix(l, ".yaml")
}

// LoadDirRecursive loads every YAML rule set under root and fails on the
// first broken file.
func LoadDirRecursive(root string) ([]strrule.RuleSet, error) {
	var out []strrule.RuleSet
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rs, err := strrule.LoadRuleSetYAML(b)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, rs)
		return nil
	})
	return out, err
}

// LoadDir is the lenient variant: unreadable or invalid files are logged
// and counted as skipped. Only a walk failure is returned as an error.
func LoadDir(root string, log *zap.Logger) (sets []strrule.RuleSet, loaded, skipped int, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		b, rerr := os.ReadFile(p)
		if rerr != nil {
			log.Warn("skip unreadable rule file", zap.String("path", p), zap.Error(rerr))
			skipped++
			return nil
		}
		rs, rerr := strrule.LoadRuleSetYAML(b)
		if rerr != nil {
			log.Warn("skip invalid rule file", zap.String("path", p), zap.Error(rerr))
			skipped++
			return nil
		}
		sets = append(sets, rs)
		loaded++
		return nil
	})
	if err != nil {
		return sets, loaded, skipped, fmt.Errorf("walk dir: %w", err)
	}
	log.Info("rule sets loaded",
		zap.String("dir", root),
		zap.Int("loaded", loaded),
		zap.Int("skipped", skipped))
	return sets, loaded, skipped, nil
}

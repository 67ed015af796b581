package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/PhucNguyen204/answerclass/pkg/classifier"
)

func writeRuleSet(t *testing.T, dir, name, id string) {
	t.Helper()
	body := fmt.Sprintf("id: %s\nanswers:\n  - outcome: ok\n    rules:\n      - equals: yes\n", id)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	old := ReloadDebounce
	ReloadDebounce = 20 * time.Millisecond
	defer func() { ReloadDebounce = old }()

	dir := t.TempDir()
	writeRuleSet(t, dir, "first.yml", "first")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := make(chan *classifier.Classifier, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, zaptest.NewLogger(t), func(c *classifier.Classifier) {
			select {
			case reloads <- c:
			case <-ctx.Done():
			}
		})
	}()

	next := func() *classifier.Classifier {
		select {
		case c := <-reloads:
			return c
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
			return nil
		}
	}

	c := next()
	assert.Equal(t, []string{"first"}, c.SetIDs())

	writeRuleSet(t, dir, "second.yaml", "second")
	for {
		c = next()
		if c.Len() == 2 {
			break
		}
	}
	assert.Equal(t, []string{"first", "second"}, c.SetIDs())

	require.NoError(t, os.Remove(filepath.Join(dir, "first.yml")))
	for {
		c = next()
		if c.Len() == 1 {
			break
		}
	}
	assert.Equal(t, []string{"second"}, c.SetIDs())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingRoot(t *testing.T) {
	defer goleak.VerifyNone(t)
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, func(*classifier.Classifier) {})
	assert.Error(t, err)
}

func TestWatch_DuplicateIDsOnFirstLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeRuleSet(t, dir, "a.yml", "dup")
	writeRuleSet(t, dir, "b.yml", "dup")

	called := false
	done := make(chan error, 1)
	go func() {
		done <- Watch(context.Background(), dir, zaptest.NewLogger(t), func(*classifier.Classifier) { called = true })
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, classifier.ErrDuplicateRuleSet)
		assert.ErrorContains(t, err, "dup")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not return")
	}
	assert.False(t, called)
}

func TestWatch_ReloadsOnSubdirRename(t *testing.T) {
	defer goleak.VerifyNone(t)

	old := ReloadDebounce
	ReloadDebounce = 20 * time.Millisecond
	defer func() { ReloadDebounce = old }()

	dir := t.TempDir()
	writeRuleSet(t, dir, "top.yml", "top")
	sub := filepath.Join(dir, "geo")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeRuleSet(t, sub, "ocean.yml", "ocean")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := make(chan *classifier.Classifier, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, zaptest.NewLogger(t), func(c *classifier.Classifier) {
			select {
			case reloads <- c:
			case <-ctx.Done():
			}
		})
	}()

	next := func() *classifier.Classifier {
		select {
		case c := <-reloads:
			return c
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for reload")
			return nil
		}
	}

	c := next()
	assert.Equal(t, []string{"ocean", "top"}, c.SetIDs())

	// chuyển cả thư mục ra ngoài cây đang watch
	require.NoError(t, os.Rename(sub, filepath.Join(t.TempDir(), "geo")))
	for {
		c = next()
		if c.Len() == 1 {
			break
		}
	}
	assert.Equal(t, []string{"top"}, c.SetIDs())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

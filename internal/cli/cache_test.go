package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridcompose/pkg/cache"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	c.cacheDir = filepath.Join(t.TempDir(), "cache")
	return c
}

func TestCachePath(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := c.cachePath()
	if err != nil {
		t.Fatalf("cachePath() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", appName); dir != want {
		t.Errorf("cachePath() = %q, want %q", dir, want)
	}

	c.cacheDir = "/srv/cache"
	if dir, _ := c.cachePath(); dir != "/srv/cache" {
		t.Errorf("cachePath() = %q, want override", dir)
	}
}

func TestCachePathCommand(t *testing.T) {
	c := newTestCLI(t)
	cmd := c.cachePathCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != c.cacheDir {
		t.Errorf("cache path = %q, want %q", got, c.cacheDir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c := newTestCLI(t)
	fc, err := cache.NewFileCache(c.cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "layout:abc", []byte("{}"), time.Hour); err != nil {
		t.Fatal(err)
	}

	cmd := c.cacheClearCommand()
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := fc.Get(ctx, "layout:abc"); ok {
		t.Error("entry survived cache clear")
	}
	if _, err := os.Stat(c.cacheDir); err != nil {
		t.Errorf("cache dir was not recreated: %v", err)
	}
}

func TestNewCache(t *testing.T) {
	c := newTestCLI(t)

	cc, err := c.newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want NullCache", cc)
	}

	cc, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := cc.(*cache.FileCache); !ok || fc.Dir() != c.cacheDir {
		t.Errorf("newCache(false) = %T, want FileCache in %s", cc, c.cacheDir)
	}
}

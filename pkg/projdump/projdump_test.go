package projdump

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/projdump/internal/adapters/fs"
)

type recordingHandler struct {
	mu     sync.Mutex
	stats  []Stats
	errs   []error
	notify chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{notify: make(chan struct{}, 16)}
}

func (h *recordingHandler) OnDumpComplete(s Stats) {
	h.mu.Lock()
	h.stats = append(h.stats, s)
	h.mu.Unlock()
	h.notify <- struct{}{}
}

func (h *recordingHandler) OnDumpError(err error) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
	h.notify <- struct{}{}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newTestDumper(t *testing.T, root string, opts ...Option) *Dumper {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Root = root
	cfg.Output = filepath.Join(root, "project_contents.md")
	d, err := New(cfg, opts...)
	require.NoError(t, err)
	return d
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "project_contents.md", cfg.Output)
	assert.Equal(t, []string{"node_modules", ".git", "__pycache__"}, cfg.IgnoreDirs)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce)
}

func TestNew_InvalidRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = filepath.Join(t.TempDir(), "missing")

	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_EmptyIgnoreListIgnoresNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"node_modules/x.js": "x"})

	cfg := Config{Root: root, Output: filepath.Join(t.TempDir(), "out.md"), IgnoreDirs: []string{}}
	d, err := New(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	stats, err := d.Render(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Written)
	assert.Contains(t, buf.String(), "## node_modules/x.js\n")
}

func TestDumper_Dump(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":              "hello\n\n",
		"b.bin":              "\xff\xfe\xfd",
		"node_modules/c.txt": "c",
	})

	h := newRecordingHandler()
	d := newTestDumper(t, root, WithEventHandler(h))

	stats, err := d.Dump()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Written)

	got, err := os.ReadFile(d.OutputPath())
	require.NoError(t, err)
	assert.Equal(t, "## a.txt\n\n```\nhello\n```\n\n", string(got))
	assert.NoFileExists(t, fs.LockPath(d.OutputPath()))

	require.Len(t, h.stats, 1)
	assert.Equal(t, stats.RunID, h.stats[0].RunID)
	assert.Empty(t, h.errs)
}

func TestDumper_DumpMatchesRender(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"x/y.go": "package y\n", "z.md": "# z\n"})
	d := newTestDumper(t, root)

	_, err := d.Dump()
	require.NoError(t, err)
	onDisk, err := os.ReadFile(d.OutputPath())
	require.NoError(t, err)

	var rendered bytes.Buffer
	_, err = d.Render(&rendered)
	require.NoError(t, err)

	assert.Equal(t, string(onDisk), rendered.String())
}

func TestDumper_DumpLocked(t *testing.T) {
	root := t.TempDir()
	h := newRecordingHandler()
	d := newTestDumper(t, root, WithEventHandler(h))

	holder, err := fs.CreateDocument(d.OutputPath())
	require.NoError(t, err)
	defer holder.Close()

	_, err = d.Dump()
	assert.ErrorIs(t, err, ErrOutputLocked)
	require.Len(t, h.errs, 1)
	assert.True(t, errors.Is(h.errs[0], ErrOutputLocked))
}

func TestDumper_Check(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "one\n"})
	d := newTestDumper(t, root)

	var diff bytes.Buffer
	err := d.Check(&diff)
	assert.ErrorIs(t, err, ErrDrift, "missing output counts as drift")
	assert.Contains(t, diff.String(), "+## a.txt")

	_, err = d.Dump()
	require.NoError(t, err)

	diff.Reset()
	require.NoError(t, d.Check(&diff))
	assert.Empty(t, diff.String())

	writeTree(t, root, map[string]string{"a.txt": "two\n"})
	diff.Reset()
	err = d.Check(&diff)
	assert.ErrorIs(t, err, ErrDrift)
	assert.Contains(t, diff.String(), "-one")
	assert.Contains(t, diff.String(), "+two")

	got, err := os.ReadFile(d.OutputPath())
	require.NoError(t, err)
	assert.Contains(t, string(got), "one", "check must not rewrite the output")
}

func TestDumper_Watch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "first\n"})

	h := newRecordingHandler()
	cfg := Config{Root: root, Output: filepath.Join(root, "out.md"), Debounce: 20 * time.Millisecond}
	d, err := New(cfg, WithEventHandler(h))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Watch(ctx) }()

	waitRun := func() {
		t.Helper()
		select {
		case <-h.notify:
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for a dump")
		}
	}

	waitRun()
	writeTree(t, root, map[string]string{"a.txt": "second\n"})
	waitRun()

	got, err := os.ReadFile(d.OutputPath())
	require.NoError(t, err)
	assert.Equal(t, "## a.txt\n\n```\nsecond\n```\n\n", string(got))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Empty(t, h.errs)
}

func TestDumper_SymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	base := t.TempDir()
	target := filepath.Join(base, "real")
	writeTree(t, target, map[string]string{"a.txt": "hello\n"})
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(target, link))
	output := filepath.Join(base, "out.md")
	want := "## a.txt\n\n```\nhello\n```\n\n"

	t.Run("root flag", func(t *testing.T) {
		d, err := New(Config{Root: link, Output: output})
		require.NoError(t, err)
		stats, err := d.Dump()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Written)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	})

	t.Run("working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(link))
		t.Cleanup(func() { _ = os.Chdir(wd) })
		t.Setenv("PWD", link)

		d, err := New(Config{Output: output})
		require.NoError(t, err)
		_, err = d.Dump()
		require.NoError(t, err)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	})
}

func TestDumper_OutputThroughSymlinkedDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	base := t.TempDir()
	target := filepath.Join(base, "real")
	writeTree(t, target, map[string]string{"a.txt": "a"})
	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(target, link))

	d, err := New(Config{Root: target, Output: filepath.Join(link, "out.md")})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = d.Dump()
		require.NoError(t, err)
	}

	got, err := os.ReadFile(filepath.Join(target, "out.md"))
	require.NoError(t, err)
	assert.Equal(t, "## a.txt\n\n```\na\n```\n\n", string(got))
}

package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/internal/adapters/fs"
	"go.trai.ch/cachegen/internal/core/domain"
)

const generated = domain.GeneratedHeader + "\n\npackage app\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config"), "git")
	writeFile(t, filepath.Join(root, domain.StateDirName, domain.ManifestFileName), "{}")
	writeFile(t, filepath.Join(root, "vendor", "x", "x.go"), "package x")
	writeFile(t, filepath.Join(root, "ignored", "file.go"), "package ignored")
	writeFile(t, filepath.Join(root, "src", "main.go"), "package main")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "notes")
	writeFile(t, filepath.Join(root, "README.md"), "readme")

	files := slices.Sorted(fs.NewWalker().WalkFiles(root, []string{"ignored", "*.txt"}))

	assert.Equal(t, []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "src", "main.go"),
	}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "package a")
	writeFile(t, filepath.Join(root, "b.go"), "package a")

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWalker_GeneratedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "user_service_cachegen.go"), generated)
	writeFile(t, filepath.Join(root, "sub", "cart_cachegen.go"), generated)
	writeFile(t, filepath.Join(root, "handwritten_cachegen.go"), "package app\n")
	writeFile(t, filepath.Join(root, "user_service.go"), generated)

	files := slices.Sorted(fs.NewWalker().GeneratedFiles(root, domain.DefaultFileSuffix))

	assert.Equal(t, []string{
		filepath.Join(root, "sub", "cart_cachegen.go"),
		filepath.Join(root, "user_service_cachegen.go"),
	}, files)
}

func TestIsGenerated(t *testing.T) {
	root := t.TempDir()
	gen := filepath.Join(root, "a.go")
	plain := filepath.Join(root, "b.go")
	headerOnly := filepath.Join(root, "c.go")
	writeFile(t, gen, generated)
	writeFile(t, plain, "package app\n")
	writeFile(t, headerOnly, domain.GeneratedHeader)

	assert.True(t, fs.IsGenerated(gen))
	assert.False(t, fs.IsGenerated(plain))
	assert.True(t, fs.IsGenerated(headerOnly))
	assert.False(t, fs.IsGenerated(filepath.Join(root, "missing.go")))
}

func TestHasher(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	writeFile(t, path, generated)

	h := fs.NewHasher()
	digest := h.Digest([]byte(generated))
	assert.Len(t, digest, 16)
	assert.NotEqual(t, digest, h.Digest([]byte("package app\n")))

	fromFile, err := h.FileDigest(path)
	require.NoError(t, err)
	assert.Equal(t, digest, fromFile)

	_, err = h.FileDigest(filepath.Join(root, "missing.go"))
	require.Error(t, err)
}

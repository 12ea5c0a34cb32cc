package file_editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsBinaryFile_BlockedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.zip")
	require.NoError(t, os.WriteFile(path, []byte("not actually a zip but the extension says so"), 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.True(t, isBin)
}

func TestIsBinaryFile_EmptyFileIsNotBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.False(t, isBin)
}

func TestIsBinaryFile_MagicNumberPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "picture.dat")
	content := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("rest of png")...)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.True(t, isBin)
}

func TestIsBinaryFile_MagicNumberPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "document.dat")
	content := append([]byte("%PDF-1.4\n"), []byte("...")...)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.True(t, isBin)
}

func TestIsBinaryFile_MagicNumberZIPWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suspicious.dat")
	content := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.True(t, isBin)
}

func TestIsBinaryFile_NulByteFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mystery.dat")
	content := []byte("some text\x00with a nul byte in the middle")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.True(t, isBin)
}

func TestIsBinaryFile_PlainTextIsNotBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	isBin, err := isBinaryFile(path)
	require.NoError(t, err)
	require.False(t, isBin)
}

func TestIsBinaryFile_MissingFileFailsClosed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.txt")

	isBin, err := isBinaryFile(path)
	require.Error(t, err)
	require.True(t, isBin)
}

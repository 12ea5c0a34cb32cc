package file_editor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// probeSize is how much of a file's head is read for the magic-number and
// NUL-byte probes.
const probeSize = 8192

// blockedExtensions are rejected purely on extension, before any content is
// read, matching common packaging/media/executable formats.
var blockedExtensions = map[string]bool{
	".zip": true, ".gz": true, ".tar": true, ".7z": true, ".rar": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".ico": true,
	".pdf": true, ".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".bin": true, ".class": true, ".o": true, ".a": true,
	".mp3": true, ".mp4": true, ".mov": true, ".avi": true, ".wav": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true,
}

// magicSignatures are well-known byte prefixes checked against the first
// probeSize bytes of a file, independent of its extension.
var magicSignatures = [][]byte{
	{0x50, 0x4B, 0x03, 0x04}, // ZIP (and formats built on ZIP, e.g. docx/xlsx/jar)
	{0x1F, 0x8B},             // GZIP
	{0xFF, 0xD8, 0xFF},       // JPEG
	{0x89, 0x50, 0x4E, 0x47}, // PNG
	{0x25, 0x50, 0x44, 0x46}, // PDF
	{0x4D, 0x5A},             // PE/EXE
	{0x7F, 0x45, 0x4C, 0x46}, // ELF
}

// isBinaryFile treats a file as binary if its extension is blocklisted,
// its head matches a known magic number, or its head
// contains a NUL byte. An empty file with a non-blocklisted extension is not
// binary. Any I/O error while
// probing fails closed (treated as binary), since an operator that cannot
// read the file has no way to prove it safe to edit as text.
func isBinaryFile(path string) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if blockedExtensions[ext] {
		return true, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return true, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return true, err
	}
	if info.Size() == 0 {
		return false, nil
	}

	buf := make([]byte, probeSize)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return true, err
	}
	head := buf[:n]

	for _, sig := range magicSignatures {
		if bytes.HasPrefix(head, sig) {
			return true, nil
		}
	}

	return bytes.IndexByte(head, 0) >= 0, nil
}

package file_editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) (*Editor, string) {
	t.Helper()
	dir := t.TempDir()
	e, err := NewEditor(dir)
	require.NoError(t, err)
	return e, dir
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEditor_ValidatePath(t *testing.T) {
	e, dir := newTestEditor(t)

	abs, err := e.validatePath("sub/file.txt")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sub/file.txt"), abs)

	_, err = e.validatePath("/etc/passwd")
	require.ErrorIs(t, err, ErrPathOutsideRoot)
}

// TestEditor_WhitespaceInsensitiveReplace covers scenario 1: a
// whitespace-insensitive exact match replaced in place.
func TestEditor_WhitespaceInsensitiveReplace(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.js", "  const  x  =  1;  ")

	result, err := e.ReplaceMatchingText(path, "const x=1", "let y = 2", false)
	require.NoError(t, err)
	require.Contains(t, result.Message, "replaced")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "  let y = 2;  ", string(got))
}

func TestEditor_ReplaceRejectsIdenticalText(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "same text")

	_, err := e.ReplaceMatchingText(path, "same text", "same text", false)
	require.ErrorIs(t, err, ErrIdenticalText)
}

// TestEditor_MultiMatchDisambiguation covers scenario 2.
func TestEditor_MultiMatchDisambiguation(t *testing.T) {
	e, dir := newTestEditor(t)
	content := "Only bar\nbar and foo\nonly foo no bar but could have been only bar"
	path := writeTestFile(t, dir, "a.txt", content)

	_, err := e.ReplaceMatchingText(path, "foo", "baz", false)
	require.Error(t, err)

	var opError *OpError
	require.ErrorAs(t, err, &opError)
	require.ErrorIs(t, opError.Err, ErrMultipleMatches)

	var suggestions []string
	for _, s := range opError.Suggestions {
		suggestions = append(suggestions, s["searchText"])
	}
	require.Contains(t, suggestions, "and foo\nonly")
	require.Contains(t, suggestions, "only foo no")
}

// TestEditor_FuzzyNoMatchSuggestion covers scenario 3.
func TestEditor_FuzzyNoMatchSuggestion(t *testing.T) {
	e, dir := newTestEditor(t)
	content := "function helloWorld() {\n  console.log('hi');\n}"
	path := writeTestFile(t, dir, "a.js", content)

	_, err := e.ReplaceMatchingText(path, "console.log(hi)", "console.log(bye)", false)
	require.Error(t, err)

	var opError *OpError
	require.ErrorAs(t, err, &opError)
	require.ErrorIs(t, opError.Err, ErrNoMatch)
	require.Len(t, opError.Suggestions, 1)
	require.Contains(t, opError.Suggestions[0]["searchText"], "console.log('hi')")
}

func TestEditor_DeleteAllOccurrences(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "x foo y foo z")

	_, err := e.DeleteMatchingText(path, "foo", true)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "x  y  z", string(got))
}

// TestEditor_LineBoundaryMoveBefore covers scenario 4.
func TestEditor_LineBoundaryMoveBefore(t *testing.T) {
	e, dir := newTestEditor(t)
	content := "function alpha() {\n  const a = 1;\n  const b = 2;\n  const c = 3;\n}"
	path := writeTestFile(t, dir, "a.js", content)

	_, err := e.MoveText(path, "const b = 2;", "const a = 1;", "before", nil, nil)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "function alpha() {\n  const b = 2;\n  const a = 1;\n  const c = 3;\n}"
	require.Equal(t, want, string(got))
}

// TestEditor_IntraLineMoveAfter covers scenario 5: the anchor is not
// at a right line boundary (trailing "return c;" on the same line), so the
// move falls back to intra-line splicing with no newline injection.
func TestEditor_IntraLineMoveAfter(t *testing.T) {
	e, dir := newTestEditor(t)
	content := "function alpha() {\n  const a = 1;\n  const b = 2;\n  const c = 3; return c;\n}"
	path := writeTestFile(t, dir, "a.js", content)

	_, err := e.MoveText(path, "const b = 2;", "const c = 3;", "after", nil, nil)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "function alpha() {\n  const a = 1;\n  \n  const c = 3;const b = 2; return c;\n}"
	require.Equal(t, want, string(got))
}

func TestEditor_MoveOverlapRejected(t *testing.T) {
	e, dir := newTestEditor(t)
	content := "const a = 1; const b = 2;"
	path := writeTestFile(t, dir, "a.js", content)

	_, err := e.MoveText(path, "const a = 1; const b", "a = 1;", "after", nil, nil)
	require.Error(t, err)
}

// TestEditor_BlockScopedInsert covers scenario 6.
func TestEditor_BlockScopedInsert(t *testing.T) {
	e, dir := newTestEditor(t)
	content := "header\nBLOCK START\nline1\nline2\nBLOCK END\nfooter"
	path := writeTestFile(t, dir, "a.txt", content)

	start, end := "BLOCK START", "BLOCK END"
	_, err := e.InsertText(path, "inserted line", "line1", "after", &start, &end, true)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "header\nBLOCK START\nline1\ninserted line\nline2\nBLOCK END\nfooter"
	require.Equal(t, want, string(got))
}

func TestEditor_CreateFile(t *testing.T) {
	e, dir := newTestEditor(t)

	_, err := e.CreateFile("new/nested.txt", "hello", true)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "new/nested.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	_, err = e.CreateFile("new/nested.txt", "again", false)
	require.ErrorIs(t, err, ErrTargetExists)
}

func TestEditor_CreateFileMissingDirectory(t *testing.T) {
	e, _ := newTestEditor(t)

	_, err := e.CreateFile("missing/nested.txt", "hello", false)
	require.ErrorIs(t, err, ErrDirectoryMissing)
}

func TestEditor_OverwriteFileContent(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "old content")

	_, err := e.OverwriteFileContent(path, "new content")
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new content", string(got))
}

func TestEditor_AppendTextToFile(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "line1\n")

	_, err := e.AppendTextToFile(path, "line2", true)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "line1\nline2", string(got))
}

func TestEditor_AppendTextToFileNoDuplicateNewline(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "line1\n")

	_, err := e.AppendTextToFile(path, "\nline2", true)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "line1\n\nline2", string(got))
}

func TestEditor_MoveOrRenameFile(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "content")

	_, err := e.MoveOrRenameFile(path, filepath.Join(dir, "b.txt"), false)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	got, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "content", string(got))
}

func TestEditor_DeleteFile(t *testing.T) {
	e, dir := newTestEditor(t)
	path := writeTestFile(t, dir, "a.txt", "content")

	_, err := e.DeleteFile(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestEditor_RefusesBinaryFile(t *testing.T) {
	e, dir := newTestEditor(t)
	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0x01, 0x02}, 0o644))

	_, err := e.ReplaceMatchingText(path, "foo", "bar", false)
	require.ErrorIs(t, err, ErrBinaryFile)
}

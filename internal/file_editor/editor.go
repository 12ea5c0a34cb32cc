package file_editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Editor roots every file-editing operation at a workspace directory and
// dispatches each tool call to its operator, recovering every failure into
// an OpResult/error pair rather than letting it escape to the caller.
type Editor struct {
	workspaceRoot string
}

// NewEditor creates an Editor rooted at workspaceRoot.
func NewEditor(workspaceRoot string) (*Editor, error) {
	absRoot, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	return &Editor{workspaceRoot: absRoot}, nil
}

// OpResult is the successful outcome of an operator call.
type OpResult struct {
	Message     string
	Suggestions []SuggestedValue
}

// validatePath resolves path against the workspace root and rejects any
// path that escapes it.
func (e *Editor) validatePath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.workspaceRoot, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if absPath != e.workspaceRoot && !strings.HasPrefix(absPath, e.workspaceRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideRoot, path)
	}
	return absPath, nil
}

func (e *Editor) readRaw(path string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		if os.IsPermission(err) {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return []rune(string(data)), nil
}

func (e *Editor) writeRaw(path string, raw []rune) error {
	if err := os.WriteFile(path, []byte(string(raw)), 0o644); err != nil {
		if os.IsPermission(err) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// guardBinary rejects binary files before any read-modify-write text
// operation. Any I/O error while probing is itself treated as binary (fail
// closed), matching isBinaryFile's own fail-closed contract.
func (e *Editor) guardBinary(path string) error {
	binary, _ := isBinaryFile(path)
	if binary {
		return ErrBinaryFile
	}
	return nil
}

// ReplaceMatchingText implements replace_matching_text.
func (e *Editor) ReplaceMatchingText(path, searchText, replacementText string, all bool) (OpResult, error) {
	if searchText == "" {
		return OpResult{}, opErr(ErrEmptyParameter)
	}
	if searchText == replacementText {
		return OpResult{}, opErr(ErrIdenticalText)
	}

	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if err := e.guardBinary(absPath); err != nil {
		return OpResult{}, err
	}
	raw, err := e.readRaw(absPath)
	if err != nil {
		return OpResult{}, err
	}
	v := buildFlatView(raw)

	spans, opError := e.resolveMatchSpans(v, searchText, all, "searchText")
	if opError != nil {
		return OpResult{}, opError
	}

	newRaw := spliceSpans(raw, spans, []rune(replacementText))
	if err := e.writeRaw(absPath, newRaw); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("replaced %d occurrence(s) in %s", len(spans), filepath.Base(absPath))}, nil
}

// DeleteMatchingText implements delete_matching_text.
func (e *Editor) DeleteMatchingText(path, searchText string, all bool) (OpResult, error) {
	if searchText == "" {
		return OpResult{}, opErr(ErrEmptyParameter)
	}

	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if err := e.guardBinary(absPath); err != nil {
		return OpResult{}, err
	}
	raw, err := e.readRaw(absPath)
	if err != nil {
		return OpResult{}, err
	}
	v := buildFlatView(raw)

	spans, opError := e.resolveMatchSpans(v, searchText, all, "searchText")
	if opError != nil {
		return OpResult{}, opError
	}

	newRaw := spliceSpans(raw, spans, nil)
	if err := e.writeRaw(absPath, newRaw); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("deleted %d occurrence(s) from %s", len(spans), filepath.Base(absPath))}, nil
}

// resolveMatchSpans runs the match engine for searchText and resolves the
// set of spans an operator should act on: every exact match the engine
// reports (at most three) if all is true, otherwise exactly one (failing with the appropriate suggestions if the
// match is ambiguous or absent).
func (e *Editor) resolveMatchSpans(v *flatView, searchText string, all bool, paramName string) ([]Span, *OpError) {
	result := findMatches(v, searchText)
	if result.IsEmpty() {
		return nil, opErr(ErrNoMatch)
	}
	if !result.IsExact() {
		suggestions := make([]SuggestedValue, 0, len(result.Fuzzy))
		for _, sp := range result.Fuzzy {
			suggestions = append(suggestions, SuggestedValue{paramName: string(v.raw[sp.RawStart:sp.RawEndExcl])})
		}
		return nil, opErr(ErrNoMatch, suggestions...)
	}
	if all {
		return result.Exact, nil
	}
	if len(result.Exact) == 1 {
		return result.Exact, nil
	}

	widened := disambiguate(v, result.Exact)
	suggestions := make([]SuggestedValue, 0, len(widened))
	for _, w := range widened {
		suggestions = append(suggestions, SuggestedValue{paramName: w})
	}
	return nil, opErr(ErrMultipleMatches, suggestions...)
}

// InsertText implements insert_text.
func (e *Editor) InsertText(path, textToBeInserted, anchorText, position string, blockStartMarker, blockEndMarker *string, addNewLine bool) (OpResult, error) {
	if anchorText == "" {
		return OpResult{}, opErr(ErrEmptyParameter)
	}

	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if err := e.guardBinary(absPath); err != nil {
		return OpResult{}, err
	}
	raw, err := e.readRaw(absPath)
	if err != nil {
		return OpResult{}, err
	}
	v := buildFlatView(raw)

	blockStart, blockEnd, opError := resolveBlockRange(v, blockStartMarker, blockEndMarker)
	if opError != nil {
		return OpResult{}, opError
	}
	anchor, opError := resolveAnchor(v, anchorText, blockStart, blockEnd, "anchorText")
	if opError != nil {
		return OpResult{}, opError
	}

	idx := anchor.RawStart
	if position == "after" {
		idx = anchor.RawEndExcl
	}

	text := []rune(textToBeInserted)
	if addNewLine {
		lineEnding := []rune(detectLineEnding(raw))
		if position == "before" {
			text = append(append([]rune{}, text...), lineEnding...)
		} else {
			text = append(append([]rune{}, lineEnding...), text...)
		}
	}

	newRaw := spliceInsert(raw, idx, text)
	if err := e.writeRaw(absPath, newRaw); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("inserted text into %s", filepath.Base(absPath))}, nil
}

// MoveText implements move_text.
func (e *Editor) MoveText(path, textToBeMoved, anchorText, position string, blockStartMarker, blockEndMarker *string) (OpResult, error) {
	if textToBeMoved == "" || anchorText == "" {
		return OpResult{}, opErr(ErrEmptyParameter)
	}

	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if err := e.guardBinary(absPath); err != nil {
		return OpResult{}, err
	}
	raw, err := e.readRaw(absPath)
	if err != nil {
		return OpResult{}, err
	}
	v := buildFlatView(raw)

	moveResult := findMatches(v, textToBeMoved)
	moveSpan, opError := singleExactSpan(v, moveResult, "textToBeMoved")
	if opError != nil {
		return OpResult{}, opError
	}

	blockStart, blockEnd, opError := resolveBlockRange(v, blockStartMarker, blockEndMarker)
	if opError != nil {
		return OpResult{}, opError
	}
	anchor, opError := resolveAnchor(v, anchorText, blockStart, blockEnd, "anchorText")
	if opError != nil {
		return OpResult{}, opError
	}

	moveLeft := findLineBoundaryLeft(raw, moveSpan.RawStart)
	moveRight := findLineBoundaryRight(raw, moveSpan.RawEndExcl)
	moveAtLineBoundary := moveLeft >= 0 && moveRight >= 0

	var anchorBoundary int
	var anchorAtLineBoundary bool
	if position == "before" {
		anchorBoundary = findLineBoundaryLeft(raw, anchor.RawStart)
		anchorAtLineBoundary = anchorBoundary >= 0
	} else {
		anchorBoundary = findLineBoundaryRight(raw, anchor.RawEndExcl)
		anchorAtLineBoundary = anchorBoundary >= 0
	}

	isLineBoundaryMove := moveAtLineBoundary && anchorAtLineBoundary

	var deletionStart, deletionEnd, insertionPoint int
	var textOut []rune

	if isLineBoundaryMove {
		// Use the line-extended span so the moved line's leading indentation
		// travels with it; moveRight already excludes the trailing newline.
		movedText := raw[moveLeft:moveRight]
		deletionStart = moveLeft
		deletionEnd = extendOverNewlineRun(raw, moveRight)
		insertionPoint = anchorBoundary
		lineEnding := []rune(detectLineEnding(raw))
		if position == "after" {
			textOut = append(append([]rune{}, lineEnding...), movedText...)
		} else {
			textOut = append(append([]rune{}, movedText...), lineEnding...)
		}
	} else {
		movedText := raw[moveSpan.RawStart:moveSpan.RawEndExcl]
		deletionStart = moveSpan.RawStart
		deletionEnd = moveSpan.RawEndExcl
		if position == "before" {
			insertionPoint = anchor.RawStart
		} else {
			insertionPoint = anchor.RawEndExcl
		}
		textOut = append([]rune{}, movedText...)
	}

	if insertionPoint > deletionStart && insertionPoint < deletionEnd {
		return OpResult{}, opErr(ErrOverlap)
	}

	deletionLen := deletionEnd - deletionStart
	newRaw := append(append([]rune{}, raw[:deletionStart]...), raw[deletionEnd:]...)
	adjInsertionPoint := insertionPoint
	if insertionPoint > deletionStart {
		adjInsertionPoint -= deletionLen
	}

	newRaw = spliceInsert(newRaw, adjInsertionPoint, textOut)
	if err := e.writeRaw(absPath, newRaw); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("moved text in %s", filepath.Base(absPath))}, nil
}

// singleExactSpan requires an unscoped match result to contain exactly one
// exact occurrence, producing the same suggestion shapes as resolveAnchor.
func singleExactSpan(v *flatView, result MatchResult, paramName string) (Span, *OpError) {
	if result.IsEmpty() {
		return Span{}, opErr(ErrNoMatch)
	}
	if !result.IsExact() {
		suggestions := make([]SuggestedValue, 0, len(result.Fuzzy))
		for _, sp := range result.Fuzzy {
			suggestions = append(suggestions, SuggestedValue{paramName: string(v.raw[sp.RawStart:sp.RawEndExcl])})
		}
		return Span{}, opErr(ErrNoMatch, suggestions...)
	}
	if len(result.Exact) == 1 {
		return result.Exact[0], nil
	}
	widened := disambiguate(v, result.Exact)
	suggestions := make([]SuggestedValue, 0, len(widened))
	for _, w := range widened {
		suggestions = append(suggestions, SuggestedValue{paramName: w})
	}
	return Span{}, opErr(ErrMultipleMatches, suggestions...)
}

// OverwriteFileContent implements overwrite_file_content.
func (e *Editor) OverwriteFileContent(path, fileContent string) (OpResult, error) {
	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if _, statErr := os.Stat(absPath); statErr != nil {
		if os.IsNotExist(statErr) {
			return OpResult{}, opErr(ErrFileNotFound)
		}
		return OpResult{}, fmt.Errorf("stat file: %w", statErr)
	}
	if err := e.guardBinary(absPath); err != nil {
		return OpResult{}, err
	}
	if err := e.writeRaw(absPath, []rune(fileContent)); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("overwrote %s", filepath.Base(absPath))}, nil
}

// AppendTextToFile implements append_text_to_file.
func (e *Editor) AppendTextToFile(path, appendText string, addNewLineBeforeAppending bool) (OpResult, error) {
	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if err := e.guardBinary(absPath); err != nil {
		return OpResult{}, err
	}
	raw, err := e.readRaw(absPath)
	if err != nil {
		return OpResult{}, err
	}

	text := []rune(appendText)
	if addNewLineBeforeAppending {
		lineEnding := detectLineEnding(raw)
		if len(raw) > 0 && !endsWithLiteral(raw, lineEnding) {
			text = append([]rune(lineEnding), text...)
		}
	}

	newRaw := append(append([]rune{}, raw...), text...)
	if err := e.writeRaw(absPath, newRaw); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("appended text to %s", filepath.Base(absPath))}, nil
}

// CreateFile implements create_file.
func (e *Editor) CreateFile(path, fileContent string, createMissingDirectories bool) (OpResult, error) {
	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}

	if _, statErr := os.Stat(absPath); statErr == nil {
		return OpResult{}, opErr(ErrTargetExists)
	}

	dir := filepath.Dir(absPath)
	if _, statErr := os.Stat(dir); statErr != nil {
		if !os.IsNotExist(statErr) {
			return OpResult{}, fmt.Errorf("stat directory: %w", statErr)
		}
		if !createMissingDirectories {
			return OpResult{}, opErr(ErrDirectoryMissing)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return OpResult{}, fmt.Errorf("creating directories: %w", err)
		}
	}

	if err := e.writeRaw(absPath, []rune(fileContent)); err != nil {
		return OpResult{}, err
	}
	return OpResult{Message: fmt.Sprintf("created %s", filepath.Base(absPath))}, nil
}

// MoveOrRenameFile implements move_or_rename_file.
func (e *Editor) MoveOrRenameFile(sourcePath, targetPath string, createMissingDirectories bool) (OpResult, error) {
	absSource, err := e.validatePath(sourcePath)
	if err != nil {
		return OpResult{}, err
	}
	absTarget, err := e.validatePath(targetPath)
	if err != nil {
		return OpResult{}, err
	}

	if _, statErr := os.Stat(absSource); statErr != nil {
		if os.IsNotExist(statErr) {
			return OpResult{}, opErr(ErrFileNotFound)
		}
		return OpResult{}, fmt.Errorf("stat source: %w", statErr)
	}
	if _, statErr := os.Stat(absTarget); statErr == nil {
		return OpResult{}, opErr(ErrTargetExists)
	}

	dir := filepath.Dir(absTarget)
	if _, statErr := os.Stat(dir); statErr != nil {
		if !os.IsNotExist(statErr) {
			return OpResult{}, fmt.Errorf("stat directory: %w", statErr)
		}
		if !createMissingDirectories {
			return OpResult{}, opErr(ErrDirectoryMissing)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return OpResult{}, fmt.Errorf("creating directories: %w", err)
		}
	}

	if err := os.Rename(absSource, absTarget); err != nil {
		return OpResult{}, fmt.Errorf("renaming file: %w", err)
	}
	return OpResult{Message: fmt.Sprintf("moved %s to %s", filepath.Base(absSource), filepath.Base(absTarget))}, nil
}

// DeleteFile implements delete_file. The binary guard is deliberately not
// applied here: deleting a file never reads or rewrites its content.
func (e *Editor) DeleteFile(path string) (OpResult, error) {
	absPath, err := e.validatePath(path)
	if err != nil {
		return OpResult{}, err
	}
	if _, statErr := os.Stat(absPath); statErr != nil {
		if os.IsNotExist(statErr) {
			return OpResult{}, opErr(ErrFileNotFound)
		}
		return OpResult{}, fmt.Errorf("stat file: %w", statErr)
	}
	if err := os.Remove(absPath); err != nil {
		return OpResult{}, fmt.Errorf("deleting file: %w", err)
	}
	return OpResult{Message: fmt.Sprintf("deleted %s", filepath.Base(absPath))}, nil
}

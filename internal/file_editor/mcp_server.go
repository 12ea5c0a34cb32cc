package file_editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// MCPServer exposes the nine file-editing tools over MCP stdio transport.
type MCPServer struct {
	editor *Editor
	server *server.MCPServer
	log    zerolog.Logger
}

// NewMCPServer creates an MCPServer rooted at workspaceRoot.
func NewMCPServer(workspaceRoot string, log zerolog.Logger) (*MCPServer, error) {
	editor, err := NewEditor(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("creating editor: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"fileloom",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	s := &MCPServer{editor: editor, server: mcpServer, log: log}
	s.registerTools()
	return s, nil
}

// GetServer returns the underlying MCP server so callers can serve it over
// whichever transport they choose (stdio in cmd/fileloom).
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.server
}

func (s *MCPServer) registerTools() {
	s.server.AddTool(mcp.NewTool("replace_matching_text",
		mcp.WithDescription("Replace text matched by a whitespace-insensitive, fuzzy-tolerant search"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("searchText", mcp.Required()),
		mcp.WithString("replacementText", mcp.Required()),
		mcp.WithBoolean("replaceAllOccurrencesOfSearchText", mcp.Description("default false")),
	), s.handle("replace_matching_text", s.handleReplace))

	s.server.AddTool(mcp.NewTool("delete_matching_text",
		mcp.WithDescription("Delete text matched by a whitespace-insensitive, fuzzy-tolerant search"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("searchText", mcp.Required()),
		mcp.WithBoolean("deleteAllOccurrencesOfSearchText", mcp.Description("default false")),
	), s.handle("delete_matching_text", s.handleDelete))

	s.server.AddTool(mcp.NewTool("create_file",
		mcp.WithDescription("Create a new file"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("fileContent", mcp.Description("default empty")),
		mcp.WithBoolean("createMissingDirectories", mcp.Description("default false")),
	), s.handle("create_file", s.handleCreate))

	s.server.AddTool(mcp.NewTool("overwrite_file_content",
		mcp.WithDescription("Replace an existing file's entire content"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("fileContent", mcp.Required()),
	), s.handle("overwrite_file_content", s.handleOverwrite))

	s.server.AddTool(mcp.NewTool("append_text_to_file",
		mcp.WithDescription("Append text to the end of a file"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("appendText", mcp.Required()),
		mcp.WithBoolean("addNewLineBeforeAppending", mcp.Description("default true")),
	), s.handle("append_text_to_file", s.handleAppend))

	s.server.AddTool(mcp.NewTool("insert_text",
		mcp.WithDescription("Insert text relative to an anchor, optionally scoped to a marker block"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("textToBeInserted", mcp.Required()),
		mcp.WithString("anchorText", mcp.Required()),
		mcp.WithString("positionRelativeToAnchorText", mcp.Required(), mcp.Enum("before", "after")),
		mcp.WithString("anchorBlockStartMarker"),
		mcp.WithString("anchorBlockEndMarker"),
		mcp.WithBoolean("addNewLine", mcp.Description("default false")),
	), s.handle("insert_text", s.handleInsert))

	s.server.AddTool(mcp.NewTool("move_text",
		mcp.WithDescription("Move text to a position relative to an anchor, optionally scoped to a marker block"),
		mcp.WithString("filePath", mcp.Required()),
		mcp.WithString("textToBeMoved", mcp.Required()),
		mcp.WithString("anchorText", mcp.Required()),
		mcp.WithString("positionRelativeToAnchorText", mcp.Required(), mcp.Enum("before", "after")),
		mcp.WithString("anchorBlockStartMarker"),
		mcp.WithString("anchorBlockEndMarker"),
	), s.handle("move_text", s.handleMove))

	s.server.AddTool(mcp.NewTool("move_or_rename_file",
		mcp.WithDescription("Move or rename a file within the workspace"),
		mcp.WithString("sourceFilePath", mcp.Required()),
		mcp.WithString("targetFilePath", mcp.Required()),
		mcp.WithBoolean("createMissingDirectories", mcp.Description("default false")),
	), s.handle("move_or_rename_file", s.handleMoveOrRename))

	s.server.AddTool(mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a file"),
		mcp.WithString("filePath", mcp.Required()),
	), s.handle("delete_file", s.handleDeleteFile))
}

type toolFunc func(args map[string]interface{}) (OpResult, error)

// handle wraps a tool's argument-extraction+operator call with request
// correlation logging and structured error recovery, so no operator error
// ever escapes as a transport-level failure.
func (s *MCPServer) handle(name string, fn toolFunc) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reqID := uuid.NewString()
		logger := s.log.With().Str("request_id", reqID).Str("tool", name).Logger()

		args := request.Params.Arguments
		argMap, ok := args.(map[string]interface{})
		if !ok {
			argMap = map[string]interface{}{}
		}

		result, err := fn(argMap)
		if err != nil {
			logger.Info().Err(err).Msg("tool call failed")
			return formatError(err), nil
		}
		logger.Info().Str("message", result.Message).Msg("tool call succeeded")
		return formatSuccess(result), nil
	}
}

func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func argStringPtr(args map[string]interface{}, key string) *string {
	s := argString(args, key)
	if s == "" {
		return nil
	}
	return &s
}

// argBool coerces common truthy/falsy textual representations.
func argBool(args map[string]interface{}, key string, def bool) bool {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "on":
			return true
		case "false", "0", "no", "n", "off":
			return false
		}
	}
	return def
}

func (s *MCPServer) handleReplace(args map[string]interface{}) (OpResult, error) {
	return s.editor.ReplaceMatchingText(
		argString(args, "filePath"),
		argString(args, "searchText"),
		argString(args, "replacementText"),
		argBool(args, "replaceAllOccurrencesOfSearchText", false),
	)
}

func (s *MCPServer) handleDelete(args map[string]interface{}) (OpResult, error) {
	return s.editor.DeleteMatchingText(
		argString(args, "filePath"),
		argString(args, "searchText"),
		argBool(args, "deleteAllOccurrencesOfSearchText", false),
	)
}

func (s *MCPServer) handleCreate(args map[string]interface{}) (OpResult, error) {
	return s.editor.CreateFile(
		argString(args, "filePath"),
		argString(args, "fileContent"),
		argBool(args, "createMissingDirectories", false),
	)
}

func (s *MCPServer) handleOverwrite(args map[string]interface{}) (OpResult, error) {
	return s.editor.OverwriteFileContent(
		argString(args, "filePath"),
		argString(args, "fileContent"),
	)
}

func (s *MCPServer) handleAppend(args map[string]interface{}) (OpResult, error) {
	return s.editor.AppendTextToFile(
		argString(args, "filePath"),
		argString(args, "appendText"),
		argBool(args, "addNewLineBeforeAppending", true),
	)
}

func (s *MCPServer) handleInsert(args map[string]interface{}) (OpResult, error) {
	return s.editor.InsertText(
		argString(args, "filePath"),
		argString(args, "textToBeInserted"),
		argString(args, "anchorText"),
		argString(args, "positionRelativeToAnchorText"),
		argStringPtr(args, "anchorBlockStartMarker"),
		argStringPtr(args, "anchorBlockEndMarker"),
		argBool(args, "addNewLine", false),
	)
}

func (s *MCPServer) handleMove(args map[string]interface{}) (OpResult, error) {
	return s.editor.MoveText(
		argString(args, "filePath"),
		argString(args, "textToBeMoved"),
		argString(args, "anchorText"),
		argString(args, "positionRelativeToAnchorText"),
		argStringPtr(args, "anchorBlockStartMarker"),
		argStringPtr(args, "anchorBlockEndMarker"),
	)
}

func (s *MCPServer) handleMoveOrRename(args map[string]interface{}) (OpResult, error) {
	return s.editor.MoveOrRenameFile(
		argString(args, "sourceFilePath"),
		argString(args, "targetFilePath"),
		argBool(args, "createMissingDirectories", false),
	)
}

func (s *MCPServer) handleDeleteFile(args map[string]interface{}) (OpResult, error) {
	return s.editor.DeleteFile(argString(args, "filePath"))
}

// formatSuccess and formatError build the {isError, content, structuredContent}
// response shape: content carries a JSON-encoded fallback for clients
// that don't read structuredContent, which carries the same payload typed.
func formatSuccess(result OpResult) *mcp.CallToolResult {
	structured := map[string]interface{}{"message": result.Message}
	payload, _ := json.Marshal(structured)
	return &mcp.CallToolResult{
		IsError:           false,
		Content:           []mcp.Content{mcp.TextContent{Type: "text", Text: string(payload)}},
		StructuredContent: structured,
	}
}

func formatError(err error) *mcp.CallToolResult {
	structured := map[string]interface{}{"message": err.Error()}

	var opError *OpError
	if errors.As(err, &opError) && len(opError.Suggestions) > 0 {
		structured["SuggestedParameterValues"] = opError.Suggestions
	}

	payload, _ := json.Marshal(structured)
	return &mcp.CallToolResult{
		IsError:           true,
		Content:           []mcp.Content{mcp.TextContent{Type: "text", Text: string(payload)}},
		StructuredContent: structured,
	}
}

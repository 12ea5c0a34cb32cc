// Command fileloom runs the fuzzy file-editing MCP server over stdio.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"fileloom/internal/file_editor"
)

func main() {
	workspaceRoot := flag.String("workspace", ".", "workspace root all file paths are resolved against")
	logLevel := flag.String("log-level", "", "zerolog level (trace, debug, info, warn, error); defaults to info")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("example.env")
	}
	if *logLevel == "" {
		if envLevel := os.Getenv("FILELOOM_LOG_LEVEL"); envLevel != "" {
			*logLevel = envLevel
		}
	}
	if root := os.Getenv("FILELOOM_WORKSPACE_ROOT"); root != "" && *workspaceRoot == "." {
		*workspaceRoot = root
	}

	logger := file_editor.InitLogger(*logLevel)
	logger.Info().Str("workspace_root", *workspaceRoot).Msg("starting fileloom MCP server")

	srv, err := file_editor.NewMCPServer(*workspaceRoot, logger)
	if err != nil {
		log.Fatalf("creating MCP server: %v", err)
	}

	if err := server.ServeStdio(srv.GetServer()); err != nil {
		logger.Fatal().Err(err).Msg("MCP server stopped with error")
	}
}

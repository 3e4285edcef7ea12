package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/cmdmend/client"
	"github.com/fwojciec/cmdmend/engine"
)

// Dependencies holds all services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// RunCommand executes a user-confirmed fix suggestion in the
	// shell. The pipeline itself only ever returns suggestions.
	RunCommand func(ctx context.Context, command string) error

	// Engine runs the pipeline in-process when no server is available.
	Engine *engine.Engine

	// Client talks to a running session server.
	Client *client.Client

	SocketPath string
	LockPath   string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	OllamaURL      string `help:"Ollama server URL." env:"CMDMEND_OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	ChatModel      string `help:"Model used for generation." env:"CMDMEND_CHAT_MODEL" default:"llama3.2"`
	EmbeddingModel string `help:"Model used for embeddings." env:"CMDMEND_EMBEDDING_MODEL" default:"nomic-embed-text"`
	TopK           int    `help:"Passages to retrieve per question." env:"CMDMEND_TOP_K" default:"5"`
	LogLevel       string `help:"Log level (debug, info, warn, error)." env:"CMDMEND_LOG_LEVEL" default:"warn"`

	Ask         AskCmd         `cmd:"" help:"Ask a question about CLI tools"`
	Fix         FixCmd         `cmd:"" help:"Suggest a fix for the last failed command"`
	FixInternal FixInternalCmd `cmd:"" hidden:"" name:"fix-internal" help:"Print only the fix command (shell integration)"`
	Serve       ServeCmd       `cmd:"" help:"Start the session server to keep models warm"`
	Refresh     RefreshCmd     `cmd:"" help:"Re-fetch and re-index documentation for a tool"`
	Stop        StopCmd        `cmd:"" help:"Stop the session server"`
	Status      StatusCmd      `cmd:"" help:"Report session server status"`
	Init        InitCmd        `cmd:"" help:"Print shell integration script"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Your CLI question"`
}

// FixCmd is the "fix" subcommand.
type FixCmd struct {
	Command  string `short:"c" help:"Failed command (defaults to __CMDMEND_LAST_CMD)"`
	ExitCode int    `short:"x" default:"-1" help:"Exit code (defaults to __CMDMEND_EXIT_CODE)"`
	Execute  bool   `short:"e" help:"Run the suggested fix after confirmation"`
}

// FixInternalCmd is the hidden subcommand called by the shell hook. It
// prints only the suggested command so the hook can offer to run it.
type FixInternalCmd struct {
	Command  string `short:"c" required:"" help:"The failed command"`
	ExitCode int    `short:"x" default:"1" help:"Exit code"`
	Stderr   string `help:"Command stderr"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Foreground bool `short:"f" help:"Run in the foreground"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	Tool string `arg:"" help:"Tool whose documentation to rebuild"`
}

// StopCmd is the "stop" subcommand.
type StopCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// InitCmd is the "init" subcommand.
type InitCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`
	Alias string `short:"a" default:"mend" help:"Name of the shell function to define"`
}

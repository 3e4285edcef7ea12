package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/cheat"
	"github.com/fwojciec/cmdmend/client"
	"github.com/fwojciec/cmdmend/engine"
	"github.com/fwojciec/cmdmend/gocache"
	"github.com/fwojciec/cmdmend/man"
	"github.com/fwojciec/cmdmend/ollama"
	cmdslog "github.com/fwojciec/cmdmend/slog"
	"github.com/fwojciec/cmdmend/sqlite"
	"github.com/fwojciec/cmdmend/tldr"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Home directory for the database, socket and lock. Set before
	// calling Run().
	HomeDir string

	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services exposed for end-to-end testing.
	DocService     cmdmend.DocService
	PassageService cmdmend.PassageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	home := defaultHomeDir()
	return &Main{
		HomeDir: home,
		DBPath:  defaultDBPath(home),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:        ctx,
		Stdin:      os.Stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		RunCommand: runShellCommand,
		SocketPath: filepath.Join(m.HomeDir, "cmdmend.sock"),
		LockPath:   filepath.Join(m.HomeDir, "cmdmend.lock"),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cmdmend"),
		kong.Description("CLI assistant grounded in local documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cmdmend --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogLevel)
	deps.Client = client.New(deps.SocketPath)

	// The pipeline is wired for every command that may run it; model
	// weights live in the Ollama server, so construction is cheap.
	switch cmd {
	case "ask", "fix", "fix-internal", "refresh", "serve":
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CMDMEND_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.DocService = sqlite.NewDocService(m.DB)
		m.PassageService = sqlite.NewPassageService(m.DB)

		eng, err := m.buildEngine(cli, deps.Logger)
		if err != nil {
			return err
		}
		deps.Engine = eng
	}

	return kongCtx.Run(deps)
}

// buildEngine wires the in-process pipeline from CLI configuration.
func (m *Main) buildEngine(cli *CLI, logger *slog.Logger) (*engine.Engine, error) {
	cfg := ollama.Config{
		ServerURL:      cli.OllamaURL,
		ChatModel:      cli.ChatModel,
		EmbeddingModel: cli.EmbeddingModel,
	}

	completer, err := ollama.NewCompleter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create completer: %w", err)
	}

	embedder, err := ollama.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	sources := []cmdmend.Source{
		cmdslog.NewLoggingSource(man.NewSource(), logger),
		cmdslog.NewLoggingSource(tldr.NewSource(), logger),
		cmdslog.NewLoggingSource(cheat.NewSource(), logger),
	}

	return &engine.Engine{
		Completer: cmdslog.NewLoggingCompleter(completer, logger),
		Embedder:  gocache.NewEmbedder(cmdslog.NewLoggingEmbedder(embedder, logger), 0),
		Sources:   sources,
		Docs:      m.DocService,
		Passages:  m.PassageService,
		Logger:    logger,
		TopK:      cli.TopK,
	}, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	ll := slog.LevelWarn
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ll}))
}

func defaultHomeDir() string {
	if dir := os.Getenv("CMDMEND_HOME"); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".cmdmend")
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

func defaultDBPath(homeDir string) string {
	if path := os.Getenv("CMDMEND_DB"); path != "" {
		return path
	}
	return filepath.Join(homeDir, "cmdmend.db")
}

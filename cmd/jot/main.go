package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/jot/internal/archive"
	"github.com/hpungsan/jot/internal/config"
	"github.com/hpungsan/jot/internal/mcp"
	"github.com/hpungsan/jot/internal/session"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"save": true, "apply": true, "render": true,
	"sessions": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
     _       _
    (_) ___ | |_
    | |/ _ \| __|
    | | (_) | |_
   _/ |\___/ \__|
  |__/

  Session-local fact store

  Usage: jot <command> [options]
         jot --help

  MCP server mode requires piped input.
  Facts live in memory for the life of the process.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any setup
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := config.DefaultConfig()
	if homeDir, err := os.UserHomeDir(); err == nil {
		loaded, err := config.Load(filepath.Join(homeDir, ".jot"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Warn about config typos before they silently disable nothing.
	for _, name := range mcp.ValidateDisabledTools(cfg.DisabledTools) {
		fmt.Fprintf(os.Stderr, "warning: unknown tool in disabled_tools: %q\n", name)
	}
	for _, name := range mcp.ValidateDisabledTypes(cfg.DisabledTypes) {
		fmt.Fprintf(os.Stderr, "warning: unknown type in disabled_types: %q\n", name)
	}

	// The archive is in-memory and dies with the process.
	arch, err := archive.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open archive: %v\n", err)
		os.Exit(1)
	}
	defer arch.Close()

	mgr := session.NewManager(arch)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(mgr, cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'jot --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(mgr, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lea-labs/ustree/internal/config"
	"github.com/lea-labs/ustree/internal/mcptools"
	"github.com/lea-labs/ustree/internal/parser"
)

// CLI flags parsed from command line.
type cliFlags struct {
	Language  string
	Detect    bool
	Analyze   bool
	Mermaid   bool
	Export    bool
	Languages bool
	Index     string
	ServeMCP  bool
	Addr      string
	StorePath string
	Workers   int
	Verbose   bool
	Version   bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("ustree", flag.ContinueOnError)
	fs.StringVar(&flags.Language, "lang", "", "source language (default: resolved from the file extension)")
	fs.BoolVar(&flags.Detect, "detect", false, "detect the language of the input and exit")
	fs.BoolVar(&flags.Analyze, "analyze", false, "print a metric summary instead of the tree")
	fs.BoolVar(&flags.Mermaid, "mermaid", false, "print a Mermaid diagram instead of the tree")
	fs.BoolVar(&flags.Export, "export", false, "print a JSON report of the tree store and exit")
	fs.BoolVar(&flags.Languages, "languages", false, "list supported languages and exit")
	fs.StringVar(&flags.Index, "index", "", "index every source file under the given directory")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as MCP server over HTTP")
	fs.StringVar(&flags.Addr, "addr", "localhost:8192", "listen address for -serve-mcp")
	fs.StringVar(&flags.StorePath, "store", "", "path to a persistent tree store (default: in-memory)")
	fs.IntVar(&flags.Workers, "workers", 0, "maximum concurrent parse workers for -index")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: ustree [flags] [file]\n\n")
		fmt.Fprintf(fs.Output(), "Parses the file (or stdin when omitted) and prints its universal\nsyntax tree as canonical JSON.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	// Project config fills in what the flags leave unset.
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.StorePath == "" {
		flags.StorePath = cfg.StorePath
	}
	if flags.Workers == 0 {
		flags.Workers = cfg.Workers
	}
	flags.Verbose = flags.Verbose || cfg.Verbose

	reg := parser.NewDefaultRegistry()

	switch {
	case flags.Languages:
		return runLanguages(reg)
	case flags.ServeMCP:
		return runServeMCP(flags, reg)
	case flags.Index != "":
		return runIndex(flags, cfg, reg)
	case flags.Detect:
		return runDetect(flags, reg, fs.Arg(0))
	case flags.Analyze:
		return runAnalyze(flags, reg, fs.Arg(0))
	case flags.Mermaid:
		return runMermaid(flags, reg, fs.Arg(0))
	case flags.Export:
		return runExport(flags)
	default:
		return runParse(flags, reg, fs.Arg(0))
	}
}

// runServeMCP serves the MCP tools over streamable HTTP until interrupted.
func runServeMCP(flags cliFlags, reg *parser.Registry) error {
	store, err := openStore(flags.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	svc := mcptools.NewASTService(reg, store)
	fmt.Fprintf(os.Stderr, "ustree MCP server listening on %s\n", flags.Addr)
	return mcptools.RunMCPServer(ctx, svc, flags.Addr)
}

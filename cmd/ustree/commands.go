package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lea-labs/ustree/internal/analysis"
	"github.com/lea-labs/ustree/internal/config"
	"github.com/lea-labs/ustree/internal/export"
	"github.com/lea-labs/ustree/internal/indexer"
	"github.com/lea-labs/ustree/internal/parser"
)

// readInput returns the source bytes for path, reading stdin when path is
// empty or "-".
func readInput(path string) ([]byte, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "", err
	}
	data, err := os.ReadFile(path)
	return data, path, err
}

// runParse parses the input and prints the canonical JSON tree.
func runParse(flags cliFlags, reg *parser.Registry, path string) error {
	source, filePath, err := readInput(path)
	if err != nil {
		return err
	}

	tree, err := parser.ParseCode(reg, source, flags.Language, filePath)
	if err != nil {
		return err
	}
	if flags.Verbose {
		fmt.Fprintf(os.Stderr, "parsed %d nodes\n", tree.NodeCount())
	}

	out, err := tree.ToCanonical()
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runDetect prints the detected language of the input, or "unknown".
func runDetect(flags cliFlags, reg *parser.Registry, path string) error {
	source, filePath, err := readInput(path)
	if err != nil {
		return err
	}

	lang := parser.DetectLanguage(reg, source, filePath)
	if lang == "" {
		lang = "unknown"
	}
	fmt.Println(lang)
	return nil
}

// runAnalyze parses the input and prints the metric summary as JSON.
func runAnalyze(flags cliFlags, reg *parser.Registry, path string) error {
	source, filePath, err := readInput(path)
	if err != nil {
		return err
	}

	tree, err := parser.ParseCode(reg, source, flags.Language, filePath)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(analysis.Summarize(tree), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runMermaid parses the input and prints a Mermaid diagram of the tree.
func runMermaid(flags cliFlags, reg *parser.Registry, path string) error {
	source, filePath, err := readInput(path)
	if err != nil {
		return err
	}

	tree, err := parser.ParseCode(reg, source, flags.Language, filePath)
	if err != nil {
		return err
	}
	fmt.Print(export.GenerateMermaid(tree))
	return nil
}

// runExport prints a JSON report of every tree in the store.
func runExport(flags cliFlags) error {
	store, err := openStore(flags.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	report, err := export.ExportStore(ctx, store)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runLanguages prints one line per supported language.
func runLanguages(reg *parser.Registry) error {
	for _, name := range reg.Languages() {
		info := reg.Get(name).Info()
		fmt.Printf("%-12s %-10s %s\n", info.Name, info.Version, strings.Join(info.Extensions, " "))
	}
	return nil
}

// runIndex walks a directory, parses every recognized file and stores the
// trees, then prints a run summary.
func runIndex(flags cliFlags, cfg *config.ProjectConfig, reg *parser.Registry) error {
	store, err := openStore(flags.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	opts := indexer.Options{
		Workers:     flags.Workers,
		ExcludeDirs: cfg.ExcludeDirs,
	}
	if flags.Verbose {
		opts.OnFile = func(fr indexer.FileResult) {
			if fr.Err != nil {
				fmt.Fprintf(os.Stderr, "fail  %s: %v\n", fr.Path, fr.Err)
				return
			}
			fmt.Fprintf(os.Stderr, "ok    %s (%d nodes)\n", fr.Path, fr.NodeCount)
		}
	}

	res, err := indexer.IndexDir(ctx, reg, store, flags.Index, opts)
	if err != nil {
		return err
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("parsed %d, skipped %d, failed %d (%d nodes)\n",
		res.Parsed, res.Skipped, res.Failed, res.NodeCount)
	fmt.Printf("store: %d trees, %d nodes\n", stats.TreeCount, stats.NodeCount)
	return nil
}

// Package indexer walks a source tree, parses every recognized file and
// persists the resulting syntax trees into a treestore.Store.
package indexer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/lea-labs/ustree/internal/parser"
	"github.com/lea-labs/ustree/internal/treestore"
)

// Options controls an indexing run.
type Options struct {
	// Workers caps concurrent parse goroutines. Zero or negative means 4.
	Workers int

	// ExcludeDirs are directory base names skipped entirely during the walk.
	ExcludeDirs []string

	// OnFile, if non-nil, is called synchronously from worker goroutines
	// once per processed file.
	OnFile func(FileResult)
}

// FileResult records the outcome of indexing one file. Err is nil on
// success; a parse failure fills Err and leaves TreeID empty.
type FileResult struct {
	Path      string
	Language  string
	TreeID    string
	NodeCount int
	Err       error
}

// Result aggregates an indexing run. Skipped counts files whose extension
// no registered parser claims.
type Result struct {
	Parsed    int
	Skipped   int
	Failed    int
	NodeCount int
	Files     []FileResult
}

// defaultExcludes are skipped even when Options.ExcludeDirs is empty.
var defaultExcludes = []string{".git", "node_modules", "vendor", "__pycache__"}

// IndexDir walks root, parses every file a registered parser claims and
// stores the trees. Files are parsed in parallel; a parse failure is
// recorded per file and does not abort the run, but a storage failure
// cancels the remaining work and is returned.
func IndexDir(ctx context.Context, reg *parser.Registry, store treestore.Store, root string, opts Options) (*Result, error) {
	excluded := make(map[string]bool)
	for _, d := range defaultExcludes {
		excluded[d] = true
	}
	for _, d := range opts.ExcludeDirs {
		excluded[d] = true
	}

	result := &Result{}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if reg.GetByExtension(filepath.Ext(path)) == nil {
			result.Skipped++
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	files := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			fr, storeErr := indexFile(gctx, reg, store, path)
			files[i] = fr
			if opts.OnFile != nil {
				opts.OnFile(fr)
			}
			return storeErr // non-nil cancels remaining goroutines
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Files = files
	for _, fr := range files {
		if fr.Err != nil {
			result.Failed++
			continue
		}
		result.Parsed++
		result.NodeCount += fr.NodeCount
	}
	return result, nil
}

// indexFile reads, parses and stores a single file. Read and parse failures
// are recorded in the FileResult; only a storage failure is returned as an
// error, since it means the run as a whole cannot complete.
func indexFile(ctx context.Context, reg *parser.Registry, store treestore.Store, path string) (FileResult, error) {
	fr := FileResult{Path: path}
	if lang, ok := reg.LanguageForExtension(filepath.Ext(path)); ok {
		fr.Language = lang
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fr.Err = err
		return fr, nil
	}

	tree, err := parser.ParseCode(reg, source, "", path)
	if err != nil {
		fr.Err = err
		return fr, nil
	}

	id, err := store.PutTree(ctx, tree)
	if err != nil {
		fr.Err = err
		return fr, err
	}
	fr.TreeID = id
	fr.NodeCount = tree.NodeCount()
	return fr, nil
}

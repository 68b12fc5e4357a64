package export

import (
	"context"
	"fmt"
	"time"

	"github.com/lea-labs/ustree/internal/analysis"
	"github.com/lea-labs/ustree/internal/treestore"
)

// StoreExport is the top-level JSON export structure for a tree store.
type StoreExport struct {
	ExportedAt string       `json:"exportedAt"`
	TreeCount  int          `json:"treeCount"`
	NodeCount  int          `json:"nodeCount"`
	Trees      []TreeExport `json:"trees,omitempty"`
}

// TreeExport describes one stored tree: its summary metadata plus the
// metric report computed from the full tree.
type TreeExport struct {
	ID       string           `json:"id"`
	FilePath string           `json:"filePath,omitempty"`
	Language string           `json:"language,omitempty"`
	Summary  analysis.Summary `json:"summary"`
}

// ExportStore builds a StoreExport from every tree in the store.
func ExportStore(ctx context.Context, store treestore.Store) (*StoreExport, error) {
	metas, err := store.ListTrees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trees: %w", err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	export := &StoreExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		TreeCount:  stats.TreeCount,
		NodeCount:  stats.NodeCount,
	}

	for _, meta := range metas {
		tree, err := store.GetTree(ctx, meta.ID)
		if err != nil {
			return nil, fmt.Errorf("get tree %s: %w", meta.ID, err)
		}
		if tree == nil {
			continue // deleted between list and get
		}
		export.Trees = append(export.Trees, TreeExport{
			ID:       meta.ID,
			FilePath: meta.FilePath,
			Language: meta.Language,
			Summary:  *analysis.Summarize(tree),
		})
	}

	return export, nil
}

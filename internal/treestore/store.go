// Package treestore persists universal syntax trees and answers aggregate
// queries over them. Implementations: KuzuStore (production), MemStore
// (testing and CGO-free builds).
package treestore

import (
	"context"
	"io"

	"github.com/lea-labs/ustree/internal/ust"
)

// TreeMeta is the stored summary of one persisted tree. The tree id is the
// root node's id, so storing the same parse result twice overwrites rather
// than duplicates.
type TreeMeta struct {
	ID        string `json:"id"`
	FilePath  string `json:"file_path"`
	Language  string `json:"language"`
	NodeCount int    `json:"node_count"`
}

// StoreStats reports aggregate counts across the whole store.
type StoreStats struct {
	TreeCount int `json:"tree_count"`
	NodeCount int `json:"node_count"`
}

// Store is the interface for the syntax tree backend. Trees round-trip
// losslessly: GetTree returns a tree canonically equal to what PutTree
// received.
type Store interface {
	io.Closer

	// Schema setup, called once before any data is inserted.
	InitSchema(ctx context.Context) error

	// Write operations.
	PutTree(ctx context.Context, tree *ust.UniversalSyntaxTree) (string, error)
	DeleteTree(ctx context.Context, id string) error

	// Read operations.
	GetTree(ctx context.Context, id string) (*ust.UniversalSyntaxTree, error)
	ListTrees(ctx context.Context) ([]TreeMeta, error)
	CountNodesByType(ctx context.Context, t ust.NodeType) (int, error)

	// Stats.
	Stats(ctx context.Context) (*StoreStats, error)
}

// metaFor derives the stored summary from a tree's metadata and shape.
func metaFor(tree *ust.UniversalSyntaxTree) TreeMeta {
	meta := TreeMeta{
		ID:        tree.Root.ID,
		NodeCount: tree.NodeCount(),
	}
	if lang, ok := tree.Metadata["language"].(string); ok {
		meta.Language = lang
	}
	if fp, ok := tree.Metadata["file_path"].(string); ok {
		meta.FilePath = fp
	}
	return meta
}

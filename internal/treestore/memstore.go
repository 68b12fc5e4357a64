package treestore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lea-labs/ustree/internal/ust"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// storedTree keeps the canonical serialized form plus derived counts. Holding
// the canonical bytes rather than the live pointer isolates the store from
// later mutation of the caller's tree and keeps GetTree semantics identical
// to the database-backed store.
type storedTree struct {
	meta      TreeMeta
	canonical []byte
	byType    map[ust.NodeType]int
}

// MemStore implements Store using Go maps. Thread-safe via sync.RWMutex.
type MemStore struct {
	mu    sync.RWMutex
	trees map[string]storedTree
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{trees: make(map[string]storedTree)}
}

// InitSchema is a no-op for the in-memory store.
func (m *MemStore) InitSchema(_ context.Context) error {
	return nil
}

// PutTree stores the tree keyed by its root id, overwriting any previous
// tree with the same id. It returns the tree id.
func (m *MemStore) PutTree(_ context.Context, tree *ust.UniversalSyntaxTree) (string, error) {
	if tree == nil || tree.Root == nil {
		return "", fmt.Errorf("treestore: refusing to store tree without root")
	}
	canonical, err := tree.ToCanonical()
	if err != nil {
		return "", fmt.Errorf("treestore: serialize tree: %w", err)
	}

	byType := make(map[ust.NodeType]int)
	countTypes(tree.Root, byType)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.trees[tree.Root.ID] = storedTree{
		meta:      metaFor(tree),
		canonical: canonical,
		byType:    byType,
	}
	return tree.Root.ID, nil
}

// DeleteTree removes the tree with the given id. Deleting an unknown id is
// not an error.
func (m *MemStore) DeleteTree(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trees, id)
	return nil
}

// GetTree returns the stored tree with the given id, or nil if not found.
func (m *MemStore) GetTree(_ context.Context, id string) (*ust.UniversalSyntaxTree, error) {
	m.mu.RLock()
	st, ok := m.trees[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	tree, err := ust.FromCanonical(st.canonical)
	if err != nil {
		return nil, fmt.Errorf("treestore: deserialize tree %s: %w", id, err)
	}
	return tree, nil
}

// ListTrees returns summaries of all stored trees, sorted by file path then id.
func (m *MemStore) ListTrees(_ context.Context) ([]TreeMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]TreeMeta, 0, len(m.trees))
	for _, st := range m.trees {
		out = append(out, st.meta)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			return out[i].FilePath < out[j].FilePath
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CountNodesByType returns the number of nodes of the given type across all
// stored trees.
func (m *MemStore) CountNodesByType(_ context.Context, t ust.NodeType) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, st := range m.trees {
		total += st.byType[t]
	}
	return total, nil
}

// Stats returns tree and node counts across the store.
func (m *MemStore) Stats(_ context.Context) (*StoreStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &StoreStats{TreeCount: len(m.trees)}
	for _, st := range m.trees {
		stats.NodeCount += st.meta.NodeCount
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// countTypes tallies node types over a subtree into counts.
func countTypes(n *ust.ASTNode, counts map[ust.NodeType]int) {
	counts[n.Type]++
	for _, c := range n.Children {
		countTypes(c, counts)
	}
}

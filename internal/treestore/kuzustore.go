//go:build cgo

package treestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/lea-labs/ustree/internal/ust"
)

// KuzuStore implements the Store interface using KuzuDB as the backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
//
// Each tree is stored twice over: the full canonical JSON on the SourceTree
// row (the lossless source of truth GetTree reads back), and one AstNode row
// per node so type-level queries run in the database instead of walking
// deserialized trees.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself for new
// databases. This enables persisted tree indexes that survive across runs.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS SourceTree(
		id STRING,
		file_path STRING,
		language STRING,
		node_count INT64,
		canonical STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS AstNode(
		id STRING,
		tree_id STRING,
		type STRING,
		start_line INT64,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS CONTAINS(FROM SourceTree TO AstNode)`,
	`CREATE REL TABLE IF NOT EXISTS PARENT_OF(FROM AstNode TO AstNode)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// PutTree stores the tree keyed by its root id, replacing any previous tree
// with the same id. It returns the tree id.
func (s *KuzuStore) PutTree(ctx context.Context, tree *ust.UniversalSyntaxTree) (string, error) {
	if tree == nil || tree.Root == nil {
		return "", fmt.Errorf("treestore: refusing to store tree without root")
	}
	canonical, err := tree.ToCanonical()
	if err != nil {
		return "", fmt.Errorf("treestore: serialize tree: %w", err)
	}

	id := tree.Root.ID
	if err := s.DeleteTree(ctx, id); err != nil {
		return "", err
	}

	meta := metaFor(tree)
	err = s.exec(
		`CREATE (t:SourceTree {
			id: $id,
			file_path: $fp,
			language: $lang,
			node_count: $nc,
			canonical: $canonical
		})`,
		map[string]any{
			"id":        id,
			"fp":        meta.FilePath,
			"lang":      meta.Language,
			"nc":        int64(meta.NodeCount),
			"canonical": string(canonical),
		},
	)
	if err != nil {
		return "", err
	}

	if err := s.insertNodes(id, tree.Root, ""); err != nil {
		return "", err
	}
	return id, nil
}

// insertNodes writes one AstNode row per node in the subtree, plus the
// CONTAINS edge to the owning tree and PARENT_OF edges between nodes.
func (s *KuzuStore) insertNodes(treeID string, n *ust.ASTNode, parentID string) error {
	startLine := 0
	if n.SourceRange != nil {
		startLine = n.SourceRange.Start.Line
	}
	err := s.exec(
		"CREATE (n:AstNode {id: $id, tree_id: $tid, type: $type, start_line: $sl})",
		map[string]any{
			"id":   n.ID,
			"tid":  treeID,
			"type": string(n.Type),
			"sl":   int64(startLine),
		},
	)
	if err != nil {
		return err
	}
	err = s.exec(
		`MATCH (t:SourceTree {id: $tid}), (n:AstNode {id: $id})
		 CREATE (t)-[:CONTAINS]->(n)`,
		map[string]any{"tid": treeID, "id": n.ID},
	)
	if err != nil {
		return err
	}
	if parentID != "" {
		err = s.exec(
			`MATCH (p:AstNode {id: $pid}), (c:AstNode {id: $cid})
			 CREATE (p)-[:PARENT_OF]->(c)`,
			map[string]any{"pid": parentID, "cid": n.ID},
		)
		if err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := s.insertNodes(treeID, c, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTree removes a tree and all its node rows. Deleting an unknown id is
// not an error.
func (s *KuzuStore) DeleteTree(_ context.Context, id string) error {
	err := s.exec(
		"MATCH (n:AstNode {tree_id: $id}) DETACH DELETE n",
		map[string]any{"id": id},
	)
	if err != nil {
		return err
	}
	return s.exec(
		"MATCH (t:SourceTree {id: $id}) DETACH DELETE t",
		map[string]any{"id": id},
	)
}

// ---------- Read operations ----------

// GetTree retrieves a tree by id, or returns nil if not found. The tree is
// rebuilt from its canonical form, so the result is canonically equal to
// what PutTree stored.
func (s *KuzuStore) GetTree(_ context.Context, id string) (*ust.UniversalSyntaxTree, error) {
	rows, err := s.query(
		"MATCH (t:SourceTree {id: $id}) RETURN t.canonical",
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	tree, err := ust.FromCanonical([]byte(toString(rows[0][0])))
	if err != nil {
		return nil, fmt.Errorf("treestore: deserialize tree %s: %w", id, err)
	}
	return tree, nil
}

// ListTrees returns summaries of all stored trees, sorted by file path then id.
func (s *KuzuStore) ListTrees(_ context.Context) ([]TreeMeta, error) {
	rows, err := s.query(
		`MATCH (t:SourceTree)
		 RETURN t.id, t.file_path, t.language, t.node_count
		 ORDER BY t.file_path, t.id`,
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]TreeMeta, 0, len(rows))
	for _, r := range rows {
		out = append(out, TreeMeta{
			ID:        toString(r[0]),
			FilePath:  toString(r[1]),
			Language:  toString(r[2]),
			NodeCount: toInt(r[3]),
		})
	}
	return out, nil
}

// CountNodesByType returns the number of nodes of the given type across all
// stored trees.
func (s *KuzuStore) CountNodesByType(_ context.Context, t ust.NodeType) (int, error) {
	rows, err := s.query(
		"MATCH (n:AstNode {type: $type}) RETURN count(n)",
		map[string]any{"type": string(t)},
	)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// ---------- Stats ----------

// Stats returns tree and node counts across the store.
func (s *KuzuStore) Stats(_ context.Context) (*StoreStats, error) {
	trees, err := s.countTable("SourceTree")
	if err != nil {
		return nil, err
	}
	nodes, err := s.countTable("AstNode")
	if err != nil {
		return nil, err
	}
	return &StoreStats{TreeCount: trees, NodeCount: nodes}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

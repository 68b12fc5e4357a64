//go:build cgo

package main

import "github.com/lea-labs/ustree/internal/treestore"

// openStore returns a file-backed KuzuDB store when a path is given, and an
// in-memory store otherwise.
func openStore(path string) (treestore.Store, error) {
	if path == "" {
		return treestore.NewMemStore(), nil
	}
	return treestore.NewKuzuFileStore(path)
}

//go:build !cgo

package main

import (
	"fmt"

	"github.com/lea-labs/ustree/internal/treestore"
)

// openStore without CGO only supports the in-memory store: the KuzuDB driver
// wraps a C library.
func openStore(path string) (treestore.Store, error) {
	if path != "" {
		return nil, fmt.Errorf("persistent store requires a CGO build")
	}
	return treestore.NewMemStore(), nil
}

// Package storage provides flat, string-keyed byte stores used to persist
// the portfolio collections. Every backend overwrites the whole value of
// a key on Put; there are no cross-key transactions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore is a flat string-keyed byte store.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys in lexical order
	Keys(ctx context.Context) ([]string, error)

	// Close releases the resources held by the store
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// checkKey rejects keys that could escape a file backend's directory.
func checkKey(key string) error {
	if !keyPattern.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}

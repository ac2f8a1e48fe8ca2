// Package blob is the object layer under the document-style stores: the
// accounts JSON document and the per-account marks CSV. A key is a
// slash-separated path. A single-segment key names a top-level object; a
// longer key starts with a namespace that has to be created before objects can
// be written under it. Namespaces are stored below NamespaceDir, apart from
// top-level objects, so no namespace name can shadow one.
//
// Two implementations exist: FSStore on the local filesystem and S3Store on
// any S3-compatible bucket.
package blob

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// NamespaceDir holds every namespace.
const NamespaceDir = "users"

// ErrNotExist is returned by Get when no object is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// ErrInvalidKey is returned for keys or namespaces that would escape the store.
var ErrInvalidKey = errors.New("invalid key")

// Store reads and replaces whole objects.
type Store interface {
	// Get returns the object stored at key or ErrNotExist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the object at key.
	Put(ctx context.Context, key string, data []byte) error
	// MakeNamespace creates an empty namespace. Existing namespaces are kept.
	MakeNamespace(ctx context.Context, name string) error
	// NamespaceExists reports whether MakeNamespace was called for name.
	NamespaceExists(ctx context.Context, name string) (bool, error)
	// RemoveNamespace deletes a namespace and whatever it holds. Missing
	// namespaces are not an error.
	RemoveNamespace(ctx context.Context, name string) error
}

// Join builds a key from segments.
func Join(parts ...string) string {
	return strings.Join(parts, "/")
}

// ValidateNamespace rejects names that are empty, relative path elements or
// contain separators.
func ValidateNamespace(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("namespace %q: %w", name, ErrInvalidKey)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("namespace %q: %w", name, ErrInvalidKey)
	}
	return nil
}

// location maps a key to its place in the store.
func location(key string) string {
	if strings.Contains(key, "/") {
		return NamespaceDir + "/" + key
	}
	return key
}

func validateKey(key string) error {
	if key == "" || key == NamespaceDir || strings.HasPrefix(key, "/") {
		return fmt.Errorf("key %q: %w", key, ErrInvalidKey)
	}
	for _, seg := range strings.Split(key, "/") {
		if err := ValidateNamespace(seg); err != nil {
			return fmt.Errorf("key %q: %w", key, ErrInvalidKey)
		}
	}
	return nil
}

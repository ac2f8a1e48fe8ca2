package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/markbook/internal/filex"
)

// FSStore keeps objects as files under a root directory; namespaces are
// subdirectories of root/NamespaceDir.
type FSStore struct {
	root string
}

// NewFSStore returns a store rooted at dir, creating dir if needed.
func NewFSStore(dir string) (*FSStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := filex.EnsureDir(abs); err != nil {
		return nil, err
	}
	return &FSStore{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *FSStore) Root() string { return s.root }

func (s *FSStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(location(key)))
}

func (s *FSStore) namespacePath(name string) string {
	return filepath.Join(s.root, NamespaceDir, name)
}

func (s *FSStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FSStore) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return filex.WriteAtomic(s.path(key), data, 0o660)
}

func (s *FSStore) MakeNamespace(ctx context.Context, name string) error {
	if err := ValidateNamespace(name); err != nil {
		return err
	}
	return filex.EnsureDir(s.namespacePath(name))
}

func (s *FSStore) NamespaceExists(ctx context.Context, name string) (bool, error) {
	if err := ValidateNamespace(name); err != nil {
		return false, err
	}
	return filex.IsDir(s.namespacePath(name))
}

func (s *FSStore) RemoveNamespace(ctx context.Context, name string) error {
	if err := ValidateNamespace(name); err != nil {
		return err
	}
	if err := os.RemoveAll(s.namespacePath(name)); err != nil {
		return fmt.Errorf("remove namespace %s: %w", name, err)
	}
	return nil
}

package storage

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore keeps contract documents on the local filesystem under a single
// root directory. Stored filenames are opaque UUID-based names chosen by the
// upload handler, so paths never contain user input.
type LocalStore struct {
	root   string
	logger *zap.Logger
}

func NewLocalStore(root string, logger ...*zap.Logger) (*LocalStore, error) {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}

	return &LocalStore{root: root, logger: l}, nil
}

// Root returns the upload directory, for handlers that stream uploads
// directly to disk.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) ResolveContractPath(storedFilename string) string {
	return filepath.Join(s.root, filepath.Base(storedFilename))
}

func (s *LocalStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *LocalStore) Delete(path string) bool {
	if err := os.Remove(path); err != nil {
		s.logger.Warn("delete stored document failed", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

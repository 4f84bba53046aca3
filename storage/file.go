package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// FileStore keeps the credential record in a single file on local disk.
// Writes go through a temporary file and a rename, so a reader sees either
// the previous record or the new one.
type FileStore struct {
	path        string
	codec       RecordCodec
	log         *slog.Logger
	locationURI string
}

// NewFileStore creates a file store at path, creating the parent directory
// when needed.
func NewFileStore(path string, codec RecordCodec, log *slog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("empty credential file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create credential directory: %w", err)
	}
	if codec == nil {
		codec = JSONCodec{}
	}

	return &FileStore{
		path:        path,
		codec:       codec,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", path),
	}, nil
}

// Load reads and decodes the record. A missing file is ErrCredentialsNotFound.
func (s *FileStore) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, interfaces.ErrCredentialsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	pair, err := s.codec.Decode(data)
	if err != nil {
		return nil, &interfaces.CacheCorruptError{Location: s.locationURI, Err: err}
	}

	s.log.Debug("Loaded credential record from file", slog.String("path", s.path))
	return pair, nil
}

// Save atomically replaces the record file.
func (s *FileStore) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	data, err := s.codec.Encode(pair)
	if err != nil {
		return fmt.Errorf("failed to encode credential record: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("failed to set record permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace credential record: %w", err)
	}

	s.log.Debug("Stored credential record in file", slog.String("path", s.path))
	return nil
}

// Available checks that the record directory exists.
func (s *FileStore) Available(ctx context.Context) bool {
	_, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		s.log.Debug("File store unavailable", "err", err)
		return false
	}
	return true
}

func (s *FileStore) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.path))
}

func (s *FileStore) LocationURI() string {
	return s.locationURI
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"chagual/internal/metrics"
)

const (
	DefaultLocalDir = "./uploads"
	DefaultLocalURL = "/static/uploads"
)

// LocalStore writes objects to disk under YYYY/MM/DD/ and publishes them
// below a static URL prefix.
type LocalStore struct {
	baseDir    string
	staticBase string
	now        func() time.Time
}

func NewLocalStore(baseDir, staticBase string) *LocalStore {
	if baseDir == "" {
		baseDir = DefaultLocalDir
	}
	if staticBase == "" {
		staticBase = DefaultLocalURL
	}
	return &LocalStore{
		baseDir:    baseDir,
		staticBase: strings.TrimSuffix(staticBase, "/"),
		now:        time.Now,
	}
}

func (s *LocalStore) Dir() string { return s.baseDir }

func (s *LocalStore) URLPrefix() string { return s.staticBase }

func (s *LocalStore) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", upstream(err)
	}

	now := s.now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		metrics.StorageUploads.WithLabelValues("local", "failure").Inc()
		return "", upstream(fmt.Errorf("failed to create upload directory: %w", err))
	}

	ext := filepath.Ext(name)
	if ext == "" {
		ext = extensionFor(contentType)
	}
	filename := fmt.Sprintf("%s_%s%s", uuid.New().String(), sanitizeName(name), ext)

	absPath := filepath.Join(absDir, filename)
	if err := os.WriteFile(absPath, data, 0644); err != nil {
		_ = os.Remove(absPath)
		metrics.StorageUploads.WithLabelValues("local", "failure").Inc()
		return "", upstream(fmt.Errorf("failed to write file: %w", err))
	}

	metrics.StorageUploads.WithLabelValues("local", "success").Inc()
	return s.staticBase + "/" + relDir + "/" + filename, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" || name == "_" {
		return "file"
	}
	return name
}

func extensionFor(contentType string) string {
	if m := mimetype.Lookup(contentType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".bin"
}

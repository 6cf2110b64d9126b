package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/pagesmith/pkg/errors"
	"github.com/matzehuels/pagesmith/pkg/model"
)

// FileStore keeps one JSON file per website in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.local/share/pagesmith/sites/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "pagesmith", "sites")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodePersistence, err, "create store dir %s", baseDir)
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

// Path returns the base directory for website files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) sitePath(id string) string {
	return filepath.Join(s.baseDir, filepath.Base(id)+".json")
}

func (s *FileStore) LoadWebsite(ctx context.Context, id string) (model.WebsiteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(id)
}

func (s *FileStore) load(id string) (model.WebsiteRecord, error) {
	data, err := os.ReadFile(s.sitePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return model.WebsiteRecord{}, NotFound(id)
		}
		return model.WebsiteRecord{}, persistence(err, "read", id)
	}
	w, err := Decode(data)
	if err != nil {
		return model.WebsiteRecord{}, err
	}
	w.ID = id
	return w, nil
}

func (s *FileStore) SaveWebsite(ctx context.Context, id string, req SaveRequest) (SaveResult, error) {
	w, err := Prepare(id, req, s.now())
	if err != nil {
		return SaveResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if other, err := s.findBySlug(w.Slug); err == nil && other.ID != w.ID {
		return SaveResult{}, SlugTaken(w.Slug)
	}

	data, err := Encode(w)
	if err != nil {
		return SaveResult{}, persistence(err, "encode", w.ID)
	}
	// Write to a temp file and rename so readers never see a partial file.
	tmp := s.sitePath(w.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return SaveResult{}, persistence(err, "write", w.ID)
	}
	if err := os.Rename(tmp, s.sitePath(w.ID)); err != nil {
		_ = os.Remove(tmp)
		return SaveResult{}, persistence(err, "write", w.ID)
	}
	return SaveResult{ID: w.ID, Domain: w.Domain}, nil
}

func (s *FileStore) ListWebsites(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all, err := s.all()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(all))
	for _, w := range all {
		out = append(out, Summarize(w))
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) FindBySlug(ctx context.Context, slug string) (model.WebsiteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findBySlug(slug)
}

func (s *FileStore) findBySlug(slug string) (model.WebsiteRecord, error) {
	all, err := s.all()
	if err != nil {
		return model.WebsiteRecord{}, err
	}
	for _, w := range all {
		if w.Slug == slug {
			return w, nil
		}
	}
	return model.WebsiteRecord{}, NotFound(slug)
}

// all loads every readable website; unreadable files are skipped.
func (s *FileStore) all() ([]model.WebsiteRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, persistence(err, "list", s.baseDir)
	}
	var out []model.WebsiteRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		w, err := s.load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *FileStore) DeleteWebsite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.sitePath(id)); err != nil && !os.IsNotExist(err) {
		return persistence(err, "delete", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)

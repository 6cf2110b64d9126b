package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/pagesmith/pkg/model"
)

// MemoryStore keeps encoded websites in a map. Values are stored as bytes so
// callers never share slices with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	sites map[string][]byte
	slugs map[string]string // slug -> id
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sites: make(map[string][]byte),
		slugs: make(map[string]string),
		now:   time.Now,
	}
}

// Put stores raw website JSON under id without preparing it, which lets tests
// seed legacy documents.
func (s *MemoryStore) Put(id string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[id] = append([]byte(nil), data...)
}

func (s *MemoryStore) LoadWebsite(ctx context.Context, id string) (model.WebsiteRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.WebsiteRecord{}, persistence(err, "load", id)
	}
	s.mu.RLock()
	data, ok := s.sites[id]
	s.mu.RUnlock()
	if !ok {
		return model.WebsiteRecord{}, NotFound(id)
	}
	w, err := Decode(data)
	if err != nil {
		return model.WebsiteRecord{}, err
	}
	w.ID = id
	return w, nil
}

func (s *MemoryStore) SaveWebsite(ctx context.Context, id string, req SaveRequest) (SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return SaveResult{}, persistence(err, "save", id)
	}
	w, err := Prepare(id, req, s.now())
	if err != nil {
		return SaveResult{}, err
	}
	data, err := Encode(w)
	if err != nil {
		return SaveResult{}, persistence(err, "encode", w.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.slugs[w.Slug]; ok && owner != w.ID {
		return SaveResult{}, SlugTaken(w.Slug)
	}
	for slug, owner := range s.slugs {
		if owner == w.ID {
			delete(s.slugs, slug)
		}
	}
	s.sites[w.ID] = data
	s.slugs[w.Slug] = w.ID
	return SaveResult{ID: w.ID, Domain: w.Domain}, nil
}

func (s *MemoryStore) ListWebsites(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.sites))
	for id, data := range s.sites {
		w, err := Decode(data)
		if err != nil {
			continue
		}
		w.ID = id
		out = append(out, Summarize(w))
	}
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) FindBySlug(ctx context.Context, slug string) (model.WebsiteRecord, error) {
	s.mu.RLock()
	id, ok := s.slugs[slug]
	s.mu.RUnlock()
	if !ok {
		return model.WebsiteRecord{}, NotFound(slug)
	}
	return s.LoadWebsite(ctx, id)
}

func (s *MemoryStore) DeleteWebsite(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sites, id)
	for slug, owner := range s.slugs {
		if owner == id {
			delete(s.slugs, slug)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

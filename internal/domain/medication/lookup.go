package medication

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedLookup resolves medications by name through a bounded LRU in front of
// the repository. Only hits are cached; reference data never changes while
// the process runs, so entries do not expire.
type CachedLookup struct {
	repo  MedicationRepository
	cache *lru.Cache[string, *Medication]
}

// NewCachedLookup creates a CachedLookup holding at most size entries.
func NewCachedLookup(repo MedicationRepository, size int) (*CachedLookup, error) {
	cache, err := lru.New[string, *Medication](size)
	if err != nil {
		return nil, fmt.Errorf("create medication lookup cache: %w", err)
	}
	return &CachedLookup{repo: repo, cache: cache}, nil
}

// FindByName returns the medication and true, or nil and false when the
// repository has no such medication. Repository failures other than
// ErrNotFound are returned.
func (l *CachedLookup) FindByName(ctx context.Context, name string) (*Medication, bool, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, false, nil
	}
	if m, ok := l.cache.Get(key); ok {
		return m, true, nil
	}

	m, err := l.repo.GetByName(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup medication %q: %w", name, err)
	}
	l.cache.Add(key, m)
	return m, true, nil
}

// Len returns the number of cached medications.
func (l *CachedLookup) Len() int {
	return l.cache.Len()
}

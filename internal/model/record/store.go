package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 12
)

var ErrInvalidPagination = errors.New("invalid pagination")

// Page is one window of the collection plus pagination metadata.
type Page struct {
	Page       int      `json:"page"`
	PerPage    int      `json:"per_page"`
	TotalPages int      `json:"total_pages"`
	Records    []Record `json:"records"`
}

// Snapshot describes the loaded collection.
type Snapshot struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Records  int       `json:"records"`
}

// Store exposes read-only record retrieval for HTTP handlers.
type Store interface {
	Len() int
	Page(page, perPage int) (Page, error)
	FindByID(id int) (Record, bool)
	Directors(id int) ([]Director, bool)
	Snapshot() Snapshot
}

// MemoryStore implements Store over an immutable in-memory slice. It is never
// written after construction, so concurrent readers need no locking.
type MemoryStore struct {
	items    []Record
	snapshot Snapshot
}

// NewMemoryStore returns a MemoryStore holding a private copy of items.
func NewMemoryStore(items []Record, source string) *MemoryStore {
	copied := make([]Record, len(items))
	for i, item := range items {
		copied[i] = item.clone()
	}

	return &MemoryStore{
		items: copied,
		snapshot: Snapshot{
			ID:       uuid.NewString(),
			Source:   source,
			LoadedAt: time.Now().UTC(),
			Records:  len(copied),
		},
	}
}

// Len returns the collection size.
func (s *MemoryStore) Len() int {
	return len(s.items)
}

// Snapshot returns the load metadata.
func (s *MemoryStore) Snapshot() Snapshot {
	return s.snapshot
}

// Page returns the records with indices in [(page-1)*perPage, page*perPage),
// clipped to the collection. Windows past the end are empty, not an error.
func (s *MemoryStore) Page(page, perPage int) (Page, error) {
	if perPage <= 0 {
		return Page{}, fmt.Errorf("%w: per_page must be positive, got %d", ErrInvalidPagination, perPage)
	}
	if page <= 0 {
		return Page{}, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidPagination, page)
	}

	total := len(s.items)
	result := Page{
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages(total, perPage),
		Records:    []Record{},
	}

	offset := page - 1
	if offset >= result.TotalPages {
		return result, nil
	}

	// offset < ceil(total/perPage), so start < total and cannot overflow.
	start := offset * perPage
	end := total
	if perPage < total-start {
		end = start + perPage
	}

	records := make([]Record, 0, end-start)
	for _, item := range s.items[start:end] {
		records = append(records, item.clone())
	}
	result.Records = records
	return result, nil
}

// FindByID returns the first record whose data_id matches.
func (s *MemoryStore) FindByID(id int) (Record, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item.clone(), true
		}
	}
	return Record{}, false
}

// Directors returns the director list of the first record whose data_id
// matches. An existing company with no directors yields an empty slice and
// true.
func (s *MemoryStore) Directors(id int) ([]Director, bool) {
	rec, ok := s.FindByID(id)
	if !ok {
		return nil, false
	}
	return rec.Directors, true
}

func totalPages(total, perPage int) int {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

func (r Record) clone() Record {
	directors := make([]Director, len(r.Directors))
	copy(directors, r.Directors)
	r.Directors = directors
	return r
}

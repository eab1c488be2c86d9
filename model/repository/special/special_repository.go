package special

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	entity "kms.GO/model/entity"
)

// ErrNotFound is returned for lookups, updates and deletes on an unknown id.
var ErrNotFound = errors.New("special not found")

// SpecialRepository owns the full specials collection in a single JSON file.
// Every read materializes the whole collection; every write rewrites it.
// A single mutex serializes read-modify-write cycles so concurrent handlers
// in this process cannot lose updates to each other.
type SpecialRepository struct {
	mu   sync.Mutex
	path string
}

func NewSpecialRepository(path string) *SpecialRepository {
	return &SpecialRepository{path: path}
}

// Path returns the backing file location.
func (r *SpecialRepository) Path() string {
	return r.path
}

// ReadAll returns the entire collection in on-disk order. A missing backing
// file is not an error: it is created as an empty collection.
func (r *SpecialRepository) ReadAll() ([]entity.Special, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAllLocked()
}

func (r *SpecialRepository) readAllLocked() ([]entity.Special, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", r.path, err)
		}
		if err := r.writeAllLocked([]entity.Special{}); err != nil {
			return nil, err
		}
		return []entity.Special{}, nil
	}
	var specials []entity.Special
	if err := json.Unmarshal(data, &specials); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return specials, nil
}

// WriteAll atomically replaces the on-disk collection with the given
// sequence, serialized as an indented JSON array.
func (r *SpecialRepository) WriteAll(specials []entity.Special) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeAllLocked(specials)
}

func (r *SpecialRepository) writeAllLocked(specials []entity.Special) error {
	if specials == nil {
		specials = []entity.Special{}
	}
	data, err := json.MarshalIndent(specials, "", "  ")
	if err != nil {
		return fmt.Errorf("encode specials: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "specials-*.json")
	if err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

// GetByID looks up a single special.
func (r *SpecialRepository) GetByID(id string) (entity.Special, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	specials, err := r.readAllLocked()
	if err != nil {
		return entity.Special{}, err
	}
	for _, s := range specials {
		if s.ID == id {
			return s, nil
		}
	}
	return entity.Special{}, ErrNotFound
}

// Create appends a new special. A missing id is generated; created_at and
// updated_at are stamped with the current instant.
func (r *SpecialRepository) Create(s entity.Special) (entity.Special, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	specials, err := r.readAllLocked()
	if err != nil {
		return entity.Special{}, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()
	s.CreatedAt = now
	s.UpdatedAt = now
	specials = append(specials, s)
	if err := r.writeAllLocked(specials); err != nil {
		return entity.Special{}, err
	}
	return s, nil
}

// Update overwrites the record with the same id field-by-field, preserving
// id and created_at and advancing updated_at.
func (r *SpecialRepository) Update(s entity.Special) (entity.Special, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	specials, err := r.readAllLocked()
	if err != nil {
		return entity.Special{}, err
	}
	for i, existing := range specials {
		if existing.ID != s.ID {
			continue
		}
		s.CreatedAt = existing.CreatedAt
		s.UpdatedAt = time.Now().UnixMilli()
		specials[i] = s
		if err := r.writeAllLocked(specials); err != nil {
			return entity.Special{}, err
		}
		return s, nil
	}
	return entity.Special{}, ErrNotFound
}

// Delete removes one special by id.
func (r *SpecialRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	specials, err := r.readAllLocked()
	if err != nil {
		return err
	}
	kept := specials[:0]
	for _, s := range specials {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(specials) {
		return ErrNotFound
	}
	return r.writeAllLocked(kept)
}

// DeleteAll clears the collection.
func (r *SpecialRepository) DeleteAll() error {
	return r.WriteAll([]entity.Special{})
}

// Count returns the number of stored specials.
func (r *SpecialRepository) Count() (int, error) {
	specials, err := r.ReadAll()
	if err != nil {
		return 0, err
	}
	return len(specials), nil
}

package repositories

import (
	"fmt"
	"sync"

	"agency/internal/models"

	"github.com/google/uuid"
)

// MemoryContentRepository is an in-memory implementation of ContentRepository,
// used by the "memory" database driver and as a test fixture.
type MemoryContentRepository[T any, P Document[T]] struct {
	docs map[string]T
	mu   sync.RWMutex
}

// NewMemoryContentRepository creates a new instance of MemoryContentRepository.
func NewMemoryContentRepository[T any, P Document[T]]() *MemoryContentRepository[T, P] {
	return &MemoryContentRepository[T, P]{
		docs: make(map[string]T),
	}
}

// GetAll returns all documents.
func (r *MemoryContentRepository[T, P]) GetAll() ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docList := make([]T, 0, len(r.docs))
	for _, d := range r.docs {
		docList = append(docList, d)
	}
	return docList, nil
}

// GetByID returns a document by its ID.
func (r *MemoryContentRepository[T, P]) GetByID(id string) (P, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("document with ID %s: %w", id, ErrNotFound)
	}
	return P(&doc), nil
}

// Create adds a new document, generating an ID when absent.
func (r *MemoryContentRepository[T, P]) Create(doc P) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.GetID() == "" {
		doc.SetID(uuid.New().String())
	}
	r.docs[doc.GetID()] = *doc
	return nil
}

// Upsert writes the document, inserting when no entry with its ID exists.
func (r *MemoryContentRepository[T, P]) Upsert(doc P) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc.GetID() == "" {
		doc.SetID(uuid.New().String())
	}
	r.docs[doc.GetID()] = *doc
	return nil
}

// Delete removes a document by its ID.
func (r *MemoryContentRepository[T, P]) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("document with ID %s: %w", id, ErrNotFound)
	}
	delete(r.docs, id)
	return nil
}

// MemoryTestimonialRepository is the in-memory counterpart of
// GORMTestimonialRepository.
type MemoryTestimonialRepository struct {
	MemoryContentRepository[models.Testimonial, *models.Testimonial]
}

// NewMemoryTestimonialRepository creates a new instance of MemoryTestimonialRepository.
func NewMemoryTestimonialRepository() *MemoryTestimonialRepository {
	return &MemoryTestimonialRepository{
		MemoryContentRepository: MemoryContentRepository[models.Testimonial, *models.Testimonial]{
			docs: make(map[string]models.Testimonial),
		},
	}
}

// GetCards returns the projected display fields of each testimonial.
func (r *MemoryTestimonialRepository) GetCards() ([]models.TestimonialCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]models.TestimonialCard, 0, len(r.docs))
	for _, t := range r.docs {
		cards = append(cards, models.TestimonialCard{
			ID:      t.ID,
			Name:    t.Name,
			Company: t.Company,
			Quote:   t.Quote,
			Rating:  t.Rating,
			Image:   t.Image,
		})
	}
	return cards, nil
}

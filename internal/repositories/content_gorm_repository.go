package repositories

import (
	"errors"
	"fmt"

	"agency/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMContentRepository is a GORM implementation of ContentRepository.
type GORMContentRepository[T any, P Document[T]] struct {
	db *gorm.DB
}

// NewGORMContentRepository creates a new instance of GORMContentRepository.
func NewGORMContentRepository[T any, P Document[T]](db *gorm.DB) *GORMContentRepository[T, P] {
	return &GORMContentRepository[T, P]{
		db: db,
	}
}

// GetAll retrieves all documents in the collection.
func (r *GORMContentRepository[T, P]) GetAll() ([]T, error) {
	var docs []T
	if err := r.db.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all documents: %w", err)
	}
	return docs, nil
}

// GetByID retrieves a single document by its ID.
func (r *GORMContentRepository[T, P]) GetByID(id string) (P, error) {
	var doc T
	if err := r.db.First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get document by ID %s: %w", id, err)
	}
	return P(&doc), nil
}

// Create inserts a new document, generating an ID when absent.
func (r *GORMContentRepository[T, P]) Create(doc P) error {
	if doc.GetID() == "" {
		doc.SetID(uuid.New().String())
	}
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// Upsert writes the document, inserting when no row with its ID exists.
// Writing the same document twice converges to the same stored state.
func (r *GORMContentRepository[T, P]) Upsert(doc P) error {
	if doc.GetID() == "" {
		doc.SetID(uuid.New().String())
	}
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// Delete removes a document by its ID.
func (r *GORMContentRepository[T, P]) Delete(id string) error {
	var doc T
	res := r.db.Delete(&doc, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("document with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// GORMTestimonialRepository extends the generic repository with the projected
// public read on the testimonials collection.
type GORMTestimonialRepository struct {
	GORMContentRepository[models.Testimonial, *models.Testimonial]
}

// NewGORMTestimonialRepository creates a new instance of GORMTestimonialRepository.
func NewGORMTestimonialRepository(db *gorm.DB) *GORMTestimonialRepository {
	return &GORMTestimonialRepository{
		GORMContentRepository: GORMContentRepository[models.Testimonial, *models.Testimonial]{db: db},
	}
}

// GetCards retrieves only the display fields of each testimonial.
func (r *GORMTestimonialRepository) GetCards() ([]models.TestimonialCard, error) {
	var cards []models.TestimonialCard
	err := r.db.Model(&models.Testimonial{}).
		Select("id", "name", "company", "quote", "rating", "image").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get testimonial cards: %w", err)
	}
	return cards, nil
}

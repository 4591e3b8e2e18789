package repositories

import "agency/internal/models"

// Document constrains a pointer to a content model that exposes its primary
// key. All content collections (services, products, team members, projects,
// testimonials) are flat documents with the same access pattern, so one
// generic repository serves them all.
type Document[T any] interface {
	*T
	GetID() string
	SetID(id string)
}

// ContentRepository defines point operations over a single content collection.
type ContentRepository[T any, P Document[T]] interface {
	GetAll() ([]T, error)
	GetByID(id string) (P, error)
	Create(doc P) error
	Upsert(doc P) error
	Delete(id string) error
}

// TestimonialRepository adds the projected public read used by the
// testimonials page on top of the usual point operations.
type TestimonialRepository interface {
	ContentRepository[models.Testimonial, *models.Testimonial]
	GetCards() ([]models.TestimonialCard, error)
}

package services

import (
	"agency/internal/models"
	"agency/internal/repositories"
)

// ContentService handles business logic for one content collection. Every
// collection is a set of flat documents with identical CRUD semantics, so a
// single generic service covers services, products, team members, projects
// and testimonials. Mutations publish an event named "<kind>.<action>".
type ContentService[T any, P repositories.Document[T]] struct {
	repo   repositories.ContentRepository[T, P]
	events EventPublisher
	kind   string
}

// NewContentService creates a new ContentService for one collection. kind is
// the event-routing name for the collection, e.g. "product" or "project".
func NewContentService[T any, P repositories.Document[T]](kind string, repo repositories.ContentRepository[T, P], events EventPublisher) *ContentService[T, P] {
	return &ContentService[T, P]{
		repo:   repo,
		events: events,
		kind:   kind,
	}
}

// GetAll retrieves all documents in the collection.
func (s *ContentService[T, P]) GetAll() ([]T, error) {
	return s.repo.GetAll()
}

// GetByID retrieves a single document by its ID.
func (s *ContentService[T, P]) GetByID(id string) (P, error) {
	return s.repo.GetByID(id)
}

// Create inserts a new document.
func (s *ContentService[T, P]) Create(doc P) error {
	if err := s.repo.Create(doc); err != nil {
		return err
	}
	publishEvent(s.events, s.kind+".created", map[string]interface{}{"id": doc.GetID()})
	return nil
}

// Upsert writes the document under the given ID, inserting when absent.
func (s *ContentService[T, P]) Upsert(id string, doc P) error {
	doc.SetID(id)
	if err := s.repo.Upsert(doc); err != nil {
		return err
	}
	publishEvent(s.events, s.kind+".updated", map[string]interface{}{"id": doc.GetID()})
	return nil
}

// Delete removes a document by its ID.
func (s *ContentService[T, P]) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	publishEvent(s.events, s.kind+".deleted", map[string]interface{}{"id": id})
	return nil
}

// TestimonialService wraps the testimonial collection, adding the projected
// public listing on top of the usual CRUD.
type TestimonialService struct {
	ContentService[models.Testimonial, *models.Testimonial]
	repo repositories.TestimonialRepository
}

// NewTestimonialService creates a new TestimonialService.
func NewTestimonialService(repo repositories.TestimonialRepository, events EventPublisher) *TestimonialService {
	return &TestimonialService{
		ContentService: *NewContentService[models.Testimonial, *models.Testimonial]("testimonial", repo, events),
		repo:           repo,
	}
}

// GetCards retrieves the public projection of all testimonials.
func (s *TestimonialService) GetCards() ([]models.TestimonialCard, error) {
	return s.repo.GetCards()
}

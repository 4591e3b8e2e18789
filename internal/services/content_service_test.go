package services_test

import (
	"testing"

	"agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func newProductService(events services.EventPublisher) *services.ContentService[models.Product, *models.Product] {
	repo := repositories.NewMemoryContentRepository[models.Product, *models.Product]()
	return services.NewContentService[models.Product, *models.Product]("product", repo, events)
}

func TestContentService_CreateAssignsIDAndPublishes(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	mockEvents.On("PublishEvent", "product.created", mock.Anything).Return(nil).Once()
	svc := newProductService(mockEvents)

	product := &models.Product{Name: "Landing Page", Price: 499}
	err := svc.Create(product)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)

	fetched, err := svc.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Landing Page", fetched.Name)
	mockEvents.AssertExpectations(t)
}

func TestContentService_UpsertConverges(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	mockEvents.On("PublishEvent", "product.updated", mock.Anything).Return(nil).Times(3)
	svc := newProductService(mockEvents)

	// Upsert with an unknown ID inserts.
	doc := &models.Product{Name: "Brand Kit", Price: 250}
	err := svc.Upsert("prod-1", doc)
	assert.NoError(t, err)
	assert.Equal(t, "prod-1", doc.ID)

	// The same body applied twice converges to the same stored document.
	for i := 0; i < 2; i++ {
		upd := &models.Product{Name: "Brand Kit v2", Price: 300}
		err = svc.Upsert("prod-1", upd)
		assert.NoError(t, err)
	}

	fetched, err := svc.GetByID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, "Brand Kit v2", fetched.Name)
	assert.Equal(t, 300.0, fetched.Price)

	all, err := svc.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	mockEvents.AssertExpectations(t)
}

func TestContentService_PublishFailureDoesNotFailMutation(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	mockEvents.On("PublishEvent", "product.created", mock.Anything).Return(assert.AnError).Once()
	svc := newProductService(mockEvents)

	product := &models.Product{Name: "SEO Audit", Price: 150}
	err := svc.Create(product)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestContentService_DeleteMissing(t *testing.T) {
	svc := newProductService(nil)

	err := svc.Delete("no-such-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTestimonialService_GetCardsProjectsFields(t *testing.T) {
	repo := repositories.NewMemoryTestimonialRepository()
	svc := services.NewTestimonialService(repo, nil)

	err := svc.Create(&models.Testimonial{
		Name:    "Jamie",
		Company: "Acme",
		Email:   "jamie@acme.com",
		Quote:   "Great work",
		Rating:  5,
		Image:   "jamie.png",
	})
	assert.NoError(t, err)

	cards, err := svc.GetCards()
	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, "Jamie", cards[0].Name)
	assert.Equal(t, "Acme", cards[0].Company)
	assert.Equal(t, "Great work", cards[0].Quote)
	assert.Equal(t, 5, cards[0].Rating)
	assert.NotEmpty(t, cards[0].ID)
}

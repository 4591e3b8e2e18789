package handlers

import (
	"errors"
	"log"

	"agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles HTTP requests for one content collection. Reads are
// public; mutations are registered on the admin-gated router.
type ContentHandler[T any, P repositories.Document[T]] struct {
	service  *services.ContentService[T, P]
	validate *validator.Validate
	path     string
}

// NewContentHandler creates a new ContentHandler serving the collection under
// the given path segment, e.g. "products".
func NewContentHandler[T any, P repositories.Document[T]](path string, service *services.ContentService[T, P]) *ContentHandler[T, P] {
	return &ContentHandler[T, P]{
		service:  service,
		validate: validator.New(),
		path:     path,
	}
}

// RegisterRoutes registers the collection's routes. Reads are public;
// mutations carry the token and admin gates per route.
func (h *ContentHandler[T, P]) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	router.Get("/"+h.path, h.HandleGetAll)
	router.Get("/"+h.path+"/:id", h.HandleGetByID)

	router.Post("/"+h.path, authRequired, adminRequired, h.HandleCreate)
	router.Put("/"+h.path+"/:id", authRequired, adminRequired, h.HandleUpsert)
	router.Delete("/"+h.path+"/:id", authRequired, adminRequired, h.HandleDelete)
}

// HandleGetAll retrieves all documents in the collection.
func (h *ContentHandler[T, P]) HandleGetAll(c *fiber.Ctx) error {
	docs, err := h.service.GetAll()
	if err != nil {
		log.Printf("Error getting all %s: %v", h.path, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve " + h.path,
		})
	}
	return c.JSON(docs)
}

// HandleGetByID retrieves a single document.
func (h *ContentHandler[T, P]) HandleGetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Document not found",
			})
		}
		log.Printf("Error getting %s %s: %v", h.path, id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve document",
		})
	}
	return c.JSON(doc)
}

// HandleCreate inserts a new document. Admin only.
func (h *ContentHandler[T, P]) HandleCreate(c *fiber.Ctx) error {
	var doc T
	if err := c.BodyParser(&doc); err != nil {
		log.Printf("Error parsing %s create body: %v", h.path, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(doc); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.Create(P(&doc)); err != nil {
		log.Printf("Error creating %s: %v", h.path, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not create document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// HandleUpsert writes the document under the path ID, inserting when absent.
// Sending the same body twice converges to the same stored document.
func (h *ContentHandler[T, P]) HandleUpsert(c *fiber.Ctx) error {
	id := c.Params("id")

	var doc T
	if err := c.BodyParser(&doc); err != nil {
		log.Printf("Error parsing %s update body: %v", h.path, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(doc); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.Upsert(id, P(&doc)); err != nil {
		log.Printf("Error upserting %s %s: %v", h.path, id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not update document",
		})
	}

	return c.JSON(doc)
}

// HandleDelete removes a document. Admin only.
func (h *ContentHandler[T, P]) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Document not found",
			})
		}
		log.Printf("Error deleting %s %s: %v", h.path, id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not delete document",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Document deleted successfully",
	})
}

// TestimonialHandler serves the testimonials collection. The public listing
// is the projected card view; full records are admin only.
type TestimonialHandler struct {
	*ContentHandler[models.Testimonial, *models.Testimonial]
	service *services.TestimonialService
}

// NewTestimonialHandler creates a new TestimonialHandler.
func NewTestimonialHandler(service *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{
		ContentHandler: NewContentHandler[models.Testimonial, *models.Testimonial]("testimonials", &service.ContentService),
		service:        service,
	}
}

// RegisterRoutes registers testimonial routes. Unlike other collections the
// public list is projected and the by-ID read sits behind the admin gate,
// since full records carry the author's email.
func (h *TestimonialHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	router.Get("/testimonials", h.HandleGetCards)

	router.Get("/testimonials/:id", authRequired, adminRequired, h.HandleGetByID)
	router.Post("/testimonials", authRequired, adminRequired, h.HandleCreate)
	router.Put("/testimonials/:id", authRequired, adminRequired, h.HandleUpsert)
	router.Delete("/testimonials/:id", authRequired, adminRequired, h.HandleDelete)
}

// HandleGetCards retrieves the public projection of all testimonials.
func (h *TestimonialHandler) HandleGetCards(c *fiber.Ctx) error {
	cards, err := h.service.GetCards()
	if err != nil {
		log.Printf("Error getting testimonial cards: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve testimonials",
		})
	}
	return c.JSON(cards)
}

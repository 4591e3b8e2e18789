package handlers

import (
	"errors"
	"log"

	"agency/internal/middleware"
	"agency/internal/repositories"
	"agency/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user administration and profiles.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers user routes. The gate middlewares are attached
// per route so token-only routes never pass through the admin gate.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	router.Get("/users/admin/:email", authRequired, h.HandleAdminCheck)
	router.Put("/users-profile", authRequired, h.HandleUpdateProfile)

	router.Get("/users", authRequired, adminRequired, h.HandleGetUsers)
	router.Put("/users/:id", authRequired, adminRequired, h.HandleUpdateUser)
	router.Delete("/users/:id", authRequired, adminRequired, h.HandleDeleteUser)
}

// HandleAdminCheck reports whether the caller holds the admin role. A caller
// may only ask about their own email; asking about anyone else is forbidden.
func (h *UserHandler) HandleAdminCheck(c *fiber.Ctx) error {
	pathEmail := services.NormalizeEmail(c.Params("email"))
	tokenEmail, _ := c.Locals(middleware.LocalEmail).(string)

	if pathEmail == "" || pathEmail != services.NormalizeEmail(tokenEmail) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "You can only check your own admin status",
		})
	}

	isAdmin, err := h.authService.IsAdmin(pathEmail)
	if err != nil {
		log.Printf("Error checking admin status for %s: %v", pathEmail, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not check admin status",
		})
	}

	return c.JSON(fiber.Map{"admin": isAdmin})
}

// HandleUpdateProfile updates the caller's own profile fields.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var upd services.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(upd); err != nil {
		return validationErrorResponse(c, err)
	}

	email, _ := c.Locals(middleware.LocalEmail).(string)
	user, err := h.userService.UpdateProfile(email, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		log.Printf("Error updating profile for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// HandleGetUsers returns all users. Admin only.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleUpdateUser applies an admin edit to a user record.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var upd services.AdminUserUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing user update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(upd); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.userService.UpdateUser(id, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		log.Printf("Error updating user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not update user",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser removes a user record. Admin only.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.userService.DeleteUser(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		log.Printf("Error deleting user %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not delete user",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}

package users

import (
	"errors"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetMe handles GET /me, returning the session user's profile row.
func GetMe(c *fiber.Ctx) error {
	db := database.DB

	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	var user models.User
	if err := db.First(&user, "id = ?", session.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.HandleServiceError(c, helpers.ErrNotFound)
		}
		return helpers.HandleServiceError(c, err)
	}

	return helpers.HandleSuccess(c, fiber.StatusOK, "User profile retrieved successfully", user)
}

package photos

import (
	"strconv"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadPhoto handles POST /photos (multipart: file + optional caption).
func UploadPhoto(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Arquivo da foto é obrigatório", err)
	}
	caption := c.FormValue("caption")

	photo, err := CreatePhoto(session, file, caption)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Foto enviada com sucesso", photo)
}

// GetPhotos handles GET /photos?page=&page_size=.
func GetPhotos(c *fiber.Ctx) error {
	var viewer *models.SessionUser
	if session, ok := middleware.SessionFrom(c); ok {
		viewer = &session
	}

	page, pageSize := parsePagination(c)
	views, err := ListPhotos(viewer, page, pageSize)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Photos fetched successfully", views)
}

// GetSinglePhoto handles GET /photos/:id.
func GetSinglePhoto(c *fiber.Ctx) error {
	var viewer *models.SessionUser
	if session, ok := middleware.SessionFrom(c); ok {
		viewer = &session
	}

	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid photo id", err)
	}

	view, err := GetPhoto(viewer, photoID)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Photo fetched successfully", view)
}

// RemovePhoto handles DELETE /photos/:id.
func RemovePhoto(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid photo id", err)
	}

	if err := DeletePhoto(session, photoID); err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Foto excluída com sucesso", fiber.Map{"success": true})
}

// LikePhoto handles POST /photos/:id/like.
func LikePhoto(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid photo id", err)
	}

	liked, err := ToggleLike(session, photoID)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Like toggled successfully", fiber.Map{"liked": liked})
}

// parsePagination extracts and validates pagination parameters.
func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page <= 0 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

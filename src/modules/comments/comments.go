package comments

import (
	"errors"
	"fmt"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type addCommentInput struct {
	Content string `json:"content" validate:"required"`
}

// CreateComment records a comment on an existing photo. The photo is
// checked explicitly rather than leaning on the foreign-key constraint, so
// a deleted photo yields a clean not-found instead of a storage error.
func CreateComment(session models.SessionUser, photoID uuid.UUID, content string) (models.Comment, error) {
	if session.ID == uuid.Nil {
		return models.Comment{}, helpers.ErrUnauthenticated
	}
	if content == "" {
		return models.Comment{}, fmt.Errorf("%w: comentário não pode ser vazio", helpers.ErrValidation)
	}
	db := database.DB

	var photo models.Photo
	if err := db.Select("id").First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, helpers.ErrNotFound
		}
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:      uuid.New(),
		Content: content,
		PhotoID: photoID,
		UserID:  session.ID,
	}
	if err := db.Create(&comment).Error; err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment; only its author may do so.
func DeleteComment(session models.SessionUser, commentID uuid.UUID) error {
	if session.ID == uuid.Nil {
		return helpers.ErrUnauthenticated
	}
	db := database.DB

	var comment models.Comment
	if err := db.Select("id", "user_id").First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.ErrNotFound
		}
		return err
	}
	if comment.UserID != session.ID {
		return helpers.ErrForbidden
	}

	return db.Delete(&models.Comment{}, "id = ?", commentID).Error
}

// AddComment handles POST /photos/:id/comments.
func AddComment(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid photo id", err)
	}

	body := new(addCommentInput)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}
	if err := helpers.Validate(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Comentário não pode ser vazio", err)
	}

	comment, err := CreateComment(session, photoID, body.Content)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Comentário adicionado", comment)
}

// RemoveComment handles DELETE /comments/:id.
func RemoveComment(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid comment id", err)
	}

	if err := DeleteComment(session, commentID); err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Comentário excluído", fiber.Map{"success": true})
}

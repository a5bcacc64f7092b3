package mural

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Predefined stickers the wall form offers. Validation is advisory: an
// unknown id is stored anyway and simply fails to render client-side.
var stickers = map[string]bool{
	"heart.jpg":  true,
	"cake.jpg":   true,
	"ballon.png": true,
}

type createMessageInput struct {
	Content   string `json:"content"`
	StickerID string `json:"sticker_id"`
}

type Author struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type MessageView struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	StickerID string    `json:"sticker_id,omitempty"`
	UserID    uuid.UUID `json:"user_id"`
	User      Author    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type messageRow struct {
	models.Message
	UserName  string `gorm:"column:user_name"`
	UserImage string `gorm:"column:user_image"`
}

// CreateMessage posts a wall message; it needs text, a sticker, or both.
func CreateMessage(session models.SessionUser, content, stickerID string) (models.Message, error) {
	if session.ID == uuid.Nil {
		return models.Message{}, helpers.ErrUnauthenticated
	}
	if content == "" && stickerID == "" {
		return models.Message{}, fmt.Errorf("%w: escreva uma mensagem ou escolha um sticker", helpers.ErrValidation)
	}
	if stickerID != "" && !stickers[stickerID] {
		log.Printf("Unknown sticker id %q on wall message, storing anyway", stickerID)
	}
	db := database.DB

	message := models.Message{
		ID:        uuid.New(),
		Content:   content,
		StickerID: stickerID,
		UserID:    session.ID,
	}
	if err := db.Create(&message).Error; err != nil {
		return models.Message{}, err
	}
	return message, nil
}

// ListMessages returns every wall message newest-first with its author.
func ListMessages() ([]MessageView, error) {
	db := database.DB

	var rows []messageRow
	err := db.Table("messages").
		Select("messages.*, users.name AS user_name, users.image AS user_image").
		Joins("JOIN users ON users.id = messages.user_id").
		Order("messages.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, len(rows))
	for i, row := range rows {
		views[i] = MessageView{
			ID:        row.ID,
			Content:   row.Content,
			StickerID: row.StickerID,
			UserID:    row.UserID,
			User:      Author{Name: row.UserName, Image: row.UserImage},
			CreatedAt: row.CreatedAt,
		}
	}
	return views, nil
}

// DeleteMessage removes a wall message; only its author may do so.
func DeleteMessage(session models.SessionUser, messageID uuid.UUID) error {
	if session.ID == uuid.Nil {
		return helpers.ErrUnauthenticated
	}
	db := database.DB

	var message models.Message
	if err := db.Select("id", "user_id").First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.ErrNotFound
		}
		return err
	}
	if message.UserID != session.ID {
		return helpers.ErrForbidden
	}

	return db.Delete(&models.Message{}, "id = ?", messageID).Error
}

// PostMessage handles POST /mural.
func PostMessage(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	body := new(createMessageInput)
	if err := c.BodyParser(body); err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid input data", err)
	}

	message, err := CreateMessage(session, body.Content, body.StickerID)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusCreated, "Mensagem enviada", message)
}

// GetMessages handles GET /mural.
func GetMessages(c *fiber.Ctx) error {
	views, err := ListMessages()
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Messages fetched successfully", views)
}

// RemoveMessage handles DELETE /mural/:id.
func RemoveMessage(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	messageID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Invalid message id", err)
	}

	if err := DeleteMessage(session, messageID); err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Mensagem excluída", fiber.Map{"success": true})
}

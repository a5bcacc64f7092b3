package notifications

import (
	"time"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// How many notifications the bell shows.
const listLimit = 20

type Actor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type NotificationView struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	PhotoID   *uuid.UUID `json:"photo_id,omitempty"`
	Read      bool       `json:"read"`
	Actor     Actor      `json:"actor"`
	CreatedAt time.Time  `json:"created_at"`
}

type notificationRow struct {
	models.Notification
	ActorName  string `gorm:"column:actor_name"`
	ActorImage string `gorm:"column:actor_image"`
}

// ListForUser returns the latest notifications for the given user,
// newest-first, with the actor's name and avatar. A nil session yields an
// empty list, not an error.
func ListForUser(session *models.SessionUser) ([]NotificationView, error) {
	if session == nil {
		return []NotificationView{}, nil
	}
	db := database.DB

	var rows []notificationRow
	err := db.Table("notifications").
		Select("notifications.*, users.name AS actor_name, users.image AS actor_image").
		Joins("JOIN users ON users.id = notifications.actor_id").
		Where("notifications.user_id = ?", session.ID).
		Order("notifications.created_at DESC").
		Limit(listLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, len(rows))
	for i, row := range rows {
		views[i] = NotificationView{
			ID:        row.ID,
			Type:      row.Type,
			Message:   row.Message,
			PhotoID:   row.PhotoID,
			Read:      row.Read,
			Actor:     Actor{Name: row.ActorName, Image: row.ActorImage},
			CreatedAt: row.CreatedAt,
		}
	}
	return views, nil
}

// UnreadCount returns how many unread notifications the user has; 0 when
// anonymous.
func UnreadCount(session *models.SessionUser) (int64, error) {
	if session == nil {
		return 0, nil
	}
	db := database.DB

	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", session.ID, false).
		Count(&count).Error
	return count, err
}

// MarkAllRead bulk-sets read=true on the user's unread notifications.
// Calling it again is a no-op; read notifications never go back to unread.
func MarkAllRead(session models.SessionUser) error {
	if session.ID == uuid.Nil {
		return helpers.ErrUnauthenticated
	}
	db := database.DB

	return db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", session.ID, false).
		Update("read", true).Error
}

// GetNotifications handles GET /notifications.
func GetNotifications(c *fiber.Ctx) error {
	var session *models.SessionUser
	if s, ok := middleware.SessionFrom(c); ok {
		session = &s
	}

	views, err := ListForUser(session)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Notifications fetched successfully", views)
}

// GetUnreadCount handles GET /notifications/unread-count.
func GetUnreadCount(c *fiber.Ctx) error {
	var session *models.SessionUser
	if s, ok := middleware.SessionFrom(c); ok {
		session = &s
	}

	count, err := UnreadCount(session)
	if err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Unread count fetched successfully", fiber.Map{"count": count})
}

// MarkRead handles POST /notifications/read.
func MarkRead(c *fiber.Ctx) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return helpers.HandleServiceError(c, helpers.ErrUnauthenticated)
	}

	if err := MarkAllRead(session); err != nil {
		return helpers.HandleServiceError(c, err)
	}
	return helpers.HandleSuccess(c, fiber.StatusOK, "Notifications marked as read", fiber.Map{"success": true})
}

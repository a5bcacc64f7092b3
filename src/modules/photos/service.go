package photos

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/notifications"
	"github.com/NicolasBonnefont/15-da-piettra/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultPageSize = 10

type Author struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type CommentView struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	UserID    uuid.UUID `json:"user_id"`
	User      Author    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type PhotoView struct {
	ID         uuid.UUID     `json:"id"`
	URL        string        `json:"url"`
	Caption    string        `json:"caption,omitempty"`
	UserID     uuid.UUID     `json:"user_id"`
	User       Author        `json:"user"`
	Comments   []CommentView `json:"comments"`
	LikesCount int64         `json:"likes_count"`
	LikedByMe  bool          `json:"liked_by_me"`
	CreatedAt  time.Time     `json:"created_at"`
}

type photoRow struct {
	models.Photo
	UserName  string `gorm:"column:user_name"`
	UserImage string `gorm:"column:user_image"`
}

// CreatePhoto uploads the file to the blob store and records the photo.
// The blob goes first: if storage fails no row is created and the whole
// operation fails.
func CreatePhoto(session models.SessionUser, file *multipart.FileHeader, caption string) (models.Photo, error) {
	if session.ID == uuid.Nil {
		return models.Photo{}, helpers.ErrUnauthenticated
	}
	if file == nil {
		return models.Photo{}, fmt.Errorf("%w: arquivo da foto é obrigatório", helpers.ErrValidation)
	}
	db := database.DB

	key := utils.StorageKey(file.Filename)
	url, err := utils.UploadToStorage(file, key)
	if err != nil {
		return models.Photo{}, fmt.Errorf("%w: %v", helpers.ErrUploadFailed, err)
	}

	photo := models.Photo{
		ID:      uuid.New(),
		URL:     url,
		Caption: caption,
		UserID:  session.ID,
	}
	if err := db.Create(&photo).Error; err != nil {
		return models.Photo{}, err
	}

	notifications.BroadcastGalleryChanged()
	return photo, nil
}

// ListPhotos returns one page of photos newest-first, each annotated with
// its author, comments (oldest-first), like count and whether the viewer
// liked it. viewer may be nil (anonymous): liked_by_me is false everywhere.
// The caller detects the end of the gallery by receiving a short page.
func ListPhotos(viewer *models.SessionUser, page, pageSize int) ([]PhotoView, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	db := database.DB

	var rows []photoRow
	err := db.Table("photos").
		Select("photos.*, users.name AS user_name, users.image AS user_image").
		Joins("JOIN users ON users.id = photos.user_id").
		Order("photos.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return annotatePhotos(rows, viewer)
}

// GetPhoto returns a single annotated photo (the shared /p/:id page).
func GetPhoto(viewer *models.SessionUser, photoID uuid.UUID) (PhotoView, error) {
	db := database.DB

	var rows []photoRow
	err := db.Table("photos").
		Select("photos.*, users.name AS user_name, users.image AS user_image").
		Joins("JOIN users ON users.id = photos.user_id").
		Where("photos.id = ?", photoID).
		Find(&rows).Error
	if err != nil {
		return PhotoView{}, err
	}
	if len(rows) == 0 {
		return PhotoView{}, helpers.ErrNotFound
	}

	views, err := annotatePhotos(rows, viewer)
	if err != nil {
		return PhotoView{}, err
	}
	return views[0], nil
}

// DeletePhoto removes the blob (best-effort) and then, in one transaction,
// every comment, like and notification referencing the photo plus the
// photo row itself. Owner-only.
func DeletePhoto(session models.SessionUser, photoID uuid.UUID) error {
	if session.ID == uuid.Nil {
		return helpers.ErrUnauthenticated
	}
	db := database.DB

	var photo models.Photo
	if err := db.First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.ErrNotFound
		}
		return err
	}
	if photo.UserID != session.ID {
		return helpers.ErrForbidden
	}

	// The blob delete must not block the database cleanup: a briefly
	// unavailable blob store would otherwise leave the photo stuck forever.
	if photo.URL != "" {
		key := utils.KeyFromURL(photo.URL, database.BucketName())
		if err := utils.DeleteFromStorage(key); err != nil {
			log.Printf("Failed to delete photo object %q from storage: %v", key, err)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", photoID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", photoID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", photoID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, "id = ?", photoID).Error
	})
	if err != nil {
		return err
	}

	notifications.BroadcastGalleryChanged()
	return nil
}

// ToggleLike flips the caller's like on a photo. Liking someone else's
// photo notifies the owner; unliking removes that notification again. Two
// concurrent likes converge on the storage-level unique index.
func ToggleLike(session models.SessionUser, photoID uuid.UUID) (bool, error) {
	if session.ID == uuid.Nil {
		return false, helpers.ErrUnauthenticated
	}
	db := database.DB

	var photo models.Photo
	if err := db.Select("id", "user_id").First(&photo, "id = ?", photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, helpers.ErrNotFound
		}
		return false, err
	}

	var existing models.Like
	err := db.Where("photo_id = ? AND user_id = ?", photoID, session.ID).First(&existing).Error
	if err == nil {
		// Unlike: drop the like and the notification it produced.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("photo_id = ? AND user_id = ?", photoID, session.ID).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			return tx.Where("type = ? AND photo_id = ? AND actor_id = ?",
				models.NotificationTypeLike, photoID, session.ID).
				Delete(&models.Notification{}).Error
		})
		if err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	notification := models.Notification{
		ID:      uuid.New(),
		Type:    models.NotificationTypeLike,
		Message: "curtiu sua foto",
		UserID:  photo.UserID,
		ActorID: session.ID,
		PhotoID: &photo.ID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		like := models.Like{ID: uuid.New(), PhotoID: photoID, UserID: session.ID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		// Liking your own photo never notifies you.
		if photo.UserID != session.ID {
			return tx.Create(&notification).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent toggle inserted the like first; converge.
			return true, nil
		}
		return false, err
	}

	if photo.UserID != session.ID {
		notifications.Push(photo.UserID, notifications.Event{
			Kind: notifications.EventNotification,
			Notification: &notifications.NotificationView{
				ID:        notification.ID,
				Type:      notification.Type,
				Message:   notification.Message,
				PhotoID:   notification.PhotoID,
				Read:      notification.Read,
				Actor:     notifications.Actor{Name: session.Name, Image: session.Image},
				CreatedAt: notification.CreatedAt,
			},
		})
	}
	return true, nil
}

func annotatePhotos(rows []photoRow, viewer *models.SessionUser) ([]PhotoView, error) {
	db := database.DB

	photoIDs := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		photoIDs[i] = row.ID
	}

	commentsByPhoto := make(map[uuid.UUID][]CommentView)
	likeCounts := make(map[uuid.UUID]int64)
	likedByViewer := make(map[uuid.UUID]bool)

	if len(photoIDs) > 0 {
		type commentRow struct {
			models.Comment
			UserName  string `gorm:"column:user_name"`
			UserImage string `gorm:"column:user_image"`
		}
		var commentRows []commentRow
		err := db.Table("comments").
			Select("comments.*, users.name AS user_name, users.image AS user_image").
			Joins("JOIN users ON users.id = comments.user_id").
			Where("comments.photo_id IN ?", photoIDs).
			Order("comments.created_at ASC").
			Find(&commentRows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range commentRows {
			commentsByPhoto[row.PhotoID] = append(commentsByPhoto[row.PhotoID], CommentView{
				ID:        row.ID,
				Content:   row.Content,
				UserID:    row.UserID,
				User:      Author{Name: row.UserName, Image: row.UserImage},
				CreatedAt: row.CreatedAt,
			})
		}

		type likeCount struct {
			PhotoID uuid.UUID `gorm:"column:photo_id"`
			Total   int64     `gorm:"column:total"`
		}
		var counts []likeCount
		err = db.Table("likes").
			Select("photo_id, COUNT(*) AS total").
			Where("photo_id IN ?", photoIDs).
			Group("photo_id").
			Find(&counts).Error
		if err != nil {
			return nil, err
		}
		for _, count := range counts {
			likeCounts[count.PhotoID] = count.Total
		}

		if viewer != nil {
			var likedIDs []uuid.UUID
			err = db.Table("likes").
				Select("photo_id").
				Where("photo_id IN ? AND user_id = ?", photoIDs, viewer.ID).
				Find(&likedIDs).Error
			if err != nil {
				return nil, err
			}
			for _, id := range likedIDs {
				likedByViewer[id] = true
			}
		}
	}

	views := make([]PhotoView, len(rows))
	for i, row := range rows {
		comments := commentsByPhoto[row.ID]
		if comments == nil {
			comments = []CommentView{}
		}
		views[i] = PhotoView{
			ID:         row.ID,
			URL:        row.URL,
			Caption:    row.Caption,
			UserID:     row.UserID,
			User:       Author{Name: row.UserName, Image: row.UserImage},
			Comments:   comments,
			LikesCount: likeCounts[row.ID],
			LikedByMe:  likedByViewer[row.ID],
			CreatedAt:  row.CreatedAt,
		}
	}
	return views, nil
}

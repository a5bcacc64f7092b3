package comments

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Photo{}, &models.Comment{}, &models.Like{}, &models.Notification{})
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	database.DB = db
}

func createUser(t *testing.T, name string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@example.com", strings.ToLower(name), uuid.NewString()[:8]),
		Password: "irrelevant",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return user
}

func createPhoto(t *testing.T, owner models.User) models.Photo {
	t.Helper()
	photo := models.Photo{ID: uuid.New(), URL: "https://example.com/fotos/x.jpg", UserID: owner.ID}
	if err := database.DB.Create(&photo).Error; err != nil {
		t.Fatalf("creating photo: %v", err)
	}
	return photo
}

func sessionFor(user models.User) models.SessionUser {
	return models.SessionUser{ID: user.ID, Name: user.Name}
}

func TestCreateComment(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "Alice")
	bob := createUser(t, "Bob")
	photo := createPhoto(t, alice)

	comment, err := CreateComment(sessionFor(bob), photo.ID, "parabéns Piettra!")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.PhotoID != photo.ID || comment.UserID != bob.ID {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	var count int64
	database.DB.Model(&models.Comment{}).Where("photo_id = ?", photo.ID).Count(&count)
	if count != 1 {
		t.Fatalf("got %d comments, want 1", count)
	}
}

func TestCreateCommentMissingPhoto(t *testing.T) {
	setupTestDB(t)
	bob := createUser(t, "Bob")

	_, err := CreateComment(sessionFor(bob), uuid.New(), "oi")
	if !errors.Is(err, helpers.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCreateCommentEmptyContent(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "Alice")
	photo := createPhoto(t, alice)

	_, err := CreateComment(sessionFor(alice), photo.ID, "")
	if !errors.Is(err, helpers.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestDeleteCommentOwnership(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "Alice")
	bob := createUser(t, "Bob")
	photo := createPhoto(t, alice)

	comment, err := CreateComment(sessionFor(bob), photo.ID, "oi")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := DeleteComment(sessionFor(alice), comment.ID); !errors.Is(err, helpers.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}

	if err := DeleteComment(sessionFor(bob), comment.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	var count int64
	database.DB.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 0 {
		t.Fatal("comment still retrievable after delete")
	}

	if err := DeleteComment(sessionFor(bob), comment.ID); !errors.Is(err, helpers.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}

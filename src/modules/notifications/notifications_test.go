package notifications

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/database"
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
	if err := db.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
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
		Image:    "https://example.com/avatar.png",
		Password: "irrelevant",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return user
}

func createNotification(t *testing.T, recipient, actor models.User, createdAt time.Time) models.Notification {
	t.Helper()
	notification := models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeLike,
		Message:   "curtiu sua foto",
		UserID:    recipient.ID,
		ActorID:   actor.ID,
		CreatedAt: createdAt,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		t.Fatalf("creating notification: %v", err)
	}
	return notification
}

func TestListForUserAnonymous(t *testing.T) {
	setupTestDB(t)

	views, err := ListForUser(nil)
	if err != nil {
		t.Fatalf("ListForUser(nil): %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("got %d notifications for anonymous, want 0", len(views))
	}

	count, err := UnreadCount(nil)
	if err != nil || count != 0 {
		t.Fatalf("UnreadCount(nil)=%d err=%v, want 0/nil", count, err)
	}
}

func TestListForUserCappedAndOrdered(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "Alice")
	bob := createUser(t, "Bob")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		createNotification(t, alice, bob, base.Add(time.Duration(i)*time.Minute))
	}

	session := models.SessionUser{ID: alice.ID}
	views, err := ListForUser(&session)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(views) != 20 {
		t.Fatalf("got %d notifications, want 20", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i].CreatedAt.After(views[i-1].CreatedAt) {
			t.Fatal("notifications out of order")
		}
	}
	if views[0].Actor.Name != "Bob" {
		t.Fatalf("actor missing: %+v", views[0])
	}
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "Alice")
	bob := createUser(t, "Bob")
	createNotification(t, alice, bob, time.Now())
	createNotification(t, alice, bob, time.Now())

	session := models.SessionUser{ID: alice.ID}

	count, err := UnreadCount(&session)
	if err != nil || count != 2 {
		t.Fatalf("UnreadCount=%d err=%v, want 2/nil", count, err)
	}

	for i := 0; i < 2; i++ {
		if err := MarkAllRead(session); err != nil {
			t.Fatalf("MarkAllRead #%d: %v", i+1, err)
		}
		count, err = UnreadCount(&session)
		if err != nil || count != 0 {
			t.Fatalf("UnreadCount=%d err=%v after mark #%d, want 0/nil", count, err, i+1)
		}
	}

	// Read notifications stay listed, just not unread.
	views, err := ListForUser(&session)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(views) != 2 || !views[0].Read || !views[1].Read {
		t.Fatalf("unexpected notifications after mark-read: %+v", views)
	}
}

func TestMarkAllReadScopedToUser(t *testing.T) {
	setupTestDB(t)
	alice := createUser(t, "Alice")
	bob := createUser(t, "Bob")
	createNotification(t, alice, bob, time.Now())
	createNotification(t, bob, alice, time.Now())

	aliceSession := models.SessionUser{ID: alice.ID}
	if err := MarkAllRead(aliceSession); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}

	bobSession := models.SessionUser{ID: bob.ID}
	count, err := UnreadCount(&bobSession)
	if err != nil || count != 1 {
		t.Fatalf("UnreadCount=%d err=%v for Bob, want 1/nil", count, err)
	}
}

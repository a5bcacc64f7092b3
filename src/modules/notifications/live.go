package notifications

import (
	"log"
	"sync"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Live event kinds pushed over the websocket feed. gallery_changed tells
// clients their photo listing is stale; polling getPhotos remains the
// fallback for clients without the socket.
const (
	EventNotification   = "notification"
	EventGalleryChanged = "gallery_changed"
)

type Event struct {
	Kind         string            `json:"kind"`
	Notification *NotificationView `json:"notification,omitempty"`
}

// Store WebSocket connections per user
var (
	liveClients = make(map[uuid.UUID]map[*websocket.Conn]bool)
	mu          sync.Mutex
)

// UpgradeLive gates the live feed route: only websocket upgrade requests
// from authenticated guests pass through.
func UpgradeLive(c *fiber.Ctx) error {
	if _, ok := middleware.SessionFrom(c); !ok {
		return fiber.ErrUnauthorized
	}
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LiveFeedHandler keeps the guest's connection registered until it closes.
func LiveFeedHandler(c *websocket.Conn) {
	session, ok := c.Locals("session").(models.SessionUser)
	if !ok {
		c.Close()
		return
	}

	mu.Lock()
	if liveClients[session.ID] == nil {
		liveClients[session.ID] = make(map[*websocket.Conn]bool)
	}
	liveClients[session.ID][c] = true
	mu.Unlock()

	log.Printf("Live feed connected for user %s", session.ID)

	defer func() {
		mu.Lock()
		delete(liveClients[session.ID], c)
		if len(liveClients[session.ID]) == 0 {
			delete(liveClients, session.ID)
		}
		mu.Unlock()
		c.Close()
	}()

	// Keep the connection open; the feed is one-directional.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Println("Live feed client disconnected:", err)
			break
		}
	}
}

// Push sends an event to every open connection of one user.
func Push(userID uuid.UUID, event Event) {
	mu.Lock()
	defer mu.Unlock()
	for conn := range liveClients[userID] {
		if err := conn.WriteJSON(event); err != nil {
			log.Println("Error pushing live event:", err)
			conn.Close()
			delete(liveClients[userID], conn)
		}
	}
}

// BroadcastGalleryChanged tells every connected client the photo listing
// changed (upload or delete).
func BroadcastGalleryChanged() {
	event := Event{Kind: EventGalleryChanged}
	mu.Lock()
	defer mu.Unlock()
	for _, conns := range liveClients {
		for conn := range conns {
			if err := conn.WriteJSON(event); err != nil {
				log.Println("Error broadcasting gallery event:", err)
				conn.Close()
				delete(conns, conn)
			}
		}
	}
}

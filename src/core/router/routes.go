package router

import (
	"fmt"
	"sort"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/middleware"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/authentication"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/comments"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/mural"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/notifications"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/photos"
	"github.com/NicolasBonnefont/15-da-piettra/src/modules/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
)

func InitialiseAndSetupRoutes(app *fiber.App) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	apiV1 := root.Group("/api/v1")
	setupAPIV1Routes(apiV1)

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}

func setupAPIV1Routes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/signup", authentication.SignUp)
	auth.Post("/signin", authentication.SignIn)

	router.Get("/me", middleware.Protected(), users.GetMe)

	// Listings work for anonymous visitors too; mutations need a session.
	router.Get("/photos", middleware.OptionalSession(), photos.GetPhotos)
	router.Get("/photos/:id", middleware.OptionalSession(), photos.GetSinglePhoto)
	router.Post("/photos", middleware.Protected(), photos.UploadPhoto)
	router.Delete("/photos/:id", middleware.Protected(), photos.RemovePhoto)
	router.Post("/photos/:id/like", middleware.Protected(), photos.LikePhoto)

	router.Post("/photos/:id/comments", middleware.Protected(), comments.AddComment)
	router.Delete("/comments/:id", middleware.Protected(), comments.RemoveComment)

	router.Get("/mural", middleware.OptionalSession(), mural.GetMessages)
	router.Post("/mural", middleware.Protected(), mural.PostMessage)
	router.Delete("/mural/:id", middleware.Protected(), mural.RemoveMessage)

	router.Get("/notifications", middleware.OptionalSession(), notifications.GetNotifications)
	router.Get("/notifications/unread-count", middleware.OptionalSession(), notifications.GetUnreadCount)
	router.Post("/notifications/read", middleware.Protected(), notifications.MarkRead)
	router.Get("/notifications/live", middleware.Protected(), notifications.UpgradeLive, websocket.New(notifications.LiveFeedHandler))
}

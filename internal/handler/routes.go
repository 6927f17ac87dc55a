package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"annonsplats/internal/middleware"
	"annonsplats/internal/service/auth"
)

func RegisterRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	requireAuth := middleware.AuthRequired(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/logout", h.Auth.Logout)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerificationEmail)

	locations := v1.Group("/locations")
	locations.Get("/regions", h.Ad.ListRegions)
	locations.Get("/municipalities", h.Ad.ListMunicipalities)

	ads := v1.Group("/ads")
	ads.Get("/", optionalAuth, h.Ad.Search)
	ads.Get("/:id", h.Ad.Get)
	ads.Post("/", requireAuth, h.Ad.Create)
	ads.Put("/:id", requireAuth, h.Ad.Update)
	ads.Delete("/:id", requireAuth, h.Ad.Delete)
	ads.Post("/:id/applications", requireAuth, h.Application.Apply)

	users := v1.Group("/users")
	users.Get("/me", requireAuth, h.Profile.GetMe)
	users.Put("/me", requireAuth, h.Profile.UpdateMe)
	users.Post("/me/avatar", requireAuth, h.Profile.UploadAvatar)
	users.Get("/:id", h.Profile.GetPublic)
	users.Get("/:id/ads", optionalAuth, h.Ad.ListByUser)

	applications := v1.Group("/applications", requireAuth)
	applications.Get("/received", h.Application.ListReceived)
	applications.Get("/sent", h.Application.ListSent)
	applications.Get("/:id", h.Application.Get)
	applications.Patch("/:id/status", h.Application.Decide)
	applications.Post("/:id/acknowledge", h.Application.AcknowledgeRejection)
	applications.Get("/:id/messages", h.Message.Thread)
	applications.Post("/:id/messages", h.Message.Send)

	v1.Get("/conversations", requireAuth, h.Message.Conversations)
	v1.Get("/notifications/count", requireAuth, h.Notification.GetCount)

	ws := app.Group("/ws", h.Realtime.RequireUpgrade, requireAuth)
	ws.Get("/applications/:id/messages", h.Realtime.AuthorizeThread, websocket.New(h.Realtime.Messages))
	ws.Get("/notifications", websocket.New(h.Realtime.Notifications))
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/config"
	"github.com/example/startupvillage/internal/handlers"
	"github.com/example/startupvillage/internal/middleware"
	"github.com/example/startupvillage/internal/phone"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, store repository.Store, cfg *config.Config, sms services.SMSSender, push services.PushNotifier) {
	normalizer := phone.NewNormalizer(cfg.PhoneDefaultRegion)

	userService := services.NewUserService(store.Users, cfg.AvatarBaseURL, cfg.MinPasswordLength)
	verificationService := services.NewPhoneVerificationService(store.Users, sms, normalizer)
	invitationService := services.NewInvitationService(store.Users, push)
	contactService := services.NewContactService(store.Users, store.Connections, normalizer)
	startupService := services.NewStartupService(store.Startups, store.Users)
	connectService := services.NewConnectService(store.Users, store.Faculty, store.ConnectRequests)

	authHandler := handlers.NewAuthHandler(userService, cfg)
	profileHandler := handlers.NewProfileHandler(userService, verificationService, invitationService, contactService)
	startupHandler := handlers.NewStartupHandler(userService, startupService)
	connectHandler := handlers.NewConnectHandler(userService, connectService, cfg)

	// Feedback links are opened from email, outside the API.
	feedback := app.Group("/connect_request/:id/feedback")
	feedback.Get("/from_team/:token", connectHandler.FeedbackFromTeam)
	feedback.Get("/from_faculty/:token", connectHandler.FeedbackFromFaculty)

	api := app.Group("/api")

	api.Post("/users", authHandler.Register)
	api.Post("/sessions", authHandler.Login)
	api.Get("/faculty", connectHandler.ListFaculty)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg, store.Users))

	self := protected.Group("/users/self")
	self.Post("/phone_number", profileHandler.RequestPhoneVerification)
	self.Put("/phone_number", profileHandler.ConfirmPhoneVerification)
	self.Put("/cofounder_invitation", profileHandler.AcceptCofounderInvitation)
	self.Delete("/cofounder_invitation", profileHandler.DeclineCofounderInvitation)
	self.Post("/contacts", profileHandler.CreateContact)
	self.Get("/contacts", profileHandler.ListContacts)

	protected.Get("/users/:id", profileHandler.GetUser)
	protected.Put("/users/:id", profileHandler.UpdateUser)

	protected.Post("/startups", startupHandler.CreateStartup)
	protected.Post("/startups/self/founders", startupHandler.InviteFounder)
	protected.Post("/startups/self/connect_requests", connectHandler.CreateConnectRequest)
	protected.Get("/startups/:id", startupHandler.GetStartup)
}

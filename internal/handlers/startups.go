package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/services"
)

// StartupHandler exposes startup creation, lookup and cofounder invites.
type StartupHandler struct {
	users    *services.UserService
	startups *services.StartupService
}

// NewStartupHandler constructs StartupHandler.
func NewStartupHandler(users *services.UserService, startups *services.StartupService) *StartupHandler {
	return &StartupHandler{users: users, startups: startups}
}

type createStartupRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

// CreateStartup registers a startup founded by the caller.
func (h *StartupHandler) CreateStartup(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req createStartupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	startup, err := h.startups.Create(c.UserContext(), me, req.Name, req.About)
	if err != nil {
		return toAPIError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(startupView(startup))
}

// GetStartup returns a startup by id, or the caller's own for "self".
func (h *StartupHandler) GetStartup(c *fiber.Ctx) error {
	target := c.Params("id")

	var id uint
	if target == "self" {
		me, err := currentUser(c, h.users)
		if err != nil {
			return err
		}
		if me.StartupID == nil {
			return toAPIError(services.ErrNoStartup)
		}
		id = *me.StartupID
	} else {
		parsed, err := c.ParamsInt("id")
		if err != nil || parsed <= 0 {
			return fiber.NewError(fiber.StatusNotFound, "startup not found")
		}
		id = uint(parsed)
	}

	startup, err := h.startups.Get(c.UserContext(), id)
	if err != nil {
		return toAPIError(err)
	}
	return c.JSON(startupView(startup))
}

type inviteFounderRequest struct {
	Email string `json:"email"`
}

// InviteFounder invites a cofounder into the caller's startup by email.
func (h *StartupHandler) InviteFounder(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req inviteFounderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	invitee, err := h.startups.InviteFounder(c.UserContext(), me, req.Email)
	if err != nil {
		return toAPIError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":                 invitee.ID,
		"pending_startup_id": invitee.PendingStartupID,
	})
}

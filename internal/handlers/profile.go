package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/middleware"
	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/services"
)

// ProfileHandler manages the authenticated user's profile, phone
// verification, cofounder invitation and contacts.
type ProfileHandler struct {
	users       *services.UserService
	verifier    *services.PhoneVerificationService
	invitations *services.InvitationService
	contacts    *services.ContactService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(
	users *services.UserService,
	verifier *services.PhoneVerificationService,
	invitations *services.InvitationService,
	contacts *services.ContactService,
) *ProfileHandler {
	return &ProfileHandler{
		users:       users,
		verifier:    verifier,
		invitations: invitations,
		contacts:    contacts,
	}
}

// currentUser loads the authenticated user.
func currentUser(c *fiber.Ctx, users *services.UserService) (*models.User, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := users.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		return nil, err
	}
	return user, nil
}

// GetUser returns a profile. Fetching self includes private fields.
func (h *ProfileHandler) GetUser(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	id, err := services.Resolve(me, c.Params("id"))
	if err != nil {
		return toAPIError(err)
	}
	if id == me.ID {
		return c.JSON(userView(me, true))
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return toAPIError(err)
	}
	return c.JSON(userView(user, false))
}

type updateUserRequest struct {
	User struct {
		Fullname    *string `json:"fullname"`
		BornOn      *string `json:"born_on"`
		Company     *string `json:"company"`
		Designation *string `json:"designation"`
		AvatarURL   *string `json:"avatar_url"`
	} `json:"user"`
}

// UpdateUser updates the caller's own profile.
func (h *ProfileHandler) UpdateUser(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if !services.IsSelf(me, c.Params("id")) {
		return toAPIError(services.ErrRestrictedToSelf)
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.users.Update(c.UserContext(), me, services.UpdateInput{
		Fullname:    req.User.Fullname,
		BornOn:      req.User.BornOn,
		Company:     req.User.Company,
		Designation: req.User.Designation,
		AvatarURL:   req.User.AvatarURL,
	}); err != nil {
		return toAPIError(err)
	}

	return c.JSON(userView(me, true))
}

type phoneRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// RequestPhoneVerification stores a pending number and texts it a code.
func (h *ProfileHandler) RequestPhoneVerification(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req phoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.verifier.RequestVerification(c.UserContext(), me, req.Phone); err != nil {
		return toAPIError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// ConfirmPhoneVerification checks the submitted code.
func (h *ProfileHandler) ConfirmPhoneVerification(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req phoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.verifier.ConfirmVerification(c.UserContext(), me, req.Phone, req.Code); err != nil {
		return toAPIError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// AcceptCofounderInvitation joins the pending startup.
func (h *ProfileHandler) AcceptCofounderInvitation(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.invitations.AcceptInvitation(c.UserContext(), me); err != nil {
		return toAPIError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// DeclineCofounderInvitation drops the pending startup.
func (h *ProfileHandler) DeclineCofounderInvitation(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.invitations.DeclineInvitation(c.UserContext(), me); err != nil {
		return toAPIError(err)
	}
	return c.SendStatus(fiber.StatusOK)
}

type createContactRequest struct {
	User struct {
		Phone       string `json:"phone"`
		Fullname    string `json:"fullname"`
		Company     string `json:"company"`
		Designation string `json:"designation"`
	} `json:"user"`
}

// CreateContact imports a contact for the caller.
func (h *ProfileHandler) CreateContact(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req createContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	contact, err := h.contacts.AddContact(c.UserContext(), me, services.NewContact{
		Phone:       req.User.Phone,
		Fullname:    req.User.Fullname,
		Company:     req.User.Company,
		Designation: req.User.Designation,
	})
	if err != nil {
		return toAPIError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(contactView(contact))
}

// ListContacts returns the platform-supplied contacts of the caller.
func (h *ProfileHandler) ListContacts(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	contacts, err := h.contacts.ListContacts(c.UserContext(), me)
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(contacts))
	for i := range contacts {
		out = append(out, contactView(&contacts[i]))
	}
	return c.JSON(out)
}

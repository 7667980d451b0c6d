package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/config"
	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/services"
	"github.com/example/startupvillage/internal/utils"
)

// AuthHandler bundles dependencies for registration and login endpoints.
type AuthHandler struct {
	users *services.UserService
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg}
}

type registerRequest struct {
	User struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		Fullname    string `json:"fullname"`
		BornOn      string `json:"born_on"`
		Company     string `json:"company"`
		Designation string `json:"designation"`
	} `json:"user"`
}

// Register creates a new user, or completes an invited placeholder.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Register(c.UserContext(), services.RegisterInput{
		Email:       req.User.Email,
		Password:    req.User.Password,
		Fullname:    req.User.Fullname,
		BornOn:      req.User.BornOn,
		Company:     req.User.Company,
		Designation: req.User.Designation,
	})
	if err != nil {
		return toAPIError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         user.ID,
		"fullname":   user.Fullname,
		"avatar_url": user.AvatarURL,
		"auth_token": models.StringValue(user.AuthToken),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an existing user and issues a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return toAPIError(err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"token":      token,
		"auth_token": models.StringValue(user.AuthToken),
		"user":       userView(user, true),
	})
}

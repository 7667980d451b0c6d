package handlers

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/startupvillage/internal/config"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/services"
	"github.com/example/startupvillage/internal/utils"
)

// Flash cookies read by the landing page after a feedback redirect.
const (
	FlashSuccessCookie = "flash_success"
	FlashErrorCookie   = "flash_error"

	feedbackSavedMessage  = "Thank you! Your rating of the connect session has been saved."
	feedbackFailedMessage = "We're sorry, but something went wrong when we tried to save that rating."
)

// ConnectHandler serves the faculty directory, connect requests and the
// feedback links mailed out after a session.
type ConnectHandler struct {
	users   *services.UserService
	connect *services.ConnectService
	cfg     *config.Config
}

// NewConnectHandler constructs ConnectHandler.
func NewConnectHandler(users *services.UserService, connect *services.ConnectService, cfg *config.Config) *ConnectHandler {
	return &ConnectHandler{users: users, connect: connect, cfg: cfg}
}

// ListFaculty returns one page of mentors.
func (h *ConnectHandler) ListFaculty(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	faculty, total, err := h.connect.ListFaculty(c.UserContext(), pg.Limit, pg.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": faculty,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type connectRequestBody struct {
	FacultyID uint   `json:"faculty_id"`
	Questions string `json:"questions"`
}

// CreateConnectRequest books a session between the caller's startup and a
// faculty member.
func (h *ConnectHandler) CreateConnectRequest(c *fiber.Ctx) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req connectRequestBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.connect.RequestConnect(c.UserContext(), me, req.FacultyID, req.Questions)
	if err != nil {
		return toAPIError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// FeedbackFromTeam records the team's rating of the faculty member.
func (h *ConnectHandler) FeedbackFromTeam(c *fiber.Ctx) error {
	return h.recordFeedback(c, h.connect.RecordFacultyRating)
}

// FeedbackFromFaculty records the faculty member's rating of the team.
func (h *ConnectHandler) FeedbackFromFaculty(c *fiber.Ctx) error {
	return h.recordFeedback(c, h.connect.RecordTeamRating)
}

type recordFunc func(ctx context.Context, requestID uint, token, rating string) error

func (h *ConnectHandler) recordFeedback(c *fiber.Ctx, record recordFunc) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}

	err = record(c.UserContext(), uint(id), c.Params("token"), c.Query("rating"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.ErrNotFound
	case err != nil:
		log.Printf("[Feedback] connect request %d: %v", id, err)
		h.flash(c, FlashErrorCookie, feedbackFailedMessage)
	default:
		h.flash(c, FlashSuccessCookie, feedbackSavedMessage)
	}
	return c.Redirect(h.cfg.RootURL, fiber.StatusFound)
}

func (h *ConnectHandler) flash(c *fiber.Ctx, name, message string) {
	c.Cookie(&fiber.Cookie{
		Name:    name,
		Value:   url.QueryEscape(message),
		Path:    "/",
		Expires: time.Now().Add(time.Minute),
	})
}

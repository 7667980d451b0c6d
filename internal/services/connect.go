package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
)

// ConnectService manages connect sessions between startups and faculty and
// records the ratings each side leaves afterwards.
type ConnectService struct {
	users    repository.UserRepository
	faculty  repository.FacultyRepository
	requests repository.ConnectRequestRepository
}

// NewConnectService constructs a ConnectService.
func NewConnectService(users repository.UserRepository, faculty repository.FacultyRepository, requests repository.ConnectRequestRepository) *ConnectService {
	return &ConnectService{users: users, faculty: faculty, requests: requests}
}

// RecordFacultyRating stores the team's rating of the faculty member. token is
// the auth token of a founder of the startup that owns the request.
//
// Lookup failures return repository.ErrNotFound. Any other error means the
// rating was not saved.
func (s *ConnectService) RecordFacultyRating(ctx context.Context, requestID uint, token, rawRating string) error {
	founder, err := s.users.FindByAuthToken(ctx, token)
	if err != nil {
		return err
	}
	if founder.StartupID == nil {
		return repository.ErrNotFound
	}

	req, err := s.requests.FindForStartup(ctx, *founder.StartupID, requestID)
	if err != nil {
		return err
	}

	rating, err := parseRating(rawRating)
	if err != nil {
		return err
	}
	req.RatingOfFaculty = &rating
	return s.saveRating(ctx, req)
}

// RecordTeamRating stores the faculty member's rating of the team. token is
// the faculty member's token.
func (s *ConnectService) RecordTeamRating(ctx context.Context, requestID uint, token, rawRating string) error {
	faculty, err := s.faculty.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	req, err := s.requests.FindForFaculty(ctx, faculty.ID, requestID)
	if err != nil {
		return err
	}

	rating, err := parseRating(rawRating)
	if err != nil {
		return err
	}
	req.RatingOfTeam = &rating
	return s.saveRating(ctx, req)
}

func (s *ConnectService) saveRating(ctx context.Context, req *models.ConnectRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRating, err)
	}
	if err := s.requests.Save(ctx, req); err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}

func parseRating(raw string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidRating, raw)
	}
	return rating, nil
}

// RequestConnect books a connect session between the user's startup and a
// faculty member.
func (s *ConnectService) RequestConnect(ctx context.Context, user *models.User, facultyID uint, questions string) (*models.ConnectRequest, error) {
	if user.StartupID == nil {
		return nil, ErrNoStartup
	}

	faculty, err := s.faculty.FindByID(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	req := &models.ConnectRequest{
		StartupID: *user.StartupID,
		FacultyID: faculty.ID,
		Questions: strings.TrimSpace(questions),
		Status:    models.ConnectRequestRequested,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create connect request: %w", err)
	}
	req.Faculty = faculty
	return req, nil
}

// ListFaculty returns one page of the faculty directory and the total count.
func (s *ConnectService) ListFaculty(ctx context.Context, limit, offset int) ([]models.Faculty, int64, error) {
	return s.faculty.List(ctx, limit, offset)
}

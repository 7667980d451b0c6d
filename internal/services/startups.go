package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/utils"
)

// StartupService creates startups and issues cofounder invitations.
type StartupService struct {
	startups repository.StartupRepository
	users    repository.UserRepository
}

// NewStartupService constructs a StartupService.
func NewStartupService(startups repository.StartupRepository, users repository.UserRepository) *StartupService {
	return &StartupService{startups: startups, users: users}
}

// Create registers a startup with founder as its first member.
func (s *StartupService) Create(ctx context.Context, founder *models.User, name, about string) (*models.Startup, error) {
	if founder.StartupID != nil {
		return nil, ErrAlreadyInStartup
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	startupSlug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	startup := &models.Startup{
		Name:  name,
		Slug:  startupSlug,
		About: strings.TrimSpace(about),
	}
	if err := s.startups.Create(ctx, startup); err != nil {
		return nil, fmt.Errorf("create startup: %w", err)
	}

	startupID := startup.ID
	founder.StartupID = &startupID
	if founder.PendingStartupID != nil && *founder.PendingStartupID == startupID {
		founder.PendingStartupID = nil
	}
	if err := s.users.Save(ctx, founder); err != nil {
		return nil, fmt.Errorf("save founder: %w", err)
	}

	return s.startups.FindByID(ctx, startupID)
}

func (s *StartupService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "startup"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.startups.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// Get loads a startup with its founders.
func (s *StartupService) Get(ctx context.Context, id uint) (*models.Startup, error) {
	return s.startups.FindByID(ctx, id)
}

// InviteFounder offers membership of inviter's startup to the user with the
// given email. Unknown emails get a placeholder user carrying an invitation
// token, completed later by registration.
func (s *StartupService) InviteFounder(ctx context.Context, inviter *models.User, email string) (*models.User, error) {
	if inviter.StartupID == nil {
		return nil, ErrNoStartup
	}
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	startupID := *inviter.StartupID

	invitee, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if invitee.StartupID != nil {
			return nil, ErrAlreadyInStartup
		}
		invitee.PendingStartupID = &startupID
		if err := s.users.Save(ctx, invitee); err != nil {
			return nil, fmt.Errorf("save invitee: %w", err)
		}
		return invitee, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	password, err := utils.RandomToken()
	if err != nil {
		return nil, fmt.Errorf("generate placeholder password: %w", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}
	invitation, err := utils.RandomToken()
	if err != nil {
		return nil, fmt.Errorf("generate invitation token: %w", err)
	}

	invitee = &models.User{
		Email:            &email,
		PasswordHash:     hash,
		PendingStartupID: &startupID,
		InvitationToken:  &invitation,
	}
	if err := s.users.Create(ctx, invitee); err != nil {
		return nil, fmt.Errorf("create invitee: %w", err)
	}
	return invitee, nil
}

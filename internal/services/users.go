package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/utils"
)

const dateLayout = "2006-01-02"

// UserService registers, authenticates and updates users.
type UserService struct {
	users             repository.UserRepository
	avatarBaseURL     string
	minPasswordLength int
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository, avatarBaseURL string, minPasswordLength int) *UserService {
	return &UserService{
		users:             users,
		avatarBaseURL:     avatarBaseURL,
		minPasswordLength: minPasswordLength,
	}
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Email       string
	Password    string
	Fullname    string
	BornOn      string
	Company     string
	Designation string
}

// Register creates a user. An existing placeholder created by a cofounder
// invitation is completed in place and its invitation token is consumed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = nil
	case err != nil:
		return nil, err
	case user.InvitationToken == nil:
		return nil, ErrAlreadyCreatedUser
	}

	if len(in.Password) < s.minPasswordLength {
		return nil, fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, s.minPasswordLength)
	}

	bornOn, err := parseDate(in.BornOn)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	merging := user != nil
	if !merging {
		user = &models.User{Email: &email}
	}
	user.PasswordHash = hash
	user.Fullname = strings.TrimSpace(in.Fullname)
	user.BornOn = bornOn
	user.Company = strings.TrimSpace(in.Company)
	user.Designation = strings.TrimSpace(in.Designation)
	user.IsContact = false
	user.InvitationToken = nil
	if user.AvatarURL == "" {
		user.AvatarURL = s.defaultAvatar(email)
	}
	if user.AuthToken == nil {
		token, err := utils.RandomToken()
		if err != nil {
			return nil, fmt.Errorf("generate auth token: %w", err)
		}
		user.AuthToken = &token
	}

	if merging {
		err = s.users.Save(ctx, user)
	} else {
		err = s.users.Create(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Authenticate checks an email and password pair.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.IsContact || !user.HasPassword() || !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Resolve maps a path segment ("self" or a numeric id) to a user id.
func Resolve(current *models.User, target string) (uint, error) {
	if target == "self" {
		return current.ID, nil
	}
	id, err := strconv.ParseUint(target, 10, 64)
	if err != nil || id == 0 {
		return 0, repository.ErrNotFound
	}
	return uint(id), nil
}

// IsSelf reports whether target names current.
func IsSelf(current *models.User, target string) bool {
	id, err := Resolve(current, target)
	return err == nil && id == current.ID
}

// UpdateInput carries optional profile changes.
type UpdateInput struct {
	Fullname    *string
	BornOn      *string
	Company     *string
	Designation *string
	AvatarURL   *string
}

// Update applies in to user.
func (s *UserService) Update(ctx context.Context, user *models.User, in UpdateInput) error {
	changed := false
	if in.Fullname != nil {
		user.Fullname = strings.TrimSpace(*in.Fullname)
		changed = true
	}
	if in.BornOn != nil {
		bornOn, err := parseDate(*in.BornOn)
		if err != nil {
			return err
		}
		user.BornOn = bornOn
		changed = true
	}
	if in.Company != nil {
		user.Company = strings.TrimSpace(*in.Company)
		changed = true
	}
	if in.Designation != nil {
		user.Designation = strings.TrimSpace(*in.Designation)
		changed = true
	}
	if in.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*in.AvatarURL)
		changed = true
	}
	if !changed {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *UserService) defaultAvatar(email string) string {
	sum := md5.Sum([]byte(email))
	return s.avatarBaseURL + hex.EncodeToString(sum[:]) + "?d=identicon"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: born_on must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &t, nil
}

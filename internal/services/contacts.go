package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/phone"
	"github.com/example/startupvillage/internal/repository"
)

// ContactService imports contacts and lists the ones the platform curated.
type ContactService struct {
	users       repository.UserRepository
	connections repository.ConnectionRepository
	normalizer  phone.Normalizer
}

// NewContactService constructs a ContactService.
func NewContactService(users repository.UserRepository, connections repository.ConnectionRepository, normalizer phone.Normalizer) *ContactService {
	return &ContactService{users: users, connections: connections, normalizer: normalizer}
}

// NewContact carries the profile of a contact being imported.
type NewContact struct {
	Phone       string
	Fullname    string
	Company     string
	Designation string
}

// AddContact creates a credential-less contact user and links it to owner as
// a user-supplied connection.
func (s *ContactService) AddContact(ctx context.Context, owner *models.User, in NewContact) (*models.User, error) {
	number, err := s.normalizer.Normalize(in.Phone)
	if err != nil {
		return nil, ErrInvalidPhoneNumber
	}

	contact := &models.User{
		Fullname:    strings.TrimSpace(in.Fullname),
		Company:     strings.TrimSpace(in.Company),
		Designation: strings.TrimSpace(in.Designation),
		Phone:       &number,
		IsContact:   true,
	}
	if err := s.users.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	conn := &models.Connection{
		UserID:    owner.ID,
		ContactID: contact.ID,
		Direction: models.DirectionUserToSV,
	}
	if err := s.connections.Create(ctx, conn); err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	return contact, nil
}

// ListContacts returns the platform-supplied contacts of owner in the order
// they were connected.
func (s *ContactService) ListContacts(ctx context.Context, owner *models.User) ([]models.User, error) {
	contacts, err := s.connections.ListContacts(ctx, owner.ID, models.DirectionSVToUser)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if contacts == nil {
		contacts = []models.User{}
	}
	return contacts, nil
}

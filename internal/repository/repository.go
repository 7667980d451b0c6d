// Package repository declares the persistence ports used by the services.
// Implementations live in the postgres and memory subpackages.
package repository

import (
	"context"
	"errors"

	"github.com/example/startupvillage/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UserRepository persists users and resolves them by their possession tokens.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByAuthToken(ctx context.Context, token string) (*models.User, error)
	ListByStartup(ctx context.Context, startupID uint) ([]models.User, error)
}

// StartupRepository persists startups.
type StartupRepository interface {
	Create(ctx context.Context, startup *models.Startup) error
	FindByID(ctx context.Context, id uint) (*models.Startup, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// ConnectionRepository persists contact edges.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	// ListContacts returns the contacts of userID reached through edges with
	// the given direction, oldest edge first.
	ListContacts(ctx context.Context, userID uint, direction models.ConnectionDirection) ([]models.User, error)
}

// FacultyRepository persists mentors.
type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	FindByID(ctx context.Context, id uint) (*models.Faculty, error)
	FindByToken(ctx context.Context, token string) (*models.Faculty, error)
	List(ctx context.Context, limit, offset int) ([]models.Faculty, int64, error)
}

// ConnectRequestRepository persists connect sessions.
type ConnectRequestRepository interface {
	Create(ctx context.Context, req *models.ConnectRequest) error
	Save(ctx context.Context, req *models.ConnectRequest) error
	// FindForStartup returns request id only if it belongs to startupID.
	FindForStartup(ctx context.Context, startupID, id uint) (*models.ConnectRequest, error)
	// FindForFaculty returns request id only if it belongs to facultyID.
	FindForFaculty(ctx context.Context, facultyID, id uint) (*models.ConnectRequest, error)
}

// Store groups the repositories a running server needs.
type Store struct {
	Users           UserRepository
	Startups        StartupRepository
	Connections     ConnectionRepository
	Faculty         FacultyRepository
	ConnectRequests ConnectRequestRepository
}

// Package postgres implements the repository ports on top of gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
)

// NewStore wires every gorm-backed repository to db.
func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Users:           &UserRepository{db: db},
		Startups:        &StartupRepository{db: db},
		Connections:     &ConnectionRepository{db: db},
		Faculty:         &FacultyRepository{db: db},
		ConnectRequests: &ConnectRequestRepository{db: db},
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

// UserRepository stores users.
type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Save writes every column of user, including nil pointers, so cleared
// tokens and codes become NULL.
func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByAuthToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	var user models.User
	if err := r.db.WithContext(ctx).Where("auth_token = ?", token).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) ListByStartup(ctx context.Context, startupID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("startup_id = ?", startupID).
		Order("id asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// StartupRepository stores startups.
type StartupRepository struct {
	db *gorm.DB
}

func (r *StartupRepository) Create(ctx context.Context, startup *models.Startup) error {
	return r.db.WithContext(ctx).Omit("Founders", "ConnectRequests").Create(startup).Error
}

func (r *StartupRepository) FindByID(ctx context.Context, id uint) (*models.Startup, error) {
	var startup models.Startup
	if err := r.db.WithContext(ctx).
		Preload("Founders", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&startup, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &startup, nil
}

func (r *StartupRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Startup{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ConnectionRepository stores contact edges.
type ConnectionRepository struct {
	db *gorm.DB
}

func (r *ConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if !conn.Direction.Valid() {
		return fmt.Errorf("connection direction %q", conn.Direction)
	}
	return r.db.WithContext(ctx).Omit("User", "Contact").Create(conn).Error
}

func (r *ConnectionRepository) ListContacts(ctx context.Context, userID uint, direction models.ConnectionDirection) ([]models.User, error) {
	var contacts []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN connections ON connections.contact_id = users.id").
		Where("connections.user_id = ? AND connections.direction = ?", userID, direction).
		Order("connections.id asc").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// FacultyRepository stores mentors.
type FacultyRepository struct {
	db *gorm.DB
}

func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Omit("ConnectRequests").Create(faculty).Error
}

func (r *FacultyRepository) FindByID(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &faculty, nil
}

func (r *FacultyRepository) FindByToken(ctx context.Context, token string) (*models.Faculty, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&faculty).Error; err != nil {
		return nil, notFound(err)
	}
	return &faculty, nil
}

func (r *FacultyRepository) List(ctx context.Context, limit, offset int) ([]models.Faculty, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Faculty{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Faculty
	if err := query.Order("name asc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ConnectRequestRepository stores connect sessions.
type ConnectRequestRepository struct {
	db *gorm.DB
}

func (r *ConnectRequestRepository) Create(ctx context.Context, req *models.ConnectRequest) error {
	return r.db.WithContext(ctx).Omit("Startup", "Faculty").Create(req).Error
}

func (r *ConnectRequestRepository) Save(ctx context.Context, req *models.ConnectRequest) error {
	return r.db.WithContext(ctx).Omit("Startup", "Faculty").Save(req).Error
}

func (r *ConnectRequestRepository) FindForStartup(ctx context.Context, startupID, id uint) (*models.ConnectRequest, error) {
	var req models.ConnectRequest
	if err := r.db.WithContext(ctx).
		Where("startup_id = ?", startupID).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

func (r *ConnectRequestRepository) FindForFaculty(ctx context.Context, facultyID, id uint) (*models.ConnectRequest, error) {
	var req models.ConnectRequest
	if err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

// Package memory implements the repository ports in process. It backs
// STORAGE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/startupvillage/internal/models"
	"github.com/example/startupvillage/internal/repository"
)

// ErrDuplicate is returned when a unique column would collide.
var ErrDuplicate = errors.New("duplicate key")

// DB holds every table behind a single lock.
type DB struct {
	mu              sync.RWMutex
	nextID          uint
	users           map[uint]models.User
	startups        map[uint]models.Startup
	connections     []models.Connection
	faculty         map[uint]models.Faculty
	connectRequests map[uint]models.ConnectRequest
}

// NewDB returns an empty in-memory database.
func NewDB() *DB {
	return &DB{
		users:           make(map[uint]models.User),
		startups:        make(map[uint]models.Startup),
		faculty:         make(map[uint]models.Faculty),
		connectRequests: make(map[uint]models.ConnectRequest),
	}
}

// NewStore returns repositories sharing a fresh DB.
func NewStore() repository.Store {
	return NewDB().Store()
}

// Store returns repositories backed by db.
func (db *DB) Store() repository.Store {
	return repository.Store{
		Users:           &UserRepository{db: db},
		Startups:        &StartupRepository{db: db},
		Connections:     &ConnectionRepository{db: db},
		Faculty:         &FacultyRepository{db: db},
		ConnectRequests: &ConnectRequestRepository{db: db},
	}
}

func (db *DB) stamp(base *models.BaseModel) {
	now := time.Now()
	if base.ID == 0 {
		db.nextID++
		base.ID = db.nextID
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func sameString(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// UserRepository stores users.
type UserRepository struct {
	db *DB
}

func (r *UserRepository) checkUnique(user *models.User) error {
	for id, existing := range r.db.users {
		if id == user.ID {
			continue
		}
		switch {
		case sameString(existing.Email, user.Email):
			return fmt.Errorf("users.email: %w", ErrDuplicate)
		case sameString(existing.AuthToken, user.AuthToken):
			return fmt.Errorf("users.auth_token: %w", ErrDuplicate)
		case sameString(existing.InvitationToken, user.InvitationToken):
			return fmt.Errorf("users.invitation_token: %w", ErrDuplicate)
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.ID = 0
	r.db.stamp(&user.BaseModel)
	r.db.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Save(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}
	r.db.stamp(&user.BaseModel)
	r.db.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uint) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) find(match func(models.User) bool) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email != nil && *u.Email == email })
}

func (r *UserRepository) FindByAuthToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return r.find(func(u models.User) bool { return u.AuthToken != nil && *u.AuthToken == token })
}

func (r *UserRepository) ListByStartup(_ context.Context, startupID uint) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.foundersLocked(startupID), nil
}

func (db *DB) foundersLocked(startupID uint) []models.User {
	var out []models.User
	for _, user := range db.users {
		if user.StartupID != nil && *user.StartupID == startupID {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StartupRepository stores startups.
type StartupRepository struct {
	db *DB
}

func (r *StartupRepository) Create(_ context.Context, startup *models.Startup) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.startups {
		if existing.Slug == startup.Slug {
			return fmt.Errorf("startups.slug: %w", ErrDuplicate)
		}
	}
	startup.ID = 0
	r.db.stamp(&startup.BaseModel)
	stored := *startup
	stored.Founders = nil
	stored.ConnectRequests = nil
	r.db.startups[startup.ID] = stored
	return nil
}

func (r *StartupRepository) FindByID(_ context.Context, id uint) (*models.Startup, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	startup, ok := r.db.startups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	startup.Founders = r.db.foundersLocked(id)
	return &startup, nil
}

func (r *StartupRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, existing := range r.db.startups {
		if existing.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// ConnectionRepository stores contact edges in insertion order.
type ConnectionRepository struct {
	db *DB
}

func (r *ConnectionRepository) Create(_ context.Context, conn *models.Connection) error {
	if !conn.Direction.Valid() {
		return fmt.Errorf("connection direction %q", conn.Direction)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	conn.ID = 0
	r.db.stamp(&conn.BaseModel)
	stored := *conn
	stored.User = nil
	stored.Contact = nil
	r.db.connections = append(r.db.connections, stored)
	return nil
}

func (r *ConnectionRepository) ListContacts(_ context.Context, userID uint, direction models.ConnectionDirection) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.User
	for _, conn := range r.db.connections {
		if conn.UserID != userID || conn.Direction != direction {
			continue
		}
		if contact, ok := r.db.users[conn.ContactID]; ok {
			out = append(out, contact)
		}
	}
	return out, nil
}

// FacultyRepository stores mentors.
type FacultyRepository struct {
	db *DB
}

func (r *FacultyRepository) Create(_ context.Context, faculty *models.Faculty) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.faculty {
		if faculty.Token != "" && existing.Token == faculty.Token {
			return fmt.Errorf("faculty.token: %w", ErrDuplicate)
		}
	}
	faculty.ID = 0
	r.db.stamp(&faculty.BaseModel)
	stored := *faculty
	stored.ConnectRequests = nil
	r.db.faculty[faculty.ID] = stored
	return nil
}

func (r *FacultyRepository) FindByID(_ context.Context, id uint) (*models.Faculty, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	faculty, ok := r.db.faculty[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &faculty, nil
}

func (r *FacultyRepository) FindByToken(_ context.Context, token string) (*models.Faculty, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, faculty := range r.db.faculty {
		if faculty.Token == token {
			found := faculty
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *FacultyRepository) List(_ context.Context, limit, offset int) ([]models.Faculty, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	all := make([]models.Faculty, 0, len(r.db.faculty))
	for _, faculty := range r.db.faculty {
		all = append(all, faculty)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})

	total := int64(len(all))
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []models.Faculty{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ConnectRequestRepository stores connect sessions.
type ConnectRequestRepository struct {
	db *DB
}

func (r *ConnectRequestRepository) Create(_ context.Context, req *models.ConnectRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	req.ID = 0
	r.db.stamp(&req.BaseModel)
	stored := *req
	stored.Startup = nil
	stored.Faculty = nil
	r.db.connectRequests[req.ID] = stored
	return nil
}

func (r *ConnectRequestRepository) Save(_ context.Context, req *models.ConnectRequest) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.stamp(&req.BaseModel)
	stored := *req
	stored.Startup = nil
	stored.Faculty = nil
	r.db.connectRequests[req.ID] = stored
	return nil
}

func (r *ConnectRequestRepository) find(match func(models.ConnectRequest) bool, id uint) (*models.ConnectRequest, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	req, ok := r.db.connectRequests[id]
	if !ok || !match(req) {
		return nil, repository.ErrNotFound
	}
	return &req, nil
}

func (r *ConnectRequestRepository) FindForStartup(_ context.Context, startupID, id uint) (*models.ConnectRequest, error) {
	return r.find(func(req models.ConnectRequest) bool { return req.StartupID == startupID }, id)
}

func (r *ConnectRequestRepository) FindForFaculty(_ context.Context, facultyID, id uint) (*models.ConnectRequest, error) {
	return r.find(func(req models.ConnectRequest) bool { return req.FacultyID == facultyID }, id)
}

package gorm

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser inserts a new account.
func (s *UsersStore) CreateUser(user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	if err := s.db.Create(user).Error; err != nil {
		// Unique violations surface from the driver as "duplicate key" errors
		if strings.Contains(err.Error(), "duplicate key") {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FetchUserByEmail retrieves a user by email.
func (s *UsersStore) FetchUserByEmail(email string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("email = ?", email).First(&user)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FetchUser retrieves a user by ID.
func (s *UsersStore) FetchUser(id string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("id = ?", id).First(&user)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

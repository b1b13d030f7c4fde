package repository

import (
	"time"

	"sharyat/app_error"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Permission string

const (
	PermissionAdmin Permission = "admin"
)

// User is a mobile app account, identified by phone number.
type User struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PhoneNumber string    `gorm:"size:15;uniqueIndex;not null"`
	FullName    *string   `gorm:"size:200"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdminUser is a panel account with password auth and role permissions.
type AdminUser struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username       string         `gorm:"size:100;uniqueIndex;not null"`
	HashedPassword string         `gorm:"size:255;not null"`
	FullName       *string        `gorm:"size:200"`
	IsActive       bool           `gorm:"not null;default:true"`
	Permissions    pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) GetUserById(userId uuid.UUID) (*User, error) {
	var user User
	result := r.DB.First(&user, "id = ?", userId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("user %s not found", userId)
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) GetUserByPhone(phoneNumber string) (*User, error) {
	var user User
	result := r.DB.First(&user, "phone_number = ?", phoneNumber)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(user *User) (*User, error) {
	result := r.DB.Save(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

func (r *UserRepository) GetAdminByUsername(username string) (*AdminUser, error) {
	var admin AdminUser
	result := r.DB.First(&admin, "username = ?", username)
	if result.Error != nil {
		return nil, result.Error
	}
	return &admin, nil
}

func (r *UserRepository) GetAdminById(adminId uuid.UUID) (*AdminUser, error) {
	var admin AdminUser
	result := r.DB.First(&admin, "id = ?", adminId)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, app_error.NotFound("admin %s not found", adminId)
		}
		return nil, result.Error
	}
	return &admin, nil
}

func (r *UserRepository) SaveAdmin(admin *AdminUser) (*AdminUser, error) {
	result := r.DB.Save(admin)
	if result.Error != nil {
		return nil, result.Error
	}
	return admin, nil
}

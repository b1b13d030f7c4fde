package service

import (
	"sharyat/app_error"
	"sharyat/auth"
	"sharyat/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepository *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		userRepository: repository.NewUserRepository(db),
	}
}

// LoginUser signs in a mobile account by phone number, creating the account
// on first login. OTP verification happens upstream at the SMS gateway.
func (s *UserService) LoginUser(phoneNumber string) (string, *repository.User, error) {
	user, err := s.userRepository.GetUserByPhone(phoneNumber)
	if err == gorm.ErrRecordNotFound {
		user, err = s.userRepository.SaveUser(&repository.User{
			PhoneNumber: phoneNumber,
			IsActive:    true,
		})
	}
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, app_error.ConstraintViolation("account is disabled")
	}
	token, err := auth.CreateUserToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// LoginAdmin verifies the panel password and issues a token carrying the
// admin's permissions. Wrong username and wrong password are indistinguishable
// to the caller.
func (s *UserService) LoginAdmin(username, password string) (string, *repository.AdminUser, error) {
	admin, err := s.userRepository.GetAdminByUsername(username)
	if err == gorm.ErrRecordNotFound {
		return "", nil, app_error.NotFound("invalid credentials")
	}
	if err != nil {
		return "", nil, err
	}
	if !admin.IsActive {
		return "", nil, app_error.NotFound("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte(password)) != nil {
		return "", nil, app_error.NotFound("invalid credentials")
	}
	token, err := auth.CreateAdminToken(admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

func (s *UserService) GetUserById(userId uuid.UUID) (*repository.User, error) {
	return s.userRepository.GetUserById(userId)
}

func (s *UserService) GetAdminById(adminId uuid.UUID) (*repository.AdminUser, error) {
	return s.userRepository.GetAdminById(adminId)
}

// CreateAdmin hashes the password and stores the panel account. An account
// created without explicit permissions gets the admin role.
func (s *UserService) CreateAdmin(username, password string, fullName *string, permissions []string) (*repository.AdminUser, error) {
	if existing, err := s.userRepository.GetAdminByUsername(username); err == nil && existing != nil {
		return nil, app_error.ConstraintViolation("username %q already exists", username)
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if len(permissions) == 0 {
		permissions = []string{string(repository.PermissionAdmin)}
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.userRepository.SaveAdmin(&repository.AdminUser{
		Username:       username,
		HashedPassword: string(hashed),
		FullName:       fullName,
		IsActive:       true,
		Permissions:    permissions,
	})
}

package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dietchat-backend/models"
	"dietchat-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrMFARequired        = errors.New("mfa code required")
	ErrInvalidMFACode     = errors.New("invalid mfa code")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

type AuthService struct {
	db     *gorm.DB
	mailer *utils.Mailer
}

func NewAuthService(db *gorm.DB, mailer *utils.Mailer) *AuthService {
	return &AuthService{db: db, mailer: mailer}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: hash,
		FullName: strings.TrimSpace(input.FullName),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and returns a signed token. When the account has
// MFA enabled it instead emails a code and returns ErrMFARequired; the client
// finishes with VerifyMFA.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, ErrAccountDisabled
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		code := utils.GenerateRandomToken(6)
		user.MFACode = code
		if err := s.db.Save(&user).Error; err != nil {
			return "", nil, err
		}
		if s.mailer != nil {
			if err := s.mailer.SendMFAEmail(user.Email, code); err != nil {
				log.Printf("auth: MFA mail to %s failed: %v", user.Email, err)
			}
		}
		return "", &user, ErrMFARequired
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) VerifyMFA(email, code string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if user.MFACode == "" || user.MFACode != code {
		return "", nil, ErrInvalidMFACode
	}

	user.MFACode = ""
	if err := s.db.Save(&user).Error; err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) SetMFA(userID uint, enabled bool) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("mfa_enabled", enabled).Error
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint can't be used to probe which emails exist.
func (s *AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := utils.GenerateRandomToken(8)
	user.ResetToken = token
	user.ResetTokenExp = time.Now().Add(30 * time.Minute)
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendResetEmail(user.Email, token); err != nil {
			log.Printf("auth: reset mail to %s failed: %v", user.Email, err)
		}
	}
	return nil
}

func (s *AuthService) ResetPassword(email, token, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrInvalidResetToken
	}
	if user.ResetToken == "" || user.ResetToken != token || time.Now().After(user.ResetTokenExp) {
		return ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = hash
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.Save(&user).Error
}

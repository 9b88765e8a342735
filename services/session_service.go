// services/session_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"resource-booking-backend/models"
	"resource-booking-backend/utils"

	"gorm.io/gorm"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionService stores opaque login tokens in the relational store, the
// single source of truth, so any process can resolve them.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// Create issues a fresh token for the user.
func (s *SessionService) Create(userID uint) (string, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(sessionTTL)
	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: &expires,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user behind a token. Expired sessions are removed on
// sight and report ErrNotFound like unknown tokens.
func (s *SessionService) Resolve(token string) (models.User, error) {
	var session models.Session
	if err := s.DB.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: session", ErrNotFound)
		}
		return models.User{}, err
	}
	if session.ExpiresAt != nil && time.Now().After(*session.ExpiresAt) {
		_ = s.DB.Delete(&models.Session{}, session.ID).Error
		return models.User{}, fmt.Errorf("%w: session expired", ErrNotFound)
	}

	var user models.User
	if err := s.DB.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: session user", ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// Destroy drops one token; unknown tokens are a no-op.
func (s *SessionService) Destroy(token string) error {
	return s.DB.Where("token = ?", token).Delete(&models.Session{}).Error
}

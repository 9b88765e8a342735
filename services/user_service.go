// services/user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"resource-booking-backend/models"
	"resource-booking-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// UserService handles registration, authentication and account removal.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a verified user with role "user". A taken email or
// username surfaces as ErrConflict, whether caught up front or by the unique
// index.
func (s *UserService) Register(username, email, password string) error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: email already in use", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
		Verified:     true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("%w: email or username already in use", ErrConflict)
		}
		return err
	}
	return nil
}

// Authenticate checks the credentials and the verified flag. The same
// ErrInvalidCredentials covers unknown users and wrong passwords.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.Verified {
		return models.User{}, ErrNotVerified
	}
	return user, nil
}

func (s *UserService) Get(id uint) (models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteAccount removes the user together with every resource they own and
// that resource's bookings and windows, all in one transaction: either the
// whole cascade applies or none of it. Refused while a booking on one of the
// user's resources is still active (its end date is not today).
func (s *UserService) DeleteAccount(user models.User) error {
	var resourceIDs []uint
	if err := s.DB.Model(&models.Resource{}).Where("owner = ?", user.Username).
		Pluck("id", &resourceIDs).Error; err != nil {
		return err
	}

	if len(resourceIDs) > 0 {
		var bookings []models.Booking
		if err := s.DB.Where("resource_id IN ?", resourceIDs).Find(&bookings).Error; err != nil {
			return err
		}
		today := utils.FormatDay(time.Now())
		for _, b := range bookings {
			end := time.Time(b.EndDate)
			if end.IsZero() || utils.FormatDay(end) != today {
				return fmt.Errorf("%w: active bookings exist for your resources", ErrConflict)
			}
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if len(resourceIDs) > 0 {
			if err := tx.Where("resource_id IN ?", resourceIDs).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.Where("resource_id IN ?", resourceIDs).Delete(&models.Availability{}).Error; err != nil {
				return err
			}
			if err := tx.Where("owner = ?", user.Username).Delete(&models.Resource{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, user.ID).Error
	})
}

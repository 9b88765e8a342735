// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"resource-booking-backend/models"
	"resource-booking-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService validates and applies booking mutations.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// BookingDTO is the wire form of a booking, dates normalized to YYYY-MM-DD.
type BookingDTO struct {
	ID         uint    `json:"id"`
	ResourceID uint    `json:"resourceId"`
	Booker     string  `json:"booker"`
	Reference  string  `json:"reference"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Comment    *string `json:"comment,omitempty"`
	Image      *string `json:"image,omitempty"`
}

func toBookingDTO(b models.Booking) BookingDTO {
	start, end, _ := windowDays(b.StartDate, b.EndDate)
	return BookingDTO{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		Booker:     b.Booker,
		Reference:  b.Reference,
		StartDate:  start,
		EndDate:    end,
		Comment:    b.Comment,
		Image:      b.Image,
	}
}

// ValidateBookingRange decides whether [start, end] may be booked given the
// resource's current windows and bookings. Coverage first: every day of the
// proposed range, iterated start to end, must fall inside some window; the
// first uncovered day fails with NoAvailabilityError. Then overlap: no
// existing booking may share a day with the proposed range (inclusive
// bounds). Canonical YYYY-MM-DD strings compare correctly as strings.
func ValidateBookingRange(windows []models.Availability, existing []models.Booking, start, end string) error {
	for _, day := range utils.EnumerateDays(start, end) {
		covered := false
		for _, w := range windows {
			wStart, wEnd, ok := windowDays(w.StartDate, w.EndDate)
			if !ok {
				continue
			}
			if wStart <= day && day <= wEnd {
				covered = true
				break
			}
		}
		if !covered {
			return &NoAvailabilityError{Day: day}
		}
	}

	for _, b := range existing {
		bStart, bEnd, ok := windowDays(b.StartDate, b.EndDate)
		if !ok {
			continue
		}
		if !(bEnd < start || bStart > end) {
			return fmt.Errorf("%w: requested date range conflicts with existing booking", ErrConflict)
		}
	}
	return nil
}

type CreateBookingInput struct {
	ResourceID uint
	Booker     string
	StartDate  string
	EndDate    string
	Comment    *string
}

type CreatedBooking struct {
	ID            uint
	Reference     string
	ResourceImage *string
}

// Create validates the proposed range and inserts the booking. Validation and
// insert share one transaction, which narrows the check-then-insert race with
// concurrent writers but does not close it without serializable isolation;
// the conflict result is authoritative only at commit time.
func (s *BookingService) Create(in CreateBookingInput) (CreatedBooking, error) {
	start, ok := utils.NormalizeDate(in.StartDate)
	if !ok {
		return CreatedBooking{}, fmt.Errorf("%w: bad startDate", ErrValidation)
	}
	if in.EndDate == "" {
		in.EndDate = in.StartDate
	}
	end, ok := utils.NormalizeDate(in.EndDate)
	if !ok {
		return CreatedBooking{}, fmt.Errorf("%w: bad endDate", ErrValidation)
	}
	if start > end {
		return CreatedBooking{}, fmt.Errorf("%w: startDate after endDate", ErrValidation)
	}

	startT, _ := utils.ParseDay(start)
	endT, _ := utils.ParseDay(end)
	booking := models.Booking{
		ResourceID: in.ResourceID,
		Booker:     in.Booker,
		Reference:  uuid.NewString(),
		StartDate:  datatypes.Date(startT),
		EndDate:    datatypes.Date(endT),
		Comment:    in.Comment,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var windows []models.Availability
		if err := tx.Where("resource_id = ?", in.ResourceID).Find(&windows).Error; err != nil {
			return err
		}
		var existing []models.Booking
		if err := tx.Where("resource_id = ?", in.ResourceID).Find(&existing).Error; err != nil {
			return err
		}
		if err := ValidateBookingRange(windows, existing, start, end); err != nil {
			return err
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return CreatedBooking{}, err
	}

	created := CreatedBooking{ID: booking.ID, Reference: booking.Reference}

	// Denormalize the resource image onto the booking row, best effort.
	var resource models.Resource
	if err := s.DB.First(&resource, in.ResourceID).Error; err == nil && resource.Image != nil {
		created.ResourceImage = resource.Image
		if err := s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("image", resource.Image).Error; err != nil {
			log.Printf("could not save resource image on booking %d: %v", booking.ID, err)
		}
	}
	return created, nil
}

// List returns bookings ordered by start date, optionally for one resource.
func (s *BookingService) List(resourceID uint) ([]BookingDTO, error) {
	query := s.DB.Order("start_date")
	if resourceID != 0 {
		query = query.Where("resource_id = ?", resourceID)
	}
	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	dtos := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dtos = append(dtos, toBookingDTO(b))
	}
	return dtos, nil
}

// Delete removes a booking. Allowed for the booker and for the resource
// owner; everyone else gets ErrForbidden. The deleted booking is returned so
// the caller can notify subscribers.
func (s *BookingService) Delete(id uint, username string) (BookingDTO, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BookingDTO{}, fmt.Errorf("%w: booking %d", ErrNotFound, id)
		}
		return BookingDTO{}, err
	}

	var owner string
	var resource models.Resource
	if err := s.DB.First(&resource, booking.ResourceID).Error; err == nil {
		owner = resource.Owner
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BookingDTO{}, err
	}

	if username != booking.Booker && username != owner {
		return BookingDTO{}, fmt.Errorf("%w: cannot delete this booking", ErrForbidden)
	}

	if err := s.DB.Delete(&models.Booking{}, id).Error; err != nil {
		return BookingDTO{}, err
	}
	return toBookingDTO(booking), nil
}

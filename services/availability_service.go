// services/availability_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"resource-booking-backend/models"
	"resource-booking-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AvailabilityService owns availability windows and the derived set of
// bookable dates for a resource.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// WindowDTO is the wire form of an availability window, dates normalized to
// YYYY-MM-DD.
type WindowDTO struct {
	ID         uint   `json:"id"`
	ResourceID uint   `json:"resourceId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

func windowDays(start, end datatypes.Date) (string, string, bool) {
	s, e := time.Time(start), time.Time(end)
	if s.IsZero() || e.IsZero() {
		return "", "", false
	}
	return utils.FormatDay(s), utils.FormatDay(e), true
}

func toWindowDTO(a models.Availability) (WindowDTO, bool) {
	start, end, ok := windowDays(a.StartDate, a.EndDate)
	if !ok {
		return WindowDTO{}, false
	}
	return WindowDTO{ID: a.ID, ResourceID: a.ResourceID, StartDate: start, EndDate: end}, true
}

// BuildAvailableDates derives the ascending list of currently-bookable days:
// the union of all window day sets minus the union of all booking day sets.
// Rows with missing or malformed dates are skipped, never fatal, and the
// result does not depend on input order or duplication.
func BuildAvailableDates(windows []models.Availability, bookings []models.Booking) []string {
	open := make(map[string]struct{})
	for _, w := range windows {
		start, end, ok := windowDays(w.StartDate, w.EndDate)
		if !ok {
			continue
		}
		for _, day := range utils.EnumerateDays(start, end) {
			open[day] = struct{}{}
		}
	}
	for _, b := range bookings {
		start, end, ok := windowDays(b.StartDate, b.EndDate)
		if !ok {
			continue
		}
		for _, day := range utils.EnumerateDays(start, end) {
			delete(open, day)
		}
	}

	dates := make([]string, 0, len(open))
	for day := range open {
		dates = append(dates, day)
	}
	sort.Strings(dates)
	return dates
}

// AvailableDates returns the resource's windows plus the derived bookable-day
// set and its grouped range form. Unknown resources yield empty slices.
func (s *AvailabilityService) AvailableDates(resourceID uint) ([]WindowDTO, []string, []utils.DateRange, error) {
	var windows []models.Availability
	if err := s.DB.Where("resource_id = ?", resourceID).Order("start_date").Find(&windows).Error; err != nil {
		return nil, nil, nil, err
	}
	var bookings []models.Booking
	if err := s.DB.Where("resource_id = ?", resourceID).Find(&bookings).Error; err != nil {
		return nil, nil, nil, err
	}

	dtos := make([]WindowDTO, 0, len(windows))
	for _, w := range windows {
		if dto, ok := toWindowDTO(w); ok {
			dtos = append(dtos, dto)
		}
	}
	dates := BuildAvailableDates(windows, bookings)
	return dtos, dates, utils.GroupContiguous(dates), nil
}

// ListWindows returns all windows, optionally scoped to one resource.
func (s *AvailabilityService) ListWindows(resourceID uint) ([]WindowDTO, error) {
	query := s.DB.Order("resource_id, start_date")
	if resourceID != 0 {
		query = s.DB.Where("resource_id = ?", resourceID).Order("start_date")
	}
	var windows []models.Availability
	if err := query.Find(&windows).Error; err != nil {
		return nil, err
	}
	dtos := make([]WindowDTO, 0, len(windows))
	for _, w := range windows {
		if dto, ok := toWindowDTO(w); ok {
			dtos = append(dtos, dto)
		}
	}
	return dtos, nil
}

// Create adds a window for the resource after checking the acting user owns
// it. Dates are normalized; an inverted range is rejected.
func (s *AvailabilityService) Create(resourceID uint, username, startDate, endDate string) (uint, error) {
	start, ok := utils.NormalizeDate(startDate)
	if !ok {
		return 0, fmt.Errorf("%w: bad startDate", ErrValidation)
	}
	if endDate == "" {
		endDate = startDate
	}
	end, ok := utils.NormalizeDate(endDate)
	if !ok {
		return 0, fmt.Errorf("%w: bad endDate", ErrValidation)
	}
	if start > end {
		return 0, fmt.Errorf("%w: startDate after endDate", ErrValidation)
	}

	var resource models.Resource
	if err := s.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: resource %d", ErrNotFound, resourceID)
		}
		return 0, err
	}
	if resource.Owner != username {
		return 0, fmt.Errorf("%w: not the resource owner", ErrForbidden)
	}

	startT, _ := utils.ParseDay(start)
	endT, _ := utils.ParseDay(end)
	window := models.Availability{
		ResourceID: resourceID,
		StartDate:  datatypes.Date(startT),
		EndDate:    datatypes.Date(endT),
	}
	if err := s.DB.Create(&window).Error; err != nil {
		return 0, err
	}
	return window.ID, nil
}

// Delete removes a window (owner only) and reports which resource it belonged
// to so the caller can notify subscribers.
func (s *AvailabilityService) Delete(id uint, username string) (uint, error) {
	var window models.Availability
	if err := s.DB.First(&window, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: availability %d", ErrNotFound, id)
		}
		return 0, err
	}

	var resource models.Resource
	if err := s.DB.First(&resource, window.ResourceID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if resource.Owner != username {
		return 0, fmt.Errorf("%w: not the resource owner", ErrForbidden)
	}

	if err := s.DB.Delete(&models.Availability{}, id).Error; err != nil {
		return 0, err
	}
	return window.ResourceID, nil
}

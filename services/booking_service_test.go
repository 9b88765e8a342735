package services

import (
	"errors"
	"testing"

	"resource-booking-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateBookingRangeCoveredRangeSucceeds(t *testing.T) {
	windows := []models.Availability{
		{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-10")},
	}
	err := ValidateBookingRange(windows, nil, "2024-01-03", "2024-01-05")
	assert.NoError(t, err)
}

func TestValidateBookingRangeReportsFirstUncoveredDay(t *testing.T) {
	windows := []models.Availability{
		{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-10")},
	}
	err := ValidateBookingRange(windows, nil, "2024-01-09", "2024-01-12")

	var noAvail *NoAvailabilityError
	assert.True(t, errors.As(err, &noAvail))
	assert.Equal(t, "2024-01-11", noAvail.Day)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestValidateBookingRangeCoverageMaySpanWindows(t *testing.T) {
	windows := []models.Availability{
		{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-03")},
		{ResourceID: 1, StartDate: day("2024-01-04"), EndDate: day("2024-01-06")},
	}
	err := ValidateBookingRange(windows, nil, "2024-01-02", "2024-01-05")
	assert.NoError(t, err)
}

func TestValidateBookingRangeOverlapConflicts(t *testing.T) {
	windows := []models.Availability{
		{ResourceID: 1, StartDate: day("2024-02-01"), EndDate: day("2024-02-28")},
	}
	existing := []models.Booking{
		{ResourceID: 1, StartDate: day("2024-02-01"), EndDate: day("2024-02-05")},
	}

	err := ValidateBookingRange(windows, existing, "2024-02-04", "2024-02-06")
	assert.True(t, errors.Is(err, ErrConflict))
	var noAvail *NoAvailabilityError
	assert.False(t, errors.As(err, &noAvail), "overlap must not report as coverage gap")
}

func TestValidateBookingRangeAdjacentBookingAllowed(t *testing.T) {
	windows := []models.Availability{
		{ResourceID: 1, StartDate: day("2024-02-01"), EndDate: day("2024-02-28")},
	}
	existing := []models.Booking{
		{ResourceID: 1, StartDate: day("2024-02-01"), EndDate: day("2024-02-05")},
	}

	err := ValidateBookingRange(windows, existing, "2024-02-06", "2024-02-08")
	assert.NoError(t, err)
}

func TestValidateBookingRangeSkipsMalformedRows(t *testing.T) {
	windows := []models.Availability{
		{ResourceID: 1}, // zero dates, ignored
		{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-10")},
	}
	existing := []models.Booking{
		{ResourceID: 1}, // zero dates, ignored
	}
	err := ValidateBookingRange(windows, existing, "2024-01-02", "2024-01-03")
	assert.NoError(t, err)
}

func TestCreateBookingPersistsRow(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice"})
	db.Create(&models.Availability{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-10")})

	created, err := svc.Create(CreateBookingInput{
		ResourceID: 1,
		Booker:     "bob",
		StartDate:  "2024-01-03",
		EndDate:    "2024-01-05",
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.Reference)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateBookingConflictLeavesNoRow(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice"})
	db.Create(&models.Availability{ResourceID: 1, StartDate: day("2024-02-01"), EndDate: day("2024-02-28")})
	db.Create(&models.Booking{ResourceID: 1, Booker: "bob", StartDate: day("2024-02-01"), EndDate: day("2024-02-05")})

	_, err := svc.Create(CreateBookingInput{
		ResourceID: 1,
		Booker:     "carol",
		StartDate:  "2024-02-04",
		EndDate:    "2024-02-06",
	})
	assert.True(t, errors.Is(err, ErrConflict))

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateBookingDefaultsEndDateToStart(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice"})
	db.Create(&models.Availability{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-10")})

	created, err := svc.Create(CreateBookingInput{ResourceID: 1, Booker: "bob", StartDate: "2024-01-04"})
	assert.NoError(t, err)

	bookings, err := svc.List(1)
	assert.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.Equal(t, created.ID, bookings[0].ID)
	assert.Equal(t, "2024-01-04", bookings[0].StartDate)
	assert.Equal(t, "2024-01-04", bookings[0].EndDate)
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)

	_, err := svc.Create(CreateBookingInput{ResourceID: 1, Booker: "bob", StartDate: "2024-01-05", EndDate: "2024-01-03"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCreateBookingCopiesResourceImage(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	image := "https://cdn.example/van.jpg"
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice", Image: &image})
	db.Create(&models.Availability{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-10")})

	created, err := svc.Create(CreateBookingInput{ResourceID: 1, Booker: "bob", StartDate: "2024-01-02"})
	assert.NoError(t, err)
	if assert.NotNil(t, created.ResourceImage) {
		assert.Equal(t, image, *created.ResourceImage)
	}

	var booking models.Booking
	db.First(&booking, created.ID)
	if assert.NotNil(t, booking.Image) {
		assert.Equal(t, image, *booking.Image)
	}
}

func TestDeleteBookingByBooker(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice"})
	db.Create(&models.Booking{ResourceID: 1, Booker: "bob", StartDate: day("2024-01-02"), EndDate: day("2024-01-03")})

	deleted, err := svc.Delete(1, "bob")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), deleted.ResourceID)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteBookingByResourceOwner(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice"})
	db.Create(&models.Booking{ResourceID: 1, Booker: "bob", StartDate: day("2024-01-02"), EndDate: day("2024-01-03")})

	_, err := svc.Delete(1, "alice")
	assert.NoError(t, err)
}

func TestDeleteBookingForbiddenForStranger(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)
	db.Create(&models.Resource{Name: "Van", Type: "Vehicle", Owner: "alice"})
	db.Create(&models.Booking{ResourceID: 1, Booker: "bob", StartDate: day("2024-01-02"), EndDate: day("2024-01-03")})

	_, err := svc.Delete(1, "mallory")
	assert.True(t, errors.Is(err, ErrForbidden))

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteBookingNotFound(t *testing.T) {
	db := setupTestDB()
	svc := NewBookingService(db)

	_, err := svc.Delete(42, "bob")
	assert.True(t, errors.Is(err, ErrNotFound))
}

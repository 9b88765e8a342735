package services

import (
	"errors"
	"testing"

	"resource-booking-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildAvailableDatesUnionMinusBookings(t *testing.T) {
	windows := []models.Availability{
		{StartDate: day("2024-01-01"), EndDate: day("2024-01-05")},
		{StartDate: day("2024-01-04"), EndDate: day("2024-01-08")}, // overlaps, collapses
	}
	bookings := []models.Booking{
		{StartDate: day("2024-01-03"), EndDate: day("2024-01-04")},
	}

	got := BuildAvailableDates(windows, bookings)
	want := []string{"2024-01-01", "2024-01-02", "2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08"}
	assert.Equal(t, want, got)
}

func TestBuildAvailableDatesOrderAndDuplicationIndependent(t *testing.T) {
	a := []models.Availability{
		{StartDate: day("2024-01-01"), EndDate: day("2024-01-03")},
		{StartDate: day("2024-01-06"), EndDate: day("2024-01-08")},
	}
	b := []models.Booking{
		{StartDate: day("2024-01-02"), EndDate: day("2024-01-02")},
	}

	reference := BuildAvailableDates(a, b)

	shuffled := []models.Availability{a[1], a[0], a[1]} // reordered with a duplicate
	doubled := []models.Booking{b[0], b[0]}
	assert.Equal(t, reference, BuildAvailableDates(shuffled, doubled))
}

func TestBuildAvailableDatesSkipsMalformedRows(t *testing.T) {
	windows := []models.Availability{
		{}, // zero dates, ignored
		{StartDate: day("2024-01-01"), EndDate: day("2024-01-02")},
	}
	bookings := []models.Booking{
		{}, // zero dates, ignored
	}

	got := BuildAvailableDates(windows, bookings)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, got)
}

func TestBuildAvailableDatesFullyBookedIsEmpty(t *testing.T) {
	windows := []models.Availability{
		{StartDate: day("2024-01-01"), EndDate: day("2024-01-02")},
	}
	bookings := []models.Booking{
		{StartDate: day("2024-01-01"), EndDate: day("2024-01-02")},
	}

	assert.Empty(t, BuildAvailableDates(windows, bookings))
}

func TestAvailableDatesUnknownResourceIsEmptyNotError(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)

	windows, dates, ranges, err := svc.AvailableDates(999)
	assert.NoError(t, err)
	assert.Empty(t, windows)
	assert.Empty(t, dates)
	assert.Empty(t, ranges)
}

func TestAvailableDatesGroupsRanges(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)
	db.Create(&models.Resource{Name: "Cabin", Type: "Venue", Owner: "alice"})
	db.Create(&models.Availability{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-06")})
	db.Create(&models.Booking{ResourceID: 1, Booker: "bob", StartDate: day("2024-01-03"), EndDate: day("2024-01-04")})

	windows, dates, ranges, err := svc.AvailableDates(1)
	assert.NoError(t, err)
	assert.Len(t, windows, 1)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-05", "2024-01-06"}, dates)
	if assert.Len(t, ranges, 2) {
		assert.Equal(t, "2024-01-01", ranges[0].Start)
		assert.Equal(t, "2024-01-02", ranges[0].End)
		assert.Equal(t, "2024-01-05", ranges[1].Start)
		assert.Equal(t, "2024-01-06", ranges[1].End)
	}
}

func TestCreateWindowOwnerOnly(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)
	db.Create(&models.Resource{Name: "Cabin", Type: "Venue", Owner: "alice"})

	id, err := svc.Create(1, "alice", "2024-01-01", "2024-01-05")
	assert.NoError(t, err)
	assert.NotZero(t, id)

	_, err = svc.Create(1, "bob", "2024-01-01", "2024-01-05")
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestCreateWindowUnknownResource(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)

	_, err := svc.Create(7, "alice", "2024-01-01", "2024-01-05")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateWindowRejectsBadDates(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)
	db.Create(&models.Resource{Name: "Cabin", Type: "Venue", Owner: "alice"})

	_, err := svc.Create(1, "alice", "not-a-date", "")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Create(1, "alice", "2024-01-05", "2024-01-01")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCreateWindowDefaultsEndToStart(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)
	db.Create(&models.Resource{Name: "Cabin", Type: "Venue", Owner: "alice"})

	id, err := svc.Create(1, "alice", "2024-01-03", "")
	assert.NoError(t, err)

	windows, err := svc.ListWindows(1)
	assert.NoError(t, err)
	if assert.Len(t, windows, 1) {
		assert.Equal(t, id, windows[0].ID)
		assert.Equal(t, "2024-01-03", windows[0].StartDate)
		assert.Equal(t, "2024-01-03", windows[0].EndDate)
	}
}

func TestDeleteWindowOwnerOnly(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)
	db.Create(&models.Resource{Name: "Cabin", Type: "Venue", Owner: "alice"})
	db.Create(&models.Availability{ResourceID: 1, StartDate: day("2024-01-01"), EndDate: day("2024-01-05")})

	_, err := svc.Delete(1, "bob")
	assert.True(t, errors.Is(err, ErrForbidden))

	resourceID, err := svc.Delete(1, "alice")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), resourceID)

	var count int64
	db.Model(&models.Availability{}).Count(&count)
	assert.Zero(t, count)
}

func TestDeleteWindowNotFound(t *testing.T) {
	db := setupTestDB()
	svc := NewAvailabilityService(db)

	_, err := svc.Delete(42, "alice")
	assert.True(t, errors.Is(err, ErrNotFound))
}

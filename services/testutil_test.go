package services

import (
	"time"

	"resource-booking-backend/models"
	"resource-booking-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database")
	}
	db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ResourceType{},
		&models.Resource{},
		&models.Availability{},
		&models.Booking{},
	)
	return db
}

func day(s string) datatypes.Date {
	t, err := time.Parse(utils.DayFormat, s)
	if err != nil {
		panic("bad test date: " + s)
	}
	return datatypes.Date(t)
}

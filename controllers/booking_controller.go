// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"resource-booking-backend/middleware"
	"resource-booking-backend/realtime"
	"resource-booking-backend/services"
	"resource-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
	Hub      *realtime.Hub
}

func NewBookingController(bookings *services.BookingService, hub *realtime.Hub) *BookingController {
	return &BookingController{Bookings: bookings, Hub: hub}
}

type CreateBookingPayload struct {
	ResourceID uint    `json:"resourceId"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Comment    *string `json:"comment"`
}

func (ct *BookingController) List(c *gin.Context) {
	var resourceID uint
	if raw := c.Query("resourceId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONMessage(c, http.StatusBadRequest, "Invalid resource id")
			return
		}
		resourceID = uint(parsed)
	}

	bookings, err := ct.Bookings.List(resourceID)
	if err != nil {
		log.Printf("GET /api/bookings error: %v", err)
		utils.JSONInternalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (ct *BookingController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.ResourceID == 0 || payload.StartDate == "" {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required booking fields")
		return
	}

	created, err := ct.Bookings.Create(services.CreateBookingInput{
		ResourceID: payload.ResourceID,
		Booker:     user.Username,
		StartDate:  payload.StartDate,
		EndDate:    payload.EndDate,
		Comment:    payload.Comment,
	})
	if err != nil {
		var noAvail *services.NoAvailabilityError
		switch {
		case errors.As(err, &noAvail):
			utils.JSONMessage(c, http.StatusConflict, noAvail.Error())
		case errors.Is(err, services.ErrConflict):
			utils.JSONMessage(c, http.StatusConflict, "Requested date range conflicts with existing booking")
		case errors.Is(err, services.ErrValidation):
			utils.JSONMessage(c, http.StatusBadRequest, "Missing required booking fields")
		default:
			log.Printf("POST /api/bookings error: %v", err)
			utils.JSONInternalError(c)
		}
		return
	}

	startDate, _ := utils.NormalizeDate(payload.StartDate)
	endDate := startDate
	if payload.EndDate != "" {
		endDate, _ = utils.NormalizeDate(payload.EndDate)
	}
	eventPayload := map[string]any{
		"resourceId": payload.ResourceID,
		"startDate":  startDate,
		"endDate":    endDate,
		"bookingId":  created.ID,
	}
	if created.ResourceImage != nil {
		eventPayload["resourceImage"] = *created.ResourceImage
	}
	ct.Hub.PublishResource(payload.ResourceID, realtime.EventBookingCreated, eventPayload)

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Booking created",
		"bookingId":     created.ID,
		"resourceImage": created.ResourceImage,
	})
}

func (ct *BookingController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := ct.Bookings.Delete(uint(id), user.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.JSONMessage(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, services.ErrForbidden):
			utils.JSONMessage(c, http.StatusForbidden, "Forbidden: cannot delete this booking")
		default:
			log.Printf("DELETE /api/bookings/:id error: %v", err)
			utils.JSONInternalError(c)
		}
		return
	}

	ct.Hub.PublishResource(booking.ResourceID, realtime.EventBookingDeleted, map[string]any{
		"bookingId":  booking.ID,
		"resourceId": booking.ResourceID,
	})
	utils.JSONMessage(c, http.StatusOK, "Booking deleted")
}

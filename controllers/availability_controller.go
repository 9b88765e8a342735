// controllers/availability_controller.go
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

type AvailabilityController struct {
	Availability *services.AvailabilityService
	Hub          *realtime.Hub
}

func NewAvailabilityController(availability *services.AvailabilityService, hub *realtime.Hub) *AvailabilityController {
	return &AvailabilityController{Availability: availability, Hub: hub}
}

type CreateAvailabilityPayload struct {
	ResourceID uint   `json:"resourceId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// List serves GET /api/availability. With ?resourceId= it returns the
// resource's windows plus the derived bookable-day set; an unknown resource
// yields empty arrays, still 200. Without the parameter it lists every
// window.
func (ct *AvailabilityController) List(c *gin.Context) {
	raw := c.Query("resourceId")
	if raw == "" {
		windows, err := ct.Availability.ListWindows(0)
		if err != nil {
			log.Printf("GET /api/availability error: %v", err)
			utils.JSONInternalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"availability": windows})
		return
	}

	resourceID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid resource id")
		return
	}
	ct.respondAvailableDates(c, uint(resourceID))
}

// ByResource serves GET /api/resources/:id/availability, the scoped alias.
func (ct *AvailabilityController) ByResource(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid resource id")
		return
	}
	ct.respondAvailableDates(c, uint(resourceID))
}

func (ct *AvailabilityController) respondAvailableDates(c *gin.Context, resourceID uint) {
	windows, dates, ranges, err := ct.Availability.AvailableDates(resourceID)
	if err != nil {
		log.Printf("GET availability for resource %d error: %v", resourceID, err)
		utils.JSONInternalError(c)
		return
	}
	formatted := make([]string, 0, len(ranges))
	for _, r := range ranges {
		formatted = append(formatted, utils.FormatRange(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"availability":    windows,
		"availableDates":  dates,
		"availableRanges": ranges,
		"displayRanges":   formatted,
	})
}

// Create serves POST /api/availability with resourceId in the body.
func (ct *AvailabilityController) Create(c *gin.Context) {
	var payload CreateAvailabilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.ResourceID == 0 || payload.StartDate == "" {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required availability fields")
		return
	}
	ct.createWindow(c, payload.ResourceID, payload)
}

// CreateForResource serves POST /api/resources/:id/availability.
func (ct *AvailabilityController) CreateForResource(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid resource id")
		return
	}
	var payload CreateAvailabilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.StartDate == "" {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing required availability fields")
		return
	}
	ct.createWindow(c, uint(resourceID), payload)
}

func (ct *AvailabilityController) createWindow(c *gin.Context, resourceID uint, payload CreateAvailabilityPayload) {
	user, _ := middleware.CurrentUser(c)

	id, err := ct.Availability.Create(resourceID, user.Username, payload.StartDate, payload.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.JSONMessage(c, http.StatusBadRequest, "Missing required availability fields")
		case errors.Is(err, services.ErrNotFound):
			utils.JSONMessage(c, http.StatusNotFound, "Resource not found")
		case errors.Is(err, services.ErrForbidden):
			utils.JSONMessage(c, http.StatusForbidden, "Forbidden: you are not the owner of this resource")
		default:
			log.Printf("POST availability error: %v", err)
			utils.JSONInternalError(c)
		}
		return
	}

	startDate, _ := utils.NormalizeDate(payload.StartDate)
	endDate := startDate
	if payload.EndDate != "" {
		endDate, _ = utils.NormalizeDate(payload.EndDate)
	}
	ct.Hub.PublishResource(resourceID, realtime.EventAvailabilityChanged, map[string]any{
		"resourceId": resourceID,
		"startDate":  startDate,
		"endDate":    endDate,
		"id":         id,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Availability created", "id": id})
}

// Delete serves DELETE /api/availability/:id, owner only.
func (ct *AvailabilityController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid availability id")
		return
	}

	resourceID, err := ct.Availability.Delete(uint(id), user.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.JSONMessage(c, http.StatusNotFound, "Availability not found")
		case errors.Is(err, services.ErrForbidden):
			utils.JSONMessage(c, http.StatusForbidden, "Forbidden: you are not the owner of this resource")
		default:
			log.Printf("DELETE /api/availability/:id error: %v", err)
			utils.JSONInternalError(c)
		}
		return
	}

	ct.Hub.PublishResource(resourceID, realtime.EventAvailabilityChanged, map[string]any{
		"resourceId": resourceID,
	})
	utils.JSONMessage(c, http.StatusOK, "Availability deleted")
}

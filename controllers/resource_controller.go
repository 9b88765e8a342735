// controllers/resource_controller.go
package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"resource-booking-backend/middleware"
	"resource-booking-backend/realtime"
	"resource-booking-backend/services"
	"resource-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	Resources *services.ResourceService
	Hub       *realtime.Hub
}

func NewResourceController(resources *services.ResourceService, hub *realtime.Hub) *ResourceController {
	return &ResourceController{Resources: resources, Hub: hub}
}

// CreateResourcePayload accepts type as either a name or a numeric id into
// the types table, so it stays untyped here.
type CreateResourcePayload struct {
	Name     string  `json:"name"`
	Type     any     `json:"type"`
	ImageURL *string `json:"imageUrl"`
}

func (ct *ResourceController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	resources, err := ct.Resources.ListOthers(user.Username)
	if err != nil {
		log.Printf("GET /api/resources error: %v", err)
		utils.JSONInternalError(c)
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (ct *ResourceController) ListMine(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	resources, err := ct.Resources.ListMine(user.Username)
	if err != nil {
		log.Printf("GET /api/resources/mine error: %v", err)
		utils.JSONInternalError(c)
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (ct *ResourceController) Types(c *gin.Context) {
	types, err := ct.Resources.Types()
	if err != nil {
		log.Printf("GET /api/types error: %v", err)
		utils.JSONInternalError(c)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ct *ResourceController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var payload CreateResourcePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing name or type")
		return
	}
	typeValue := ""
	if payload.Type != nil {
		typeValue = strings.TrimSpace(fmt.Sprintf("%v", payload.Type))
	}
	if payload.Name == "" || typeValue == "" {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing name or type")
		return
	}

	resource, err := ct.Resources.Create(payload.Name, typeValue, user.Username, payload.ImageURL)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.JSONMessage(c, http.StatusBadRequest, "Invalid type id")
			return
		}
		log.Printf("POST /api/resources error: %v", err)
		utils.JSONInternalError(c)
		return
	}

	ct.Hub.PublishGlobal(realtime.EventResourceCreated, map[string]any{
		"id":    resource.ID,
		"name":  resource.Name,
		"type":  resource.Type,
		"owner": resource.Owner,
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Resource created", "id": resource.ID})
}

func (ct *ResourceController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Invalid resource id")
		return
	}

	result, err := ct.Resources.Delete(uint(id), user.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.JSONMessage(c, http.StatusNotFound, "Resource not found")
		case errors.Is(err, services.ErrForbidden):
			utils.JSONMessage(c, http.StatusForbidden, "Forbidden: you are not the owner of this resource")
		default:
			log.Printf("DELETE /api/resources/:id error: %v", err)
			utils.JSONInternalError(c)
		}
		return
	}
	for _, depErr := range result.DependentErrors {
		log.Printf("DELETE /api/resources/%d dependent delete failed: %v", id, depErr)
	}

	ct.Hub.PublishGlobal(realtime.EventResourceDeleted, map[string]any{"id": uint(id)})
	utils.JSONMessage(c, http.StatusOK, "Resource deleted")
}

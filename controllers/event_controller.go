// controllers/event_controller.go
package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"resource-booking-backend/realtime"
	"resource-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

type EventController struct {
	Hub *realtime.Hub
}

func NewEventController(hub *realtime.Hub) *EventController {
	return &EventController{Hub: hub}
}

type SubscriptionPayload struct {
	ConnectionID string `json:"connectionId" binding:"required"`
	ResourceID   uint   `json:"resourceId" binding:"required"`
}

func writeSSE(w gin.ResponseWriter, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("could not marshal %s event: %v", name, err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}

// Stream serves GET /api/events: a long-lived SSE connection. The first
// event carries the assigned connection id, which join/leave requests refer
// back to. Events published before a join are gone; there is no replay.
func (ct *EventController) Stream(c *gin.Context) {
	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, events := ct.Hub.Connect()
	defer ct.Hub.Disconnect(id)

	writeSSE(w, "connected", map[string]any{"connectionId": id})
	w.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			writeSSE(w, ev.Name, ev.Payload)
			w.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			w.Flush()
		}
	}
}

// Join subscribes a connection to a resource's events. Idempotent; an
// unknown connection id is accepted and simply has no effect, mirroring a
// room join after disconnect.
func (ct *EventController) Join(c *gin.Context) {
	var payload SubscriptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing connectionId or resourceId")
		return
	}
	ct.Hub.Join(payload.ConnectionID, payload.ResourceID)
	utils.JSONMessage(c, http.StatusOK, "Joined resource")
}

// Leave removes a connection's subscription to a resource. Idempotent.
func (ct *EventController) Leave(c *gin.Context) {
	var payload SubscriptionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONMessage(c, http.StatusBadRequest, "Missing connectionId or resourceId")
		return
	}
	ct.Hub.Leave(payload.ConnectionID, payload.ResourceID)
	utils.JSONMessage(c, http.StatusOK, "Left resource")
}

package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"showcase/backend/internal/service"
)

type CountdownHandler struct {
	countdownService *service.CountdownService
}

type createTimerRequest struct {
	Name       string `json:"name"`
	TargetDate string `json:"targetDate"`
	TargetTime string `json:"targetTime"`
}

func NewCountdownHandler(countdownService *service.CountdownService) *CountdownHandler {
	return &CountdownHandler{countdownService: countdownService}
}

func (h *CountdownHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	timers, apiErr := h.countdownService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timers": timers})
}

func (h *CountdownHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req createTimerRequest
	if !bindJSON(c, &req) {
		return
	}

	timer, apiErr := h.countdownService.Create(c.Request.Context(), userID, service.CreateTimerInput{
		Name:       req.Name,
		TargetDate: req.TargetDate,
		TargetTime: req.TargetTime,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"timer":   timer,
		"message": "Countdown timer created successfully!",
	})
}

func (h *CountdownHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if apiErr := h.countdownService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

// Events streams tick and completed events as server-sent events until the
// client goes away.
func (h *CountdownHandler) Events(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	stream, unsubscribe, apiErr := h.countdownService.Subscribe(ctx, userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, open := <-stream:
			if !open {
				return false
			}
			c.SSEvent(event.Kind, event)
			return true
		}
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showcase/backend/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req service.ContactInput
	if !bindJSON(c, &req) {
		return
	}

	message, apiErr := h.contactService.Submit(c.Request.Context(), userID, req)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func (h *ContactHandler) Count(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	count, apiErr := h.contactService.Count(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

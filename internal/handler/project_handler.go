package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showcase/backend/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": h.projectService.List()})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, apiErr := h.projectService.Get(c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

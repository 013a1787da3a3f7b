package service_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/backend/internal/service"
)

func TestProjectService(t *testing.T) {
	svc := service.NewProjectService(nil)

	assert.Len(t, svc.List(), 6)

	project, apiErr := svc.Get(" 6 ")
	require.Nil(t, apiErr)
	assert.Equal(t, "Fitness Tracker", project.Title)

	_, apiErr = svc.Get("7")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "project_not_found", apiErr.Code)
}

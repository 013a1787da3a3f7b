package service

import (
	"strings"

	"showcase/backend/internal/content"
	apperrors "showcase/backend/internal/errors"
	"showcase/backend/internal/model"
)

// ProjectService serves the read-only portfolio catalog.
type ProjectService struct {
	projects *content.Projects
}

func NewProjectService(projects *content.Projects) *ProjectService {
	if projects == nil {
		projects = content.DefaultProjects()
	}
	return &ProjectService{projects: projects}
}

func (s *ProjectService) List() []model.Project {
	return s.projects.Projects
}

func (s *ProjectService) Get(id string) (*model.Project, *apperrors.APIError) {
	project, ok := s.projects.Get(strings.TrimSpace(id))
	if !ok {
		return nil, apperrors.NotFound("project_not_found", "project not found")
	}
	return &project, nil
}

package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"ppt-workbench-backend/internal/export"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/store"
)

type ExportService struct {
	store     *store.Store
	artifacts *export.ArtifactStore
}

func NewExportService(st *store.Store, artifacts *export.ArtifactStore) *ExportService {
	return &ExportService{store: st, artifacts: artifacts}
}

func (s *ExportService) ExportPDF(projectID uuid.UUID) (string, error) {
	return s.export(projectID, "pdf", func(p *models.Project) ([]byte, error) {
		return export.BuildPDF(p.Slides)
	})
}

func (s *ExportService) ExportPPTX(projectID uuid.UUID) (string, error) {
	return s.export(projectID, "pptx", func(p *models.Project) ([]byte, error) {
		return export.BuildPPTX(p.Slides, p.Title)
	})
}

func (s *ExportService) ExportImages(projectID uuid.UUID) (string, error) {
	return s.export(projectID, "zip", func(p *models.Project) ([]byte, error) {
		return export.BuildImageArchive(p.Slides)
	})
}

// export loads the project, enforces the completeness precondition, builds
// the artifact, and retains it under a timestamped filename. Nothing is
// written when the precondition fails.
func (s *ExportService) export(projectID uuid.UUID, extension string, build func(*models.Project) ([]byte, error)) (string, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return "", err
	}

	if err := export.CheckComplete(project.Slides); err != nil {
		return "", err
	}

	data, err := build(project)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%d.%s", project.ID, time.Now().UnixMilli(), extension)
	if err := s.artifacts.Save(filename, data); err != nil {
		return "", err
	}

	return "/api/export/download/" + filename, nil
}

func (s *ExportService) GetArtifact(filename string) ([]byte, error) {
	return s.artifacts.Read(filename)
}

func (s *ExportService) Cleanup(maxAge time.Duration) (int, error) {
	return s.artifacts.Cleanup(maxAge)
}

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"ppt-workbench-backend/internal/models"
)

// CreateProject persists a project together with its ordered slides in one
// transaction. Timestamps are filled in from the returned rows.
func (s *Store) CreateProject(project *models.Project, slides []models.Slide) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO projects (id, title, source_content, style_mode, custom_prompt, slide_count, locale)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, project.ID.String(), project.Title, project.SourceContent, project.StyleMode,
		project.CustomPrompt, project.SlideCount, project.Locale)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	for i := range slides {
		sl := &slides[i]
		_, err = tx.Exec(`
			INSERT INTO slides (id, project_id, page_number, title, content, image_prompt, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, sl.ID.String(), sl.ProjectID.String(), sl.PageNumber, sl.Title, sl.Content, sl.ImagePrompt, sl.Status)
		if err != nil {
			return fmt.Errorf("failed to insert slide %d: %w", sl.PageNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}

	return nil
}

// GetProject returns the project with its slides ordered by page number.
func (s *Store) GetProject(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.QueryRow(`
		SELECT id, title, source_content, style_mode, custom_prompt, slide_count, locale, created_at, updated_at
		FROM projects
		WHERE id = $1
	`, id.String()).Scan(
		&project.ID, &project.Title, &project.SourceContent, &project.StyleMode,
		&project.CustomPrompt, &project.SlideCount, &project.Locale,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	slides, err := s.ListSlides(id)
	if err != nil {
		return nil, err
	}
	project.Slides = slides

	return &project, nil
}

// DeleteProject removes a project; slides go with it via ON DELETE CASCADE.
func (s *Store) DeleteProject(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

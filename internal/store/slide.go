package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"ppt-workbench-backend/internal/models"
)

const slideColumns = `id, project_id, page_number, title, content, image_prompt, image_url, reference_image_url, status, created_at`

func scanSlide(row interface{ Scan(...any) error }) (*models.Slide, error) {
	var slide models.Slide
	err := row.Scan(
		&slide.ID, &slide.ProjectID, &slide.PageNumber, &slide.Title,
		&slide.Content, &slide.ImagePrompt, &slide.ImageURL,
		&slide.ReferenceImageURL, &slide.Status, &slide.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slide, nil
}

func (s *Store) GetSlide(id uuid.UUID) (*models.Slide, error) {
	slide, err := scanSlide(s.db.QueryRow(
		`SELECT `+slideColumns+` FROM slides WHERE id = $1`, id.String(),
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}
	return slide, nil
}

// ListSlides returns a project's slides ordered by page number ascending.
func (s *Store) ListSlides(projectID uuid.UUID) ([]models.Slide, error) {
	rows, err := s.db.Query(
		`SELECT `+slideColumns+` FROM slides WHERE project_id = $1 ORDER BY page_number ASC`,
		projectID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}
	defer rows.Close()

	var slides []models.Slide
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slide: %w", err)
		}
		slides = append(slides, *slide)
	}

	return slides, rows.Err()
}

// UpdateSlide applies only the fields present in the request. An explicit JSON
// null on referenceImageUrl clears the column; omitted fields are untouched.
func (s *Store) UpdateSlide(id uuid.UUID, req models.UpdateSlideRequest) (*models.Slide, error) {
	var set []string
	var args []any
	idx := 1

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Content != nil {
		add("content", *req.Content)
	}
	if req.ImagePrompt != nil {
		add("image_prompt", *req.ImagePrompt)
	}
	if req.ReferenceImageURL.Set {
		add("reference_image_url", sql.NullString{
			String: req.ReferenceImageURL.Value,
			Valid:  req.ReferenceImageURL.Valid,
		})
	}
	if req.Status != nil {
		add("status", *req.Status)
	}

	if len(set) == 0 {
		return s.GetSlide(id)
	}

	args = append(args, id.String())
	query := fmt.Sprintf("UPDATE slides SET %s WHERE id = $%d", strings.Join(set, ", "), idx)

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update slide: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.GetSlide(id)
}

// SetSlideStatus records a status transition; imageURL, when non-nil, is
// written alongside it (completed slides keep their previous image otherwise).
func (s *Store) SetSlideStatus(id uuid.UUID, status string, imageURL *string) error {
	var result sql.Result
	var err error
	if imageURL != nil {
		result, err = s.db.Exec(
			`UPDATE slides SET status = $1, image_url = $2 WHERE id = $3`,
			status, *imageURL, id.String(),
		)
	} else {
		result, err = s.db.Exec(
			`UPDATE slides SET status = $1 WHERE id = $2`,
			status, id.String(),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to set slide status: %w", err)
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

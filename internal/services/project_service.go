// Package services sequences the AI clients, the store, and the export
// builders behind the HTTP handlers.
package services

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"ppt-workbench-backend/internal/ai"
	"ppt-workbench-backend/internal/config"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/store"
)

type ProjectService struct {
	store *store.Store
	ai    *ai.Service
	cfg   *config.Config
}

func NewProjectService(st *store.Store, aiService *ai.Service, cfg *config.Config) *ProjectService {
	return &ProjectService{store: st, ai: aiService, cfg: cfg}
}

// GenerateOutline runs the full create flow: outline from the text model,
// optional custom-prompt polish, then project + slides persisted in one
// transaction. The slide list length follows the model's output, which may
// differ from the requested count.
func (s *ProjectService) GenerateOutline(ctx context.Context, req models.GenerateOutlineRequest) (*models.Project, error) {
	opts := s.resolveOptions(req.GeminiAPIKey)

	outline, err := s.ai.GenerateOutline(ctx, req.Content, req.SlideCount, req.StyleMode, req.CustomPrompt, req.Locale, opts)
	if err != nil {
		return nil, err
	}

	customPrompt := sql.NullString{String: req.CustomPrompt, Valid: req.CustomPrompt != ""}
	if req.StyleMode == models.StyleCustom && req.CustomPrompt != "" {
		customPrompt.String = s.ai.PolishPrompt(ctx, req.CustomPrompt, req.Locale, opts)
	}

	project := &models.Project{
		ID:            uuid.New(),
		Title:         outline.ProjectTitle,
		SourceContent: req.Content,
		StyleMode:     req.StyleMode,
		CustomPrompt:  customPrompt,
		SlideCount:    req.SlideCount,
		Locale:        req.Locale,
	}

	slides := make([]models.Slide, len(outline.Slides))
	for i, item := range outline.Slides {
		slides[i] = models.Slide{
			ID:          uuid.New(),
			ProjectID:   project.ID,
			PageNumber:  i + 1,
			Title:       item.Title,
			Content:     item.Content,
			ImagePrompt: item.ImagePrompt,
			Status:      models.SlidePending,
		}
	}

	if err := s.store.CreateProject(project, slides); err != nil {
		return nil, err
	}

	return s.store.GetProject(project.ID)
}

func (s *ProjectService) GetProject(id uuid.UUID) (*models.Project, error) {
	return s.store.GetProject(id)
}

func (s *ProjectService) DeleteProject(id uuid.UUID) error {
	return s.store.DeleteProject(id)
}

// resolveOptions builds the effective AI call options: request override, then
// persisted settings, then environment config.
func (s *ProjectService) resolveOptions(overrideKey string) ai.Options {
	return resolveOptions(s.store, s.cfg, overrideKey)
}

func resolveOptions(st *store.Store, cfg *config.Config, overrideKey string) ai.Options {
	opts := ai.Options{APIKey: overrideKey}

	settings, err := st.GetSettings()
	if err != nil {
		log.Printf("Failed to read settings, using environment config: %v", err)
		settings = nil
	}

	if opts.APIKey == "" {
		opts.APIKey = settings["gemini_api_key"]
	}
	if opts.APIKey == "" {
		opts.APIKey = cfg.GeminiAPIKey
	}
	opts.BaseURL = settings["gemini_base_url"]
	opts.TextModel = settings["text_model"]
	opts.ImageModel = settings["image_model"]

	return opts
}

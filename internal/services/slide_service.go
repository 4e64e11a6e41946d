package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"ppt-workbench-backend/internal/ai"
	"ppt-workbench-backend/internal/config"
	"ppt-workbench-backend/internal/models"
	"ppt-workbench-backend/internal/store"
)

type SlideService struct {
	store *store.Store
	ai    *ai.Service
	cfg   *config.Config
}

func NewSlideService(st *store.Store, aiService *ai.Service, cfg *config.Config) *SlideService {
	return &SlideService{store: st, ai: aiService, cfg: cfg}
}

func (s *SlideService) GetSlide(id uuid.UUID) (*models.Slide, error) {
	return s.store.GetSlide(id)
}

func (s *SlideService) UpdateSlide(id uuid.UUID, req models.UpdateSlideRequest) (*models.Slide, error) {
	return s.store.UpdateSlide(id, req)
}

// GenerateImage drives one slide through the generation state machine:
// generating before the call, completed+imageUrl or error after. A failure is
// recorded in the slide row and still returned to the caller; the previous
// image URL is kept on failure.
func (s *SlideService) GenerateImage(ctx context.Context, req models.GenerateSlideImageRequest) (string, error) {
	slideID, err := uuid.Parse(req.SlideID)
	if err != nil {
		return "", store.ErrNotFound
	}

	if _, err := s.store.GetSlide(slideID); err != nil {
		return "", err
	}

	if err := s.store.SetSlideStatus(slideID, models.SlideGenerating, nil); err != nil {
		return "", err
	}

	opts := resolveOptions(s.store, s.cfg, req.GeminiAPIKey)
	imageURL, err := s.ai.GenerateSlideImage(ctx, req.Prompt, req.GlobalStyle, req.ReferenceImageBase64, opts)
	if err != nil {
		if statusErr := s.store.SetSlideStatus(slideID, models.SlideError, nil); statusErr != nil {
			log.Printf("Failed to record error status for slide %s: %v", slideID, statusErr)
		}
		return "", err
	}

	if err := s.store.SetSlideStatus(slideID, models.SlideCompleted, &imageURL); err != nil {
		return "", err
	}

	return imageURL, nil
}

// GenerateAll regenerates every slide of a project that is not already
// completed, in page order. Per-slide failures are counted and the loop
// continues; only a missing project aborts.
func (s *SlideService) GenerateAll(ctx context.Context, projectID uuid.UUID, overrideKey string) (*models.BatchGenerateResponse, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	globalStyle := ai.StyleDescription(project.StyleMode, project.CustomPrompt.String)

	result := &models.BatchGenerateResponse{}
	for _, slide := range project.Slides {
		if slide.Status == models.SlideCompleted {
			continue
		}
		result.Total++

		req := models.GenerateSlideImageRequest{
			SlideID:      slide.ID.String(),
			Prompt:       slide.ImagePrompt,
			GlobalStyle:  globalStyle,
			GeminiAPIKey: overrideKey,
		}
		if slide.ReferenceImageURL.Valid {
			req.ReferenceImageBase64 = slide.ReferenceImageURL.String
		}

		if _, err := s.GenerateImage(ctx, req); err != nil {
			log.Printf("Failed to generate image for slide %d of project %s: %v", slide.PageNumber, projectID, err)
			result.Failed++
			continue
		}
		result.Completed++
	}

	return result, nil
}

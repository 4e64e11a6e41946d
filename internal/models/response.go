package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ProjectResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	SourceContent string          `json:"sourceContent"`
	StyleMode     string          `json:"styleMode"`
	CustomPrompt  *string         `json:"customPrompt"`
	SlideCount    int             `json:"slideCount"`
	Locale        string          `json:"locale"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Slides        []SlideResponse `json:"slides"`
}

type SlideResponse struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"projectId"`
	PageNumber        int       `json:"pageNumber"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	ImagePrompt       string    `json:"imagePrompt"`
	ImageURL          *string   `json:"imageUrl"`
	ReferenceImageURL *string   `json:"referenceImageUrl"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type ParseDocumentResponse struct {
	Content string `json:"content"`
}

type GenerateImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type BatchGenerateResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

type ExportResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

type CleanupResponse struct {
	Removed int `json:"removed"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewProjectResponse(p *Project) ProjectResponse {
	slides := make([]SlideResponse, len(p.Slides))
	for i := range p.Slides {
		slides[i] = NewSlideResponse(&p.Slides[i])
	}
	return ProjectResponse{
		ID:            p.ID.String(),
		Title:         p.Title,
		SourceContent: p.SourceContent,
		StyleMode:     p.StyleMode,
		CustomPrompt:  nullableString(p.CustomPrompt.Valid, p.CustomPrompt.String),
		SlideCount:    p.SlideCount,
		Locale:        p.Locale,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Slides:        slides,
	}
}

func NewSlideResponse(s *Slide) SlideResponse {
	return SlideResponse{
		ID:                s.ID.String(),
		ProjectID:         s.ProjectID.String(),
		PageNumber:        s.PageNumber,
		Title:             s.Title,
		Content:           s.Content,
		ImagePrompt:       s.ImagePrompt,
		ImageURL:          nullableString(s.ImageURL.Valid, s.ImageURL.String),
		ReferenceImageURL: nullableString(s.ReferenceImageURL.Valid, s.ReferenceImageURL.String),
		Status:            s.Status,
		CreatedAt:         s.CreatedAt,
	}
}

func nullableString(valid bool, value string) *string {
	if !valid {
		return nil
	}
	return &value
}

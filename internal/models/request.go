package models

import (
	"bytes"
	"encoding/json"
)

type GenerateOutlineRequest struct {
	Content      string `json:"content" binding:"required"`
	SlideCount   int    `json:"slideCount" binding:"required,min=1,max=30"`
	StyleMode    string `json:"styleMode" binding:"required,oneof=concise detailed custom"`
	CustomPrompt string `json:"customPrompt"`
	Locale       string `json:"locale" binding:"required"`
	// Optional per-request override of the configured Gemini key.
	GeminiAPIKey string `json:"geminiApiKey"`
}

// OptionalString distinguishes an omitted JSON field from an explicit null.
// Omitted: Set=false. null: Set=true, Valid=false. Value: Set=true, Valid=true.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Valid = false
		o.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

type UpdateSlideRequest struct {
	Title             *string        `json:"title"`
	Content           *string        `json:"content"`
	ImagePrompt       *string        `json:"imagePrompt"`
	ReferenceImageURL OptionalString `json:"referenceImageUrl"`
	Status            *string        `json:"status"`
}

type GenerateSlideImageRequest struct {
	SlideID              string `json:"slideId" binding:"required"`
	Prompt               string `json:"prompt" binding:"required"`
	ReferenceImageBase64 string `json:"referenceImageBase64"`
	GlobalStyle          string `json:"globalStyle" binding:"required"`
	GeminiAPIKey         string `json:"geminiApiKey"`
}

type GenerateAllImagesRequest struct {
	GeminiAPIKey string `json:"geminiApiKey"`
}

type UpdateSettingsRequest map[string]string

// Package ai turns source content into slide outlines and slide prompts into
// images via the Gemini API. Callers resolve the effective credentials and
// model names before invoking it.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"ppt-workbench-backend/internal/gemini"
)

var (
	// ErrMissingAPIKey means neither an override nor a configured key exists.
	ErrMissingAPIKey = errors.New("gemini api key is required, configure it in settings")
	// ErrMalformedResponse means no parsable JSON object was found in the
	// model output.
	ErrMalformedResponse = errors.New("failed to parse outline response")
	// ErrNoImage means the image model answered without an inline image
	// part. Like ErrMalformedResponse this is a provider-side failure.
	ErrNoImage = errors.New("no image generated in response")
)

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

type SlideOutline struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ImagePrompt string `json:"imagePrompt"`
}

type OutlineResult struct {
	ProjectTitle string         `json:"projectTitle"`
	Slides       []SlideOutline `json:"slides"`
}

// Options carries the resolved credentials and model overrides for one call.
// APIKey must be the fully-resolved effective key; the other fields fall back
// to service defaults when empty.
type Options struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

type Service struct {
	client     *gemini.Client
	textModel  string
	imageModel string
}

func NewService(client *gemini.Client, textModel, imageModel string) *Service {
	return &Service{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}
}

// GenerateOutline asks the text model for a slide outline. The model is not
// guaranteed to honor the requested slide count; whatever array comes back is
// returned as-is.
func (s *Service) GenerateOutline(ctx context.Context, content string, slideCount int, styleMode, customPrompt, locale string, opts Options) (*OutlineResult, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := s.client.GenerateContent(ctx, gemini.Request{
		Model:   s.model(opts.TextModel, s.textModel),
		APIKey:  opts.APIKey,
		BaseURL: opts.BaseURL,
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: outlinePrompt(content, slideCount, styleMode, customPrompt, locale)}}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate outline: %w", err)
	}

	raw, ok := extractJSONObject(resp.Text())
	if !ok {
		return nil, ErrMalformedResponse
	}

	var outline OutlineResult
	if err := json.Unmarshal([]byte(raw), &outline); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &outline, nil
}

// PolishPrompt rewrites a free-text styling request into a detailed image
// prompt. Failures fall back to the original prompt and are never propagated.
func (s *Service) PolishPrompt(ctx context.Context, userPrompt, locale string, opts Options) string {
	resp, err := s.client.GenerateContent(ctx, gemini.Request{
		Model:   s.model(opts.TextModel, s.textModel),
		APIKey:  opts.APIKey,
		BaseURL: opts.BaseURL,
		Contents: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: polishPromptText(userPrompt, locale)}}},
		},
	})
	if err != nil {
		log.Printf("Failed to polish prompt: %v", err)
		return userPrompt
	}

	polished := strings.TrimSpace(resp.Text())
	if polished == "" {
		return userPrompt
	}
	return polished
}

// GenerateSlideImage renders one slide's artwork and returns it as a data URI.
func (s *Service) GenerateSlideImage(ctx context.Context, slidePrompt, globalStyle, referenceImageBase64 string, opts Options) (string, error) {
	if opts.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	parts := []gemini.Part{{Text: slideImagePrompt(slidePrompt, globalStyle)}}
	if referenceImageBase64 != "" {
		parts = append(parts, gemini.Part{InlineData: &gemini.InlineData{
			MIMEType: "image/png",
			Data:     dataURIPrefix.ReplaceAllString(referenceImageBase64, ""),
		}})
	}

	resp, err := s.client.GenerateContent(ctx, gemini.Request{
		Model:    s.model(opts.ImageModel, s.imageModel),
		APIKey:   opts.APIKey,
		BaseURL:  opts.BaseURL,
		Contents: []gemini.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"Text", "Image"},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate slide image: %w", err)
	}

	img, ok := resp.InlineImage()
	if !ok {
		return "", ErrNoImage
	}

	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data), nil
}

func (s *Service) model(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// extractJSONObject locates the first balanced {...} substring, skipping
// braces inside JSON string literals.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

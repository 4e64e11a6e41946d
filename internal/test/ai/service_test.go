package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ppt-workbench-backend/internal/ai"
	"ppt-workbench-backend/internal/gemini"
)

func fakeGemini(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *ai.Service) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := gemini.NewClient(server.URL, "test-key")
	return server, ai.NewService(client, "text-model", "image-model")
}

func textResponse(text string) []byte {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return body
}

func TestGenerateOutline(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-model:generateContent", r.URL.Path)
		assert.Equal(t, "my-key", r.Header.Get("x-goog-api-key"))
		w.Write(textResponse("Here you go:\n```json\n{\"projectTitle\":\"Go Basics\",\"slides\":[{\"title\":\"Intro\",\"content\":\"- hello\",\"imagePrompt\":\"a gopher\"}]}\n```"))
	})

	outline, err := service.GenerateOutline(context.Background(), "some content", 1, "concise", "", "en", ai.Options{APIKey: "my-key"})
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", outline.ProjectTitle)
	require.Len(t, outline.Slides, 1)
	assert.Equal(t, "Intro", outline.Slides[0].Title)
	assert.Equal(t, "a gopher", outline.Slides[0].ImagePrompt)
}

func TestGenerateOutline_MissingAPIKey(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without an api key")
	})

	_, err := service.GenerateOutline(context.Background(), "content", 5, "concise", "", "en", ai.Options{})
	assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
}

func TestGenerateOutline_MalformedResponse(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse("sorry, I cannot help with that"))
	})

	_, err := service.GenerateOutline(context.Background(), "content", 5, "concise", "", "en", ai.Options{APIKey: "k"})
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)
}

func TestGenerateOutline_UpstreamError(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := service.GenerateOutline(context.Background(), "content", 5, "concise", "", "en", ai.Options{APIKey: "k"})
	assert.ErrorIs(t, err, gemini.ErrUpstream)
}

func TestGenerateOutline_ModelOverride(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/custom-model:generateContent", r.URL.Path)
		w.Write(textResponse(`{"projectTitle":"T","slides":[]}`))
	})

	_, err := service.GenerateOutline(context.Background(), "content", 3, "detailed", "", "en", ai.Options{APIKey: "k", TextModel: "custom-model"})
	require.NoError(t, err)
}

func TestPolishPrompt(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse("  A refined 16:9 prompt.  "))
	})

	polished := service.PolishPrompt(context.Background(), "dark theme", "en", ai.Options{APIKey: "k"})
	assert.Equal(t, "A refined 16:9 prompt.", polished)
}

func TestPolishPrompt_FallsBackOnError(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	polished := service.PolishPrompt(context.Background(), "dark theme", "en", ai.Options{APIKey: "k"})
	assert.Equal(t, "dark theme", polished)
}

func TestGenerateSlideImage(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/image-model:generateContent", r.URL.Path)

		var body struct {
			Contents []struct {
				Parts []map[string]any `json:"parts"`
			} `json:"contents"`
			GenerationConfig struct {
				ResponseModalities []string `json:"responseModalities"`
			} `json:"generationConfig"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"Text", "Image"}, body.GenerationConfig.ResponseModalities)

		resp, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "here is your image"},
					{"inlineData": map[string]any{"mimeType": "image/png", "data": "aW1n"}},
				}}},
			},
		})
		w.Write(resp)
	})

	url, err := service.GenerateSlideImage(context.Background(), "a chart", "minimal style", "", ai.Options{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aW1n", url)
}

func TestGenerateSlideImage_StripsReferencePrefix(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					InlineData *struct {
						MIMEType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		require.Len(t, body.Contents[0].Parts, 2)
		require.NotNil(t, body.Contents[0].Parts[1].InlineData)
		assert.Equal(t, "cmVm", body.Contents[0].Parts[1].InlineData.Data)

		resp, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"inlineData": map[string]any{"mimeType": "image/png", "data": "aW1n"}},
				}}},
			},
		})
		w.Write(resp)
	})

	_, err := service.GenerateSlideImage(context.Background(), "a chart", "style", "data:image/png;base64,cmVm", ai.Options{APIKey: "k"})
	require.NoError(t, err)
}

func TestGenerateSlideImage_NoImageInResponse(t *testing.T) {
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(textResponse("no image for you"))
	})

	_, err := service.GenerateSlideImage(context.Background(), "a chart", "style", "", ai.Options{APIKey: "k"})
	assert.ErrorIs(t, err, ai.ErrNoImage)
}

func TestGenerateOutline_TruncatesOnRuneBoundary(t *testing.T) {
	var prompt string
	_, service := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prompt = body.Contents[0].Parts[0].Text
		w.Write(textResponse(`{"projectTitle":"T","slides":[]}`))
	})

	// 14999 ASCII bytes followed by a 3-byte rune straddling the 15000-byte
	// truncation point
	content := strings.Repeat("a", 14999) + "汉"
	_, err := service.GenerateOutline(context.Background(), content, 1, "concise", "", "zh-CN", ai.Options{APIKey: "k"})
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(prompt))
	assert.NotContains(t, prompt, "�")
	assert.Contains(t, prompt, strings.Repeat("a", 14999))
	assert.NotContains(t, prompt, "汉")
}

func TestStyleDescription(t *testing.T) {
	assert.Contains(t, ai.StyleDescription("concise", ""), "Concise")
	assert.Contains(t, ai.StyleDescription("detailed", ""), "Detailed")
	assert.Equal(t, "hand-drawn pastel", ai.StyleDescription("custom", "hand-drawn pastel"))
	assert.Equal(t, "Professional presentation style", ai.StyleDescription("custom", ""))
	assert.Equal(t, "Professional presentation style", ai.StyleDescription("bogus", ""))
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ppt-workbench-backend/internal/ai"
	"ppt-workbench-backend/internal/config"
	"ppt-workbench-backend/internal/database"
	"ppt-workbench-backend/internal/export"
	"ppt-workbench-backend/internal/gemini"
	"ppt-workbench-backend/internal/handlers"
	"ppt-workbench-backend/internal/services"
	"ppt-workbench-backend/internal/store"
)

// onePixelPNG is a 1x1 png, base64 encoded.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// fakeGeminiHandler serves outline JSON for the text model and a one pixel
// png for the image model.
func fakeGeminiHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp map[string]any
		if strings.Contains(r.URL.Path, "image") {
			resp = map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{
						{"inlineData": map[string]any{"mimeType": "image/png", "data": onePixelPNG}},
					}}},
				},
			}
		} else {
			outline := `{"projectTitle":"Generated Deck","slides":[` +
				`{"title":"One","content":"- a","imagePrompt":"p1"},` +
				`{"title":"Two","content":"- b","imagePrompt":"p2"}]}`
			resp = map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{{"text": outline}}}},
				},
			}
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	router, _ := newTestRouterEnv(t, fakeGeminiHandler(t))
	return router
}

// newTestRouterEnv wires the full API against the given fake provider and
// reports the export directory so tests can inspect retained artifacts.
func newTestRouterEnv(t *testing.T, geminiHandler http.HandlerFunc) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(geminiHandler)
	t.Cleanup(server.Close)

	db, err := database.Open("", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrator(db).Run())

	cfg := &config.Config{
		GeminiAPIKey:     "test-key",
		GeminiAPIBaseURL: server.URL,
		GeminiTextModel:  "text-model",
		GeminiImageModel: "image-model",
	}

	st := store.New(db)
	geminiClient := gemini.NewClient(cfg.GeminiAPIBaseURL, cfg.GeminiAPIKey)
	aiService := ai.NewService(geminiClient, cfg.GeminiTextModel, cfg.GeminiImageModel)

	exportDir := t.TempDir()
	artifacts, err := export.NewArtifactStore(exportDir)
	require.NoError(t, err)

	projectService := services.NewProjectService(st, aiService, cfg)
	slideService := services.NewSlideService(st, aiService, cfg)
	exportService := services.NewExportService(st, artifacts)

	projectHandler := handlers.NewProjectHandler(projectService, slideService)
	slideHandler := handlers.NewSlideHandler(slideService)
	documentHandler := handlers.NewDocumentHandler()
	exportHandler := handlers.NewExportHandler(exportService)
	settingsHandler := handlers.NewSettingsHandler(st)

	router := gin.New()
	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")
	api.POST("/project/generate-outline", projectHandler.GenerateOutline)
	api.GET("/project/:id", projectHandler.GetProject)
	api.DELETE("/project/:id", projectHandler.DeleteProject)
	api.POST("/project/:id/generate-images", projectHandler.GenerateImages)
	api.GET("/slide/:id", slideHandler.GetSlide)
	api.PATCH("/slide/:id", slideHandler.UpdateSlide)
	api.POST("/slide/generate-image", slideHandler.GenerateImage)
	api.POST("/document/parse", documentHandler.ParseDocument)
	api.POST("/export/pdf/:projectId", exportHandler.ExportPDF)
	api.POST("/export/pptx/:projectId", exportHandler.ExportPPTX)
	api.POST("/export/images/:projectId", exportHandler.ExportImages)
	api.GET("/export/download/:filename", exportHandler.Download)
	api.DELETE("/export/cleanup", exportHandler.Cleanup)
	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings)

	return router, exportDir
}

func doJSON(router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, router *gin.Engine) map[string]any {
	t.Helper()
	w := doJSON(router, "POST", "/api/project/generate-outline",
		`{"content":"the history of Go","slideCount":2,"styleMode":"concise","locale":"en"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var project map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	return project
}

func TestGenerateOutline_CreatesProjectWithPendingSlides(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)

	assert.Equal(t, "Generated Deck", project["title"])
	assert.Equal(t, "concise", project["styleMode"])

	slides := project["slides"].([]any)
	require.Len(t, slides, 2)
	for i, raw := range slides {
		slide := raw.(map[string]any)
		assert.Equal(t, float64(i+1), slide["pageNumber"])
		assert.Equal(t, "pending", slide["status"])
		assert.Nil(t, slide["imageUrl"])
	}
}

func TestGenerateOutline_Validation(t *testing.T) {
	router := newTestRouter(t)

	cases := []string{
		`{}`,
		`{"content":"x","slideCount":0,"styleMode":"concise","locale":"en"}`,
		`{"content":"x","slideCount":31,"styleMode":"concise","locale":"en"}`,
		`{"content":"x","slideCount":5,"styleMode":"fancy","locale":"en"}`,
		`{"content":"x","slideCount":5,"styleMode":"concise"}`,
	}
	for _, body := range cases {
		w := doJSON(router, "POST", "/api/project/generate-outline", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/api/project/8f9f0f7e-0000-4000-8000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/api/project/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProject(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)
	id := project["id"].(string)

	w := doJSON(router, "DELETE", "/api/project/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	w = doJSON(router, "GET", "/api/project/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateSlide_ExplicitNull(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)
	slide := project["slides"].([]any)[0].(map[string]any)
	id := slide["id"].(string)

	w := doJSON(router, "PATCH", "/api/slide/"+id, `{"referenceImageUrl":"data:image/png;base64,cmVm"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "data:image/png;base64,cmVm", updated["referenceImageUrl"])

	w = doJSON(router, "PATCH", "/api/slide/"+id, `{"referenceImageUrl":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Nil(t, updated["referenceImageUrl"])
}

func TestUpdateSlide_InvalidStatus(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)
	slide := project["slides"].([]any)[0].(map[string]any)

	w := doJSON(router, "PATCH", "/api/slide/"+slide["id"].(string), `{"status":"done"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSlideImage(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)
	slide := project["slides"].([]any)[0].(map[string]any)
	id := slide["id"].(string)

	body := fmt.Sprintf(`{"slideId":"%s","prompt":"a chart","globalStyle":"minimal"}`, id)
	w := doJSON(router, "POST", "/api/slide/generate-image", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "data:image/png;base64,"+onePixelPNG, resp["imageUrl"])

	w = doJSON(router, "GET", "/api/slide/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp["status"])
}

func TestGenerateAllImages(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)
	id := project["id"].(string)

	w := doJSON(router, "POST", "/api/project/"+id+"/generate-images", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, float64(2), resp["completed"])
	assert.Equal(t, float64(0), resp["failed"])

	// A second run skips completed slides
	w = doJSON(router, "POST", "/api/project/"+id+"/generate-images", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["total"])
}

func TestParseDocument(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("document body"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/document/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "document body")
}

func TestParseDocument_UnsupportedExtension(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "malware.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/document/parse", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_IncompleteSlides(t *testing.T) {
	router, exportDir := newTestRouterEnv(t, fakeGeminiHandler(t))
	project := createProject(t, router)
	id := project["id"].(string)

	w := doJSON(router, "POST", "/api/export/pdf/"+id, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not yet completed")

	// A refused export leaves no partial artifact behind
	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateSlideImage_NoImageFromProvider(t *testing.T) {
	// The provider answers every call with text only, so the image route
	// never receives inline data
	router, _ := newTestRouterEnv(t, func(w http.ResponseWriter, r *http.Request) {
		outline := `{"projectTitle":"Deck","slides":[{"title":"One","content":"- a","imagePrompt":"p1"}]}`
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": outline}}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	project := createProject(t, router)
	slide := project["slides"].([]any)[0].(map[string]any)
	id := slide["id"].(string)

	body := fmt.Sprintf(`{"slideId":"%s","prompt":"a chart","globalStyle":"minimal"}`, id)
	w := doJSON(router, "POST", "/api/slide/generate-image", body)
	assert.Equal(t, http.StatusBadGateway, w.Code, w.Body.String())

	// The failure is recorded on the slide
	w = doJSON(router, "GET", "/api/slide/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
}

func TestExport_PDFRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	project := createProject(t, router)
	id := project["id"].(string)

	w := doJSON(router, "POST", "/api/project/"+id+"/generate-images", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "POST", "/api/export/pdf/"+id, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	downloadURL := resp["downloadUrl"].(string)
	require.True(t, strings.HasPrefix(downloadURL, "/api/export/download/"))

	w = doJSON(router, "GET", downloadURL, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestExportDownload_NotFound(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "GET", "/api/export/download/missing.pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCleanup_Validation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "DELETE", "/api/export/cleanup", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "DELETE", "/api/export/cleanup?maxAgeHours=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "DELETE", "/api/export/cleanup?maxAgeHours=24", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":0`)
}

func TestSettings_MaskedKeyAndUnknownKeyRejected(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, "PUT", "/api/settings", `{"gemini_api_key":"sk-1234567890abcdef","text_model":"gemini-2.0-pro"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, "GET", "/api/settings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var settings map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, "gemini-2.0-pro", settings["text_model"])
	assert.NotEqual(t, "sk-1234567890abcdef", settings["gemini_api_key"])
	assert.Contains(t, settings["gemini_api_key"], "*")

	w = doJSON(router, "PUT", "/api/settings", `{"favorite_color":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown setting key")
}

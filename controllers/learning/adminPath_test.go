package controllers_test

import (
	"artvista/database"
	"artvista/middleware"
	learningModels "artvista/models/learning"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doAdminRequest performs a JSON round trip with a bearer token
func doAdminRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateJWT("admin-1", "Content Author", "ADMIN")
	require.NoError(t, err)
	return token
}

func samplePathPayload() fiber.Map {
	return fiber.Map{
		"title":       "Watercolor Landscapes",
		"description": "From washes to full landscapes",
		"category":    "Painting",
		"difficulty":  "Intermediate",
		"slug":        "watercolor-landscapes",
		"legacyId":    21,
		"modules": []fiber.Map{
			{
				"title": "Washes",
				"lessons": []fiber.Map{
					{"title": "Flat washes", "type": "video", "durationMinutes": 12},
					{"title": "Graded washes", "type": "article"},
					{"title": "Wash quiz", "type": "quiz", "quizData": fiber.Map{"questions": 5}},
				},
			},
			{
				"title": "Composition",
				"lessons": []fiber.Map{
					{"title": "Horizon placement", "type": "article"},
				},
			},
		},
	}
}

func TestAdminCreatePath(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	status, body := doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", token, samplePathPayload())
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, true, body["success"])

	created := body["data"].(map[string]interface{})
	pathID := created["id"].(string)

	// The created path resolves through every reference scheme and
	// counts 4 lessons
	path, err := func() (*learningModels.LearningPath, error) {
		var p learningModels.LearningPath
		err := database.Database.Db.Preload("Modules.Lessons").Where("id = ?", pathID).First(&p).Error
		return &p, err
	}()
	require.NoError(t, err)
	assert.Equal(t, int64(4), learningModels.TotalLessons(path))
	assert.Equal(t, "watercolor-landscapes", path.Slug)
	require.NotNil(t, path.LegacyID)
	assert.Equal(t, int64(21), *path.LegacyID)

	// Lessons carry the denormalized path id used by the reconciler
	var orphaned int64
	database.Database.Db.Model(&learningModels.Lesson{}).
		Where("path_id <> ?", pathID).Count(&orphaned)
	assert.Equal(t, int64(0), orphaned)
}

func TestAdminCreatePathDuplicateSlug(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	status, _ := doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", token, samplePathPayload())
	require.Equal(t, http.StatusCreated, status)

	payload := samplePathPayload()
	payload["legacyId"] = 22
	status, body := doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", token, payload)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestAdminCreatePathValidation(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	status, body := doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", token, fiber.Map{
		"title": "No slug",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])

	payload := samplePathPayload()
	payload["difficulty"] = "Impossible"
	status, _ = doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", token, payload)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := setupTestApp(t)

	// No token
	status, _ := doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", "", samplePathPayload())
	assert.Equal(t, http.StatusUnauthorized, status)

	// Learner token
	token, err := middleware.GenerateJWT("learner-1", "Learner", "LEARNER")
	require.NoError(t, err)
	status, _ = doAdminRequest(t, app, http.MethodPost, "/admin/learning-paths/create", token, samplePathPayload())
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminUpdateAndDeletePath(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)
	path := createTestPath(t, "Impressionism Basics", "impressionism-basics", 1, 2)

	status, body := doAdminRequest(t, app, http.MethodPut, "/admin/learning-paths/"+path.ID, token, fiber.Map{
		"title":      "Impressionism, Revised",
		"difficulty": "Advanced",
	})
	require.Equal(t, http.StatusOK, status)
	updated := body["data"].(map[string]interface{})
	assert.Equal(t, "Impressionism, Revised", updated["title"])
	assert.Equal(t, "Advanced", updated["difficulty"])

	status, _ = doAdminRequest(t, app, http.MethodDelete, "/admin/learning-paths/"+path.ID, token, nil)
	require.Equal(t, http.StatusOK, status)

	// Soft-deleted paths vanish from resolution
	statusCode, _ := doRequest(t, app, http.MethodGet, "/learning-paths/"+path.ID, nil)
	assert.Equal(t, http.StatusNotFound, statusCode)
}

func TestAdminPathEnrollments(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)
	path := createTestPath(t, "Impressionism Basics", "impressionism-basics", 1, 1)

	enroll(t, app, "learner-1", path.ID)
	enroll(t, app, "learner-2", path.ID)
	completeLesson(t, app, "learner-1", path.ID, path.Modules[0].Lessons[0].ID)

	status, body := doAdminRequest(t, app, http.MethodGet, "/admin/learning-paths/"+path.ID+"/enrollments", token, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["completed"])
}

package controllers_test

import (
	"artvista/config"
	"artvista/database"
	learningModels "artvista/models/learning"
	learningRoutes "artvista/routers/learningRoutes"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp wires the routes against a fresh in-memory database
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		Port:   "3000",
		JWTKey: "test-secret",
	}

	app := fiber.New()
	learningRoutes.SetupLearningRoutes(app)
	learningRoutes.SetupAdminLearningRoutes(app)
	return app
}

// createTestPath seeds a catalog path with the given lesson count per
// module and returns it fully loaded
func createTestPath(t *testing.T, title, slug string, legacyID int64, lessonsPerModule ...int) *learningModels.LearningPath {
	t.Helper()

	path := learningModels.LearningPath{
		ID:         uuid.NewString(),
		LegacyID:   &legacyID,
		Slug:       slug,
		Title:      title,
		Category:   "Art History",
		Difficulty: learningModels.DifficultyBeginner,
	}
	for i, count := range lessonsPerModule {
		mod := learningModels.PathModule{
			Title:      fmt.Sprintf("Module %d", i+1),
			OrderIndex: i,
		}
		for j := 0; j < count; j++ {
			mod.Lessons = append(mod.Lessons, learningModels.Lesson{
				PathID:     path.ID,
				Title:      fmt.Sprintf("Lesson %d.%d", i+1, j+1),
				Type:       learningModels.LessonArticle,
				OrderIndex: j,
			})
		}
		path.Modules = append(path.Modules, mod)
	}

	require.NoError(t, database.Database.Db.Create(&path).Error)
	return &path
}

// doRequest performs a JSON round trip through the fiber app
func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
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

// doListRequest performs a GET expecting a bare JSON array
func doListRequest(t *testing.T, app *fiber.App, target string) (int, []interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed []interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

// enroll is a shorthand for the enroll endpoint
func enroll(t *testing.T, app *fiber.App, userID, pathRef string) (int, map[string]interface{}) {
	t.Helper()
	return doRequest(t, app, http.MethodPost, "/learning-paths/enroll", fiber.Map{
		"userId":         userID,
		"learningPathId": pathRef,
	})
}

// completeLesson is a shorthand for the complete-lesson endpoint
func completeLesson(t *testing.T, app *fiber.App, userID, pathRef, lessonID string) (int, map[string]interface{}) {
	t.Helper()
	return doRequest(t, app, http.MethodPost, "/learning-paths/complete-lesson", fiber.Map{
		"userId":         userID,
		"learningPathId": pathRef,
		"lessonId":       lessonID,
	})
}

// getProgress is a shorthand for the progress reporter endpoint
func getProgress(t *testing.T, app *fiber.App, userID, pathRef string) (int, map[string]interface{}) {
	t.Helper()
	return doRequest(t, app, http.MethodGet, "/learning-paths/progress/"+userID+"/"+pathRef, nil)
}

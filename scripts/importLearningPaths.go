package main

import (
	"artvista/config"
	"artvista/database"
	learningModels "artvista/models/learning"
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type lessonFixture struct {
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	DurationMinutes int             `json:"durationMinutes"`
	Type            string          `json:"type"`
	QuizData        json.RawMessage `json:"quizData"`
}

type moduleFixture struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	EstimatedMinutes int             `json:"estimatedMinutes"`
	Lessons          []lessonFixture `json:"lessons"`
}

type pathFixture struct {
	Slug          string          `json:"slug"`
	LegacyID      *int64          `json:"legacyId"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Difficulty    string          `json:"difficulty"`
	DurationHours int             `json:"durationHours"`
	Modules       []moduleFixture `json:"modules"`
}

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	fixtureFile := "learning_paths.json"
	if len(os.Args) > 1 {
		fixtureFile = os.Args[1]
	}

	data, err := os.ReadFile(fixtureFile)
	if err != nil {
		log.Fatalf("Failed to open fixture file: %v", err)
	}

	var fixtures []pathFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		log.Fatalf("Failed to parse fixture file: %v", err)
	}

	log.Printf("Total paths to import: %d", len(fixtures))

	inserted := 0
	skipped := 0

	for _, fixture := range fixtures {
		// Upsert by slug: existing paths are left untouched so learner
		// progress keeps a stable catalog underneath it
		var existing learningModels.LearningPath
		if err := database.Database.Db.Where("slug = ?", fixture.Slug).First(&existing).Error; err == nil {
			log.Printf("Skipping existing path %q", fixture.Slug)
			skipped++
			continue
		}

		path := learningModels.LearningPath{
			ID:            uuid.NewString(),
			Slug:          fixture.Slug,
			LegacyID:      fixture.LegacyID,
			Title:         fixture.Title,
			Description:   fixture.Description,
			Category:      fixture.Category,
			Difficulty:    fixture.Difficulty,
			DurationHours: fixture.DurationHours,
		}
		if path.Difficulty == "" {
			path.Difficulty = learningModels.DifficultyBeginner
		}

		for i, mod := range fixture.Modules {
			pathModule := learningModels.PathModule{
				Title:            mod.Title,
				Description:      mod.Description,
				EstimatedMinutes: mod.EstimatedMinutes,
				OrderIndex:       i,
			}
			for j, lesson := range mod.Lessons {
				lessonType := lesson.Type
				if lessonType == "" {
					lessonType = learningModels.LessonArticle
				}
				pathModule.Lessons = append(pathModule.Lessons, learningModels.Lesson{
					PathID:          path.ID,
					Title:           lesson.Title,
					Content:         lesson.Content,
					DurationMinutes: lesson.DurationMinutes,
					Type:            lessonType,
					QuizData:        datatypes.JSON(lesson.QuizData),
					OrderIndex:      j,
				})
			}
			path.Modules = append(path.Modules, pathModule)
		}

		if err := database.Database.Db.Create(&path).Error; err != nil {
			log.Printf("Failed to import path %q: %v", fixture.Slug, err)
			continue
		}

		inserted++
	}

	log.Printf("Import finished: %d inserted, %d skipped", inserted, skipped)
}

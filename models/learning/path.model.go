package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson types
const (
	LessonVideo    = "video"
	LessonArticle  = "article"
	LessonQuiz     = "quiz"
	LessonExercise = "exercise"
)

// Difficulty levels
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// LearningPath represents a structured course composed of ordered modules.
// Canonical identity is the UUID primary key; LegacyID and Slug are
// secondary lookup columns for older frontend datasets that reference
// paths by small integers or slugs.
type LearningPath struct {
	ID            string       `json:"id" gorm:"type:uuid;primaryKey"`
	LegacyID      *int64       `json:"legacyId" gorm:"uniqueIndex"`
	Slug          string       `json:"slug" gorm:"uniqueIndex"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Difficulty    string       `json:"difficulty" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	DurationHours int          `json:"durationHours" gorm:"default:0"`
	Modules       []PathModule `json:"modules" gorm:"foreignKey:PathID;references:ID"`
	IsDeleted     bool         `gorm:"default:false"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// BeforeCreate assigns the canonical id
func (p *LearningPath) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PathModule represents a section within a learning path
type PathModule struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	PathID           string    `json:"pathId" gorm:"type:uuid;index;not null"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EstimatedMinutes int       `json:"estimatedMinutes" gorm:"default:0"`
	OrderIndex       int       `json:"orderIndex" gorm:"default:0"` // Module order in path
	Lessons          []Lesson  `json:"lessons" gorm:"foreignKey:ModuleID;references:ID"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (m *PathModule) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Lesson represents a single unit of content within a module
type Lesson struct {
	ID              string         `json:"id" gorm:"type:uuid;primaryKey"`
	ModuleID        string         `json:"moduleId" gorm:"type:uuid;index;not null"`
	PathID          string         `json:"pathId" gorm:"type:uuid;index;not null"`
	Title           string         `json:"title"`
	Content         string         `json:"content" gorm:"type:text"`
	DurationMinutes int            `json:"durationMinutes" gorm:"default:0"`
	Type            string         `json:"type" gorm:"default:'article'"` // video, article, quiz, exercise
	QuizData        datatypes.JSON `json:"quizData,omitempty"`            // For quiz type
	OrderIndex      int            `json:"orderIndex" gorm:"default:0"`   // Order within module
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Progress tracks one learner's completion state for one learning path.
// Exactly one record exists per (user_id, path_id) pair; the composite
// unique index backs the check done at enrollment time.
type Progress struct {
	ID               string             `json:"_id" gorm:"type:uuid;primaryKey"`
	UserID           string             `json:"userId" gorm:"uniqueIndex:idx_user_path;not null"` // opaque learner id
	PathID           string             `json:"pathId" gorm:"type:uuid;uniqueIndex:idx_user_path;not null"`
	Percent          int                `json:"progress" gorm:"default:0"` // 0-100, never decreases
	CompletedLessons []LessonCompletion `json:"completedLessons" gorm:"foreignKey:ProgressID;references:ID"`
	CompletedModules []ModuleCompletion `json:"completedModules" gorm:"foreignKey:ProgressID;references:ID"`
	Badges           []Badge            `json:"badges" gorm:"foreignKey:ProgressID;references:ID"`
	LearningPath     *LearningPath      `json:"learningPath,omitempty" gorm:"foreignKey:PathID;references:ID"`
	EnrolledAt       time.Time          `json:"enrolledAt"`
	CompletedAt      *time.Time         `json:"completedAt"` // set once, first time Percent reaches 100
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// LessonCompletion marks a single lesson as completed within a Progress
// record. One row per (progress_id, lesson_id); duplicate completions
// are rejected before insert and by the unique index.
type LessonCompletion struct {
	gorm.Model  `json:"-"`
	ProgressID  string    `json:"-" gorm:"type:uuid;uniqueIndex:idx_progress_lesson;not null"`
	LessonID    string    `json:"lessonId" gorm:"uniqueIndex:idx_progress_lesson;not null"`
	ModuleID    string    `json:"moduleId,omitempty"`
	Score       *int      `json:"score,omitempty"` // quiz lessons only
	CompletedAt time.Time `json:"completedAt"`
}

// ModuleCompletion marks a module as fully completed. Derived when a
// lesson completion covers the last remaining lesson of its module.
type ModuleCompletion struct {
	gorm.Model  `json:"-"`
	ProgressID  string    `json:"-" gorm:"type:uuid;uniqueIndex:idx_progress_module;not null"`
	ModuleID    string    `json:"moduleId" gorm:"uniqueIndex:idx_progress_module;not null"`
	CompletedAt time.Time `json:"completedAt"`
}

// Badge is an append-only achievement marker granted on reaching 100%
type Badge struct {
	gorm.Model `json:"-"`
	ProgressID string    `json:"-" gorm:"type:uuid;index;not null"`
	Name       string    `json:"name"`
	AwardedAt  time.Time `json:"awardedAt"`
}

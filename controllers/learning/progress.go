package controllers

import (
	"artvista/config"
	"artvista/database"
	"artvista/middleware"
	learningModels "artvista/models/learning"
	"artvista/utils"
	validators "artvista/validators/learning"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// findLesson locates a lesson within a resolved path and returns it
// with its owning module
func findLesson(path *learningModels.LearningPath, lessonID string) (*learningModels.Lesson, *learningModels.PathModule) {
	for i := range path.Modules {
		mod := &path.Modules[i]
		for j := range mod.Lessons {
			if mod.Lessons[j].ID == lessonID {
				return &mod.Lessons[j], mod
			}
		}
	}
	return nil, nil
}

// CompleteLesson idempotently records a lesson completion and
// recomputes the enrollment percentage
func CompleteLesson(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCompleteLesson").(*validators.CompleteLessonRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	path, err := resolveLearningPath(reqData.LearningPathID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	var progress learningModels.Progress
	if err := progressQuery().Where("user_id = ? AND path_id = ?", reqData.UserID, path.ID).First(&progress).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "not enrolled in this learning path")
	}

	lesson, module := findLesson(path, reqData.LessonID)
	if lesson == nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "lesson not found in this learning path")
	}

	// Idempotency check: a repeated completion is a benign no-op
	for _, done := range progress.CompletedLessons {
		if done.LessonID == reqData.LessonID {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success":  false,
				"message":  "lesson already completed",
				"progress": progress,
			})
		}
	}

	now := time.Now()
	moduleID := reqData.ModuleID
	if moduleID == "" {
		moduleID = module.ID
	}

	completion := learningModels.LessonCompletion{
		ProgressID:  progress.ID,
		LessonID:    reqData.LessonID,
		ModuleID:    moduleID,
		Score:       reqData.Score,
		CompletedAt: now,
	}

	// The completion insert, derived module marker, badge award and
	// percent update commit atomically; a failed step persists nothing.
	alreadyCompleted := false
	awardedBadge := ""
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&completion).Error; err != nil {
			// Concurrent duplicate completion loses against the unique
			// (progress_id, lesson_id) index and becomes the same no-op.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				alreadyCompleted = true
				return nil
			}
			return err
		}

		// Module completion is derived: recorded once the owning module
		// has no lessons left
		recordModuleCompletion(tx, &progress, module, now)

		// Recompute percentage against a fresh catalog read
		var completedCount int64
		tx.Model(&learningModels.LessonCompletion{}).
			Where("progress_id = ?", progress.ID).Count(&completedCount)
		progress.Percent = learningModels.PercentComplete(completedCount, learningModels.TotalLessons(path))

		// Completion threshold: badge and timestamp are awarded at most
		// once per record
		if progress.Percent >= 100 && progress.CompletedAt == nil {
			progress.CompletedAt = &now

			// A stray badge row without the timestamp must not yield a
			// second badge
			var existing int64
			tx.Model(&learningModels.Badge{}).Where("progress_id = ?", progress.ID).Count(&existing)
			if existing == 0 {
				badge := learningModels.Badge{
					ProgressID: progress.ID,
					Name:       learningModels.MasterBadgeName(path.Title),
					AwardedAt:  now,
				}
				if err := tx.Create(&badge).Error; err != nil {
					return err
				}
				awardedBadge = badge.Name
			}
		}

		return tx.Model(&progress).
			Updates(map[string]interface{}{"percent": progress.Percent, "completed_at": progress.CompletedAt}).Error
	})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record lesson completion!")
	}

	if alreadyCompleted {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":  false,
			"message":  "lesson already completed",
			"progress": progress,
		})
	}

	// Notified only after the award is committed
	if awardedBadge != "" && config.AppConfig != nil && config.AppConfig.WebhookURL != "" {
		go utils.NotifyBadgeAwarded(progress.UserID, path.ID, path.Title, awardedBadge, now)
	}

	// Reload owned collections for the response
	var updated learningModels.Progress
	if err := progressQuery().Where("id = ?", progress.ID).First(&updated).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch progress!")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  "lesson completed",
		"progress": updated,
	})
}

// recordModuleCompletion appends a module marker when every lesson of
// the module is now completed
func recordModuleCompletion(tx *gorm.DB, progress *learningModels.Progress, module *learningModels.PathModule, now time.Time) {
	if module == nil || len(module.Lessons) == 0 {
		return
	}

	var doneInModule int64
	lessonIDs := make([]string, len(module.Lessons))
	for i, l := range module.Lessons {
		lessonIDs[i] = l.ID
	}
	tx.Model(&learningModels.LessonCompletion{}).
		Where("progress_id = ? AND lesson_id IN ?", progress.ID, lessonIDs).
		Count(&doneInModule)

	if doneInModule < int64(len(module.Lessons)) {
		return
	}

	// Re-completing a grown module must not re-insert its marker; a
	// duplicate insert would abort the surrounding transaction
	var existing int64
	tx.Model(&learningModels.ModuleCompletion{}).
		Where("progress_id = ? AND module_id = ?", progress.ID, module.ID).Count(&existing)
	if existing > 0 {
		return
	}

	marker := learningModels.ModuleCompletion{
		ProgressID:  progress.ID,
		ModuleID:    module.ID,
		CompletedAt: now,
	}
	if err := tx.Create(&marker).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Printf("Failed to record module completion for progress %s: %v", progress.ID, err)
	}
}

// GetLearnerProgress reports one enrollment. The stored percentage is a
// historical high-water mark; the reporter recomputes from the current
// catalog and never regresses below the stored value.
func GetLearnerProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)
	pathRef := c.Locals("pathRef").(string)

	path, err := resolveLearningPath(pathRef)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	var progress learningModels.Progress
	if err := progressQuery().Where("user_id = ? AND path_id = ?", userID, path.ID).First(&progress).Error; err != nil {
		// Absence of enrollment is a normal, queryable state
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":          true,
			"progress":         0,
			"completedModules": []learningModels.ModuleCompletion{},
			"completedLessons": []learningModels.LessonCompletion{},
			"badges":           []learningModels.Badge{},
			"isEnrolled":       false,
		})
	}

	recomputed := learningModels.PercentComplete(int64(len(progress.CompletedLessons)), learningModels.TotalLessons(path))
	reported := progress.Percent
	if recomputed > reported {
		reported = recomputed
	}
	if recomputed != progress.Percent {
		log.Printf("Progress drift for user %s on path %s: stored=%d recomputed=%d", userID, path.ID, progress.Percent, recomputed)
	}

	resp := fiber.Map{
		"success":          true,
		"progress":         reported,
		"completedModules": progress.CompletedModules,
		"completedLessons": progress.CompletedLessons,
		"badges":           progress.Badges,
		"isEnrolled":       true,
		"enrolledAt":       progress.EnrolledAt,
	}
	if progress.CompletedAt != nil {
		resp["completedAt"] = progress.CompletedAt
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetUserProgressList lists every enrollment of a learner with its
// learning path populated
func GetUserProgressList(c *fiber.Ctx) error {
	userID := c.Locals("userId").(string)

	var records []learningModels.Progress
	if err := progressQuery().Preload("LearningPath").
		Where("user_id = ?", userID).Order("created_at desc").Find(&records).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch progress records!")
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

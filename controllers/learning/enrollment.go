package controllers

import (
	"artvista/database"
	"artvista/middleware"
	learningModels "artvista/models/learning"
	validators "artvista/validators/learning"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// pathQuery returns a catalog query with modules and lessons preloaded
// in their canonical order
func pathQuery() *gorm.DB {
	return database.Database.Db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		})
}

// resolveLearningPath resolves a client-supplied path reference to its
// catalog record. Fallback order: canonical id lookup, then the
// legacy numeric id or slug columns, then a best-effort raw id retry
// whose failure is swallowed. Returns gorm.ErrRecordNotFound when no
// branch matches.
func resolveLearningPath(ref string) (*learningModels.LearningPath, error) {
	classified := learningModels.ClassifyPathRef(ref)

	var path learningModels.LearningPath
	if classified.Kind == learningModels.RefCanonical {
		if err := pathQuery().Where("id = ? AND is_deleted = ?", ref, false).First(&path).Error; err == nil {
			return &path, nil
		}
	}

	switch classified.Kind {
	case learningModels.RefLegacyNumeric:
		if err := pathQuery().Where("legacy_id = ? AND is_deleted = ?", classified.Number, false).First(&path).Error; err == nil {
			return &path, nil
		}
	case learningModels.RefSlug:
		if err := pathQuery().Where("slug = ? AND is_deleted = ?", ref, false).First(&path).Error; err == nil {
			return &path, nil
		}
		// Retry canonical-shaped strings that failed strict parsing.
		// Lookup failures here are swallowed, not propagated.
		if err := pathQuery().Where("id = ? AND is_deleted = ?", ref, false).First(&path).Error; err == nil {
			return &path, nil
		}
	}

	return nil, gorm.ErrRecordNotFound
}

// progressQuery returns a progress query with all owned collections
// preloaded
func progressQuery() *gorm.DB {
	return database.Database.Db.
		Preload("CompletedLessons").
		Preload("CompletedModules").
		Preload("Badges")
}

// EnrollInPath creates a Progress record for a (learner, path) pair
func EnrollInPath(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnroll").(*validators.EnrollRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	path, err := resolveLearningPath(reqData.LearningPathID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	// Check if learner is already enrolled
	var existing learningModels.Progress
	if err := progressQuery().Where("user_id = ? AND path_id = ?", reqData.UserID, path.ID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":  false,
			"message":  "already enrolled",
			"progress": existing,
		})
	}

	progress := learningModels.Progress{
		UserID:     reqData.UserID,
		PathID:     path.ID,
		Percent:    0,
		EnrolledAt: time.Now(),
	}

	if err := database.Database.Db.Create(&progress).Error; err != nil {
		// Two concurrent enrolls can race past the check above; the
		// unique (user_id, path_id) index turns the loser into the
		// benign already-enrolled response.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := progressQuery().Where("user_id = ? AND path_id = ?", reqData.UserID, path.ID).First(&existing).Error; err != nil {
				return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in learning path!")
			}
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success":  false,
				"message":  "already enrolled",
				"progress": existing,
			})
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enroll in learning path!")
	}

	progress.CompletedLessons = []learningModels.LessonCompletion{}
	progress.CompletedModules = []learningModels.ModuleCompletion{}
	progress.Badges = []learningModels.Badge{}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"message":  "enrolled successfully",
		"progress": progress,
	})
}

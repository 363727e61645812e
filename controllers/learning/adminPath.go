package controllers

import (
	"artvista/database"
	"artvista/middleware"
	learningModels "artvista/models/learning"
	validators "artvista/validators/learning"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminCreatePath creates a learning path with its nested modules and
// lessons in one shot
func AdminCreatePath(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreatePath").(*validators.CreatePathRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	path := learningModels.LearningPath{
		ID:            uuid.NewString(),
		LegacyID:      reqData.LegacyID,
		Slug:          reqData.Slug,
		Title:         reqData.Title,
		Description:   reqData.Description,
		Category:      reqData.Category,
		Difficulty:    reqData.Difficulty,
		DurationHours: reqData.DurationHours,
	}
	if path.Difficulty == "" {
		path.Difficulty = learningModels.DifficultyBeginner
	}

	for i, mod := range reqData.Modules {
		pathModule := learningModels.PathModule{
			Title:            mod.Title,
			Description:      mod.Description,
			EstimatedMinutes: mod.EstimatedMinutes,
			OrderIndex:       i,
		}
		for j, lesson := range mod.Lessons {
			pathModule.Lessons = append(pathModule.Lessons, learningModels.Lesson{
				PathID:          path.ID,
				Title:           lesson.Title,
				Content:         lesson.Content,
				DurationMinutes: lesson.DurationMinutes,
				Type:            lesson.Type,
				QuizData:        datatypes.JSON(lesson.QuizData),
				OrderIndex:      j,
			})
		}
		path.Modules = append(path.Modules, pathModule)
	}

	if err := database.Database.Db.Create(&path).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "slug or legacy id already in use")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create learning path!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Learning path created successfully!", path)
}

// AdminUpdatePath updates path metadata; nested content is immutable
// through this endpoint
func AdminUpdatePath(c *fiber.Ctx) error {
	pathRef := c.Locals("pathRef").(string)

	path, err := resolveLearningPath(pathRef)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	reqData, ok := c.Locals("validatedUpdatePath").(*validators.UpdatePathRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	// Update only provided fields
	if reqData.Title != "" {
		path.Title = reqData.Title
	}
	if reqData.Description != "" {
		path.Description = reqData.Description
	}
	if reqData.Category != "" {
		path.Category = reqData.Category
	}
	if reqData.Difficulty != "" {
		path.Difficulty = reqData.Difficulty
	}
	if reqData.DurationHours > 0 {
		path.DurationHours = reqData.DurationHours
	}

	if err := database.Database.Db.Save(path).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update learning path!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning path updated successfully!", path)
}

// AdminDeletePath soft deletes a learning path
func AdminDeletePath(c *fiber.Ctx) error {
	pathRef := c.Locals("pathRef").(string)

	path, err := resolveLearningPath(pathRef)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	path.IsDeleted = true
	if err := database.Database.Db.Save(path).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete learning path!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning path deleted successfully!", nil)
}

// AdminListPaths lists the whole catalog for content authors
func AdminListPaths(c *fiber.Ctx) error {
	var paths []learningModels.LearningPath
	if err := pathQuery().Where("is_deleted = ?", false).
		Order("created_at desc").Find(&paths).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learning paths!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning paths fetched successfully!", fiber.Map{
		"paths": paths,
		"total": len(paths),
	})
}

// AdminGetPathEnrollments lists progress records for one path
func AdminGetPathEnrollments(c *fiber.Ctx) error {
	pathRef := c.Locals("pathRef").(string)

	path, err := resolveLearningPath(pathRef)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	var records []learningModels.Progress
	if err := progressQuery().Where("path_id = ?", path.ID).
		Order("created_at desc").Find(&records).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch enrollments!")
	}

	var completed int
	for _, r := range records {
		if r.CompletedAt != nil {
			completed++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": records,
		"total":       len(records),
		"completed":   completed,
	})
}

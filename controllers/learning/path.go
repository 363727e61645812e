package controllers

import (
	"artvista/middleware"
	learningModels "artvista/models/learning"

	"github.com/gofiber/fiber/v2"
)

// GetAllPaths lists the learning path catalog
func GetAllPaths(c *fiber.Ctx) error {
	var paths []learningModels.LearningPath
	if err := pathQuery().Where("is_deleted = ?", false).
		Order("created_at asc").Find(&paths).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch learning paths!")
	}

	return c.Status(fiber.StatusOK).JSON(paths)
}

// GetPathDetails fetches a single learning path by any reference shape
func GetPathDetails(c *fiber.Ctx) error {
	pathRef := c.Locals("pathRef").(string)

	path, err := resolveLearningPath(pathRef)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "learning path not found")
	}

	return c.Status(fiber.StatusOK).JSON(path)
}

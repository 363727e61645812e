package learningValidator

import (
	"artvista/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// EnrollRequest is the enroll endpoint body
type EnrollRequest struct {
	UserID         string `json:"userId" validate:"required"`
	LearningPathID string `json:"learningPathId" validate:"required"`
}

// CompleteLessonRequest is the complete-lesson endpoint body
type CompleteLessonRequest struct {
	UserID         string `json:"userId" validate:"required"`
	LearningPathID string `json:"learningPathId" validate:"required"`
	ModuleID       string `json:"moduleId"`
	LessonID       string `json:"lessonId" validate:"required"`
	Score          *int   `json:"score" validate:"omitempty,min=0,max=100"`
}

func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if errs := validateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompleteLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if errs := validateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCompleteLesson", reqData)
		return c.Next()
	}
}

// LearnerProgress validates the :userId/:learningPathId progress params
func LearnerProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Params("userId"))
		pathRef := strings.TrimSpace(c.Params("learningPathId"))
		if userID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required!")
		}
		if pathRef == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Learning path ID is required!")
		}

		c.Locals("userId", userID)
		c.Locals("pathRef", pathRef)
		return c.Next()
	}
}

// UserProgress validates the :userId bulk listing param
func UserProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Params("userId"))
		if userID == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required!")
		}

		c.Locals("userId", userID)
		return c.Next()
	}
}

package learningValidator

import (
	"artvista/middleware"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validateStruct runs struct-tag validation and flattens failures into
// a field -> message map
func validateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errs[fe.Field()] = "failed on '" + fe.Tag() + "' validation"
		}
	} else {
		errs["request"] = err.Error()
	}
	return errs
}

// CreateLessonRequest is a lesson inside the admin create payload
type CreateLessonRequest struct {
	Title           string          `json:"title" validate:"required"`
	Content         string          `json:"content"`
	DurationMinutes int             `json:"durationMinutes" validate:"omitempty,min=0"`
	Type            string          `json:"type" validate:"omitempty,oneof=video article quiz exercise"`
	QuizData        json.RawMessage `json:"quizData"`
}

// CreateModuleRequest is a module inside the admin create payload
type CreateModuleRequest struct {
	Title            string                `json:"title" validate:"required"`
	Description      string                `json:"description"`
	EstimatedMinutes int                   `json:"estimatedMinutes" validate:"omitempty,min=0"`
	Lessons          []CreateLessonRequest `json:"lessons" validate:"dive"`
}

// CreatePathRequest is the admin create-path payload
type CreatePathRequest struct {
	Title         string                `json:"title" validate:"required"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Difficulty    string                `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	DurationHours int                   `json:"durationHours" validate:"omitempty,min=0"`
	Slug          string                `json:"slug" validate:"required"`
	LegacyID      *int64                `json:"legacyId"`
	Modules       []CreateModuleRequest `json:"modules" validate:"dive"`
}

// UpdatePathRequest is the admin partial-update payload
type UpdatePathRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	DurationHours int    `json:"durationHours" validate:"omitempty,min=0"`
}

// PathDetail validates the :id path reference param
func PathDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathRef := strings.TrimSpace(c.Params("id"))
		if pathRef == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Learning path ID is required!")
		}

		c.Locals("pathRef", pathRef)
		return c.Next()
	}
}

func CreatePath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePathRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if errs := validateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCreatePath", reqData)
		return c.Next()
	}
}

func UpdatePath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathRef := strings.TrimSpace(c.Params("id"))
		if pathRef == "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Learning path ID is required!")
		}

		reqData := new(UpdatePathRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		if errs := validateStruct(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("pathRef", pathRef)
		c.Locals("validatedUpdatePath", reqData)
		return c.Next()
	}
}

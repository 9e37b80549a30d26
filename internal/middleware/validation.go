package middleware

import (
	"lms-quiz/internal/domain"
	"lms-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const ValidatedModuleIDKey = "validated_module_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateModuleID validates the moduleId path parameter and stores it in locals.
func (vm *ValidationMiddleware) ValidateModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID := c.Params("moduleId")
		if err := vm.validator.ValidateModuleID(moduleID); err != nil {
			return err
		}
		c.Locals(ValidatedModuleIDKey, moduleID)
		return c.Next()
	}
}

// BindBody parses the JSON body into req and validates it.
func (vm *ValidationMiddleware) BindBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return domain.NewInvalidInputError("request body is not valid JSON")
	}
	return vm.validator.Struct(req)
}

// BindQuery parses query parameters into req and validates it.
func (vm *ValidationMiddleware) BindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return domain.NewInvalidInputError("query parameters are not valid")
	}
	return vm.validator.Struct(req)
}

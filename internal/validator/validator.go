package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/course-progress-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct-tag validation with catalog checks.
type Validator struct {
	structValidator     *validator.Validate
	assessmentValidator *AssessmentValidator
}

func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:     structValidator,
		assessmentValidator: NewAssessmentValidator(),
	}
}

// ValidateStruct validates struct tags and returns the raw validator error.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures into ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	err := v.ValidateStruct(s)
	if err == nil {
		return nil
	}
	if errs := ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

func (v *Validator) Assessment() *AssessmentValidator {
	return v.assessmentValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("progress_percent", validateProgressPercent)
	validate.RegisterValidation("user_role", validateUserRole)

	// Report json field names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateProgressPercent(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	return value >= 0 && value <= 100
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.RoleStudent, models.RoleAdmin:
		return true
	default:
		return false
	}
}

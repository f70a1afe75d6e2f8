package service

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fkedem/portfolio-backend/internal/core/domain"
)

// Validation error codes, matching the grammar the front-end already consumes.
const (
	codeTooSmall     = "too_small"
	codeTooBig       = "too_big"
	codeInvalidStr   = "invalid_string"
	codeInvalidEnum  = "invalid_enum_value"
	codeInvalidType  = "invalid_type"
	codeInvalidValue = "invalid_value"
)

var (
	alphaSpaceRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	personNameRe = regexp.MustCompile(`^[a-zA-Z\s.'-]+$`)
)

// validate is the shared validator instance. Custom tags:
//
//	alpha_space  – letters and spaces only (first/last names)
//	person_name  – letters, spaces, dots, hyphens, apostrophes (client names)
//	purpose      – membership in the contact purpose allow-list
//	project_type – membership in the testimonial project-type allow-list
//	whole        – float64 without a fractional part (ratings)
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Field paths in error output use the form tag, i.e. the wire name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "alpha_space", func(fl validator.FieldLevel) bool {
		return alphaSpaceRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "person_name", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "purpose", func(fl validator.FieldLevel) bool {
		return inList(fl.Field().String(), domain.ContactPurposes)
	})
	mustRegister(v, "project_type", func(fl validator.FieldLevel) bool {
		return inList(fl.Field().String(), domain.TestimonialProjectTypes)
	})
	mustRegister(v, "whole", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

func inList(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// runValidation checks in against its validate tags and returns the full,
// ordered set of field errors, or nil when the input is valid. It never
// panics on malformed input; that is the expected case.
func runValidation(in any) *domain.ValidationError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-field errors (nil input etc.) surface as a single opaque entry.
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "", Message: "invalid payload", Code: codeInvalidType},
		}}
	}

	fields := make([]domain.FieldError, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fieldError(fe))
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldLabels maps wire field names to the human labels used in messages.
var fieldLabels = map[string]string{
	"firstName":    "First name",
	"lastName":     "Last name",
	"email":        "Email",
	"purpose":      "purpose",
	"message":      "Message",
	"clientName":   "Name",
	"company":      "Company name",
	"role":         "Role",
	"projectType":  "project type",
	"rating":       "Rating",
	"testimonial":  "Testimonial",
	"title":        "Title",
	"subtitle":     "Subtitle",
	"description":  "Description",
	"features":     "Features",
	"techStack":    "Tech stack",
	"technologies": "Technologies",
	"imageUrl":     "Image URL",
	"liveUrl":      "Live URL",
	"githubUrl":    "GitHub URL",
	"order":        "Order",
}

// fieldError converts one validator failure into a (field, message, code)
// triple. Messages mirror the wording the public site already displays.
func fieldError(fe validator.FieldError) domain.FieldError {
	field := fe.Field()
	base := field
	if i := strings.IndexByte(base, '['); i >= 0 {
		base = base[:i]
	}
	label := fieldLabels[base]
	if label == "" {
		label = base
	}

	// Rating carries bespoke wording throughout.
	if base == "rating" {
		switch fe.Tag() {
		case "min":
			return domain.FieldError{Field: field, Message: "Rating must be at least 1 star", Code: codeTooSmall}
		case "max":
			return domain.FieldError{Field: field, Message: "Rating cannot exceed 5 stars", Code: codeTooBig}
		case "whole":
			return domain.FieldError{Field: field, Message: "Rating must be a whole number", Code: codeInvalidType}
		case "required":
			return domain.FieldError{Field: field, Message: "Rating is required", Code: codeInvalidType}
		}
	}

	switch fe.Tag() {
	case "required":
		return domain.FieldError{Field: field, Message: label + " is required", Code: codeInvalidType}
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Map:
			return domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must contain at least %s item(s)", label, fe.Param()),
				Code:    codeTooSmall,
			}
		case reflect.Int, reflect.Int64, reflect.Float64:
			return domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be at least %s", label, fe.Param()),
				Code:    codeTooSmall,
			}
		}
		return domain.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at least %s characters", label, fe.Param()),
			Code:    codeTooSmall,
		}
	case "max":
		switch fe.Kind() {
		case reflect.Slice, reflect.Map:
			return domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must contain at most %s item(s)", label, fe.Param()),
				Code:    codeTooBig,
			}
		case reflect.Int, reflect.Int64, reflect.Float64:
			return domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s cannot exceed %s", label, fe.Param()),
				Code:    codeTooBig,
			}
		}
		return domain.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s must be less than %s characters", label, fe.Param()),
			Code:    codeTooBig,
		}
	case "email":
		return domain.FieldError{Field: field, Message: "Please provide a valid email address", Code: codeInvalidStr}
	case "url":
		return domain.FieldError{Field: field, Message: label + " must be a valid URL", Code: codeInvalidStr}
	case "alpha_space":
		return domain.FieldError{Field: field, Message: label + " can only contain letters and spaces", Code: codeInvalidStr}
	case "person_name":
		return domain.FieldError{Field: field, Message: label + " can only contain letters, spaces, dots, hyphens and apostrophes", Code: codeInvalidStr}
	case "purpose", "project_type":
		return domain.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid %s", fmt.Sprintf("%v", fe.Value()), label),
			Code:    codeInvalidEnum,
		}
	default:
		return domain.FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s failed validation (%s)", label, fe.Tag()),
			Code:    codeInvalidValue,
		}
	}
}

package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/erazemk/educycle/internal/model"
)

// RegisterInput is what a new account is created from.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	ID       string `json:"id" validate:"required,max=64"`
	Course   string `json:"course" validate:"required,max=100"`
	Year     int    `json:"year" validate:"min=1900,max=2100"`
	IsSenior bool   `json:"isSenior"`
}

func (in *RegisterInput) normalize() {
	in.Email = strings.TrimSpace(in.Email)
	in.ID = strings.TrimSpace(in.ID)
	in.Course = strings.TrimSpace(in.Course)
}

// ShareInput is what a senior fills in to list an item.
type ShareInput struct {
	Name        string            `json:"name" validate:"required,max=120"`
	Description string            `json:"description" validate:"required,max=2000"`
	Category    model.Category    `json:"category" validate:"category"`
	PickupPoint model.PickupPoint `json:"pickupPoint" validate:"pickup"`
	ImageURL    string            `json:"imageUrl" validate:"omitempty,url,max=2048"`
}

func (in *ShareInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

// ValidationError lists the problems found in an input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("pickup", func(fl validator.FieldLevel) bool {
		return model.PickupPoint(fl.Field().String()).Valid()
	})
	return v
}

func (a *App) check(in any) error {
	err := a.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating input: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Problems = append(verr.Problems, problem(fe))
	}
	return verr
}

func problem(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "category":
		return field + " must be one of the listed categories"
	case "pickup":
		return field + " must be one of the listed pickup points"
	default:
		return field + " is invalid"
	}
}

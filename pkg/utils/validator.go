package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("fraction", validateFraction); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// fraction accepts numbers in [0,1]
func validateFraction(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= 0 && v <= 1
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(strings.ToLower(email)))
}

// ValidationDetails flattens validator errors into field/reason pairs.
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return details
	}
	for _, fe := range errs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}

package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// HandleValidationErrors translates a ReadJSON failure into a response.
// Struct-tag violations become a field-keyed map; anything else is a plain
// bad-request payload error.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string]string, len(errs))
		for _, fieldErr := range errs {
			fields[lowerFirst(fieldErr.Field())] = validationMessage(fieldErr)
		}
		JSONFieldErrors(ctx, iris.StatusBadRequest, fields)
		return
	}
	JSONError(ctx, iris.StatusBadRequest, "invalid_payload", "Invalid request payload")
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "value is below the minimum of " + fieldErr.Param()
	case "max":
		return "value is above the maximum of " + fieldErr.Param()
	case "gtfield":
		return "must be greater than " + lowerFirst(fieldErr.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	}
	return "invalid value"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

package httpserver

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type validationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validateStruct(s interface{}) []validationDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []validationDetail
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := fieldErr.Field()
		var message string
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
		details = append(details, validationDetail{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: message,
		})
	}
	return details
}

package web

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationMessage converts validator errors into a single human-readable
// message for inline form rendering.
func ValidationMessage(errs validator.ValidationErrors) string {
	var errMsgs []string

	for _, err := range errs {
		field := fieldName(err.Field())

		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("%s is required", field))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("%s is not a valid email address", field))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be at least %s", field, err.Param()))
		case "max":
			errMsgs = append(errMsgs, fmt.Sprintf("%s must be at most %s", field, err.Param()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("%s is not valid", field))
		}
	}

	return strings.Join(errMsgs, ", ")
}

func fieldName(field string) string {
	switch field {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "Location":
		return "location"
	case "StartsAt":
		return "start time"
	case "Capacity":
		return "capacity"
	default:
		return strings.ToLower(field)
	}
}

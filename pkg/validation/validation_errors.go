package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Interpreter fields
	"FirstName":        "First name",
	"LastName":         "Last name",
	"Email":            "Email",
	"Phone":            "Phone",
	"City":             "City",
	"State":            "State",
	"Metro":            "Metro area",
	"ZipCode":          "ZIP code",
	"SourceLanguage":   "Source language",
	"TargetLanguage":   "Target language",
	"Specialties":      "Specialties",
	"Certifications":   "Certifications",
	"YearsExperience":  "Years of experience",
	"HourlyRate":       "Hourly rate",
	"ProficiencyLevel": "Proficiency level",
	"ApprovalStatus":   "Approval status",

	// Search filter fields
	"Query":             "Search query",
	"Radius":            "Radius",
	"CertificationType": "Certification type",
	"MinExperience":     "Minimum experience",
	"MaxExperience":     "Maximum experience",
	"MinRate":           "Minimum rate",
	"MaxRate":           "Maximum rate",
	"Limit":             "Limit",
	"Offset":            "Offset",
	"SortBy":            "Sort field",
	"SortOrder":         "Sort order",

	// Review fields
	"ReviewerName": "Reviewer name",
	"Rating":       "Rating",
	"Comment":      "Comment",
	"Status":       "Status",

	// Booking fields
	"RequesterName":   "Requester name",
	"RequesterEmail":  "Requester email",
	"ScheduledDate":   "Scheduled date",
	"DurationMinutes": "Duration",
	"Notes":           "Notes",

	// Availability fields
	"Weekdays":  "Weekdays",
	"StartTime": "Start time",
	"EndTime":   "End time",

	// Auth / saved search fields
	"Token":      "Login token",
	"Password":   "Password",
	"OwnerEmail": "Owner email",
	"Name":       "Name",
	"Filters":    "Filters",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// FirstValidationError returns the first formatted message, naming the field.
func FirstValidationError(err error) string {
	msgs := FormatValidationErrors(err)
	if len(msgs) == 0 {
		return "invalid input"
	}
	return msgs[0]
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)
	case "lte":
		return fmt.Sprintf("%s must be %s or less", label, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

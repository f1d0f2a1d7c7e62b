package webhook

import (
	"errors"
	"strings"

	appvalidator "moana_backoffice/platform/validator"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation failure, reported back to
// the provider so retried deliveries can be corrected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Maps validator namespaces to the provider's field paths.
var fieldNames = map[string]string{
	"LeadPayload.Lead.ID":              "lead.id",
	"LeadPayload.Lead.Source":          "lead.source",
	"LeadPayload.Recipient.OfficeName": "recipient.officeName",
	"LeadPayload.Recipient.OfficeID":   "recipient.officeId",
}

// ValidatePayload checks the required-field set of the LeadFlow contract:
// lead.id, lead.source, recipient.officeName and recipient.officeId must be
// non-empty strings. Everything else is unconstrained beyond its type.
// Returns nil when the payload is acceptable.
func ValidatePayload(val *appvalidator.Validator, payload *LeadPayload) []FieldError {
	err := val.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "payload", Message: err.Error()}}
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := fieldNames[fe.StructNamespace()]
		if !ok {
			name = strings.ToLower(fe.StructNamespace())
		}
		fieldErrs = append(fieldErrs, FieldError{
			Field:   name,
			Message: "required field is missing or empty",
		})
	}
	return fieldErrs
}

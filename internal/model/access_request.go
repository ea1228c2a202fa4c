package model

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/valeshop/access-intake/internal/validation"
)

// Field names, as they appear in JSON and in field errors.
const (
	FieldRequesterName  = "requester_name"
	FieldRequesterEmail = "requester_email"
	FieldReason         = "reason"
	FieldDurationHours  = "duration_hours"
	FieldApplication    = "application"
)

// Fields lists every AccessRequest field in form order.
var Fields = []string{
	FieldRequesterName,
	FieldRequesterEmail,
	FieldReason,
	FieldApplication,
	FieldDurationHours,
}

// TagApplication checks membership in the application catalogue.
const TagApplication = "application"

// AccessRequest is one user's request for temporary access to an application.
//
// It lives for a single request/response cycle: built from the form or
// decoded from the relay body, sent once, discarded.
//
// Two rule sets are declared on the fields:
//   - `validate` is the relay's presence check: every field must be set.
//   - `rules` is the form's full check: trimmed values, email shape,
//     positive duration, known application.
type AccessRequest struct {
	RequesterName  string        `json:"requester_name" validate:"required" rules:"notblank"`
	RequesterEmail string        `json:"requester_email" validate:"required" rules:"notblank,simple_email"`
	Reason         string        `json:"reason" validate:"required" rules:"notblank"`
	DurationHours  DurationHours `json:"duration_hours" validate:"required" rules:"notblank,positive_number"`
	Application    string        `json:"application" validate:"required" rules:"required,application"`
}

var (
	presenceValidator = newValidator("")
	rulesValidator    = newValidator("rules")
)

func newValidator(tagName string) *validator.Validate {
	v := validation.New(tagName)

	// Validators see DurationHours as its text, or "" when it does not count
	// as present, so "required" and "notblank" treat a numeric 0 as missing.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(DurationHours)
		if !ok || !d.Present() {
			return ""
		}
		return d.String()
	}, DurationHours{})

	_ = v.RegisterValidation(TagApplication, func(fl validator.FieldLevel) bool {
		return IsKnownApplication(fl.Field().String())
	})

	return v
}

// Validate runs the relay's presence check.
// It does not look at email format, numeric range or the catalogue.
func (r *AccessRequest) Validate() error {
	return presenceValidator.Struct(r)
}

// CheckRules runs the form's full rule set.
// The returned error, if any, is a validator.ValidationErrors.
func (r *AccessRequest) CheckRules() error {
	return rulesValidator.Struct(r)
}

package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/valeshop/access-intake/internal/model"
)

// Field identifies one input of the form.
type Field string

const (
	FieldRequesterName  Field = model.FieldRequesterName
	FieldRequesterEmail Field = model.FieldRequesterEmail
	FieldReason         Field = model.FieldReason
	FieldDurationHours  Field = model.FieldDurationHours
	FieldApplication    Field = model.FieldApplication
)

var (
	// ErrUnknownField is returned by Set for names outside the AccessRequest.
	ErrUnknownField = errors.New("unknown form field")

	// ErrValidationFailed is returned by Submit when a field is invalid.
	// Nothing is sent; the per-field messages are available from Errors.
	ErrValidationFailed = errors.New("form validation failed")

	// ErrSubmissionInFlight is returned by Submit while a previous submit is running.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// Submitter delivers a validated AccessRequest.
type Submitter interface {
	Submit(ctx context.Context, req model.AccessRequest) error
}

// Form is the intake form state. It is safe for concurrent use.
type Form struct {
	mu     sync.Mutex
	values map[Field]string
	errors map[Field]string
	status Status
}

// NewForm returns an empty, idle form.
func NewForm() *Form {
	return &Form{
		values: make(map[Field]string),
		errors: make(map[Field]string),
		status: Idle{},
	}
}

func isField(field Field) bool {
	for _, f := range model.Fields {
		if string(field) == f {
			return true
		}
	}
	return false
}

// Set updates a field and clears that field's error.
// Other errors stay until the next Validate.
func (f *Form) Set(field Field, value string) error {
	if !isField(field) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	delete(f.errors, field)

	return nil
}

// Value returns the current value of a field.
func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[field]
}

// Error returns the current error message for a field, or "".
func (f *Form) Error(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.errors[field]
}

// Errors returns a copy of the per-field error messages.
func (f *Form) Errors() map[Field]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[Field]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Status returns the submission state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.status
}

// Request builds the AccessRequest the form would submit.
func (f *Form) Request() model.AccessRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.request()
}

func (f *Form) request() model.AccessRequest {
	return model.AccessRequest{
		RequesterName:  f.values[FieldRequesterName],
		RequesterEmail: f.values[FieldRequesterEmail],
		Reason:         f.values[FieldReason],
		DurationHours:  model.NewDurationHours(f.values[FieldDurationHours]),
		Application:    f.values[FieldApplication],
	}
}

// Validate checks every field, replaces the error messages with one per
// failing field and reports whether the form is valid. Values are untouched.
//
// A failed validation moves a Succeeded or Failed form back to Idle, so a
// resolved status never coexists with field errors.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.validate()
}

func (f *Form) validate() bool {
	f.errors = make(map[Field]string)

	req := f.request()
	err := req.CheckRules()
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Only reachable if the rule set itself is broken; block the submit.
		for _, field := range model.Fields {
			f.errors[Field(field)] = err.Error()
		}
		f.invalidated()
		return false
	}

	for _, fe := range validationErrors {
		field := Field(fe.Field())
		if _, seen := f.errors[field]; !seen {
			f.errors[field] = fieldMessage(fe)
		}
	}

	f.invalidated()
	return false
}

// invalidated drops a resolved status once the form holds errors.
// A submission in flight keeps its status.
func (f *Form) invalidated() {
	if IsResolved(f.status) {
		f.status = Idle{}
	}
}

// Submit validates the form and, if it is valid, hands the request to s.
//
// Exactly one call to s is made per valid submission. On success every
// field is cleared; on failure the values are kept so the user can resubmit.
// The error from s is returned after the status has been updated.
func (f *Form) Submit(ctx context.Context, s Submitter) error {
	f.mu.Lock()

	if _, inFlight := f.status.(Submitting); inFlight {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}

	if !f.validate() {
		f.mu.Unlock()
		return ErrValidationFailed
	}

	req := f.request()
	f.status = Submitting{}
	f.mu.Unlock()

	err := s.Submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = failure(err)
		return err
	}

	f.status = Succeeded{Message: MessageSuccess}
	f.values = make(map[Field]string)

	return nil
}

// failure classifies a Submitter error. Anything that is not a relay
// response counts as a connectivity problem.
func failure(err error) Failed {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return Failed{Kind: FailureServer, Message: MessageServerError}
	}
	return Failed{Kind: FailureConnection, Message: MessageConnectionError}
}

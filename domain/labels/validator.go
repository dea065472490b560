package labels

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Label IDs are lowercase alphanumerics and hyphens only.
var labelIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// FieldError describes a single validation failure on a label field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult collects the field errors found while validating a label.
type ValidationResult struct {
	Errors []FieldError `json:"errors,omitempty"`
}

// Valid reports whether validation found no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) add(field, format string, args ...any) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Summary joins all field errors into a single message.
func (r *ValidationResult) Summary() string {
	if r.Valid() {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Validator checks labels against the structural rules every stored label
// must satisfy. Name uniqueness is checked against the names the caller
// supplies (typically the other stored labels), keeping the validator free
// of repository dependencies.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a validator using the wall clock.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorAt creates a validator with a fixed clock, for tests.
func NewValidatorAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate reports whether the label passes all structural rules.
func (v *Validator) Validate(l *Label) bool {
	return v.ValidateDetailed(l, nil).Valid()
}

// ValidateDetailed checks the label and returns every rule violation found.
// otherNames holds the names of other stored labels for the uniqueness check;
// pass nil to skip it.
func (v *Validator) ValidateDetailed(l *Label, otherNames []string) *ValidationResult {
	result := &ValidationResult{}

	if l == nil {
		result.add("label", "label is nil")
		return result
	}

	if l.ID == "" {
		result.add("id", "id must not be empty")
	} else if !labelIDPattern.MatchString(l.ID) {
		result.add("id", "id %q must match [a-z0-9-]+", l.ID)
	}

	if l.Name == "" {
		result.add("name", "name must not be empty")
	} else {
		for _, other := range otherNames {
			if strings.EqualFold(other, l.Name) {
				result.add("name", "name %q is already in use", l.Name)
				break
			}
		}
	}

	if !l.Priority.IsValid() {
		result.add("priority", "priority %d is not a defined tier", int(l.Priority))
	}

	if !l.CreatedAt.IsZero() && !l.UpdatedAt.IsZero() && l.UpdatedAt.Before(l.CreatedAt) {
		result.add("updated_at", "updated_at precedes created_at")
	}

	if l.Protection.IsExpired(v.now()) {
		result.add("protection", "protection settings expired at %s", l.Protection.ExpiresAt.Format(time.RFC3339))
	}

	return result
}

package contracts

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the domain error categories the core can surface.
type ErrorKind string

const (
	// KindInvalidLabel marks a label that failed validation. Not retried;
	// surfaced to the caller as-is.
	KindInvalidLabel ErrorKind = "invalid_label"

	// KindLabelNotFound marks a failed lookup by id or name. Callers decide
	// the fallback.
	KindLabelNotFound ErrorKind = "label_not_found"

	// KindGroundingNotFound marks a failed grounding item lookup by id.
	KindGroundingNotFound ErrorKind = "grounding_not_found"

	// KindEncryptionFailure wraps an underlying crypto failure with the
	// label id and operation name.
	KindEncryptionFailure ErrorKind = "encryption_failure"

	// KindClassificationFailure wraps an unexpected failure during pattern
	// detection, aggregation, or resolution.
	KindClassificationFailure ErrorKind = "classification_failure"
)

// DomainError is the single error type crossing the domain boundary. The
// Kind discriminant lets boundary layers render kind-specific messages
// without string matching.
type DomainError struct {
	Kind    ErrorKind
	LabelID string
	Op      string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.LabelID != "" {
		msg += fmt.Sprintf(" (label %s)", e.LabelID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches two domain errors by kind so callers can probe with
// errors.Is(err, &DomainError{Kind: KindLabelNotFound}).
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Kind == de.Kind
}

// NewInvalidLabel builds an InvalidLabel error for the given label.
func NewInvalidLabel(labelID, message string) *DomainError {
	return &DomainError{Kind: KindInvalidLabel, LabelID: labelID, Message: message}
}

// NewLabelNotFound builds a LabelNotFound error for a failed lookup.
func NewLabelNotFound(key string) *DomainError {
	return &DomainError{Kind: KindLabelNotFound, LabelID: key, Message: "label not found"}
}

// NewGroundingNotFound builds a GroundingNotFound error for a failed item
// lookup.
func NewGroundingNotFound(id string) *DomainError {
	return &DomainError{Kind: KindGroundingNotFound, Message: fmt.Sprintf("grounding data %s not found", id)}
}

// NewEncryptionFailure wraps a crypto failure with its label and operation.
func NewEncryptionFailure(labelID, op string, err error) *DomainError {
	return &DomainError{Kind: KindEncryptionFailure, LabelID: labelID, Op: op, Message: "encryption operation failed", Err: err}
}

// NewClassificationFailure wraps an unexpected classification failure. Use
// label id "unknown" when no label was resolved yet.
func NewClassificationFailure(labelID string, err error) *DomainError {
	if labelID == "" {
		labelID = "unknown"
	}
	return &DomainError{Kind: KindClassificationFailure, LabelID: labelID, Message: "classification failed", Err: err}
}

// KindOf extracts the error kind, or "" when err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

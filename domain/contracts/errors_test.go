package contracts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_KindDiscrimination(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"invalid label", NewInvalidLabel("l1", "bad id"), KindInvalidLabel},
		{"not found", NewLabelNotFound("l2"), KindLabelNotFound},
		{"grounding not found", NewGroundingNotFound("g1"), KindGroundingNotFound},
		{"encryption", NewEncryptionFailure("l3", "decrypt", errors.New("boom")), KindEncryptionFailure},
		{"classification", NewClassificationFailure("l4", errors.New("boom")), KindClassificationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.kind))
			assert.False(t, IsKind(tt.err, ErrorKind("other")))
		})
	}
}

func TestDomainError_KindOfSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving item: %w", NewLabelNotFound("missing"))

	assert.Equal(t, KindLabelNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindLabelNotFound))
}

func TestDomainError_IsMatchesByKind(t *testing.T) {
	err := NewEncryptionFailure("l1", "encrypt", errors.New("short key"))

	assert.True(t, errors.Is(err, &DomainError{Kind: KindEncryptionFailure}))
	assert.False(t, errors.Is(err, &DomainError{Kind: KindInvalidLabel}))
}

func TestDomainError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("cipher: message authentication failed")
	err := NewEncryptionFailure("l1", "decrypt", cause)

	assert.ErrorIs(t, err, cause)
}

func TestNewClassificationFailure_DefaultsLabelID(t *testing.T) {
	err := NewClassificationFailure("", errors.New("panic"))

	require.Equal(t, "unknown", err.LabelID)
	assert.Contains(t, err.Error(), "unknown")
}

func TestKindOf_NonDomainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), KindInvalidLabel))
}

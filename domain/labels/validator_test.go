package labels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func validLabel() *Label {
	created := fixedClock().Add(-24 * time.Hour)
	return &Label{
		ID:        "finance-confidential",
		Name:      "Finance Confidential",
		Priority:  TierConfidential,
		Active:    true,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
}

func TestValidator_ValidLabelPasses(t *testing.T) {
	v := NewValidatorAt(fixedClock)

	result := v.ValidateDetailed(validLabel(), nil)

	assert.True(t, result.Valid())
	assert.Empty(t, result.Summary())
}

func TestValidator_FieldRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Label)
		badField string
	}{
		{
			name:     "empty id",
			mutate:   func(l *Label) { l.ID = "" },
			badField: "id",
		},
		{
			name:     "id with uppercase",
			mutate:   func(l *Label) { l.ID = "Finance-Label" },
			badField: "id",
		},
		{
			name:     "id with spaces",
			mutate:   func(l *Label) { l.ID = "finance label" },
			badField: "id",
		},
		{
			name:     "empty name",
			mutate:   func(l *Label) { l.Name = "" },
			badField: "name",
		},
		{
			name:     "priority out of range",
			mutate:   func(l *Label) { l.Priority = PriorityTier(99) },
			badField: "priority",
		},
		{
			name:     "updated before created",
			mutate:   func(l *Label) { l.UpdatedAt = l.CreatedAt.Add(-time.Hour) },
			badField: "updated_at",
		},
		{
			name: "expired protection",
			mutate: func(l *Label) {
				expired := fixedClock().Add(-time.Minute)
				l.Protection.ExpiresAt = &expired
			},
			badField: "protection",
		},
	}

	v := NewValidatorAt(fixedClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := validLabel()
			tt.mutate(label)

			result := v.ValidateDetailed(label, nil)

			require.False(t, result.Valid())
			fields := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.badField)
		})
	}
}

func TestValidator_NameUniquenessIsCaseInsensitive(t *testing.T) {
	v := NewValidatorAt(fixedClock)
	label := validLabel()

	result := v.ValidateDetailed(label, []string{"finance confidential"})

	require.False(t, result.Valid())
	assert.Equal(t, "name", result.Errors[0].Field)
}

func TestValidator_NilLabel(t *testing.T) {
	v := NewValidatorAt(fixedClock)

	result := v.ValidateDetailed(nil, nil)

	require.False(t, result.Valid())
	assert.False(t, v.Validate(nil))
}

func TestValidator_CollectsMultipleErrors(t *testing.T) {
	v := NewValidatorAt(fixedClock)
	label := validLabel()
	label.ID = ""
	label.Name = ""

	result := v.ValidateDetailed(label, nil)

	assert.Len(t, result.Errors, 2)
	assert.Contains(t, result.Summary(), ";")
}

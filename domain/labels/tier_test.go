package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier_RoundTrip(t *testing.T) {
	for _, tier := range AllTiers {
		parsed, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}
}

func TestParseTier_RejectsUnknownNames(t *testing.T) {
	for _, bad := range []string{"", "secret", "PUBLIC", "Internal"} {
		_, err := ParseTier(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestPriorityTier_IsValid(t *testing.T) {
	for _, tier := range AllTiers {
		assert.True(t, tier.IsValid())
	}
	assert.False(t, PriorityTier(-1).IsValid())
	assert.False(t, PriorityTier(5).IsValid())
}

func TestPriorityTier_MarshalInvalidFails(t *testing.T) {
	_, err := PriorityTier(42).MarshalText()
	assert.Error(t, err)
}

package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patternTypes(patterns []DetectedPattern) []string {
	types := make([]string, 0, len(patterns))
	for _, p := range patterns {
		types = append(types, p.PatternType)
	}
	return types
}

func TestDetector_EmptyContentYieldsNoFindings(t *testing.T) {
	d := NewDetector()

	findings := d.Detect("")

	require.NotNil(t, findings)
	assert.Empty(t, findings)
}

func TestDetector_CleanContentYieldsNoFindings(t *testing.T) {
	d := NewDetector()

	findings := d.Detect("the quarterly report is ready for review")

	assert.Empty(t, findings)
}

func TestDetector_PatternTable(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		patternType string
		risk        RiskLevel
	}{
		{"ssn", "employee ssn is 123-45-6789 on file", "SSN", RiskCritical},
		{"credit card", "card 4111-1111-1111-1111 expires soon", "CreditCard", RiskCritical},
		{"api key", "api_key: sk-abc123def", "APIKey", RiskCritical},
		{"password", "password = hunter2", "Password", RiskHigh},
		{"iban", "transfer to DE89370400440532013000 today", "IBAN", RiskHigh},
		{"financial keyword", "the payroll run completed", "Financial", RiskMedium},
		{"confidential keyword", "this document is confidential", "Confidential", RiskMedium},
		{"email", "contact alice@example.com for details", "Email", RiskLow},
		{"phone", "call 555-123-4567 after lunch", "Phone", RiskLow},
		{"internal keyword", "internal use only", "Internal", RiskLow},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := d.Detect(tt.content)

			require.NotEmpty(t, findings)
			assert.Contains(t, patternTypes(findings), tt.patternType)
			for _, f := range findings {
				if f.PatternType == tt.patternType {
					assert.Equal(t, tt.risk, f.Risk)
					assert.Greater(t, f.Confidence, 0.0)
					assert.LessOrEqual(t, f.Confidence, 1.0)
				}
			}
		})
	}
}

func TestDetector_ReportsEveryMatch(t *testing.T) {
	d := NewDetector()

	findings := d.Detect("first 123-45-6789 then 987-65-4321")

	ssns := 0
	for _, f := range findings {
		if f.PatternType == "SSN" {
			ssns++
		}
	}
	assert.Equal(t, 2, ssns)
}

func TestDetector_MatchPositionsSliceBack(t *testing.T) {
	d := NewDetector()
	content := "ssn 123-45-6789 end"

	findings := d.Detect(content)

	require.NotEmpty(t, findings)
	for _, f := range findings {
		if f.PatternType == "SSN" {
			assert.Equal(t, "123-45-6789", content[f.Start:f.End])
		}
	}
}

func TestDetector_OverlappingRulesBothReport(t *testing.T) {
	d := NewDetector()

	// Confidential payroll data trips both Medium rules.
	findings := d.Detect("confidential payroll figures attached")

	types := patternTypes(findings)
	assert.Contains(t, types, "Confidential")
	assert.Contains(t, types, "Financial")
}

package classification

import "regexp"

// patternRule binds a named matching rule to its risk level and base
// confidence. The table is built once at package load and never mutated, so
// detection needs no locking.
type patternRule struct {
	name       string
	re         *regexp.Regexp
	risk       RiskLevel
	confidence float64
}

// The fixed detection table. Identifier-like patterns are Critical,
// credential material is High, category keywords are Medium, and
// contact-info patterns are Low. Each rule reports every match
// independently; duplicate spans across rules are expected.
var patternRules = []patternRule{
	{
		name:       "SSN",
		re:         regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		risk:       RiskCritical,
		confidence: 0.95,
	},
	{
		name:       "CreditCard",
		re:         regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		risk:       RiskCritical,
		confidence: 0.95,
	},
	{
		name:       "APIKey",
		re:         regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret[_-]?key|access[_-]?token)\b\s*[:=]\s*\S+`),
		risk:       RiskCritical,
		confidence: 0.95,
	},
	{
		name:       "Password",
		re:         regexp.MustCompile(`(?i)\bpassword\b\s*[:=]\s*\S+`),
		risk:       RiskHigh,
		confidence: 0.90,
	},
	{
		name:       "IBAN",
		re:         regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`),
		risk:       RiskHigh,
		confidence: 0.85,
	},
	{
		name:       "Financial",
		re:         regexp.MustCompile(`(?i)\b(?:salary|payroll|revenue|invoice|bank account|routing number)\b`),
		risk:       RiskMedium,
		confidence: 0.70,
	},
	{
		name:       "Confidential",
		re:         regexp.MustCompile(`(?i)\b(?:confidential|proprietary|trade secret|do not distribute)\b`),
		risk:       RiskMedium,
		confidence: 0.70,
	},
	{
		name:       "Email",
		re:         regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		risk:       RiskLow,
		confidence: 0.90,
	},
	{
		name:       "Phone",
		re:         regexp.MustCompile(`\b(?:\+?\d{1,3}[- ]?)?\(?\d{3}\)?[- ]?\d{3}[- ]?\d{4}\b`),
		risk:       RiskLow,
		confidence: 0.85,
	},
	{
		name:       "Internal",
		re:         regexp.MustCompile(`(?i)\b(?:internal|internal use only|staff only)\b`),
		risk:       RiskLow,
		confidence: 0.60,
	},
}

// Detector scans raw text against the fixed pattern table.
type Detector struct{}

// NewDetector creates a pattern detector. Detectors are stateless and safe
// for concurrent use.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns every pattern match found in the content, in table order
// then position order. Empty content yields an empty finding list; a match
// is never an error.
func (d *Detector) Detect(content string) []DetectedPattern {
	if content == "" {
		return []DetectedPattern{}
	}

	var findings []DetectedPattern
	for _, rule := range patternRules {
		for _, span := range rule.re.FindAllStringIndex(content, -1) {
			findings = append(findings, DetectedPattern{
				PatternType: rule.name,
				Risk:        rule.risk,
				Confidence:  rule.confidence,
				Start:       span[0],
				End:         span[1],
			})
		}
	}
	if findings == nil {
		findings = []DetectedPattern{}
	}
	return findings
}

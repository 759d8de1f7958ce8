package core

import (
	"testing"

	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleIssue(severity schema.Severity) schema.Issue {
	return schema.Issue{
		Tool:     schema.Flake8,
		Category: schema.CodeStyle,
		Metric:   schema.LineLength,
		RuleID:   "E501",
		Severity: severity,
	}
}

func TestBuildMetricSummaries_Grouping(t *testing.T) {
	issues := []schema.Issue{
		styleIssue(schema.LowSeverity),
		{Category: schema.CodeSmell, Metric: schema.LargeClass, Severity: schema.MediumSeverity},
		styleIssue(schema.LowSeverity),
	}

	summaries := BuildMetricSummaries(issues)
	require.Len(t, summaries, 2)

	// Categories come out sorted, and IssueCount matches the group size.
	assert.Equal(t, schema.CodeSmell, summaries[0].Category)
	assert.Equal(t, 1, summaries[0].IssueCount)
	assert.Equal(t, schema.CodeStyle, summaries[1].Category)
	assert.Equal(t, 2, summaries[1].IssueCount)
	assert.Len(t, summaries[1].Issues, 2)
}

func TestBuildMetricSummaries_Empty(t *testing.T) {
	assert.Empty(t, BuildMetricSummaries(nil))
}

func TestCategoryScore_Subtractive(t *testing.T) {
	issues := []schema.Issue{
		styleIssue(schema.LowSeverity),
		styleIssue(schema.MediumSeverity),
		styleIssue(schema.LowSeverity),
	}
	assert.Equal(t, 95.0, categoryScore(schema.CodeStyle, issues))
}

func TestCategoryScore_ClampsAtZero(t *testing.T) {
	issues := make([]schema.Issue, 25)
	for i := range issues {
		issues[i] = schema.Issue{
			Category: schema.SecurityVulnerability,
			Metric:   schema.DangerousFunctionCall,
			Severity: schema.HighSeverity,
		}
	}
	assert.Equal(t, 0.0, categoryScore(schema.SecurityVulnerability, issues))
}

func TestComplexityScore(t *testing.T) {
	issue := schema.Issue{
		Category: schema.Complexity,
		Metric:   schema.CyclomaticComplexity,
		RuleID:   "15",
		Severity: schema.HighSeverity,
	}
	// 100 - 5*(15-10)
	assert.Equal(t, 75.0, categoryScore(schema.Complexity, []schema.Issue{issue}))
}

func TestComplexityScore_Anomalies(t *testing.T) {
	tests := []struct {
		name   string
		issues []schema.Issue
	}{
		{name: "no issues", issues: nil},
		{
			name: "two issues",
			issues: []schema.Issue{
				{RuleID: "12", Severity: schema.HighSeverity},
				{RuleID: "14", Severity: schema.HighSeverity},
			},
		},
		{
			name:   "non-numeric rule id",
			issues: []schema.Issue{{RuleID: "C901", Severity: schema.HighSeverity}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 100.0, complexityScore(tt.issues))
		})
	}
}

func TestComplexityScore_ClampsAtZero(t *testing.T) {
	issue := schema.Issue{RuleID: "50", Severity: schema.HighSeverity}
	assert.Equal(t, 0.0, complexityScore([]schema.Issue{issue}))
}

func TestDocumentationRatio(t *testing.T) {
	missing := schema.Issue{Metric: schema.MissingModuleDocstring}
	nonstandard := schema.Issue{Metric: schema.NonstandardDocstring}
	other := schema.Issue{Metric: schema.UnknownMetric}

	tests := []struct {
		name   string
		issues []schema.Issue
		want   float64
	}{
		{name: "missing docstring", issues: []schema.Issue{missing}, want: 0.90},
		{name: "nonstandard docstring", issues: []schema.Issue{nonstandard}, want: 0.95},
		{name: "missing outranks nonstandard", issues: []schema.Issue{nonstandard, missing}, want: 0.90},
		{name: "unrecognized findings are perfect", issues: []schema.Issue{other}, want: 1.0},
		{name: "no findings", issues: nil, want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documentationRatio(tt.issues))
		})
	}
}

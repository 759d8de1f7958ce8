package core

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
)

// Category scoring constants.
const (
	// complexityThreshold is the cyclomatic complexity above which the
	// complexity score starts dropping.
	complexityThreshold = 10

	perfectScore = 100.0

	// Documentation scores are multiplicative ratios, not 0-100 values.
	docPerfect     = 1.0
	docNonstandard = 0.95
	docMissing     = 0.90
)

// BuildMetricSummaries groups one file's normalized issues by category and
// computes each category's score. Categories with zero issues are omitted
// here; the file score calculator treats absent weighted categories as
// perfect, so every category still contributes a value downstream.
func BuildMetricSummaries(issues []schema.Issue) []schema.MetricSummary {
	grouped := make(map[schema.Category][]schema.Issue)
	for _, issue := range issues {
		grouped[issue.Category] = append(grouped[issue.Category], issue)
	}

	categories := make([]schema.Category, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	summaries := make([]schema.MetricSummary, 0, len(categories))
	for _, category := range categories {
		group := grouped[category]
		summaries = append(summaries, schema.MetricSummary{
			Category:   category,
			IssueCount: len(group),
			Score:      categoryScore(category, group),
			Issues:     group,
		})
	}
	return summaries
}

// categoryScore applies the scoring rule selected by category.
func categoryScore(category schema.Category, issues []schema.Issue) float64 {
	switch category {
	case schema.Complexity:
		return complexityScore(issues)
	case schema.Documentation:
		return documentationRatio(issues)
	default:
		// Style, smell, security, potential-error and unknown categories
		// all use the subtractive severity rule.
		score := perfectScore
		for _, issue := range issues {
			score -= issue.Severity.Coefficient()
		}
		return max(score, 0.0)
	}
}

// complexityScore expects exactly one issue whose rule ID encodes the
// numeric complexity value. More than one issue, or an undecodable value,
// is a data-quality anomaly: log it and fall back to the neutral score
// instead of guessing which issue is authoritative.
func complexityScore(issues []schema.Issue) float64 {
	if len(issues) != 1 {
		contract.LogWarn(fmt.Sprintf("Expected one complexity issue per file, got %d; using neutral score", len(issues)), nil)
		return perfectScore
	}

	issue := issues[0]
	complexity, err := strconv.Atoi(issue.RuleID)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Complexity value %q is not numeric; using neutral score", issue.RuleID), err)
		return perfectScore
	}

	gamma := issue.Severity.Coefficient()
	score := perfectScore - gamma*float64(complexity-complexityThreshold)
	return max(score, 0.0)
}

// documentationRatio evaluates the docstring findings in priority order:
// a missing module docstring outranks a nonstandard one, first match wins.
func documentationRatio(issues []schema.Issue) float64 {
	for _, issue := range issues {
		if issue.Metric == schema.MissingModuleDocstring {
			return docMissing
		}
	}
	for _, issue := range issues {
		if issue.Metric == schema.NonstandardDocstring {
			return docNonstandard
		}
	}
	return docPerfect
}

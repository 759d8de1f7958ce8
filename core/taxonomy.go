package core

import (
	"strings"

	"github.com/lintscore/lintscore/schema"
)

// The taxonomy tables map each tool's native rule codes onto the canonical
// (category, metric) pairs. Every lookup is total: rule codes outside a
// table resolve to the unknown sentinels so that unfamiliar diagnostics
// survive normalization instead of being dropped.

var pylintCategories = map[string]schema.Category{
	"R0915": schema.CodeSmell, // long function/method
	"R0902": schema.CodeSmell, // large class (attributes)
	"R0904": schema.CodeSmell, // large class (methods)
	"R0913": schema.CodeSmell, // too many parameters
	"R0912": schema.CodeSmell, // too many branches
	"R1702": schema.CodeSmell, // deep nesting

	"W0613": schema.PotentialError, // unused argument
}

var pylintMetrics = map[string]schema.MetricName{
	"R0915": schema.LongFunctionOrMethod,
	"R0902": schema.LargeClass,
	"R0904": schema.LargeClass,
	"R0913": schema.TooManyParameters,
	"R0912": schema.TooManyBranches,
	"R1702": schema.DeepNesting,

	"W0613": schema.UnusedAssignment,
}

var flake8Metrics = map[string]schema.MetricName{
	"E501": schema.LineLength,

	"E201": schema.BracketWhitespace,
	"E202": schema.BracketWhitespace,
	"E225": schema.BracketWhitespace,
	"E231": schema.BracketWhitespace,

	"E301": schema.BlankLines,
	"E302": schema.BlankLines,
	"E303": schema.BlankLines,
	"E305": schema.BlankLines,
	"W391": schema.BlankLines,

	"N806": schema.VariableFunctionNaming,
	"N802": schema.VariableFunctionNaming,
	"N803": schema.VariableFunctionNaming,
	"N812": schema.VariableFunctionNaming,
	"N801": schema.ClassNaming,
}

var banditMetrics = map[string]schema.MetricName{
	"B102": schema.DangerousFunctionCall,
	"B110": schema.IgnoredException,
	"B105": schema.HardcodedSensitiveInfo,
}

var pyrightMetrics = map[string]schema.MetricName{
	"reportUndefinedVariable": schema.UndefinedName,
	"reportUnboundVariable":   schema.UseBeforeAssignment,
	"reportUnusedVariable":    schema.UnusedAssignment,
	"reportUnusedImport":      schema.UnusedAssignment,
	"reportUnusedFunction":    schema.UnusedAssignment,
	"reportReturnType":        schema.InconsistentReturn,
}

var pydocstyleMetrics = map[string]schema.MetricName{
	"D100": schema.MissingModuleDocstring,
	"D205": schema.NonstandardDocstring,
	"D400": schema.NonstandardDocstring,
	"D415": schema.NonstandardDocstring,
}

// MapRule resolves a tool's native rule code to the canonical
// (category, metric) pair.
func MapRule(tool schema.Tool, ruleID string) (schema.Category, schema.MetricName) {
	switch tool {
	case schema.Pylint:
		return lookupCategory(pylintCategories, ruleID), lookupMetric(pylintMetrics, ruleID)
	case schema.Flake8:
		return flake8Category(ruleID), lookupMetric(flake8Metrics, ruleID)
	case schema.Bandit:
		// Everything bandit reports is a security finding.
		return schema.SecurityVulnerability, lookupMetric(banditMetrics, ruleID)
	case schema.Radon:
		// Radon's rule_id carries the numeric complexity value itself.
		return schema.Complexity, schema.CyclomaticComplexity
	case schema.Pyright:
		return schema.PotentialError, lookupMetric(pyrightMetrics, ruleID)
	case schema.Pydocstyle:
		return schema.Documentation, lookupMetric(pydocstyleMetrics, ruleID)
	default:
		return schema.UnknownCategory, schema.UnknownMetric
	}
}

// DefaultSeverity returns the unified severity for a canonical metric.
// Unknown metrics default to low severity.
func DefaultSeverity(metric schema.MetricName) schema.Severity {
	if sev, ok := schema.DefaultSeverities[metric]; ok {
		return sev
	}
	return schema.LowSeverity
}

// flake8Category classifies flake8 rule codes by their letter prefix.
func flake8Category(ruleID string) schema.Category {
	switch {
	case strings.HasPrefix(ruleID, "C"):
		return schema.Complexity
	case strings.HasPrefix(ruleID, "D"):
		return schema.Documentation
	case strings.HasPrefix(ruleID, "E"), strings.HasPrefix(ruleID, "W"), strings.HasPrefix(ruleID, "N"):
		return schema.CodeStyle
	case strings.HasPrefix(ruleID, "F"):
		return schema.PotentialError
	default:
		return schema.UnknownCategory
	}
}

func lookupCategory(table map[string]schema.Category, ruleID string) schema.Category {
	if cat, ok := table[ruleID]; ok {
		return cat
	}
	return schema.UnknownCategory
}

func lookupMetric(table map[string]schema.MetricName, ruleID string) schema.MetricName {
	if m, ok := table[ruleID]; ok {
		return m
	}
	return schema.UnknownMetric
}

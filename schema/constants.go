package schema

// Custom string types for type safety.
type (
	// Category represents a quality dimension that issues are grouped under.
	Category string

	// Severity represents the severity level of a single issue.
	Severity string

	// MetricName represents a canonical metric within a category.
	MetricName string

	// Tool represents a supported static-analysis tool.
	Tool string

	// RunStatus represents the lifecycle state of an analysis run.
	RunStatus string

	// FileStatus represents the outcome of analyzing one file.
	FileStatus string

	// Trend classifies the direction of a metric between two runs.
	Trend string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run persistence.
	DatabaseBackend string
)

// All quality categories.
const (
	CodeStyle             Category = "code_style"
	CodeSmell             Category = "code_smell"
	Complexity            Category = "complexity"
	SecurityVulnerability Category = "security_vulnerability"
	PotentialError        Category = "potential_error"
	Documentation         Category = "documentation"

	// UnknownCategory is the sentinel for rule codes no table maps.
	// Unknown diagnostics are preserved, never dropped.
	UnknownCategory Category = "unknown_metric_category"
)

// All severity levels.
const (
	LowSeverity    Severity = "Low"
	MediumSeverity Severity = "Medium"
	HighSeverity   Severity = "High"
)

// SeverityCoefficients weight each severity level when penalizing a
// category score and when computing the adaptive learning signal.
var SeverityCoefficients = map[Severity]float64{
	LowSeverity:    1.0,
	MediumSeverity: 3.0,
	HighSeverity:   5.0,
}

// Coefficient returns the numeric weight for a severity level.
// Unrecognized severities fall back to the low coefficient.
func (s Severity) Coefficient() float64 {
	if c, ok := SeverityCoefficients[s]; ok {
		return c
	}
	return SeverityCoefficients[LowSeverity]
}

// All canonical metric names.
const (
	// Code style.
	VariableFunctionNaming MetricName = "variable_function_naming"
	ClassNaming            MetricName = "class_naming"
	LineLength             MetricName = "line_length"
	BracketWhitespace      MetricName = "bracket_whitespace"
	BlankLines             MetricName = "blank_lines"

	// Code smell.
	LongFunctionOrMethod MetricName = "long_function_or_method"
	LargeClass           MetricName = "large_class"
	TooManyParameters    MetricName = "too_many_parameters"
	TooManyBranches      MetricName = "too_many_branches"
	DeepNesting          MetricName = "deep_nesting"

	// Complexity.
	CyclomaticComplexity MetricName = "cyclomatic_complexity"

	// Potential errors.
	UndefinedName       MetricName = "undefined_name"
	UnusedAssignment    MetricName = "unused_assignment"
	UseBeforeAssignment MetricName = "use_before_assignment"
	InconsistentReturn  MetricName = "inconsistent_return"

	// Security vulnerabilities.
	DangerousFunctionCall  MetricName = "dangerous_function_call"
	IgnoredException       MetricName = "ignored_exception"
	HardcodedSensitiveInfo MetricName = "hardcoded_sensitive_info"

	// Documentation.
	MissingModuleDocstring MetricName = "missing_module_docstring"
	NonstandardDocstring   MetricName = "nonstandard_docstring"

	// UnknownMetric is the sentinel for rule codes no table maps.
	UnknownMetric MetricName = "unknown_metric_name"
)

// All supported tools.
const (
	Pylint     Tool = "pylint"
	Flake8     Tool = "flake8"
	Bandit     Tool = "bandit"
	Radon      Tool = "radon"
	Pyright    Tool = "pyright"
	Pydocstyle Tool = "pydocstyle"
)

// AllTools lists the supported tools in normalization order. The order is
// fixed so that normalizing the same payload twice yields identical issue
// sequences.
var AllTools = []Tool{Pylint, Flake8, Bandit, Radon, Pyright, Pydocstyle}

// All run statuses.
const (
	RunPending RunStatus = "pending"
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
)

// All per-file statuses.
const (
	FileSuccess FileStatus = "success"
	FileFailed  FileStatus = "failed"
	FileInvalid FileStatus = "invalid"
)

// All trend classifications.
const (
	TrendImproved  Trend = "improved"
	TrendWorsened  Trend = "worsened"
	TrendUnchanged Trend = "unchanged"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All persistence backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidBackends lists all valid persistence backends.
var ValidBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// WeightedCategories lists the categories that carry an adaptive weight.
// Documentation is excluded: its score modulates the weighted base as a
// ratio instead of adding to it.
var WeightedCategories = []Category{
	CodeStyle,
	CodeSmell,
	Complexity,
	SecurityVulnerability,
	PotentialError,
}

// AllCategories lists every named category in reporting order.
var AllCategories = []Category{
	CodeStyle,
	CodeSmell,
	Complexity,
	SecurityVulnerability,
	PotentialError,
	Documentation,
}

// DefaultWeights is the static weight table adopted verbatim on the first
// run, before any learning signal exists. It sums to 1.
var DefaultWeights = WeightTable{
	CodeStyle:             0.15,
	CodeSmell:             0.20,
	Complexity:            0.20,
	SecurityVulnerability: 0.15,
	PotentialError:        0.30,
}

// DefaultSeverities assigns each canonical metric its severity on the
// unified scale. Tool-reported severities are ignored so that the same
// metric is always penalized the same way regardless of which tool found it.
var DefaultSeverities = map[MetricName]Severity{
	UndefinedName:       HighSeverity,
	UseBeforeAssignment: HighSeverity,
	InconsistentReturn:  HighSeverity,
	UnusedAssignment:    MediumSeverity,

	CyclomaticComplexity: HighSeverity,

	LongFunctionOrMethod: HighSeverity,
	TooManyBranches:      HighSeverity,
	DeepNesting:          MediumSeverity,
	TooManyParameters:    MediumSeverity,
	LargeClass:           MediumSeverity,

	DangerousFunctionCall:  HighSeverity,
	HardcodedSensitiveInfo: HighSeverity,
	IgnoredException:       MediumSeverity,

	VariableFunctionNaming: MediumSeverity,
	ClassNaming:            MediumSeverity,
	LineLength:             LowSeverity,
	BracketWhitespace:      LowSeverity,
	BlankLines:             LowSeverity,

	MissingModuleDocstring: LowSeverity,
	NonstandardDocstring:   LowSeverity,
}

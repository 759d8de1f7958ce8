package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Scoring label constants.
const (
	ExcellentValue = "Excellent" // Near-perfect quality
	GoodValue      = "Good"      // Acceptable quality
	FairValue      = "Fair"      // Needs attention
	PoorValue      = "Poor"      // Significant issues
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	GoodColor      = color.New(color.FgCyan)
	FairColor      = color.New(color.FgYellow)
	PoorColor      = color.New(color.FgRed, color.Bold)

	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for a file's quality score.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 90:
		return ExcellentValue
	case score >= 75:
		return GoodValue
	case score >= 50:
		return FairValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case FairValue:
		return FairColor.Sprint(text)
	default: // "Poor"
		return PoorColor.Sprint(text)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", errorColor.Sprint("ERROR"), msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", warnColor.Sprint("WARN"), msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", warnColor.Sprint("WARN"), msg)
}

// DateTimeFormat is the display format for run timestamps.
const DateTimeFormat = "2006-01-02 15:04:05"

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/kaihendry/setupdeps/schema"
)

// Color variables for console output.
var (
	EnvColor     = color.New(color.FgMagenta, color.Bold) // EnvColor marks an explicit override.
	BranchColor  = color.New(color.FgCyan, color.Bold)    // BranchColor marks a matching branch.
	ConfigColor  = color.New(color.FgYellow)              // ConfigColor marks a declared version.
	DefaultColor = color.New(color.FgHiBlack)             // DefaultColor marks the remote default.
	SuccessColor = color.New(color.FgGreen)
	FailedColor  = color.New(color.FgRed, color.Bold)
)

// GetColorSource returns a colored source label for console output.
func GetColorSource(source schema.RefSource) string {
	text := string(source)
	switch source {
	case schema.EnvSource:
		return EnvColor.Sprint(text)
	case schema.BranchSource:
		return BranchColor.Sprint(text)
	case schema.ConfigSource:
		return ConfigColor.Sprint(text)
	default:
		return DefaultColor.Sprint(text)
	}
}

// GetColorStatus returns a colored run status for console output.
func GetColorStatus(status schema.RunStatus) string {
	if status == schema.SuccessStatus {
		return SuccessColor.Sprint(string(status))
	}
	return FailedColor.Sprint(string(status))
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".setupdeps_history.db"
	}
	return filepath.Join(homeDir, ".setupdeps_history.db")
}

// TruncateText shortens s to maxWidth runes with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// DateTimeFormat is the timestamp layout used in tables and CSV output.
const DateTimeFormat = "2006-01-02 15:04:05"

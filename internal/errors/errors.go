package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/burnoutguard/internal/logger"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

const timestampHint = "timestamps must be ISO-8601, e.g. 2025-03-10T09:00:00 or 2025-03-10T09:00:00-05:00"

// Format renders err for the terminal with an "Error: " prefix. Timestamp
// parse failures gain a hint describing the accepted layouts.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var pe *utils.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("Error: %v\nHint: %s", err, timestampHint)
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits with status 1.
// A nil error is ignored.
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, Format(err))
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	logger.Error("command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}

package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/logger"
)

var (
	// ErrNotFound is returned when an operation references a habit that does not exist
	ErrNotFound = errors.New("habit not found")
	// ErrDuplicateName is returned when creating a habit with a name already in use
	ErrDuplicateName = errors.New("habit name already exists")
	// ErrInvalidPeriodicity is returned for periodicities other than daily or weekly
	ErrInvalidPeriodicity = errors.New("periodicity must be 'daily' or 'weekly'")
	// ErrOutOfOrderCompletion is returned when a completion predates the latest recorded one
	ErrOutOfOrderCompletion = errors.New("completion is earlier than the last recorded completion")
	// ErrInvalidInput is returned when user supplied fields fail validation
	ErrInvalidInput = errors.New("invalid input")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

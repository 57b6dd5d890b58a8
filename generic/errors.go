/*
errors.go - Centralized error types and diagnostics

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculators never return errors for bad input: they degrade to a
  documented fallback (absent segment, default setting, heuristic estimate)
  and record a Diagnostic so the caller can see what was absorbed.

ERROR CATEGORIES:
  1. Input errors - malformed or half-filled time fields
  2. Estimation errors - net-income methods that cannot run
  3. Store errors - persistence failures and missing records

USAGE:
  seg, err := generic.ParseSegment("08:00", "")
  if errors.Is(err, generic.ErrHalfOpenPair) {
      // seg is absent; report it
  }

SEE ALSO:
  - clock.go: produces TimeFieldError
  - earnings/breakdown.go: collects diagnostics per day
  - netincome/estimate.go: collects diagnostics per estimate
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedTime is returned when a time field is not "HH:MM".
	ErrMalformedTime = errors.New("malformed time")

	// ErrHalfOpenPair is returned when only one side of a time pair is set.
	ErrHalfOpenPair = errors.New("time pair has only one side set")

	// ErrNoHistory is returned by the empirical estimator without usable pairs.
	ErrNoHistory = errors.New("no usable gross/net history")

	// ErrInvalidAmount is returned for negative or otherwise unusable amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrEstimationFailed wraps a recovered arithmetic failure.
	ErrEstimationFailed = errors.New("estimation failed")

	// ErrEntryNotFound is returned when no work entry exists for a date.
	ErrEntryNotFound = errors.New("work entry not found")

	// ErrConfigNotFound is returned when no settings bundle has been stored.
	ErrConfigNotFound = errors.New("settings not found")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TimeFieldError describes a time pair that could not be used.
type TimeFieldError struct {
	Start string
	End   string
	Err   error
}

func (e *TimeFieldError) Error() string {
	return fmt.Sprintf("%v: %q-%q", e.Err, e.Start, e.End)
}

func (e *TimeFieldError) Unwrap() error { return e.Err }

// =============================================================================
// DIAGNOSTICS - Explicit channel for absorbed failures
// =============================================================================

// DiagnosticCode classifies what was absorbed.
type DiagnosticCode string

const (
	DiagMalformedTime  DiagnosticCode = "malformed_time"
	DiagHalfOpenPair   DiagnosticCode = "half_open_pair"
	DiagDefaultApplied DiagnosticCode = "default_applied"
	DiagMethodFallback DiagnosticCode = "method_fallback"
	DiagRecoveredPanic DiagnosticCode = "recovered_panic"
	DiagZeroGross      DiagnosticCode = "zero_gross"
	DiagIgnoredHistory DiagnosticCode = "ignored_history"
	DiagExtraSegment   DiagnosticCode = "extra_segment"
)

// Diagnostic records one absorbed problem. Field names the input that caused it
// (e.g. "ordinaryShifts[1]", "standbyInterventions[0].work[0]").
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Field   string         `json:"field"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Code, d.Field, d.Message)
}

// DiagnosticFor converts an error from this package into a Diagnostic.
func DiagnosticFor(field string, err error) Diagnostic {
	code := DiagMalformedTime
	switch {
	case errors.Is(err, ErrHalfOpenPair):
		code = DiagHalfOpenPair
	case errors.Is(err, ErrEstimationFailed):
		code = DiagRecoveredPanic
	case errors.Is(err, ErrNoHistory):
		code = DiagIgnoredHistory
	}
	return Diagnostic{Code: code, Field: field, Message: err.Error()}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrConfigNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedTime) ||
		errors.Is(err, ErrHalfOpenPair) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPeriod)
}

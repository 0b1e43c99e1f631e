package contracts

import "fmt"

// Error taxonomy for the research pipeline. Only UnknownStrategyError
// and PersistenceError abort a run; the per-symbol errors are absorbed
// into skip or degrade counts.

// UnknownStrategyError means the requested strategy has no universe.
// Fatal: there is nothing to process.
type UnknownStrategyError struct {
	Strategy string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q", e.Strategy)
}

// MetricsUnavailableError means the provider could not supply a usable
// snapshot for one symbol. Recovered by skipping that symbol.
type MetricsUnavailableError struct {
	Symbol string
	Cause  error
}

func (e *MetricsUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("metrics unavailable for %s: %v", e.Symbol, e.Cause)
	}
	return fmt.Sprintf("metrics unavailable for %s", e.Symbol)
}

func (e *MetricsUnavailableError) Unwrap() error { return e.Cause }

// ExternalAnalysisError means the analysis service call failed or timed
// out for one symbol. Recovered by the fallback weight profile.
type ExternalAnalysisError struct {
	Symbol string
	Cause  error
}

func (e *ExternalAnalysisError) Error() string {
	return fmt.Sprintf("external analysis failed for %s: %v", e.Symbol, e.Cause)
}

func (e *ExternalAnalysisError) Unwrap() error { return e.Cause }

// ValidationError means the analysis service responded but the payload
// did not match the expected schema. Recovered identically to
// ExternalAnalysisError.
type ValidationError struct {
	Symbol string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid opinion payload for %s: %s", e.Symbol, e.Detail)
}

// PersistenceError means the decision could not be written. Fatal to
// the run's completion; partial writes are never committed.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

package models

import "fmt"

// ConfigurationError reports an internal invariant violation, such as an
// attribute lookup against an annotation kind outside the recognized set.
// It always indicates a logic defect, never a bad input, and aborts the run.
type ConfigurationError struct {
	Op     string // operation that detected the violation
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Op, e.Detail)
}

// MalformedRouteError reports an annotated member whose declaration cannot
// be resolved into a route, such as a body marker naming a parameter the
// method does not declare.
type MalformedRouteError struct {
	Member string // name of the offending member
	Reason string
}

func (e *MalformedRouteError) Error() string {
	return fmt.Sprintf("malformed route on %s: %s", e.Member, e.Reason)
}

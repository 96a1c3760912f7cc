package annotations

import (
	"fmt"
	"strings"
)

// SyntaxError reports an unparseable route:: directive.
type SyntaxError struct {
	Msg  string         // error message
	Loc  SourceLocation // where the error occurred
	Hint string         // suggested fix
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s. %s",
		e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg, e.Hint)
}

// Location returns where the error occurred.
func (e *SyntaxError) Location() SourceLocation { return e.Loc }

// newSyntaxError creates a syntax error with a context-aware suggestion.
func newSyntaxError(msg string, loc SourceLocation) *SyntaxError {
	return &SyntaxError{
		Msg:  msg,
		Loc:  loc,
		Hint: syntaxSuggestion(msg),
	}
}

// syntaxSuggestion picks a fix suggestion based on the error message.
func syntaxSuggestion(msg string) string {
	msg = strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "unknown directive"):
		return "Supported directives: request, get, post, put, delete, patch, query, body"
	case strings.Contains(msg, "unknown attribute"):
		return "Mapping attributes: -Path, -Value, -Method, -Consumes, -Produces; marker attributes: -Name, -Value, -Default"
	case strings.Contains(msg, "missing parameter identifier"):
		return "Markers bind to a formal parameter: //route::query page -Default=1 or //route::body req"
	case strings.Contains(msg, "empty directive"):
		return "Try: //route::get /users or //route::request /api -Method=GET,POST"
	default:
		return "Check directive syntax; quote values containing spaces, '=' or a leading '-'"
	}
}

package models

// DiagnosticLevel is the severity of a Diagnostic (§6.5).
type DiagnosticLevel int

const (
	DiagLevelError DiagnosticLevel = iota
	DiagLevelWarning
)

func (l DiagnosticLevel) String() string {
	if l == DiagLevelWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one caller-facing finding produced alongside a CRIF. The
// core never decides how diagnostics are transported (logged, reported to
// an IDE, failed a build) — that is the caller's concern (§1, §6.5).
type Diagnostic struct {
	InvocationID string
	Level        DiagnosticLevel
	Message      string
	// Count is populated for the unimplemented-stub warning so a caller
	// doesn't have to re-derive it from the message string.
	Count int
}

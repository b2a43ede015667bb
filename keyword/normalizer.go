// Package keyword converts Gherkin's raw step keyword text into a display
// keyword and, stateful across a step sequence, resolves And/But to the
// current contextual kind (§4.3).
package keyword

import (
	"fmt"
	"strings"

	"github.com/jcoliz/gherkingen/models"
)

// Display is the five-valued raw keyword, preserved for emission.
type Display string

const (
	DisplayGiven Display = "Given"
	DisplayWhen  Display = "When"
	DisplayThen  Display = "Then"
	DisplayAnd   Display = "And"
	DisplayBut   Display = "But"
)

// Parse converts Gherkin's raw keyword text to a Display keyword. Unknown
// keywords are a hard error (§4.4).
func Parse(raw string) (Display, error) {
	switch strings.TrimSpace(raw) {
	case "Given":
		return DisplayGiven, nil
	case "When":
		return DisplayWhen, nil
	case "Then":
		return DisplayThen, nil
	case "And":
		return DisplayAnd, nil
	case "But":
		return DisplayBut, nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnknownKeyword, raw)
	}
}

// Normalizer tracks the contextual kind across one independent step
// sequence. Each scenario and each background is its own sequence (§4.3);
// callers must start a fresh Normalizer (or call Reset) at each boundary.
type Normalizer struct {
	current models.StepKind
}

// New returns a Normalizer with its context initialized to Given, as every
// sequence starts.
func New() *Normalizer {
	return &Normalizer{current: models.Given}
}

// Reset restores the Given starting context, for reuse across a new
// sequence without allocating a new Normalizer.
func (n *Normalizer) Reset() {
	n.current = models.Given
}

// Resolve updates (for Given/When/Then) or reads (for And/But) the running
// context and returns the normalized kind for kw.
func (n *Normalizer) Resolve(kw Display) models.StepKind {
	switch kw {
	case DisplayGiven:
		n.current = models.Given
	case DisplayWhen:
		n.current = models.When
	case DisplayThen:
		n.current = models.Then
	}
	return n.current
}

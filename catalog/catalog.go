// Package catalog indexes a models.StepCatalog and resolves a normalized
// kind + step text into the best matching step definition (§4.2).
package catalog

import (
	"strings"

	"github.com/jcoliz/gherkingen/models"
	"github.com/jcoliz/gherkingen/pattern"
)

type compiledDef struct {
	def     models.StepDefinition
	matcher *pattern.Matcher
}

// Compiled is an immutable, pre-compiled view over a models.StepCatalog.
// Build once per models.StepCatalog and reuse across every feature
// invocation that shares it (§5 — StepCatalog is immutable across
// concurrent invocations).
type Compiled struct {
	defs []compiledDef
}

// New compiles every parametric pattern up front. A pattern that fails to
// compile gets a nil matcher rather than aborting construction: per §4.1
// and §7 that definition simply never matches any step (fail-closed).
func New(defs []models.StepDefinition) *Compiled {
	c := &Compiled{defs: make([]compiledDef, 0, len(defs))}
	for _, d := range defs {
		cd := compiledDef{def: d}
		if hasCapturingParams(d) {
			if m, err := pattern.Compile(d.Pattern); err == nil {
				cd.matcher = m
			}
		}
		c.defs = append(c.defs, cd)
	}
	return c
}

// hasCapturingParams reports whether d has any parameter at all — the
// zero/nonzero distinction in §4.2's two-phase resolution, not whether the
// parameter happens to be a DataTable (a DataTable-only definition still
// has a nonempty Params list and so is resolved in phase two against its
// zero-placeholder literal pattern).
func hasCapturingParams(d models.StepDefinition) bool {
	return len(d.Params) > 0
}

// Find implements §4.2's deterministic, stable resolution: first an
// exact, case-insensitive match among zero-parameter definitions, then the
// first parametric definition (in insertion order) whose compiled matcher
// accepts text.
func (c *Compiled) Find(kind models.StepKind, text string) (*models.StepDefinition, []string, bool) {
	for _, cd := range c.defs {
		if cd.def.Kind != kind || len(cd.def.Params) != 0 {
			continue
		}
		if strings.EqualFold(cd.def.Pattern, text) {
			d := cd.def
			return &d, nil, true
		}
	}

	for _, cd := range c.defs {
		if cd.def.Kind != kind || len(cd.def.Params) == 0 {
			continue
		}
		args, ok := cd.matcher.Match(text)
		if !ok {
			continue
		}
		d := cd.def
		return &d, args, true
	}

	return nil, nil, false
}

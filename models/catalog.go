package models

// StepCatalog is the immutable collection of step definitions supplied by
// the host project's static analyzer once per build (§3). Resolution over
// the catalog lives in package catalog, which compiles and indexes Defs;
// StepCatalog itself stays a plain, dependency-free value so it can be
// constructed by callers without importing the matching engine.
type StepCatalog struct {
	Defs []StepDefinition
}

// NewStepCatalog builds a catalog from step definitions in discovery order.
// Order matters: §4.2 resolution is a stable, insertion-ordered search.
func NewStepCatalog(defs ...StepDefinition) *StepCatalog {
	return &StepCatalog{Defs: defs}
}

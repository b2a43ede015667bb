// Package crif implements the CRIF Assembler (§4.6): it walks a parsed
// Gherkin document once and produces the Code-Ready Intermediate Form that
// the template renderer projects into source text.
package crif

import (
	"context"
	"fmt"
	"strings"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/gofrs/uuid"

	"github.com/jcoliz/gherkingen/catalog"
	"github.com/jcoliz/gherkingen/models"
	"github.com/jcoliz/gherkingen/stepproc"
	"github.com/jcoliz/gherkingen/tagproc"
)

// UtilityImport is the designated namespace added to usings whenever data
// tables or unimplemented stubs are present (§6.4). It is a variable, not a
// constant, because the spec treats it as a configurable reserved
// identifier a host may rename to match its own generated-utilities
// package.
var UtilityImport = "Gherkin.Generator.Utils"

const (
	defaultRuleName = "All scenarios"
	stubReason      = "steps_in_progress"
)

// Generate walks one parsed Gherkin document end to end and assembles its
// CRIF, alongside any diagnostics (§6.5). A non-nil error means no partial
// CRIF was produced (§7); a nil error with non-empty diagnostics still
// returns a usable CRIF (e.g. unimplemented-stub warnings, or
// scenario-scoped Examples errors that didn't abort the whole feature).
//
// ctx is checked at feature-level boundaries only — before processing each
// scenario and before the final return — per §5; the core performs no
// blocking calls of its own, so there is nowhere else a cancellation could
// meaningfully land.
func Generate(
	ctx context.Context,
	doc *models.GherkinDoc,
	stepCatalog *models.StepCatalog,
	project models.ProjectMetadata,
	fileName string,
) (*models.Feature, []models.Diagnostic, error) {
	invocationID := newInvocationID()

	if doc == nil || doc.Feature == nil {
		return nil, nil, &models.FeatureError{FeatureName: fileName, Err: fmt.Errorf("%w: missing feature", models.ErrMalformedDoc)}
	}
	if ctxDone(ctx) {
		return nil, nil, models.ErrCancelled
	}

	gFeature := doc.Feature
	feature := &models.Feature{
		Usings:      models.NewOrderedSet(),
		Classes:     models.NewOrderedSet(),
		FileName:    fileName,
		FeatureName: gFeature.Name,
	}
	if gFeature.Description != "" {
		feature.DescriptionLines = strings.Split(gFeature.Description, "\n")
	}

	tagproc.Apply(feature, gFeature.Tags, project)

	compiled := catalog.New(stepCatalog.Defs)
	proc := stepproc.NewProcessor(compiled, feature.Usings, feature.Classes)

	if bkg := findBackground(gFeature); bkg != nil {
		proc.ResetSequence()
		steps, err := processSteps(proc, bkg.Steps)
		if err != nil {
			return nil, nil, &models.FeatureError{FeatureName: fileName, Err: err}
		}
		feature.Background = &models.Background{Steps: steps}
	}

	var diagnostics []models.Diagnostic
	var rules []*models.Rule
	var defaultRule *models.Rule

	for _, child := range gFeature.Children {
		switch {
		case child.Rule != nil:
			rule, scnErrs, err := assembleRule(ctx, proc, child.Rule)
			if err != nil {
				if err == models.ErrCancelled {
					return nil, nil, models.ErrCancelled
				}
				return nil, nil, &models.FeatureError{FeatureName: fileName, Err: err}
			}
			for _, se := range scnErrs {
				diagnostics = append(diagnostics, models.Diagnostic{
					InvocationID: invocationID,
					Level:        models.DiagLevelError,
					Message:      se.Error(),
				})
			}
			rules = append(rules, rule)

		case child.Scenario != nil:
			if ctxDone(ctx) {
				return nil, nil, models.ErrCancelled
			}
			if defaultRule == nil {
				defaultRule = &models.Rule{Name: defaultRuleName}
				rules = append(rules, defaultRule)
			}
			scn, err := assembleScenario(proc, child.Scenario)
			if err != nil {
				if se, ok := err.(*models.ScenarioError); ok {
					diagnostics = append(diagnostics, models.Diagnostic{
						InvocationID: invocationID,
						Level:        models.DiagLevelError,
						Message:      se.Error(),
					})
					continue
				}
				return nil, nil, &models.FeatureError{FeatureName: fileName, Err: err}
			}
			defaultRule.Scenarios = append(defaultRule.Scenarios, scn)
		}
	}

	if len(rules) == 0 && len(gFeature.Children) > 0 {
		rules = append(rules, &models.Rule{Name: defaultRuleName})
	}
	feature.Rules = rules
	feature.Unimplemented = proc.Unimplemented()

	if len(feature.Unimplemented) > 0 || hasAnyDataTable(feature) {
		feature.Usings.Add(UtilityImport)
	}

	if ctxDone(ctx) {
		return nil, nil, models.ErrCancelled
	}

	if len(feature.Unimplemented) > 0 {
		diagnostics = append(diagnostics, models.Diagnostic{
			InvocationID: invocationID,
			Level:        models.DiagLevelWarning,
			Message:      fmt.Sprintf("%d unimplemented step(s)", len(feature.Unimplemented)),
			Count:        len(feature.Unimplemented),
		})
	}

	return feature, diagnostics, nil
}

func ctxDone(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func findBackground(f *messages.Feature) *messages.Background {
	for _, child := range f.Children {
		if child.Background != nil {
			return child.Background
		}
	}
	return nil
}

func assembleRule(ctx context.Context, proc *stepproc.Processor, r *messages.Rule) (*models.Rule, []*models.ScenarioError, error) {
	rule := &models.Rule{Name: r.Name, Description: r.Description}
	var scnErrs []*models.ScenarioError
	for _, child := range r.Children {
		if child.Scenario == nil {
			continue
		}
		if ctxDone(ctx) {
			return nil, nil, models.ErrCancelled
		}
		scn, err := assembleScenario(proc, child.Scenario)
		if err != nil {
			if se, ok := err.(*models.ScenarioError); ok {
				scnErrs = append(scnErrs, se)
				continue
			}
			return nil, nil, err
		}
		rule.Scenarios = append(rule.Scenarios, scn)
	}
	return rule, scnErrs, nil
}

func assembleScenario(proc *stepproc.Processor, s *messages.Scenario) (*models.Scenario, error) {
	scn := &models.Scenario{Name: s.Name}
	scn.IsExplicit, scn.ExplicitReason = tagproc.ParseExplicit(s.Tags)

	if len(s.Examples) > 0 {
		if err := bindOutline(scn, s.Examples); err != nil {
			return nil, &models.ScenarioError{ScenarioName: s.Name, Err: err}
		}
	}

	proc.ResetSequence()
	steps, err := processSteps(proc, s.Steps)
	if err != nil {
		return nil, err
	}
	scn.Steps = steps

	if !scn.IsExplicit && anyUnmatched(steps) {
		scn.IsExplicit = true
		scn.ExplicitReason = stubReason
	}

	return scn, nil
}

func anyUnmatched(steps []*models.Step) bool {
	for _, s := range steps {
		if s.Owner == "this" {
			return true
		}
	}
	return false
}

func bindOutline(scn *models.Scenario, examples []*messages.Examples) error {
	headers := cellValues(examples[0].TableHeader)
	for i, h := range headers {
		scn.Parameters = append(scn.Parameters, models.ScenarioParam{
			Type: "string", Name: h, IsLast: i == len(headers)-1,
		})
	}

	for _, ex := range examples {
		exHeaders := cellValues(ex.TableHeader)
		if len(exHeaders) != len(headers) {
			return fmt.Errorf("%w: examples header has %d column(s), want %d", models.ErrExamplesWidthMismatch, len(exHeaders), len(headers))
		}
		for _, row := range ex.TableBody {
			cells := cellValues(row)
			if len(cells) != len(headers) {
				return fmt.Errorf("%w: examples row has %d cell(s), want %d", models.ErrExamplesWidthMismatch, len(cells), len(headers))
			}
			quoted := make([]string, len(cells))
			for i, c := range cells {
				quoted[i] = `"` + c + `"`
			}
			scn.TestCases = append(scn.TestCases, strings.Join(quoted, ", "))
		}
	}
	return nil
}

func cellValues(row *messages.TableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Value
	}
	return out
}

func processSteps(proc *stepproc.Processor, raws []*messages.Step) ([]*models.Step, error) {
	steps := make([]*models.Step, 0, len(raws))
	for _, raw := range raws {
		st, err := proc.Process(raw)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

func hasAnyDataTable(f *models.Feature) bool {
	if f.Background != nil {
		for _, s := range f.Background.Steps {
			if s.DataTable != nil {
				return true
			}
		}
	}
	for _, r := range f.Rules {
		for _, scn := range r.Scenarios {
			for _, s := range scn.Steps {
				if s.DataTable != nil {
					return true
				}
			}
		}
	}
	return false
}

func newInvocationID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return id.String()
}

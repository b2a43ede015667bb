// Package stepproc implements the Step Processor (§4.4): for each Gherkin
// step, it resolves a step definition via the catalog or synthesizes an
// unimplemented-stub descriptor, producing a CRIF step either way.
package stepproc

import (
	"fmt"
	"regexp"
	"strings"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/jcoliz/gherkingen/catalog"
	"github.com/jcoliz/gherkingen/keyword"
	"github.com/jcoliz/gherkingen/models"
)

const stubOwner = "this"

var outlinePlaceholderRe = regexp.MustCompile(`^<(\w+)>$`)

// Processor carries the feature-wide state §4.4 and §4.6 accumulate across
// every step in a feature: the deduplicated usings/classes sets, the
// deduplicated unimplemented-stub list, and the keyword/table-numbering
// context for whichever sequence (scenario or background) is currently
// being walked.
type Processor struct {
	catalog *catalog.Compiled
	norm    *keyword.Normalizer

	usings  *models.OrderedSet
	classes *models.OrderedSet

	unimplemented []*models.UnimplementedStep
	unimplIndex   map[string]int

	tableCounter int
}

// NewProcessor builds a Processor bound to a compiled catalog and to the
// feature's usings/classes sets, which it mutates as steps are matched.
func NewProcessor(cat *catalog.Compiled, usings, classes *models.OrderedSet) *Processor {
	return &Processor{
		catalog:     cat,
		norm:        keyword.New(),
		usings:      usings,
		classes:     classes,
		unimplIndex: make(map[string]int),
	}
}

// ResetSequence starts a fresh keyword-normalization context and a fresh
// data-table counter. Call it once per scenario and once per background —
// each is its own independent sequence (§4.3, §4.6).
func (p *Processor) ResetSequence() {
	p.norm.Reset()
	p.tableCounter = 0
}

// Unimplemented returns the feature-wide, deduplicated stub list
// accumulated so far, in first-seen order.
func (p *Processor) Unimplemented() []*models.UnimplementedStep {
	return p.unimplemented
}

// Process handles one Gherkin step and returns its CRIF projection.
func (p *Processor) Process(raw *messages.Step) (*models.Step, error) {
	display, err := keyword.Parse(raw.Keyword)
	if err != nil {
		return nil, err
	}
	kind := p.norm.Resolve(display)

	step := &models.Step{Keyword: string(display), Text: raw.Text}

	def, rawArgs, matched := p.catalog.Find(kind, raw.Text)
	if matched {
		if err := p.bindMatched(step, def, rawArgs, raw); err != nil {
			return nil, err
		}
		return step, nil
	}

	if err := p.bindUnmatched(step, kind, raw); err != nil {
		return nil, err
	}
	return step, nil
}

func (p *Processor) bindMatched(step *models.Step, def *models.StepDefinition, rawArgs []string, raw *messages.Step) error {
	step.Owner = def.OwnerClass
	step.Method = def.MethodName
	p.classes.Add(def.OwnerClass)
	p.usings.Add(def.OwnerNamespace)

	var nonTableParams []models.Param
	tableParam, hasTableParam := def.DataTableParam()
	for _, prm := range def.Params {
		if hasTableParam && prm == tableParam {
			continue
		}
		nonTableParams = append(nonTableParams, prm)
	}

	if len(rawArgs) != len(nonTableParams) {
		return fmt.Errorf("step %q: step definition %s.%s expects %d argument(s), got %d",
			raw.Text, def.OwnerClass, def.MethodName, len(nonTableParams), len(rawArgs))
	}

	args := make([]models.Argument, 0, len(rawArgs)+1)
	for i, tok := range rawArgs {
		args = append(args, models.Argument{Value: formatArgument(tok, nonTableParams[i].Type)})
	}

	if hasTableParam && raw.DataTable != nil {
		dt, err := p.bindDataTable(raw.DataTable)
		if err != nil {
			return err
		}
		step.DataTable = dt
		args = append(args, models.Argument{Value: dt.VariableName})
	}

	markLastArgs(args)
	step.Arguments = args
	return nil
}

func (p *Processor) bindUnmatched(step *models.Step, kind models.StepKind, raw *messages.Step) error {
	step.Owner = stubOwner

	hasTable := raw.DataTable != nil
	u := p.registerUnimplemented(kind, raw.Text, hasTable)
	step.Method = u.Method

	args := scanArguments(raw.Text)

	if hasTable {
		dt, err := p.bindDataTable(raw.DataTable)
		if err != nil {
			return err
		}
		step.DataTable = dt
		args = append(args, models.Argument{Value: dt.VariableName})
	}

	markLastArgs(args)
	step.Arguments = args
	return nil
}

// registerUnimplemented deduplicates by (normalizedKind, patternText),
// returning the previously registered stub when the same shape recurs
// (§3, §8 invariant 6).
func (p *Processor) registerUnimplemented(kind models.StepKind, text string, hasTable bool) *models.UnimplementedStep {
	patternText, params := synthesizeStub(text)
	key := kind.String() + "\x00" + patternText

	if idx, ok := p.unimplIndex[key]; ok {
		return p.unimplemented[idx]
	}

	if hasTable {
		params = append(params, models.UnimplementedParam{Type: "DataTable", Name: "table"})
	}
	markLastParams(params)

	method := generatedMethodName(placeholderGroupRe.ReplaceAllString(patternText, ""))

	u := &models.UnimplementedStep{
		NormalizedKeyword: kind.String(),
		Text:              patternText,
		Method:            method,
		Parameters:        params,
	}
	p.unimplemented = append(p.unimplemented, u)
	p.unimplIndex[key] = len(p.unimplemented) - 1
	return u
}

func (p *Processor) bindDataTable(dt *messages.DataTable) (*models.DataTable, error) {
	if len(dt.Rows) == 0 {
		return nil, fmt.Errorf("%w: data table has no rows", models.ErrMalformedDoc)
	}
	headers := cellValues(dt.Rows[0])

	var rows [][]string
	for _, row := range dt.Rows[1:] {
		cells := cellValues(row)
		if len(cells) != len(headers) {
			return nil, fmt.Errorf("%w: data table row has %d cell(s), want %d", models.ErrMalformedDoc, len(cells), len(headers))
		}
		rows = append(rows, cells)
	}

	p.tableCounter++
	return &models.DataTable{
		VariableName: fmt.Sprintf("table%d", p.tableCounter),
		Headers:      headers,
		Rows:         rows,
	}, nil
}

func cellValues(row *messages.TableRow) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Value
	}
	return out
}

// formatArgument applies the matched-branch argument formatting rules of
// §4.4: scenario-outline placeholders pass through bare; string-typed
// parameters get quoted unless already quoted; everything else passes
// through verbatim.
func formatArgument(tok, paramType string) string {
	if m := outlinePlaceholderRe.FindStringSubmatch(tok); m != nil {
		return m[1]
	}
	if strings.EqualFold(paramType, "string") && !isQuoted(tok) {
		return `"` + tok + `"`
	}
	return tok
}

func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}

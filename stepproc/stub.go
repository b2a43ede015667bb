package stepproc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jcoliz/gherkingen/models"
)

// occurrenceRe finds, in textual order, the three shapes a step's free text
// can carry: a quoted phrase, a scenario-outline placeholder, or a bare
// integer (§4.4).
var occurrenceRe = regexp.MustCompile(`"[^"]*"|<\w+>|\b\d+\b`)

// placeholderGroupRe matches a synthesized {name} placeholder in a stub's
// pattern text, for stripping before method-name generation.
var placeholderGroupRe = regexp.MustCompile(`\{[^{}]*\}`)

// synthesizeStub builds the pattern text and parameter list for a new
// UnimplementedStep from a step's raw text (§4.4 "Stub parameter
// inference"). Quoted phrases become {string<n>}, bare integers become
// {value<n>}, both numbered left to right per kind; scenario-outline
// <name> tokens are left untouched in the text but still contribute a
// string-typed parameter named for the placeholder.
func synthesizeStub(text string) (patternText string, params []models.UnimplementedParam) {
	stringN, valueN := 0, 0

	patternText = occurrenceRe.ReplaceAllStringFunc(text, func(tok string) string {
		switch {
		case strings.HasPrefix(tok, `"`):
			stringN++
			name := fmt.Sprintf("string%d", stringN)
			params = append(params, models.UnimplementedParam{Type: "string", Name: name})
			return "{" + name + "}"
		case strings.HasPrefix(tok, "<"):
			name := strings.Trim(tok, "<>")
			params = append(params, models.UnimplementedParam{Type: "string", Name: name})
			return tok
		default:
			valueN++
			name := fmt.Sprintf("value%d", valueN)
			params = append(params, models.UnimplementedParam{Type: "int", Name: name})
			return "{" + name + "}"
		}
	})

	return patternText, params
}

// scanArguments populates an unmatched step's call-site arguments by
// scanning its original text left to right (§4.4 "Unmatched branch").
func scanArguments(text string) []models.Argument {
	toks := occurrenceRe.FindAllString(text, -1)
	args := make([]models.Argument, 0, len(toks))
	for _, tok := range toks {
		switch {
		case strings.HasPrefix(tok, "<"):
			args = append(args, models.Argument{Value: strings.Trim(tok, "<>")})
		default:
			args = append(args, models.Argument{Value: tok})
		}
	}
	markLastArgs(args)
	return args
}

// generatedMethodName implements §4.4's identifier synthesis: split on
// spaces, hyphens, and underscores; title-case each non-empty token (first
// character only); concatenate; strip anything left that isn't
// alphanumeric.
func generatedMethodName(text string) string {
	tokens := identBreakRe.Split(text, -1)
	var b strings.Builder
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		r := []rune(tok)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return nonAlnumRe.ReplaceAllString(b.String(), "")
}

var identBreakRe = regexp.MustCompile(`[ _-]+`)
var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]`)

func markLastArgs(args []models.Argument) {
	for i := range args {
		args[i].IsLast = false
	}
	if len(args) > 0 {
		args[len(args)-1].IsLast = true
	}
}

func markLastParams(params []models.UnimplementedParam) {
	for i := range params {
		params[i].IsLast = false
	}
	if len(params) > 0 {
		params[len(params)-1].IsLast = true
	}
}

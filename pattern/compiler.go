// Package pattern compiles a step-definition pattern string into a matcher
// that recognizes concrete Gherkin step text and extracts ordered argument
// slots (§4.1).
package pattern

import (
	"regexp"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)
var sentinelRe = regexp.MustCompile(`\x00(\d+)\x00`)

const captureGroup = `("[^"]*"|\S+)`

// Matcher recognizes concrete step text compiled from one pattern. A nil
// Matcher never matches anything, which is how callers represent a
// compilation failure fail-closed (§4.1, §7): the offending step is simply
// treated as unmatched rather than aborting the whole feature.
type Matcher struct {
	re *regexp.Regexp
}

// Compile builds a Matcher from a pattern string such as
// "I have {amount} dollars in {account}". The escaping order is load
// bearing: placeholders are swapped for sentinel tokens before the rest of
// the pattern is escaped for literal regex matching, and only afterwards
// are the sentinels turned into capture groups. Any other order risks a
// literal regex metacharacter in the pattern, or a user-chosen placeholder
// name, corrupting the compiled expression.
func Compile(pattern string) (*Matcher, error) {
	seq := 0
	sentinelized := placeholderRe.ReplaceAllStringFunc(pattern, func(string) string {
		token := "\x00" + strconv.Itoa(seq) + "\x00"
		seq++
		return token
	})

	escaped := regexp.QuoteMeta(sentinelized)

	withCaptures := sentinelRe.ReplaceAllString(escaped, captureGroup)

	re, err := regexp.Compile("(?is)^" + withCaptures + "$")
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re}, nil
}

// Match returns the ordered captured substrings for text, or false if text
// doesn't match. Calling Match on a nil Matcher always reports no match.
func (m *Matcher) Match(text string) ([]string, bool) {
	if m == nil || m.re == nil {
		return nil, false
	}
	sub := m.re.FindStringSubmatch(text)
	if sub == nil {
		return nil, false
	}
	return sub[1:], true
}

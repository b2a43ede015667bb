package models

import messages "github.com/cucumber/messages/go/v21"

// GherkinDoc is the parsed Gherkin AST the core consumes (§6.1). The core
// never parses Gherkin itself — that is a host-project concern — so this
// is a plain alias onto the cucumber messages wire format rather than a
// bespoke tree, matching how the teacher represents parsed documents
// throughout its own suite runner.
type GherkinDoc = messages.GherkinDocument

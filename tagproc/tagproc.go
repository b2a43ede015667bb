// Package tagproc implements the Tag Processor (§4.5): parsing
// feature-level tags and merging project defaults beneath any explicit
// values, plus the scenario-level @explicit tag parsing the CRIF Assembler
// needs (§4.6).
package tagproc

import (
	"strings"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/jcoliz/gherkingen/models"
)

const (
	namespacePrefix = "@namespace:"
	baseclassPrefix = "@baseclass:"
	usingPrefix     = "@using:"
	explicitTag     = "@explicit"
	explicitPrefix  = "@explicit:"
)

// Apply scans feature-level tags into feature, then merges project
// defaults beneath any explicit values feature tags already set. Feature
// tags always win over project defaults (§4.5).
func Apply(feature *models.Feature, tags []*messages.Tag, project models.ProjectMetadata) {
	for _, t := range tags {
		name := t.Name
		switch {
		case strings.HasPrefix(name, namespacePrefix):
			feature.Namespace = strings.TrimPrefix(name, namespacePrefix)
		case strings.HasPrefix(name, baseclassPrefix):
			applyBaseClass(feature, strings.TrimPrefix(name, baseclassPrefix))
		case strings.HasPrefix(name, usingPrefix):
			feature.Usings.Add(strings.TrimPrefix(name, usingPrefix))
		}
	}

	if feature.Namespace == "" && project.GeneratedNamespace != "" {
		feature.Namespace = project.GeneratedNamespace
	}
	if feature.BaseClass == "" && project.DefaultTestBase != nil {
		feature.BaseClass = project.DefaultTestBase.SimpleName
		feature.Usings.Add(project.DefaultTestBase.Namespace)
	}
}

func applyBaseClass(feature *models.Feature, value string) {
	if i := strings.LastIndex(value, "."); i >= 0 {
		feature.Usings.Add(value[:i])
		feature.BaseClass = value[i+1:]
		return
	}
	feature.BaseClass = value
}

// ParseExplicit implements the scenario-level @explicit / @explicit:<reason>
// tags (§4.6, §6.3). A bare @explicit sets isExplicit with no reason; only
// @explicit:<reason> supplies one. Scenarios without either tag are not
// explicit yet — the CRIF Assembler may still set isExplicit later if the
// scenario turns out to contain an unmatched step.
func ParseExplicit(tags []*messages.Tag) (isExplicit bool, reason string) {
	for _, t := range tags {
		switch {
		case t.Name == explicitTag:
			return true, ""
		case strings.HasPrefix(t.Name, explicitPrefix):
			return true, strings.TrimPrefix(t.Name, explicitPrefix)
		}
	}
	return false, ""
}

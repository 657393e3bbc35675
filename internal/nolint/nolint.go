package nolint

import (
	"fmt"
	"strings"
)

const nolintPrefix = "//nolint"

// Manager records which rules are suppressed for a graph, either for the
// whole graph or for single flow points.
type Manager struct {
	// graph holds scopes applying to every flow point.
	graph []scope
	// points maps a flow point id to its scopes.
	points map[int][]scope
}

// scope is one parsed annotation. An empty rule set suppresses every rule.
type scope struct {
	rules map[string]struct{}
}

// NewManager returns a manager with no suppressions.
func NewManager() *Manager {
	return &Manager{points: make(map[int][]scope)}
}

// AddGraph registers an annotation covering the whole graph.
func (m *Manager) AddGraph(annotation string) error {
	s, err := parseAnnotation(annotation)
	if err != nil {
		return err
	}
	m.graph = append(m.graph, s)
	return nil
}

// AddFlowPoint registers an annotation covering only the flow point id.
func (m *Manager) AddFlowPoint(id int, annotation string) error {
	s, err := parseAnnotation(annotation)
	if err != nil {
		return err
	}
	m.points[id] = append(m.points[id], s)
	return nil
}

// parseAnnotation accepts "//nolint" and "//nolint:rule1,rule2".
func parseAnnotation(text string) (scope, error) {
	var s scope
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, nolintPrefix) {
		return s, fmt.Errorf("invalid nolint annotation %q", text)
	}

	rest := text[len(nolintPrefix):]
	if len(rest) > 0 && rest[0] != ':' {
		return s, fmt.Errorf("invalid nolint annotation format %q", text)
	}
	if len(rest) > 0 {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest == "" {
			return s, fmt.Errorf("invalid nolint annotation: no rules specified after colon")
		}
	}
	s.rules = parseIgnoreRuleNames(rest)
	return s, nil
}

// parseIgnoreRuleNames parses the comma separated rule list.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// IsNolint reports whether ruleName is suppressed at flow point id.
func (m *Manager) IsNolint(id int, ruleName string) bool {
	if m == nil {
		return false
	}
	if matches(m.graph, ruleName) {
		return true
	}
	return matches(m.points[id], ruleName)
}

func matches(scopes []scope, ruleName string) bool {
	for _, s := range scopes {
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[ruleName]; ok {
			return true
		}
	}
	return false
}

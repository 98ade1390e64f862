// Package rules evaluates user-defined categorization rules against raw
// transaction descriptions.
package rules

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/marchwood/taxledger/internal/model"
)

// RuleMatch is the outcome of evaluating the rule set against a description.
type RuleMatch struct {
	Rule     *model.CategorizationRule
	MapsTo   model.RuleMapping
	Category string
}

// Engine evaluates an ordered snapshot of categorization rules. Rules operate
// on the raw description, since users write patterns expecting literal
// statement text. The snapshot is read-only for the engine's lifetime.
type Engine struct {
	compiled map[int64]*regexp.Regexp
	rules    []model.CategorizationRule
}

// NewEngine creates a rule engine over the given snapshot. Active rules are
// sorted by (priority ascending, ID ascending) so that evaluation order is
// stable across runs. Regex patterns are compiled once here; a pattern that
// fails to compile is logged and the rule is skipped for the whole batch
// rather than aborting evaluation.
func NewEngine(ruleSet []model.CategorizationRule) *Engine {
	active := make([]model.CategorizationRule, 0, len(ruleSet))
	for _, r := range ruleSet {
		if r.Active {
			active = append(active, r)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].ID < active[j].ID
	})

	e := &Engine{
		rules:    active,
		compiled: make(map[int64]*regexp.Regexp),
	}

	for _, r := range active {
		if r.MatchMode != model.MatchRegex {
			continue
		}
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			slog.Warn("Skipping rule with invalid regex pattern",
				"rule_id", r.ID, "pattern", r.Pattern, "error", err)
			continue
		}
		e.compiled[r.ID] = re
	}

	return e
}

// Evaluate returns the first matching active rule for the description, or
// nil when none applies. Priority order is fixed at construction, so the
// result is deterministic for a given snapshot and description.
func (e *Engine) Evaluate(description string) *RuleMatch {
	for i := range e.rules {
		rule := &e.rules[i]
		if e.matches(rule, description) {
			return &RuleMatch{
				Rule:     rule,
				MapsTo:   rule.MapsTo,
				Category: rule.Category(),
			}
		}
	}
	return nil
}

// matches applies a single rule's match mode to the description.
func (e *Engine) matches(rule *model.CategorizationRule, description string) bool {
	switch rule.MatchMode {
	case model.MatchContains:
		return strings.Contains(strings.ToUpper(description), strings.ToUpper(rule.Pattern))
	case model.MatchEquals:
		return strings.EqualFold(strings.TrimSpace(description), strings.TrimSpace(rule.Pattern))
	case model.MatchRegex:
		re, ok := e.compiled[rule.ID]
		if !ok {
			// Invalid pattern; treated as non-matching.
			return false
		}
		return re.MatchString(description)
	}
	return false
}

// RuleCount returns the number of active rules in the snapshot.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}

package icons

import (
	"strings"

	"golang.org/x/text/cases"
)

// Scope says where a rule applies.
type Scope uint8

const (
	// ScopeElement rules match element tags and types exactly.
	ScopeElement Scope = 1 << iota
	// ScopeGroup rules match group titles by substring.
	ScopeGroup

	ScopeAll = ScopeElement | ScopeGroup
)

// Rule maps a family of keywords to an icon key.
type Rule struct {
	Icon     string
	Keywords []string
	Scope    Scope
}

// Rules is the ordered keyword table. The first matching rule wins.
var Rules = []Rule{
	{Icon: User, Keywords: []string{"person", "user", "people"}, Scope: ScopeAll},
	{Icon: User, Keywords: []string{"humain", "utilisateur"}, Scope: ScopeGroup},
	{Icon: Database, Keywords: []string{"database", "db", "data"}, Scope: ScopeAll},
	{Icon: Database, Keywords: []string{"donnée"}, Scope: ScopeGroup},
	{Icon: API, Keywords: []string{"api", "service"}, Scope: ScopeAll},
	{Icon: Warning, Keywords: []string{"warning", "alert", "risk"}, Scope: ScopeAll},
	{Icon: Warning, Keywords: []string{"risque"}, Scope: ScopeGroup},
	{Icon: New, Keywords: []string{"new", "add"}, Scope: ScopeElement},
	{Icon: Edit, Keywords: []string{"edit", "update"}, Scope: ScopeElement},
	{Icon: Delete, Keywords: []string{"delete", "remove"}, Scope: ScopeElement},
	{Icon: Module, Keywords: []string{"module", "package"}, Scope: ScopeGroup},
	{Icon: Info, Keywords: []string{"info", "information"}, Scope: ScopeGroup},
}

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// match walks Rules once and returns the first icon key accepted by hit.
func match(scope Scope, hit func(keyword string) bool) string {
	for _, r := range Rules {
		if r.Scope&scope == 0 {
			continue
		}
		for _, k := range r.Keywords {
			if hit(fold(k)) {
				return r.Icon
			}
		}
	}
	return ""
}

// ForElement infers an icon key for an element. Tags are consulted first,
// then the type; the result is "" when nothing matches.
func ForElement(tags []string, typ string) string {
	folded := make(map[string]bool, len(tags))
	for _, t := range tags {
		folded[fold(t)] = true
	}
	if key := match(ScopeElement, func(k string) bool { return folded[k] }); key != "" {
		return key
	}
	if typ == "" {
		return ""
	}
	ft := fold(typ)
	return match(ScopeElement, func(k string) bool { return ft == k })
}

// ForGroup infers an icon key for a cluster title by substring match.
func ForGroup(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	ft := fold(title)
	return match(ScopeGroup, func(k string) bool { return strings.Contains(ft, k) })
}

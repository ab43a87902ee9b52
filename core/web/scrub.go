// Package web strips comments and tracking metadata from web source text:
// HTML/HTM markup, CSS stylesheets and JS/JSX/TS/TSX scripts.
//
// Cleaning is pattern-based, not syntax-aware. A string literal holding "//"
// or a tag-like substring is truncated the same way a real comment would be.
package web

import (
	"regexp"

	"github.com/ankit-chaubey/metascrub/core"
)

// rule is one (pattern, replacement) step. Rules run in slice order.
type rule struct {
	re   *regexp.Regexp
	repl string
}

func drop(pattern string) rule { return rule{re: regexp.MustCompile(pattern)} }

// Tracking <meta> names and properties removed from markup.
var (
	trackingMetaNames      = []string{"generator", "author", "created", "modified", "date"}
	trackingMetaProperties = []string{"article:author", "article:published_time", "article:modified_time"}
)

var markupRules = func() []rule {
	rules := []rule{drop(`(?s)<!--.*?-->`)}
	for _, n := range trackingMetaNames {
		rules = append(rules, drop(`(?i)<meta[^>]*name=["']?`+regexp.QuoteMeta(n)+`["']?[^>]*>`))
	}
	for _, p := range trackingMetaProperties {
		rules = append(rules, drop(`(?i)<meta[^>]*property=["']?`+regexp.QuoteMeta(p)+`["']?[^>]*>`))
	}
	return rules
}()

var stylesheetRules = []rule{
	drop(`(?s)/\*.*?\*/`),
	drop(`(?is)@charset.*?;`),
	drop(`(?is)/\*\s*Created by.*?\*/`),
	drop(`(?is)/\*\s*Author.*?\*/`),
	drop(`(?is)/\*\s*Date.*?\*/`),
	drop(`(?is)/\*\s*Version.*?\*/`),
}

var scriptRules = []rule{
	drop(`(?m)//.*$`),
	drop(`(?s)/\*.*?\*/`),
	drop(`(?im)@author.*$`),
	drop(`(?im)@version.*$`),
	drop(`(?im)@date.*$`),
	drop(`(?im)@created.*$`),
	drop(`(?im)@modified.*$`),
	drop(`(?im)@license.*$`),
}

func rulesFor(kind core.MarkupKind) []rule {
	switch kind {
	case core.KindMarkup:
		return markupRules
	case core.KindStylesheet:
		return stylesheetRules
	case core.KindScript:
		return scriptRules
	}
	return nil
}

// Scrub returns content with the kind's rules applied. It never touches the
// filesystem. The rule list is reapplied until the text stops changing, so
// Scrub(Scrub(x)) == Scrub(x) even when a deletion splices a new match
// together. Every rule deletes a non-empty match, so each extra pass shrinks
// the text and the loop ends.
func Scrub(content string, kind core.MarkupKind) string {
	rules := rulesFor(kind)
	for {
		next := content
		for _, r := range rules {
			next = r.re.ReplaceAllLiteralString(next, r.repl)
		}
		if next == content {
			return next
		}
		content = next
	}
}

package transform

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
)

// BuiltinStarters always get a lib rewrite rule, whether or not they are
// present on disk.
var BuiltinStarters = []string{
	"react-aria-tailwind",
	"react-aria-css",
}

// scriptExts are the extensions whose content is rewritten.
var scriptExts = map[string]bool{
	".ts":  true,
	".tsx": true,
}

// Rule is one import prefix substitution. Every match of Pattern is replaced
// with Replace, which may reference capture groups as $1.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// PrefixRule returns a rule that replaces the literal prefix with replace.
func PrefixRule(name, prefix, replace string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(regexp.QuoteMeta(prefix)),
		Replace: replace,
	}
}

// NewRule compiles pattern into a rule.
func NewRule(name, pattern, replace string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("compiling rewrite rule %s: %w", name, err)
	}
	return Rule{Name: name, Pattern: re, Replace: replace}, nil
}

// StarterLibRule maps @/starters/<starter>/src/lib/ to @/lib/.
func StarterLibRule(starter string) Rule {
	return PrefixRule("lib:"+starter, "@/starters/"+starter+"/src/lib/", "@/lib/")
}

// ComponentsRule maps @/starters/<any>/src/components/ui/ to @/components/ui/.
func ComponentsRule() Rule {
	return Rule{
		Name:    "components-ui",
		Pattern: regexp.MustCompile(`@/starters/[^/]+/src/components/ui/`),
		Replace: "@/components/ui/",
	}
}

// DefaultRules returns one lib rule per starter (built-in starters first,
// then the given ones, without duplicates) followed by the components rule.
func DefaultRules(starters ...string) []Rule {
	seen := make(map[string]bool)
	var rules []Rule
	for _, list := range [][]string{BuiltinStarters, starters} {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			rules = append(rules, StarterLibRule(s))
		}
	}
	return append(rules, ComponentsRule())
}

// Rewriter applies an ordered rule table to file content.
type Rewriter struct {
	rules []Rule
}

// NewRewriter orders rules so that a longer literal prefix is tried before a
// shorter one it could overlap with. Rules with equal prefix length keep
// their declared order.
func NewRewriter(rules ...Rule) *Rewriter {
	ordered := append([]Rule(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, _ := ordered[i].Pattern.LiteralPrefix()
		pj, _ := ordered[j].Pattern.LiteralPrefix()
		return len(pi) > len(pj)
	})
	return &Rewriter{rules: ordered}
}

// Rules returns the rules in application order.
func (r *Rewriter) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Rewrite applies every rule to content, replacing all occurrences.
func (r *Rewriter) Rewrite(content string) string {
	for _, rule := range r.rules {
		content = rule.Pattern.ReplaceAllString(content, rule.Replace)
	}
	return content
}

// IsScript reports whether path names a file whose imports are transformed.
func IsScript(path string) bool {
	return scriptExts[filepath.Ext(path)]
}

package transform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestRewriteProperties checks that the default rule table rewrites every
// occurrence and is stable under repeated application.
func TestRewriteProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	rw := NewRewriter(DefaultRules()...)

	properties.Property("every lib import is rewritten", prop.ForAll(
		func(segments []string) bool {
			var b strings.Builder
			for _, seg := range segments {
				b.WriteString("import x from '@/starters/react-aria-tailwind/src/lib/" + seg + "';\n")
			}
			out := rw.Rewrite(b.String())

			if strings.Contains(out, "@/starters/react-aria-tailwind/src/lib/") {
				return false
			}
			for _, seg := range segments {
				if !strings.Contains(out, "'@/lib/"+seg+"'") {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
	))

	fragments := []string{
		"@/starters/", "react-aria-css", "react-aria-tailwind", "demo", "/src/",
		"lib/", "components/ui/", "types/", "@/lib/", "@/components/ui/", "'", "\n", "x",
	}
	properties.Property("rewriting is idempotent", prop.ForAll(
		func(picks []int) bool {
			var b strings.Builder
			for _, i := range picks {
				b.WriteString(fragments[i])
			}
			once := rw.Rewrite(b.String())
			return rw.Rewrite(once) == once
		},
		gen.SliceOf(gen.IntRange(0, len(fragments)-1)),
	))

	properties.TestingRun(t)
}

// TestStripCSSImportsProperties checks the strip/preserve split on random
// component names.
func TestStripCSSImportsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	dir := t.TempDir()

	properties.Property("import removed iff stylesheet exists", prop.ForAll(
		func(name string, exists bool) bool {
			cssName := name + ".css"
			cssPath := filepath.Join(dir, cssName)
			_ = os.Remove(cssPath)
			if exists {
				if err := os.WriteFile(cssPath, nil, 0644); err != nil {
					return false
				}
			}

			in := "import './" + cssName + "';\nexport const " + name + " = 1;\n"
			out, missing := StripCSSImports(in, filepath.Join(dir, name+".tsx"))

			if exists {
				return !strings.Contains(out, ".css") && len(missing) == 0
			}
			return out == in && len(missing) == 1
		},
		gen.Identifier(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

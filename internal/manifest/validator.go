package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/registry.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)

	// distTag matches npm dist-tags such as "latest" or "next".
	distTag = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// ValidationResult contains the outcome of a manifest validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/items/0/files/1/type")
	Message string // Human-readable error message
	Keyword string // Schema keyword, or the name of the semantic check
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("registry.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("registry.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw manifest JSON. Schema issues are reported first; the
// semantic checks only run when the document is schema-valid.
// The error return is for malformed JSON or schema compilation failures.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		return &ValidationResult{Valid: false, Issues: extractIssues(validationErr)}, nil
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	issues := Check(m)
	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// ValidateFile reads a file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// Check runs the semantic rules on a decoded manifest. It also repeats the
// type check so callers holding a Manifest built in code get the same answer
// as the schema.
func Check(m *Manifest) []ValidationIssue {
	var issues []ValidationIssue
	seen := make(map[string]int, len(m.Items))

	for i, item := range m.Items {
		base := fmt.Sprintf("/items/%d", i)

		if first, dup := seen[item.Name]; dup {
			issues = append(issues, ValidationIssue{
				Path:    base + "/name",
				Message: fmt.Sprintf("duplicate item name %q (first declared at /items/%d)", item.Name, first),
				Keyword: "unique",
			})
		} else {
			seen[item.Name] = i
		}

		if !IsValidType(item.Type) {
			issues = append(issues, ValidationIssue{
				Path:    base + "/type",
				Message: fmt.Sprintf("unknown item type %q", item.Type),
				Keyword: "type",
			})
		}

		if item.RequiresFiles() && len(item.Files) == 0 {
			issues = append(issues, ValidationIssue{
				Path:    base + "/files",
				Message: fmt.Sprintf("%s item must list at least one file", item.Type),
				Keyword: "files",
			})
		}

		for j, f := range item.Files {
			if !IsValidType(f.Type) {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s/files/%d/type", base, j),
					Message: fmt.Sprintf("unknown file type %q", f.Type),
					Keyword: "type",
				})
			}
			if !filepath.IsLocal(filepath.FromSlash(f.Path)) {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s/files/%d/path", base, j),
					Message: fmt.Sprintf("path %q must be relative to src/ and stay inside it", f.Path),
					Keyword: "path",
				})
			}
		}

		issues = append(issues, checkDependencies(base+"/dependencies", item.Dependencies)...)
		issues = append(issues, checkDependencies(base+"/devDependencies", item.DevDependencies)...)
	}

	return issues
}

// checkDependencies verifies that every "name@range" spec has a range that
// parses as a semver constraint or is a dist-tag.
func checkDependencies(path string, deps []string) []ValidationIssue {
	var issues []ValidationIssue
	for i, spec := range deps {
		name, rng := SplitDependency(spec)
		if name == "" {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("%s/%d", path, i),
				Message: fmt.Sprintf("dependency %q has no package name", spec),
				Keyword: "dependency",
			})
			continue
		}
		if rng == "" || distTag.MatchString(rng) {
			continue
		}
		if _, err := semver.NewConstraint(rng); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("%s/%d", path, i),
				Message: fmt.Sprintf("dependency %q has invalid version range %q: %v", name, rng, err),
				Keyword: "semver",
			})
		}
	}
	return issues
}

// SplitDependency splits an npm dependency spec into package name and version
// range. Scoped names keep their leading "@": "@scope/pkg@^1.0.0" yields
// ("@scope/pkg", "^1.0.0").
func SplitDependency(spec string) (name, rng string) {
	at := strings.LastIndex(spec, "@")
	if at <= 0 {
		return spec, ""
	}
	return spec[:at], spec[at+1:]
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Skip generic container errors that aren't informative.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

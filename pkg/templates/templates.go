// Package templates implements the path-template engine used by the
// export preset system.
//
// A template is a path pattern with named fields, e.g.
//
//	sequences/{Sequence}/{Shot}/editorial/plates/{segment_name}_{Shot}.v{version}.{SEQ}.dpx
//
// and supports validating a concrete path against the pattern,
// extracting field values from a path, and building a path from a
// field mapping. Field matching semantics: string fields match within
// a single path segment, integer fields match digit runs and are
// zero-padded on apply according to their format spec.
package templates

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/openpipe/flameset/pkg/errors"
)

// Key type names
const (
	KeyTypeStr = "str"
	KeyTypeInt = "int"
)

// tokenPattern matches {field} tokens in a template definition
var tokenPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Key describes a single template field
type Key struct {
	// Type is the field type, "str" (default) or "int"
	Type string

	// FormatSpec is the zero-padding width specifier for int fields,
	// e.g. "04" for four-digit zero-padded numbers
	FormatSpec string
}

// Template is a compiled path template
type Template struct {
	name       string
	definition string
	keys       map[string]Key
	root       string

	// re matches the full definition; groups[i] names the field
	// captured by group i+1. Go's RE2 has no backreferences, so a
	// field appearing more than once yields multiple groups that are
	// cross-checked after matching.
	re     *regexp.Regexp
	groups []string
}

// New compiles a template from its definition string. keys may be nil;
// fields without an explicit key default to type "str". root, if
// non-empty, is stripped from absolute paths before matching.
func New(name, definition string, keys map[string]Key, root string) (*Template, error) {
	if definition == "" {
		return nil, errors.Newf(errors.ErrTemplateInvalid, "template '%s' has an empty definition", name)
	}

	t := &Template{
		name:       name,
		definition: definition,
		keys:       make(map[string]Key),
		root:       root,
	}

	for field, key := range keys {
		if key.Type != "" && key.Type != KeyTypeStr && key.Type != KeyTypeInt {
			return nil, errors.Newf(errors.ErrTemplateInvalid,
				"template '%s': field '%s' has unknown type '%s'", name, field, key.Type)
		}
		t.keys[field] = key
	}

	if err := t.compile(); err != nil {
		return nil, err
	}

	// register default keys for fields without an explicit entry so
	// that Keys() covers every field in the definition
	for _, field := range t.groups {
		if _, ok := t.keys[field]; !ok {
			t.keys[field] = Key{Type: KeyTypeStr}
		}
	}

	return t, nil
}

// compile builds the matching regexp from the definition
func (t *Template) compile() error {
	var sb strings.Builder
	sb.WriteString("^")

	last := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(t.definition, -1) {
		sb.WriteString(regexp.QuoteMeta(t.definition[last:m[0]]))
		field := t.definition[m[2]:m[3]]

		if t.keys[field].Type == KeyTypeInt {
			sb.WriteString("([0-9]+)")
		} else {
			sb.WriteString("([^/]+?)")
		}
		t.groups = append(t.groups, field)
		last = m[1]
	}
	sb.WriteString(regexp.QuoteMeta(t.definition[last:]))
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateInvalid, "template '%s' does not compile", t.name)
	}
	t.re = re
	return nil
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Definition returns the raw token string for this template
func (t *Template) Definition() string {
	return t.definition
}

// Keys returns the field descriptors for this template, including
// implicit "str" entries for fields without explicit configuration
func (t *Template) Keys() map[string]Key {
	out := make(map[string]Key, len(t.keys))
	for k, v := range t.keys {
		out[k] = v
	}
	return out
}

// Key returns the descriptor for a single field. An unknown field name
// is a configuration fault and yields a TEMPLATE_KEY error.
func (t *Template) Key(field string) (Key, error) {
	key, ok := t.keys[field]
	if !ok {
		return Key{}, errors.Newf(errors.ErrTemplateKey,
			"template '%s' has no {%s} field", t.name, field)
	}
	return key, nil
}

// Validate reports whether path matches this template
func (t *Template) Validate(path string) bool {
	_, err := t.Fields(path)
	return err == nil
}

// Fields extracts the field values from a path. The path must validate
// against the template; fields appearing multiple times must carry the
// same value in every position.
func (t *Template) Fields(path string) (map[string]string, error) {
	rel := t.relativize(path)

	m := t.re.FindStringSubmatch(rel)
	if m == nil {
		return nil, errors.Newf(errors.ErrTemplateFields,
			"path '%s' does not match template '%s' (%s)", path, t.name, t.definition)
	}

	fields := make(map[string]string)
	for i, field := range t.groups {
		value := m[i+1]
		if prev, seen := fields[field]; seen && prev != value {
			return nil, errors.Newf(errors.ErrTemplateFields,
				"path '%s': field {%s} has conflicting values '%s' and '%s'", path, field, prev, value)
		}
		fields[field] = value
	}
	return fields, nil
}

// ApplyFields builds a path by substituting field values into the
// definition. Every field in the definition must be present in the
// mapping; int fields are zero-padded according to their format spec.
func (t *Template) ApplyFields(fields map[string]string) (string, error) {
	var sb strings.Builder

	last := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(t.definition, -1) {
		sb.WriteString(t.definition[last:m[0]])
		field := t.definition[m[2]:m[3]]

		value, ok := fields[field]
		if !ok {
			return "", errors.Newf(errors.ErrTemplateApply,
				"cannot resolve template '%s': missing field {%s}", t.name, field)
		}

		formatted, err := t.formatValue(field, value)
		if err != nil {
			return "", err
		}
		sb.WriteString(formatted)
		last = m[1]
	}
	sb.WriteString(t.definition[last:])

	return sb.String(), nil
}

// formatValue renders a field value according to its key descriptor
func (t *Template) formatValue(field, value string) (string, error) {
	key := t.keys[field]
	if key.Type != KeyTypeInt {
		return value, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return "", errors.Newf(errors.ErrTemplateApply,
			"template '%s': field {%s} expects an integer, got '%s'", t.name, field, value)
	}

	if key.FormatSpec == "" {
		return strconv.Itoa(n), nil
	}
	width, err := strconv.Atoi(key.FormatSpec)
	if err != nil {
		return "", errors.Newf(errors.ErrTemplateApply,
			"template '%s': field {%s} has malformed format spec '%s'", t.name, field, key.FormatSpec)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}

// relativize strips the template root from absolute paths so that
// templates defined relative to the project root can match absolute
// render paths handed back by the export engine.
func (t *Template) relativize(path string) string {
	path = filepath.ToSlash(path)
	if t.root == "" || !strings.HasPrefix(path, "/") {
		return path
	}

	root := strings.TrimSuffix(filepath.ToSlash(t.root), "/")
	if strings.HasPrefix(path, root+"/") {
		return strings.TrimPrefix(path, root+"/")
	}
	return path
}

// String implements fmt.Stringer
func (t *Template) String() string {
	return fmt.Sprintf("<Template %s: %s>", t.name, t.definition)
}
